package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

func TestApplyStock(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		amount  float64
		op      string
		want    float64
		kind    httperr.Kind
	}{
		{"add", 10, 5, StockAdd, 15, ""},
		{"subtract", 10, 4, StockSubtract, 6, ""},
		{"subtract everything", 10, 10, StockSubtract, 0, ""},
		{"subtract too much", 10, 11, StockSubtract, 10, httperr.KindInsufficientStock},
		{"set", 10, 3, StockSet, 3, ""},
		{"empty operation sets", 10, 3, "", 3, ""},
		{"unknown operation", 10, 3, "multiply", 10, httperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyStock(tt.current, tt.amount, tt.op)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kind, httperr.KindOf(err))
		})
	}
}
