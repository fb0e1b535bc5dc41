package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
)

func TestSchema_AggregatesViolations(t *testing.T) {
	msgs := Register.Check(map[string]any{
		"username":     "ab",
		"firstName":    "J",
		"lastName":     "Doe",
		"phoneNumbers": []any{"0712345678", "12345"},
		"email":        "not-an-email",
	})

	assert.ElementsMatch(t, []string{
		"username must be between 4 and 20 characters",
		"password is required",
		"firstName must be between 2 and 50 characters",
		"phoneNumbers[1] must be a valid phone number (10 digits starting with 0)",
		"email must be a valid email address",
	}, msgs)
}

func TestSchema_Validate(t *testing.T) {
	err := Login.Validate(map[string]any{"username": "john"})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.KindValidation))

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, []string{"password is required"}, be.ValidationErrors)

	assert.NoError(t, Login.Validate(map[string]any{"username": "john", "password": "secret"}))
}

func TestSchema_Types(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		body   map[string]any
		want   []string
	}{
		{
			name:   "integer rejects fractions",
			schema: Schema{{Name: "n", Type: Integer}},
			body:   map[string]any{"n": 1.5},
			want:   []string{"n must be an integer"},
		},
		{
			name:   "number bounds",
			schema: Schema{{Name: "n", Type: Number, Min: Ptr(0), Max: Ptr(10)}},
			body:   map[string]any{"n": 11.0},
			want:   []string{"n must be at most 10"},
		},
		{
			name:   "multiple of",
			schema: Schema{{Name: "d", Type: Integer, MultipleOf: 10}},
			body:   map[string]any{"d": 75.0},
			want:   []string{"d must be a multiple of 10"},
		},
		{
			name:   "wrong type",
			schema: Schema{{Name: "b", Type: Boolean}, {Name: "s", Type: String}},
			body:   map[string]any{"b": "yes", "s": 3.0},
			want:   []string{"b must be a boolean", "s must be a string"},
		},
		{
			name:   "one of",
			schema: Schema{{Name: "c", Type: String, OneOf: []string{"phone", "email"}}},
			body:   map[string]any{"c": "fax"},
			want:   []string{"c must be one of: phone, email"},
		},
		{
			name:   "date and clock",
			schema: Schema{{Name: "date", Type: Date}, {Name: "t", Type: Clock}},
			body:   map[string]any{"date": "2025-13-01", "t": "9h30"},
			want:   []string{"date must be a date in YYYY-MM-DD format", "t must be a time in HH:MM format"},
		},
		{
			name:   "optional fields may be absent or null",
			schema: Schema{{Name: "a", Type: String}, {Name: "b", Type: Number}},
			body:   map[string]any{"b": nil},
			want:   nil,
		},
		{
			name:   "required string must not be blank",
			schema: Schema{{Name: "a", Required: true, Type: String}},
			body:   map[string]any{"a": "   "},
			want:   []string{"a must not be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.Check(tt.body))
		})
	}
}

func TestSchema_NestedObjects(t *testing.T) {
	msgs := CreateServiceRecord.Check(map[string]any{
		"appointmentId": 1.0,
		"reception": map[string]any{
			"clientReportedIssues": "noise",
		},
	})
	assert.Equal(t, []string{"reception.receivedBy is required"}, msgs)

	msgs = AddProcessing.Check(map[string]any{
		"operations":         []any{"oil change"},
		"replacedParts":      []any{map[string]any{"name": "filter", "quantity": -1.0, "unitPrice": 10.0}},
		"repaired":           "full",
		"processingDuration": 60.0,
		"processedBy":        "tech",
	})
	assert.Equal(t, []string{"replacedParts[0].quantity must be at least 0"}, msgs)
}

func TestCarSchema_YearCeiling(t *testing.T) {
	s := Car(2025, false)

	assert.Empty(t, s.Check(map[string]any{"year": 2026.0}))
	assert.Equal(t, []string{"year must be at most 2026"}, s.Check(map[string]any{"year": 2027.0}))
	assert.Equal(t, []string{"year must be at least 1900"}, s.Check(map[string]any{"year": 1899.0}))
}
