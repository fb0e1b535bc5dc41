package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

func TestTransitions(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	assert.NoError(t, StartService(ap))
	assert.Equal(t, string(StatusInProgress), ap.Status)

	err := StartService(ap)
	assert.True(t, httperr.IsBusiness(err, httperr.KindInvalidState))

	assert.True(t, RevertService(ap))
	assert.Equal(t, string(StatusScheduled), ap.Status)
	assert.False(t, RevertService(ap))

	assert.NoError(t, Cancel(ap))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.True(t, httperr.IsBusiness(StartService(ap), httperr.KindInvalidState))
	assert.True(t, httperr.IsBusiness(Cancel(ap), httperr.KindInvalidState))
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, Status(s).Valid())
	}
	assert.False(t, Status("done").Valid())
}
