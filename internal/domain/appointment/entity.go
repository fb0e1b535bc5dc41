package appointment

import (
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// StartService moves a scheduled appointment into the workshop.
func StartService(ap *models.Appointment) error {
	if err := CanOpenServiceRecord(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusInProgress)
	return nil
}

func Complete(ap *models.Appointment) {
	ap.Status = string(StatusCompleted)
}

// RevertService puts an in-progress appointment back on the schedule. It
// reports whether anything changed.
func RevertService(ap *models.Appointment) bool {
	if Status(ap.Status) != StatusInProgress {
		return false
	}
	ap.Status = string(StatusScheduled)
	return true
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}
