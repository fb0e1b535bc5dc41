package appointment

import "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []string{
	string(StatusScheduled),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCancelled),
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Contact methods
// ===============================

const (
	ContactPhone    = "phone"
	ContactEmail    = "email"
	ContactInPerson = "in_person"
)

var ContactMethods = []string{ContactPhone, ContactEmail, ContactInPerson}

// ===============================
// Validations
// ===============================

// CanOpenServiceRecord: only a scheduled appointment can be received.
func CanOpenServiceRecord(current Status) error {
	if current != StatusScheduled {
		return httperr.New(httperr.KindInvalidState,
			"Cannot create service record for an appointment that is not scheduled")
	}
	return nil
}

// CanCancel: cancellation is only allowed before the car is received.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.New(httperr.KindInvalidState, "Only scheduled appointments can be cancelled")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
