package httperr

import (
	"errors"
	"strings"
)

// Kind classifies a domain failure. The HTTP layer maps kinds to status codes.
type Kind string

const (
	KindNotFound               Kind = "not_found"
	KindOwnershipMismatch      Kind = "ownership_mismatch"
	KindInvalidTimeFormat      Kind = "invalid_time_format"
	KindOutOfBusinessHours     Kind = "out_of_business_hours"
	KindNonPositiveDuration    Kind = "non_positive_duration"
	KindInvalidGranularity     Kind = "invalid_granularity"
	KindOverlapConflict        Kind = "overlap_conflict"
	KindIncompleteTimeChange   Kind = "incomplete_time_change"
	KindInvalidState           Kind = "invalid_state"
	KindDuplicateServiceRecord Kind = "duplicate_service_record"
	KindAlreadyProcessed       Kind = "already_processed"
	KindValidation             Kind = "validation_error"
	KindStorage                Kind = "storage_error"

	KindConflict          Kind = "conflict"
	KindInUse             Kind = "in_use"
	KindInsufficientStock Kind = "insufficient_stock"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindLockBusy          Kind = "lock_busy"

	KindInvalidCredentials Kind = "invalid_credentials"
	KindAccountInactive    Kind = "account_inactive"
	KindInternal           Kind = "internal_error"
)

type BusinessError struct {
	Code             Kind
	Message          string
	ValidationErrors []string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return string(e.Code) + ": " + e.Message
	}
	if len(e.ValidationErrors) > 0 {
		return string(e.Code) + ": " + strings.Join(e.ValidationErrors, "; ")
	}
	return string(e.Code)
}

func ErrBusiness(code Kind) error {
	return BusinessError{Code: code}
}

// New builds a business error with a human readable message.
func New(code Kind, message string) error {
	return BusinessError{Code: code, Message: message}
}

// Validation carries every violated field rule at once.
func Validation(messages []string) error {
	return BusinessError{
		Code:             KindValidation,
		Message:          "Validation error",
		ValidationErrors: messages,
	}
}

func IsBusiness(err error, code Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
