package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

type HTTPError struct {
	Status           string   `json:"status"`
	Code             Kind     `json:"error_code"`
	Message          string   `json:"message"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
}

func Write(c *gin.Context, status int, code Kind, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code Kind, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code Kind, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code Kind, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, KindUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Write(c, http.StatusForbidden, KindForbidden, message)
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(code Kind) int {
	switch code {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindInvalidCredentials, KindAccountInactive:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindLockBusy:
		return http.StatusServiceUnavailable
	case KindStorage, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err as the error envelope. Business errors keep their
// kind; store.ErrNotFound becomes not_found; everything else is a 500.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	switch {
	case errors.As(err, &be):
		msg := be.Message
		if msg == "" {
			msg = defaultMessage(be.Code)
		}
		c.AbortWithStatusJSON(StatusFor(be.Code), HTTPError{
			Status:           "error",
			Code:             be.Code,
			Message:          msg,
			ValidationErrors: be.ValidationErrors,
		})
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, KindNotFound, "Resource not found")
	default:
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, KindStorage, "Internal Server Error")
	}
}

func defaultMessage(code Kind) string {
	switch code {
	case KindNotFound:
		return "Resource not found"
	case KindOwnershipMismatch:
		return "Car does not belong to the specified client"
	case KindInvalidTimeFormat:
		return "Time must use the HH:MM format"
	case KindOutOfBusinessHours:
		return "Appointments must be between 08:00 and 17:00"
	case KindNonPositiveDuration:
		return "End time must be after start time"
	case KindInvalidGranularity:
		return "Duration has an invalid granularity"
	case KindOverlapConflict:
		return "Appointment overlaps with an existing appointment"
	case KindIncompleteTimeChange:
		return "Both start time and end time must be provided together"
	case KindInvalidState:
		return "Operation not allowed in the current state"
	case KindDuplicateServiceRecord:
		return "Service record already exists for this appointment"
	case KindAlreadyProcessed:
		return "Processing information already exists for this service record"
	case KindLockBusy:
		return "Resource is busy, please retry"
	}
	return string(code)
}
