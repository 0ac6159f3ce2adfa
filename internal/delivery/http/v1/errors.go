package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/focusflow/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidQuery       = errors.New("invalid query parameters")
	errMissingToken       = errors.New("access token required")
	errInvalidToken       = errors.New("invalid access token")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// newServiceError maps a service sentinel to its response.
// Unknown errors become a bare 500.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrEmptyTaskTitle),
		errors.Is(err, services.ErrInvalidTaskDate),
		errors.Is(err, services.ErrInvalidStatusFilter):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserPasswordMismatch):
		return newUnauthorizedError(err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(err.Error())
	case errors.Is(err, services.ErrTaskNotStarted),
		errors.Is(err, services.ErrNoActiveTask),
		errors.Is(err, services.ErrTimerRunning):
		return newConflictError(err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
