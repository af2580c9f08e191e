package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/teame/hospital-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// statusFor maps the application error taxonomy to HTTP statuses.
// ProfileMissing is a data-integrity fault: the caller sees a plain
// internal error while the distinction lives in the logs.
func statusFor(code apperr.ErrorCode) int {
	switch code {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrBadRequest:
		return http.StatusBadRequest
	case apperr.ErrUnauthorized, apperr.ErrInvalidToken:
		return http.StatusUnauthorized
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrDuplicateAccount, apperr.ErrSlotConflict, apperr.ErrInvalidTransition, apperr.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the error response for err. Internal faults are not
// echoed back to the caller.
func Error(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := statusFor(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(status, NewErrorResponse(message))
}
