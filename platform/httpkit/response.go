// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"phonekit/phonenumbers"
	"phonekit/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values map through their Kind; parse errors from the
// phone number core map to 422 with a stable code; anything else defaults
// to 400 Bad Request. Returns true if an error was handled.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Code:    parseErrorCode(domainErr.Err),
			Details: domainErr.Details,
		})
		return true
	}

	if _, ok := phonenumbers.CodeOf(err); ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Code:  parseErrorCode(err),
		})
		return true
	}

	// Fallback for non-typed errors
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	return true
}

// parseErrorCode yields the wire name of a parse error, empty for anything
// else.
func parseErrorCode(err error) string {
	code, ok := phonenumbers.CodeOf(err)
	if !ok {
		return ""
	}
	switch code {
	case phonenumbers.ErrNotANumber:
		return "NOT_A_NUMBER"
	case phonenumbers.ErrInvalidCountryCode:
		return "INVALID_COUNTRY_CODE"
	case phonenumbers.ErrTooShortAfterIDD:
		return "TOO_SHORT_AFTER_IDD"
	case phonenumbers.ErrTooShortNSN:
		return "TOO_SHORT_NSN"
	case phonenumbers.ErrTooLong:
		return "TOO_LONG"
	}
	return ""
}
