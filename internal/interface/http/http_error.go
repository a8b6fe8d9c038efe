package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

// Transport-level codes. Domain codes come from pkg/errors.
const (
	codeInvalidRequest = "invalid_request"
	codeRateLimited    = "rate_limit_exceeded"
	codeInternal       = "internal_error"
)

// statusByCode maps domain error codes onto HTTP statuses. Unknown codes are 500.
var statusByCode = map[string]int{
	apperrors.CodeInvalidInput:     http.StatusBadRequest,
	apperrors.CodeNotFound:         http.StatusNotFound,
	apperrors.CodeInsufficientData: http.StatusUnprocessableEntity,
	apperrors.CodeCatalog:          http.StatusBadGateway,
	apperrors.CodeProfileStore:     http.StatusServiceUnavailable,
}

// HTTPError is the rendered form of a failed request: {"error":{"code","message"}}.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError builds an HTTPError with an explicit status.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// domainError translates an advisor failure. Errors without a code are
// internal and keep their detail out of the response.
func domainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" {
		return NewHTTPError(http.StatusInternalServerError, codeInternal, "something went wrong", err)
	}
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return NewHTTPError(status, code, err.Error(), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return domainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
