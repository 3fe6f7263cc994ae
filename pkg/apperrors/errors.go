package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure modes the catalog core can report.
// Callers branch on these with errors.Is.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")
)

// NotFound reports that a lookup term or id resolved to nothing.
func NotFound(resource, term string) error {
	return fmt.Errorf("%w: %s with %q not found", ErrNotFound, resource, term)
}

// Conflict reports a unique-constraint violation. The detail names the
// colliding constraint so the caller can correct the request.
func Conflict(detail string) error {
	return fmt.Errorf("%w: %s", ErrConflict, detail)
}

// Forbidden reports that the caller lacks one of the required roles.
func Forbidden(message string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, message)
}

// BadRequest reports that the request could not even be evaluated.
func BadRequest(message string) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, message)
}

// Internal wraps an unexpected persistence failure. The wrapped detail is
// for logs only; callers should surface a generic message.
func Internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// HTTPStatus maps an error from the taxonomy to an HTTP status code.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for an error. NotFound, Conflict,
// Forbidden and BadRequest carry their own detail; anything else collapses to
// a generic message so persistence internals never leak.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrBadRequest):
		return err.Error()
	default:
		return "Unexpected error. Check server logs."
	}
}
