// Package apperr defines the typed error every handler returns. The
// centralized Fiber error handler turns it into the failure envelope.
package apperr

type ApiError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *ApiError) Error() string {
	return e.Message
}

// New builds an ApiError with an HTTP status code, a message and optional
// per-field details.
func New(statusCode int, message string, details ...string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     details,
	}
}
