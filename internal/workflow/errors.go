package workflow

import "net/http"

// Error is a workflow outcome that maps directly onto an HTTP response.
// Raw store errors never cross this boundary; they are folded into one of
// these before reaching a handler.
type Error struct {
	Status               int
	Message              string
	RequiresVerification bool
	RedirectURL          string
}

func (e *Error) Error() string { return e.Message }

func validationError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func authenticationError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func invalidTokenError(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func notFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func authorizationError(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func externalServiceError(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}
