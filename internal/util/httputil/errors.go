package httputil

import "net/http"

// JSONError is an error returned by a handler that must reach the client
// as a JSON body with HTTPStatus.
//
// The wrapped error is only logged. SafeMessage is what the client sees.
type JSONError struct {
	error
	HTTPStatus  int
	SafeMessage string
}

// NewJSONError creates a new JSONError. Without a safeMessage the status
// text is shown to the client.
func NewJSONError(status int, err error, safeMessage ...string) JSONError {
	jerr := JSONError{error: err, HTTPStatus: status}
	if len(safeMessage) > 0 {
		jerr.SafeMessage = safeMessage[0]
	}
	return jerr
}

// Unwrap returns the internal error.
func (e JSONError) Unwrap() error {
	return e.error
}

// Message returns the text that can be shown to the client.
func (e JSONError) Message() string {
	if e.SafeMessage != "" {
		return e.SafeMessage
	}
	return http.StatusText(e.HTTPStatus)
}
