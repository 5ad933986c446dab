package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return write(w, status, "application/json", append(b, '\n'))
}

// WriteString writes str as a plain text response with the given status.
func WriteString(w http.ResponseWriter, status int, str string) error {
	return write(w, status, "text/plain; charset=utf-8", []byte(str))
}

func write(w http.ResponseWriter, status int, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
