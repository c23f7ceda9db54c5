// Package api holds the JSON plumbing shared by the REST features.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/stratalibrary/internal/app/system/limits"
	"github.com/google/uuid"
)

// ValidationIDHeader carries the id that ties a response to its log lines.
const ValidationIDHeader = "X-Validation-ID"

// ErrEmptyBody is returned by ReadJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// ValidationID stamps every response with a fresh X-Validation-ID.
func ValidationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(ValidationIDHeader, uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

// ValidationIDOf returns the id stamped on w, or "" outside the middleware.
func ValidationIDOf(w http.ResponseWriter) string {
	return w.Header().Get(ValidationIDHeader)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ReadJSON decodes a single JSON object from the request body into v.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}
