package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized matches backend 401 responses via errors.Is, so
// callers can suggest a re-login instead of printing a raw status.
var ErrUnauthorized = errors.New("unauthorized")

// Error is an opaque backend failure: the HTTP status plus whatever
// body the backend sent. The client does not interpret it beyond the
// status code; the caller decides what to show.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, body)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
