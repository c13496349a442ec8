package api

import (
	"net/http"

	"github.com/google/uuid"
)

// bearerTransport attaches the current token to every outgoing request
// when one exists. It never overwrites a caller-set Authorization
// header, and tags each request with an X-Request-ID for correlation
// with backend logs.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())

	if clone.Header.Get("Authorization") == "" && t.tokens != nil {
		if token, ok := t.tokens.Token(); ok {
			clone.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if clone.Header.Get("X-Request-ID") == "" {
		clone.Header.Set("X-Request-ID", uuid.New().String())
	}

	return t.base.RoundTrip(clone)
}
