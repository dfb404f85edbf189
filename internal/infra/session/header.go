package session

import (
	"net/http"
	"strings"
)

// HeaderAuthenticator trusts a user ID header set by the upstream gateway.
type HeaderAuthenticator struct {
	header string
}

func NewHeaderAuthenticator(header string) *HeaderAuthenticator {
	return &HeaderAuthenticator{header: header}
}

func (a *HeaderAuthenticator) Authenticate(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get(a.header))
	if userID == "" {
		return "", ErrNoCredentials
	}
	return userID, nil
}
