package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/idtoken"
)

var ErrInvalidToken = errors.New("invalid id token")

type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// IDTokenAuthenticator verifies a Google-signed bearer ID token and uses its
// subject as the user ID.
type IDTokenAuthenticator struct {
	audience string
	validate tokenValidator
}

func NewIDTokenAuthenticator(audience string) *IDTokenAuthenticator {
	return &IDTokenAuthenticator{
		audience: audience,
		validate: idtoken.Validate,
	}
}

func (a *IDTokenAuthenticator) Authenticate(r *http.Request) (string, error) {
	payload, err := validateBearer(r, a.audience, a.validate)
	if err != nil {
		return "", err
	}
	if payload.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return payload.Subject, nil
}

func validateBearer(r *http.Request, audience string, validate tokenValidator) (*idtoken.Payload, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return nil, ErrNoCredentials
	}

	payload, err := validate(r.Context(), token, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return payload, nil
}
