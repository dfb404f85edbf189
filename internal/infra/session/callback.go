package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

var ErrCallbackRejected = errors.New("callback credentials rejected")

const secretCaller = "task-queue"

// SecretAuthenticator accepts task queue callbacks carrying a shared secret
// header.
type SecretAuthenticator struct {
	header string
	secret []byte
}

func NewSecretAuthenticator(header, secret string) *SecretAuthenticator {
	return &SecretAuthenticator{header: header, secret: []byte(secret)}
}

func (a *SecretAuthenticator) Authenticate(r *http.Request) (string, error) {
	token := r.Header.Get(a.header)
	if token == "" {
		return "", ErrNoCredentials
	}
	if len(a.secret) == 0 || subtle.ConstantTimeCompare([]byte(token), a.secret) != 1 {
		return "", ErrCallbackRejected
	}
	return secretCaller, nil
}

// ServiceAccountAuthenticator accepts Cloud Tasks callbacks whose OIDC token
// was minted for the configured service account.
type ServiceAccountAuthenticator struct {
	audience string
	email    string
	validate tokenValidator
}

func NewServiceAccountAuthenticator(audience, email string) *ServiceAccountAuthenticator {
	return &ServiceAccountAuthenticator{
		audience: audience,
		email:    email,
		validate: idtoken.Validate,
	}
}

func (a *ServiceAccountAuthenticator) Authenticate(r *http.Request) (string, error) {
	payload, err := validateBearer(r, a.audience, a.validate)
	if err != nil {
		return "", err
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if a.email == "" || !verified || !strings.EqualFold(email, a.email) {
		return "", fmt.Errorf("%w: unexpected caller %q", ErrCallbackRejected, email)
	}

	return email, nil
}

// RequireCaller rejects requests the authenticator cannot identify.
func RequireCaller(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := auth.Authenticate(c.Request); err != nil {
			slog.WarnContext(c.Request.Context(), "callback authentication failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "valid callback credentials are required",
			})
			return
		}
		c.Next()
	}
}
