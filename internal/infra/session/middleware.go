package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrNoCredentials means the request carried nothing to authenticate.
var ErrNoCredentials = errors.New("no credentials")

type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// Middleware attaches the authenticated user ID to the request context.
// Requests without a valid identity pass through anonymously; operations
// that need a user decide how to treat that.
func Middleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.Authenticate(c.Request)
		if err != nil {
			if !errors.Is(err, ErrNoCredentials) {
				slog.WarnContext(c.Request.Context(), "session authentication failed",
					slog.String("error", err.Error()),
				)
			}
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
