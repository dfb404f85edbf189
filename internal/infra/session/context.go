package session

import (
	"context"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type contextKey struct{}

var userIDKey = contextKey{}

func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// Provider resolves the signed-in user from the request context populated by
// Middleware.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

var _ domain.SessionProvider = (*Provider)(nil)

func (p *Provider) CurrentUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
