package domain

import "context"

//go:generate mockgen -source=session.go -destination=session_mock.go -package=domain

type SessionProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}
