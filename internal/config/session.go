package config

import "os"

const (
	sessionUserHeaderEnv = "SESSION_USER_HEADER"
	idTokenAudienceEnv   = "ID_TOKEN_AUDIENCE"

	defaultSessionUserHeader = "X-User-ID"
)

type SessionConfig struct {
	// UserHeader carries the user ID asserted by the gateway (local builds).
	UserHeader string
	// IDTokenAudience is the expected audience of bearer ID tokens (gcloud builds).
	IDTokenAudience string
}

func LoadSessionConfig() *SessionConfig {
	header := os.Getenv(sessionUserHeaderEnv)
	if header == "" {
		header = defaultSessionUserHeader
	}

	return &SessionConfig{
		UserHeader:      header,
		IDTokenAudience: os.Getenv(idTokenAudienceEnv),
	}
}
