//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/session"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, reminders cannot be scheduled")

		return nil, nil, nil
	}

	tq := taskqueue.NewPrimindTasksClient(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.CallbackURL,
		cfg.TaskQueue.MaxRetries,
	).WithCallbackToken(cfg.TaskQueue.CallbackSecret)

	slog.Info("task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
		slog.String("callback_url", cfg.TaskQueue.CallbackURL),
	)

	return tq, nil, nil
}

// The local gateway asserts the caller in a header.
func newAuthenticator(cfg *config.Config) session.Authenticator {
	return session.NewHeaderAuthenticator(cfg.Session.UserHeader)
}

// Primind Tasks replays the shared secret header on every callback.
func newCallbackAuthenticator(cfg *config.Config) session.Authenticator {
	return session.NewSecretAuthenticator(taskqueue.CallbackTokenHeader, cfg.TaskQueue.CallbackSecret)
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "event-reminder"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      config.ParseLogLevel(os.Getenv("LOG_LEVEL")),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
