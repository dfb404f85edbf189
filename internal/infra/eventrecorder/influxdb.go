//go:build !gcloud

package eventrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const influxMeasurement = "notification_event"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.NotificationEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "notification event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, notification event recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "notification event recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return newInfluxDBRecorder(client, cfg.InfluxDBOrg, cfg.InfluxDBBucket), nil
}

func newInfluxDBRecorder(client influxdb2.Client, org, bucket string) *influxDBRecorder {
	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		bucket:   bucket,
		org:      org,
	}
}

func (r *influxDBRecorder) RecordEvents(ctx context.Context, records []domain.NotificationEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		// Line protocol rejects empty tag values.
		tags := map[string]string{"kind": record.Kind}
		if record.Type != "" {
			tags["type"] = record.Type
		}
		if record.Action != "" {
			tags["action"] = record.Action
		}

		point := influxdb2.NewPoint(
			influxMeasurement,
			tags,
			map[string]any{
				"notification_id": record.NotificationID,
				"user_id":         record.UserID,
				"event_id":        record.EventID,
				"latency_ms":      record.Latency.Milliseconds(),
			},
			record.OccurredAt,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write notification event to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("kind", record.Kind),
				slog.String("notification_id", record.NotificationID),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
