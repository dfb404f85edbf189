package preference

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const preferenceKeyPrefix = "reminder:preference:"

type preferenceRecord struct {
	Found       bool      `json:"found"`
	Enabled     bool      `json:"enabled"`
	LeadMinutes int       `json:"lead_minutes"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// cachedRepository is a read-through Redis cache in front of the source
// repository. Misses are cached too, so users without a record do not hit
// the database on every schedule call.
type cachedRepository struct {
	source domain.PreferenceRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRepository returns source unchanged when ttl is zero.
func NewCachedRepository(source domain.PreferenceRepository, client *redis.Client, ttl time.Duration) domain.PreferenceRepository {
	if ttl <= 0 || client == nil {
		return source
	}

	return &cachedRepository{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

func (r *cachedRepository) GetReminderPreference(ctx context.Context, userID string) (*domain.ReminderPreference, error) {
	key := preferenceKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var record preferenceRecord
		if err := json.Unmarshal(data, &record); err == nil {
			if !record.Found {
				return nil, domain.ErrPreferenceNotFound
			}
			return &domain.ReminderPreference{
				UserID:      userID,
				Enabled:     record.Enabled,
				LeadMinutes: record.LeadMinutes,
				UpdatedAt:   record.UpdatedAt,
			}, nil
		}
		slog.WarnContext(ctx, "discarding corrupt cached preference",
			slog.String("user_id", userID),
		)
	case errors.Is(err, redis.Nil):
	default:
		slog.WarnContext(ctx, "preference cache read failed, falling back to source",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	pref, err := r.source.GetReminderPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			r.store(ctx, key, preferenceRecord{Found: false})
		}
		return nil, err
	}

	r.store(ctx, key, preferenceRecord{
		Found:       true,
		Enabled:     pref.Enabled,
		LeadMinutes: pref.LeadMinutes,
		UpdatedAt:   pref.UpdatedAt,
	})

	return pref, nil
}

func (r *cachedRepository) SaveReminderPreference(ctx context.Context, pref *domain.ReminderPreference) error {
	if pref == nil {
		return ErrInvalidPreferenceData
	}

	if err := r.source.SaveReminderPreference(ctx, pref); err != nil {
		return err
	}

	if err := r.client.Del(ctx, preferenceKeyPrefix+pref.UserID).Err(); err != nil {
		slog.WarnContext(ctx, "failed to invalidate cached preference",
			slog.String("user_id", pref.UserID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (r *cachedRepository) store(ctx context.Context, key string, record preferenceRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		return
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "failed to cache preference",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
