package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const (
	reminderKeyPrefix     = "reminder:record:"
	userReminderKeyPrefix = "reminder:user:"

	// Records outlive their fire time so late delivery callbacks can still
	// resolve them.
	reminderRetention = 1 * time.Hour
)

type reminderRecord struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	EventID        string    `json:"event_id"`
	FireAt         time.Time `json:"fire_at"`
	CreatedAt      time.Time `json:"created_at"`
}

type reminderRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewReminderRepository(client *redis.Client) domain.ReminderRegistry {
	return &reminderRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *reminderRepository) Register(ctx context.Context, record *domain.ReminderRecord) error {
	if record == nil || record.NotificationID == "" || record.UserID == "" {
		return ErrInvalidRecordData
	}

	data, err := json.Marshal(reminderRecord{
		NotificationID: record.NotificationID,
		UserID:         record.UserID,
		EventID:        record.EventID,
		FireAt:         record.FireAt,
		CreatedAt:      record.CreatedAt,
	})
	if err != nil {
		return ErrInvalidRecordData
	}

	ttl := record.FireAt.Sub(r.now()) + reminderRetention
	if ttl < reminderRetention {
		ttl = reminderRetention
	}

	userKey := userReminderKeyPrefix + record.UserID

	currentTTL, err := r.client.TTL(ctx, userKey).Result()
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, reminderKeyPrefix+record.NotificationID, data, ttl)
	pipe.ZAdd(ctx, userKey, redis.Z{
		Score:  float64(record.FireAt.Unix()),
		Member: record.NotificationID,
	})
	if ttl > currentTTL {
		pipe.Expire(ctx, userKey, ttl)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (r *reminderRepository) Remove(ctx context.Context, userID, notificationID string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, reminderKeyPrefix+notificationID)
	if userID != "" {
		pipe.ZRem(ctx, userReminderKeyPrefix+userID, notificationID)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *reminderRepository) Get(ctx context.Context, notificationID string) (*domain.ReminderRecord, error) {
	data, err := r.client.Get(ctx, reminderKeyPrefix+notificationID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}

	return decodeRecord(data)
}

// ListByUser returns the user's pending reminders ordered by fire time.
// Index entries whose record has expired are pruned on the way.
func (r *reminderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ReminderRecord, error) {
	userKey := userReminderKeyPrefix + userID

	cutoff := r.now().Add(-reminderRetention).Unix()
	if err := r.client.ZRemRangeByScore(ctx, userKey, "-inf", "("+strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return nil, err
	}

	ids, err := r.client.ZRange(ctx, userKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.ReminderRecord{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, reminderKeyPrefix+id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*domain.ReminderRecord, 0, len(ids))
	stale := make([]any, 0)
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}

		record, err := decodeRecord([]byte(s))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, userKey, stale...).Err(); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func decodeRecord(data []byte) (*domain.ReminderRecord, error) {
	var record reminderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidRecordData
	}

	return &domain.ReminderRecord{
		NotificationID: record.NotificationID,
		UserID:         record.UserID,
		EventID:        record.EventID,
		FireAt:         record.FireAt,
		CreatedAt:      record.CreatedAt,
	}, nil
}
