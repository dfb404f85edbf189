package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

type Service struct {
	sessions    domain.SessionProvider
	preferences domain.PreferenceRepository
	taskQueue   taskqueue.TaskQueue
	registry    domain.ReminderRegistry
	metrics     *metrics.ReminderMetrics
	cfg         Config

	now   func() time.Time
	newID func() string
}

func NewService(
	sessions domain.SessionProvider,
	preferences domain.PreferenceRepository,
	taskQueue taskqueue.TaskQueue,
	registry domain.ReminderRegistry,
	reminderMetrics *metrics.ReminderMetrics,
	cfg Config,
) *Service {
	return &Service{
		sessions:    sessions,
		preferences: preferences,
		taskQueue:   taskQueue,
		registry:    registry,
		metrics:     reminderMetrics,
		cfg:         cfg,
		now:         time.Now,
		newID:       domain.NewNotificationID,
	}
}

// ScheduleEventReminder schedules a reminder ahead of an event the current
// user has RSVP'd to. It never fails: anything that prevents scheduling
// yields an unscheduled handle.
func (s *Service) ScheduleEventReminder(ctx context.Context, eventID, eventTitle string, startTime time.Time) domain.ScheduledReminderHandle {
	return s.ScheduleReminder(ctx, domain.NewReminderRequest(eventID, eventTitle, startTime))
}

// ScheduleReminder is ScheduleEventReminder with caller supplied payload
// fields.
func (s *Service) ScheduleReminder(ctx context.Context, req domain.ReminderRequest) domain.ScheduledReminderHandle {
	req.EventID = domain.NormalizeEventID(req.EventID)

	ctx, span := tracing.StartScheduleSpan(ctx, req.EventID, req.StartTime)
	defer span.End()

	userID, ok := s.sessions.CurrentUserID(ctx)
	if !ok {
		slog.DebugContext(ctx, "no session, reminder not scheduled",
			slog.String("event_id", req.EventID),
		)
		s.recordSchedule(ctx, metrics.OutcomeNoSession)
		tracing.RecordScheduleResult(span, metrics.OutcomeNoSession, 0, time.Time{}, nil)
		return domain.ScheduledReminderHandle{}
	}

	leadMinutes := s.resolveLeadMinutes(ctx, userID)
	fireTime := req.FireTime(leadMinutes)

	now := s.now()
	if !fireTime.After(now) {
		slog.InfoContext(ctx, "fire time already elapsed, reminder not scheduled",
			slog.String("event_id", req.EventID),
			slog.String("user_id", userID),
			slog.Int("lead_minutes", leadMinutes),
			slog.Time("fire_time", fireTime),
			slog.Time("now", now),
		)
		s.recordSchedule(ctx, metrics.OutcomePastFire)
		tracing.RecordScheduleResult(span, metrics.OutcomePastFire, leadMinutes, fireTime, nil)
		return domain.ScheduledReminderHandle{}
	}

	content := domain.NotificationContent{
		Title:        s.cfg.NotificationTitle,
		Body:         reminderBody(req.EventTitle, leadMinutes),
		Data:         req.Payload(),
		FireAt:       fireTime,
		Presentation: s.cfg.Presentation,
	}

	notificationID, err := s.ScheduleNotification(ctx, userID, content)
	if err != nil {
		slog.WarnContext(ctx, "failed to schedule reminder",
			slog.String("event_id", req.EventID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.recordSchedule(ctx, metrics.OutcomeFailed)
		tracing.RecordScheduleResult(span, metrics.OutcomeFailed, leadMinutes, fireTime, err)
		return domain.ScheduledReminderHandle{}
	}

	slog.InfoContext(ctx, "reminder scheduled",
		slog.String("event_id", req.EventID),
		slog.String("user_id", userID),
		slog.String("notification_id", notificationID),
		slog.Int("lead_minutes", leadMinutes),
		slog.Time("fire_time", fireTime),
	)
	s.recordSchedule(ctx, metrics.OutcomeScheduled)
	if s.metrics != nil {
		s.metrics.RecordLeadMinutes(ctx, leadMinutes)
	}
	tracing.RecordScheduleResult(span, metrics.OutcomeScheduled, leadMinutes, fireTime, nil)

	return domain.NewScheduledReminderHandle(notificationID)
}

// ScheduleNotification hands content to the task queue for userID and
// records it in the registry. A registry failure does not undo the task.
func (s *Service) ScheduleNotification(ctx context.Context, userID string, content domain.NotificationContent) (string, error) {
	if !content.FireAt.After(s.now()) {
		return "", domain.ErrPastFireTime
	}
	if s.taskQueue == nil {
		return "", domain.ErrSchedulerUnavailable
	}

	notificationID := s.newID()
	task := taskqueue.NewNotificationTask(notificationID, userID, content)

	resp, err := s.taskQueue.RegisterNotification(ctx, task)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSchedulerUnavailable, err)
	}

	slog.DebugContext(ctx, "notification task registered",
		slog.String("notification_id", notificationID),
		slog.String("task_name", resp.Name),
		slog.Time("schedule_time", resp.ScheduleTime),
	)

	if s.registry != nil {
		record := &domain.ReminderRecord{
			NotificationID: notificationID,
			UserID:         userID,
			EventID:        content.Data[domain.PayloadKeyEventID],
			FireAt:         content.FireAt,
			CreatedAt:      s.now(),
		}
		if err := s.registry.Register(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to register reminder record",
				slog.String("notification_id", notificationID),
				slog.String("error", err.Error()),
			)
		}
	}

	return notificationID, nil
}

// CancelReminder cancels a previously scheduled reminder owned by the current
// user. An unscheduled handle, or one with no pending record, is a
// successful no-op. Reminders of other users are never touched.
func (s *Service) CancelReminder(ctx context.Context, handle domain.ScheduledReminderHandle) bool {
	if !handle.IsScheduled() {
		s.recordCancel(ctx, metrics.OutcomeNoop)
		return true
	}

	notificationID := handle.ID()

	ctx, span := tracing.StartCancelSpan(ctx, notificationID)
	defer span.End()

	userID, ok := s.sessions.CurrentUserID(ctx)
	if !ok {
		slog.WarnContext(ctx, "cancel rejected without session",
			slog.String("notification_id", notificationID),
		)
		s.recordCancel(ctx, metrics.OutcomeNoSession)
		tracing.RecordError(span, domain.ErrNoSession)
		return false
	}

	err := s.authorizeCancel(ctx, userID, notificationID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrReminderNotFound):
		slog.InfoContext(ctx, "no pending reminder to cancel",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID),
		)
		s.recordCancel(ctx, metrics.OutcomeNoop)
		tracing.RecordError(span, nil)
		return true
	case errors.Is(err, domain.ErrReminderForbidden):
		slog.WarnContext(ctx, "cancel rejected for reminder of another user",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID),
		)
		s.recordCancel(ctx, metrics.OutcomeForbidden)
		tracing.RecordError(span, err)
		return false
	default:
		slog.WarnContext(ctx, "failed to verify reminder owner",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.recordCancel(ctx, metrics.OutcomeFailed)
		tracing.RecordError(span, err)
		return false
	}

	return s.cancelOwned(ctx, span, userID, notificationID)
}

// CancelAllReminders cancels every pending reminder of the current user and
// returns how many were cancelled.
func (s *Service) CancelAllReminders(ctx context.Context) int {
	userID, ok := s.sessions.CurrentUserID(ctx)
	if !ok {
		return 0
	}

	records := s.listByUser(ctx, userID)

	cancelled := 0
	for _, record := range records {
		recordCtx, span := tracing.StartCancelSpan(ctx, record.NotificationID)
		if s.cancelOwned(recordCtx, span, userID, record.NotificationID) {
			cancelled++
		}
		span.End()
	}

	if len(records) > 0 {
		slog.InfoContext(ctx, "cancelled pending reminders",
			slog.Int("pending_count", len(records)),
			slog.Int("cancelled_count", cancelled),
		)
	}

	return cancelled
}

// ListReminders returns the current user's pending reminders ordered by fire
// time.
func (s *Service) ListReminders(ctx context.Context) []*domain.ReminderRecord {
	userID, ok := s.sessions.CurrentUserID(ctx)
	if !ok {
		return []*domain.ReminderRecord{}
	}

	return s.listByUser(ctx, userID)
}

func (s *Service) listByUser(ctx context.Context, userID string) []*domain.ReminderRecord {
	if s.registry == nil {
		return []*domain.ReminderRecord{}
	}

	records, err := s.registry.ListByUser(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "failed to list reminders",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return []*domain.ReminderRecord{}
	}

	return records
}

// authorizeCancel returns nil when userID owns the pending reminder.
func (s *Service) authorizeCancel(ctx context.Context, userID, notificationID string) error {
	if s.registry == nil {
		return nil
	}

	record, err := s.registry.Get(ctx, notificationID)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up reminder record: %w", err)
	}

	if record.UserID != userID {
		return domain.ErrReminderForbidden
	}

	return nil
}

func (s *Service) cancelOwned(ctx context.Context, span trace.Span, userID, notificationID string) bool {
	if err := s.cancel(ctx, userID, notificationID); err != nil {
		slog.WarnContext(ctx, "failed to cancel reminder",
			slog.String("notification_id", notificationID),
			slog.String("error", err.Error()),
		)
		s.recordCancel(ctx, metrics.OutcomeFailed)
		tracing.RecordError(span, err)
		return false
	}

	slog.InfoContext(ctx, "reminder cancelled",
		slog.String("notification_id", notificationID),
		slog.String("user_id", userID),
	)
	s.recordCancel(ctx, metrics.OutcomeCancelled)
	tracing.RecordError(span, nil)

	return true
}

func (s *Service) cancel(ctx context.Context, userID, notificationID string) error {
	if s.taskQueue == nil {
		return domain.ErrSchedulerUnavailable
	}

	if err := s.taskQueue.DeleteTask(ctx, notificationID); err != nil {
		return err
	}

	if s.registry == nil {
		return nil
	}

	if err := s.registry.Remove(ctx, userID, notificationID); err != nil {
		slog.WarnContext(ctx, "failed to remove reminder record",
			slog.String("notification_id", notificationID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (s *Service) resolveLeadMinutes(ctx context.Context, userID string) int {
	if s.preferences == nil {
		return s.cfg.defaultLead()
	}

	pref, err := s.preferences.GetReminderPreference(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPreferenceNotFound):
		s.recordLookup(ctx, lookupMissing)
		return s.cfg.defaultLead()
	default:
		slog.WarnContext(ctx, "preference lookup failed, using default lead time",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.recordLookup(ctx, lookupFailed)
		return s.cfg.defaultLead()
	}

	if pref.Enabled {
		s.recordLookup(ctx, lookupFound)
	} else {
		s.recordLookup(ctx, lookupDisabled)
	}

	return effectiveLeadMinutes(pref, s.cfg.defaultLead())
}

// effectiveLeadMinutes applies the preference policy. A disabled preference
// still schedules, with the default lead time.
func effectiveLeadMinutes(pref *domain.ReminderPreference, defaultLead int) int {
	if pref == nil || !pref.Enabled || pref.LeadMinutes < 0 {
		return defaultLead
	}
	return pref.LeadMinutes
}

func reminderBody(eventTitle string, leadMinutes int) string {
	if leadMinutes == 1 {
		return fmt.Sprintf("%s starts in 1 minute", eventTitle)
	}
	return fmt.Sprintf("%s starts in %d minutes", eventTitle, leadMinutes)
}

func (s *Service) recordSchedule(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSchedule(ctx, outcome)
	}
}

func (s *Service) recordCancel(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordCancel(ctx, outcome)
	}
}

func (s *Service) recordLookup(ctx context.Context, result string) {
	if s.metrics != nil {
		s.metrics.RecordPreferenceLookup(ctx, result)
	}
}
