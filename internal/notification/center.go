// Package notification owns the process-wide notification handler
// configuration and fans lifecycle events out to subscribed listeners.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

var ErrAlreadyInitialized = errors.New("notification center already initialized")

var (
	initMu      sync.Mutex
	initialized bool
)

// HandlerConfig decides how delivered notifications are presented.
type HandlerConfig struct {
	ShowAlert bool
	PlaySound bool
	SetBadge  bool
	ChannelID string
}

func (c HandlerConfig) Presentation() domain.NotificationPresentation {
	return domain.NotificationPresentation{
		ShowAlert: c.ShowAlert,
		PlaySound: c.PlaySound,
		SetBadge:  c.SetBadge,
		ChannelID: c.ChannelID,
	}
}

// Listener receives published events. It runs on the publisher's goroutine.
type Listener func(ctx context.Context, event domain.NotificationEvent)

type Center struct {
	config HandlerConfig

	mu          sync.RWMutex
	nextID      uint64
	subscribers map[domain.NotificationEventKind]map[uint64]Listener
}

// Init configures the process-wide center. It must run once during startup;
// later calls return ErrAlreadyInitialized.
func Init(cfg HandlerConfig) (*Center, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized {
		return nil, ErrAlreadyInitialized
	}
	initialized = true

	slog.Info("notification handler configured",
		slog.Bool("show_alert", cfg.ShowAlert),
		slog.Bool("play_sound", cfg.PlaySound),
		slog.Bool("set_badge", cfg.SetBadge),
		slog.String("channel_id", cfg.ChannelID),
	)

	return NewCenter(cfg), nil
}

// NewCenter builds an unregistered center. Production code goes through Init.
func NewCenter(cfg HandlerConfig) *Center {
	return &Center{
		config:      cfg,
		subscribers: make(map[domain.NotificationEventKind]map[uint64]Listener),
	}
}

func (c *Center) HandlerConfig() HandlerConfig {
	return c.config
}

// Subscribe registers listener for kind. Release it with Unsubscribe on the
// returned handle.
func (c *Center) Subscribe(kind domain.NotificationEventKind, listener Listener) (*Subscription, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown notification event kind %q", kind)
	}
	if listener == nil {
		return nil, errors.New("listener must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	if c.subscribers[kind] == nil {
		c.subscribers[kind] = make(map[uint64]Listener)
	}
	c.subscribers[kind][id] = listener

	return &Subscription{center: c, kind: kind, id: id}, nil
}

func (c *Center) unsubscribe(kind domain.NotificationEventKind, id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.subscribers[kind], id)
}

func (c *Center) SubscriberCount(kind domain.NotificationEventKind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.subscribers[kind])
}

// Publish delivers event to every listener of its kind and returns how many
// were called. A panicking listener is logged and skipped.
func (c *Center) Publish(ctx context.Context, event domain.NotificationEvent) int {
	c.mu.RLock()
	listeners := make([]Listener, 0, len(c.subscribers[event.Kind]))
	for _, l := range c.subscribers[event.Kind] {
		listeners = append(listeners, l)
	}
	c.mu.RUnlock()

	for _, l := range listeners {
		c.deliver(ctx, l, event)
	}

	return len(listeners)
}

func (c *Center) deliver(ctx context.Context, l Listener, event domain.NotificationEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "notification listener panicked",
				slog.String("kind", event.Kind.String()),
				slog.String("notification_id", event.NotificationID),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	l(ctx, event)
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	center *Center
	kind   domain.NotificationEventKind
	id     uint64
	once   sync.Once
}

// Unsubscribe stops delivery to the listener. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.center.unsubscribe(s.kind, s.id)
	})
}
