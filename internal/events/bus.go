// Package events persists domain events and fans them out to notifiers such
// as the realtime publisher. Fan-out is best effort: a failing notifier never
// rolls back the operation that emitted the event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Event is a single domain event.
type Event struct {
	ID          string         `json:"id,omitempty"`
	Topic       string         `json:"topic"`
	AggregateID string         `json:"aggregate_id"`
	UserID      string         `json:"user_id,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// Publisher is implemented by the Bus; services depend on this interface.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Store persists events.
type Store interface {
	InsertEvent(ctx context.Context, ev Event) (Event, error)
}

// Notifier reacts to published events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Bus persists domain events and dispatches them to notifiers.
type Bus struct {
	Store     Store
	Notifiers []Notifier
	Logger    zerolog.Logger
}

// Publish records the event and fans it out. Notifier failures are logged and
// joined into the returned error but do not stop the fan-out.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if b == nil {
		return errors.New("events: bus not configured")
	}
	ev.Topic = strings.TrimSpace(ev.Topic)
	if ev.Topic == "" {
		return errors.New("events: topic is required")
	}
	if strings.TrimSpace(ev.AggregateID) == "" {
		return errors.New("events: aggregate id is required")
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	if b.Store != nil {
		stored, err := b.Store.InsertEvent(ctx, ev)
		if err != nil {
			b.Logger.Error().Err(err).Str("topic", ev.Topic).Msg("persist domain event")
			return fmt.Errorf("events: persist event: %w", err)
		}
		ev = stored
	}

	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			b.Logger.Warn().Err(err).Str("topic", ev.Topic).Msg("event notifier failed")
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return joined
}

// PGStore writes events into the domain_events table.
type PGStore struct {
	Pool *pgxpool.Pool
}

// InsertEvent implements Store.
func (s PGStore) InsertEvent(ctx context.Context, ev Event) (Event, error) {
	payload := ev.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	if ev.UserID != "" {
		// carried inside the payload; subscribers key their channels on it
		payload["user_id"] = ev.UserID
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode payload: %w", err)
	}

	row := s.Pool.QueryRow(ctx, `
		INSERT INTO domain_events (topic, aggregate_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, occurred_at`,
		ev.Topic, ev.AggregateID, encoded, ev.OccurredAt)
	if err := row.Scan(&ev.ID, &ev.OccurredAt); err != nil {
		return Event{}, err
	}
	ev.Payload = payload
	return ev, nil
}
