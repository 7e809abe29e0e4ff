package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	events []Event
	fail   bool
}

func (m *memStore) InsertEvent(_ context.Context, ev Event) (Event, error) {
	if m.fail {
		return Event{}, errors.New("insert failed")
	}
	ev.ID = "evt-1"
	m.events = append(m.events, ev)
	return ev, nil
}

type memNotifier struct {
	seen []Event
	err  error
}

func (m *memNotifier) Notify(_ context.Context, ev Event) error {
	m.seen = append(m.seen, ev)
	return m.err
}

func TestBusPublishPersistsAndFansOut(t *testing.T) {
	store := &memStore{}
	first := &memNotifier{}
	second := &memNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{first, second}, Logger: zerolog.Nop()}

	err := bus.Publish(context.Background(), Event{
		Topic:       TopicInvoiceCreated,
		AggregateID: "inv-1",
		UserID:      "user-1",
		Payload:     map[string]any{"total": 392.0},
	})
	require.NoError(t, err)
	require.Len(t, store.events, 1)
	require.Len(t, first.seen, 1)
	require.Len(t, second.seen, 1)
	require.Equal(t, "evt-1", first.seen[0].ID)
	require.False(t, first.seen[0].OccurredAt.IsZero())
}

func TestBusPublishValidatesEvent(t *testing.T) {
	bus := &Bus{Store: &memStore{}, Logger: zerolog.Nop()}
	require.Error(t, bus.Publish(context.Background(), Event{AggregateID: "x"}))
	require.Error(t, bus.Publish(context.Background(), Event{Topic: TopicInvoiceCreated}))
}

func TestBusPublishStoreFailureStopsFanOut(t *testing.T) {
	notifier := &memNotifier{}
	bus := &Bus{Store: &memStore{fail: true}, Notifiers: []Notifier{notifier}, Logger: zerolog.Nop()}
	err := bus.Publish(context.Background(), Event{Topic: TopicInvoiceCreated, AggregateID: "inv-1"})
	require.Error(t, err)
	require.Empty(t, notifier.seen)
}

func TestBusPublishNotifierFailureDoesNotStopOthers(t *testing.T) {
	failing := &memNotifier{err: errors.New("boom")}
	ok := &memNotifier{}
	bus := &Bus{Store: &memStore{}, Notifiers: []Notifier{failing, ok}, Logger: zerolog.Nop()}

	err := bus.Publish(context.Background(), Event{
		Topic:       TopicInvoiceVoided,
		AggregateID: "inv-2",
		OccurredAt:  time.Now(),
	})
	require.Error(t, err)
	require.Len(t, ok.seen, 1)
}
