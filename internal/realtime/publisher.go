// Package realtime pushes invoice change notifications to connected clients.
// Events flow through a per-user Redis pub/sub channel so any API instance
// can serve the SSE stream regardless of which one handled the write.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/resibilis/backend-resibilis/internal/events"
	"github.com/resibilis/backend-resibilis/internal/obs"
)

const defaultPrefix = "realtime:user:"

// Publisher relays domain events onto the owner's Redis channel. It
// implements events.Notifier.
type Publisher struct {
	R      *redis.Client
	Prefix string
}

func (p Publisher) channel(userID string) string {
	prefix := p.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return prefix + userID
}

// Notify publishes the event to the owning user's channel. Events without a
// user are not client-facing and are skipped.
func (p Publisher) Notify(ctx context.Context, ev events.Event) error {
	if p.R == nil {
		return nil
	}
	userID := strings.TrimSpace(ev.UserID)
	if userID == "" {
		if raw, ok := ev.Payload["user_id"].(string); ok {
			userID = strings.TrimSpace(raw)
		}
	}
	if userID == "" {
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		obs.ObserveRealtimePublish("encode_error")
		return fmt.Errorf("realtime: encode event: %w", err)
	}
	if err := p.R.Publish(ctx, p.channel(userID), data).Err(); err != nil {
		obs.ObserveRealtimePublish("error")
		return fmt.Errorf("realtime: publish: %w", err)
	}
	obs.ObserveRealtimePublish("ok")
	return nil
}
