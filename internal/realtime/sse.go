package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/resibilis/backend-resibilis/internal/common"
	"github.com/resibilis/backend-resibilis/internal/events"
)

// Handler streams a user's invoice events over Server-Sent Events.
// SSE keeps the transport plain HTTP, which survives proxies and HTTP/2
// multiplexing without a websocket upgrade.
type Handler struct {
	R         *redis.Client
	Prefix    string
	Heartbeat time.Duration
	Logger    zerolog.Logger
}

// ServeHTTP handles GET /api/v1/invoices/events.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok || userID == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "streaming not supported", nil)
		return
	}
	if h.R == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "realtime is not configured", nil)
		return
	}

	prefix := h.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	sub := h.R.Subscribe(r.Context(), prefix+userID)
	defer func() { _ = sub.Close() }()

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	messages := sub.Channel()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case msg, open := <-messages:
			if !open {
				return
			}
			var ev events.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.Logger.Warn().Err(err).Msg("drop malformed realtime message")
				continue
			}
			if _, err := w.Write([]byte("event: " + ev.Topic + "\ndata: " + msg.Payload + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
