package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	// Stream keeps an SSE connection open and forwards directory change events
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub       *sse.Hub
	identity  user.IdentityProvider
	keepalive time.Duration
}

func NewEventsHandler(hub *sse.Hub, identity user.IdentityProvider) EventsHandler {
	return &eventsHandlerImpl{
		hub:       hub,
		identity:  identity,
		keepalive: 30 * time.Second,
	}
}

// tokenFromQuery lets EventSource clients, which cannot set headers, pass the token as ?token=.
func tokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// Stream handles GET /events
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(identity.UID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", identity.UID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("failed to encode sse event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
