package directory

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/sse"
)

// EventDirectoryChanged is the SSE event name sent after a mutation.
const EventDirectoryChanged = "directory.changed"

// Invalidator drops cached workspace aggregates.
type Invalidator interface {
	InvalidateAll()
}

// Broadcaster fans an event out to every connected client.
type Broadcaster interface {
	Broadcast(event sse.Event)
}

type ChangePayload struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

// WorkspaceNotifier invalidates every workspace cache and tells open clients to refresh.
type WorkspaceNotifier struct {
	caches Invalidator
	hub    Broadcaster
}

func NewWorkspaceNotifier(caches Invalidator, hub Broadcaster) *WorkspaceNotifier {
	return &WorkspaceNotifier{caches: caches, hub: hub}
}

// DirectoryChanged implements directory.ChangeNotifier.
func (n *WorkspaceNotifier) DirectoryChanged(ctx context.Context, collection string, id string) {
	if n.caches != nil {
		n.caches.InvalidateAll()
	}
	if n.hub != nil {
		n.hub.Broadcast(sse.Event{
			Event: EventDirectoryChanged,
			Data:  ChangePayload{Collection: collection, ID: id},
		})
	}
	slog.DebugContext(ctx, "directory changed", "collection", collection, "id", id)
}
