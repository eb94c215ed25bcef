package workspace

import "context"

// WorkspaceService defines the interface for workspace operations
type WorkspaceService interface {
	// LoadWorkspace returns the view of a section for the current identity.
	// A cached aggregate younger than the TTL is served unless forceRefresh is set.
	// When a refresh fails but an earlier aggregate exists, the returned view is
	// that last good aggregate marked Stale, together with the error.
	LoadWorkspace(ctx context.Context, section Section, forceRefresh bool) (*SectionView, error)

	// Invalidate marks every cached aggregate stale
	Invalidate()
}
