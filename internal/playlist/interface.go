package playlist

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the playlist store consumed by the service. Item position
// maintenance happens inside the store so positions stay dense under
// concurrent edits.
type Repository interface {
	Create(ctx context.Context, playlist *Playlist) error
	FindByID(ctx context.Context, id uuid.UUID) (*Playlist, error)
	Save(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, includePrivate bool) ([]Playlist, error)
	ListItems(ctx context.Context, playlistID uuid.UUID) ([]Item, error)
	// AddItem appends the video at the end of the playlist. Duplicate videos
	// are rejected with a validation error.
	AddItem(ctx context.Context, playlistID, videoID uuid.UUID, maxItems int) (*Item, error)
	// RemoveItem deletes the entry and compacts positions of the items after
	// it.
	RemoveItem(ctx context.Context, playlistID, videoID uuid.UUID) error
	// MoveItem shifts the video to the given position, sliding the items in
	// between.
	MoveItem(ctx context.Context, playlistID, videoID uuid.UUID, position int) error
}

// VideoLookup verifies that a video exists before it is added.
type VideoLookup interface {
	Exists(ctx context.Context, videoID uuid.UUID) (bool, error)
}
