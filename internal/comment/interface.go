package comment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the comment store consumed by the service.
type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	Save(ctx context.Context, comment *Comment) error
	// Delete removes the comment, its replies and all their reactions.
	Delete(ctx context.Context, id uuid.UUID) error
	ListTopLevel(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]Comment, int64, error)
	ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]Comment, error)
	CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error)
	// ToggleReaction flips the user's reaction row and adjusts the comment
	// counters in one transaction, returning the updated comment.
	ToggleReaction(ctx context.Context, commentID, userID uuid.UUID, reaction ReactionType) (*Comment, error)
}

// VideoLookup verifies that a video exists and is commentable.
type VideoLookup interface {
	Exists(ctx context.Context, videoID uuid.UUID) (bool, error)
}
