package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/video"
)

// Repository is the subscription store consumed by the service.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*Subscription, error)
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]Subscription, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	// Feed returns public, ready videos from all channels the subscriber
	// follows, newest first.
	Feed(ctx context.Context, subscriberID uuid.UUID, offset, limit int) ([]video.Video, int64, error)
}

// UserLookup verifies that a channel owner exists.
type UserLookup interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}
