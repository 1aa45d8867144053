package subscription

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Service implements subscription business logic
type Service struct {
	repo   Repository
	users  UserLookup
	logger logger.Logger
}

// NewService creates a new subscription service
func NewService(repo Repository, users UserLookup, log logger.Logger) *Service {
	return &Service{repo: repo, users: users, logger: log}
}

// Subscribe follows a channel. Subscribing twice is a no-op, subscribing to
// yourself is rejected.
func (s *Service) Subscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if subscriberID == channelID {
		return apperrors.NewValidationError("channelId", "cannot subscribe to your own channel")
	}

	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFoundError("channel")
	}

	if _, err := s.repo.Find(ctx, subscriberID, channelID); err == nil {
		return nil
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	return s.repo.Create(ctx, &Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	})
}

// Unsubscribe unfollows a channel. Unsubscribing when not subscribed is a
// no-op.
func (s *Service) Unsubscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	return s.repo.Delete(ctx, subscriberID, channelID)
}

// Status reports whether the caller follows the channel and its subscriber
// count.
func (s *Service) Status(ctx context.Context, subscriberID *uuid.UUID, channelID uuid.UUID) (*Status, error) {
	total, err := s.repo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}

	status := &Status{ChannelID: channelID.String(), Subscribers: total}
	if subscriberID != nil {
		if _, err := s.repo.Find(ctx, *subscriberID, channelID); err == nil {
			status.Subscribed = true
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}
	return status, nil
}

// Channels lists the channels the user follows.
func (s *Service) Channels(ctx context.Context, subscriberID uuid.UUID) ([]Subscription, error) {
	return s.repo.ListChannels(ctx, subscriberID)
}

// Feed returns a page of public, ready videos from subscribed channels.
func (s *Service) Feed(ctx context.Context, subscriberID uuid.UUID, page, limit int) (*FeedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	videos, total, err := s.repo.Feed(ctx, subscriberID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &FeedResponse{Videos: videos, Total: total, Page: page, Limit: limit}, nil
}
