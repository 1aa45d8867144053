package subscription

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/video"
)

type subKey struct {
	subscriber uuid.UUID
	channel    uuid.UUID
}

// fakeRepository is an in-memory subscription store for service tests.
type fakeRepository struct {
	subs  map[subKey]*Subscription
	feed  []video.Video
	calls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{subs: make(map[subKey]*Subscription)}
}

func (r *fakeRepository) Create(ctx context.Context, sub *Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	r.calls++
	clone := *sub
	r.subs[subKey{sub.SubscriberID, sub.ChannelID}] = &clone
	return nil
}

func (r *fakeRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*Subscription, error) {
	sub, ok := r.subs[subKey{subscriberID, channelID}]
	if !ok {
		return nil, apperrors.NewNotFoundError("subscription")
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	delete(r.subs, subKey{subscriberID, channelID})
	return nil
}

func (r *fakeRepository) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]Subscription, error) {
	var out []Subscription
	for _, sub := range r.subs {
		if sub.SubscriberID == subscriberID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var n int64
	for _, sub := range r.subs {
		if sub.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) Feed(ctx context.Context, subscriberID uuid.UUID, offset, limit int) ([]video.Video, int64, error) {
	return r.feed, int64(len(r.feed)), nil
}

// fakeUsers answers existence checks from a fixed set of user ids.
type fakeUsers struct {
	known map[uuid.UUID]bool
}

func (u *fakeUsers) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return u.known[userID], nil
}

type subscriptionFixture struct {
	service   *Service
	repo      *fakeRepository
	userID    uuid.UUID
	channelID uuid.UUID
}

func newSubscriptionFixture() *subscriptionFixture {
	f := &subscriptionFixture{
		repo:      newFakeRepository(),
		userID:    uuid.New(),
		channelID: uuid.New(),
	}
	users := &fakeUsers{known: map[uuid.UUID]bool{f.userID: true, f.channelID: true}}
	f.service = NewService(f.repo, users, logger.NewNopLogger())
	return f
}

func TestSubscribe(t *testing.T) {
	f := newSubscriptionFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Subscribe(ctx, f.userID, f.channelID))

	status, err := f.service.Status(ctx, &f.userID, f.channelID)
	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.Equal(t, int64(1), status.Subscribers)
}

func TestSubscribeIsIdempotent(t *testing.T) {
	f := newSubscriptionFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Subscribe(ctx, f.userID, f.channelID))
	require.NoError(t, f.service.Subscribe(ctx, f.userID, f.channelID))

	assert.Equal(t, 1, f.repo.calls, "second subscribe must not create another row")

	total, err := f.repo.CountSubscribers(ctx, f.channelID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSubscribeToSelfRejected(t *testing.T) {
	f := newSubscriptionFixture()

	err := f.service.Subscribe(context.Background(), f.userID, f.userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubscribeUnknownChannel(t *testing.T) {
	f := newSubscriptionFixture()

	err := f.service.Subscribe(context.Background(), f.userID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUnsubscribe(t *testing.T) {
	f := newSubscriptionFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Subscribe(ctx, f.userID, f.channelID))
	require.NoError(t, f.service.Unsubscribe(ctx, f.userID, f.channelID))

	status, err := f.service.Status(ctx, &f.userID, f.channelID)
	require.NoError(t, err)
	assert.False(t, status.Subscribed)
	assert.Equal(t, int64(0), status.Subscribers)

	// Unsubscribing again is a no-op.
	assert.NoError(t, f.service.Unsubscribe(ctx, f.userID, f.channelID))
}

func TestStatusAnonymous(t *testing.T) {
	f := newSubscriptionFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Subscribe(ctx, f.userID, f.channelID))

	status, err := f.service.Status(ctx, nil, f.channelID)
	require.NoError(t, err)
	assert.False(t, status.Subscribed)
	assert.Equal(t, int64(1), status.Subscribers)
}

func TestFeedPagingDefaults(t *testing.T) {
	f := newSubscriptionFixture()
	f.repo.feed = []video.Video{{ID: uuid.New()}, {ID: uuid.New()}}

	page, err := f.service.Feed(context.Background(), f.userID, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Videos, 2)
}
