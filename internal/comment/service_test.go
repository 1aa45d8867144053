package comment

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// fakeRepository is an in-memory comment store for service tests.
type fakeRepository struct {
	comments  map[uuid.UUID]*Comment
	reactions map[string]ReactionType
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		comments:  make(map[uuid.UUID]*Comment),
		reactions: make(map[string]ReactionType),
	}
}

func (r *fakeRepository) Create(ctx context.Context, comment *Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("comment")
	}
	clone := *comment
	return &clone, nil
}

func (r *fakeRepository) Save(ctx context.Context, comment *Comment) error {
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.comments, id)
	for childID, child := range r.comments {
		if child.ParentID != nil && *child.ParentID == id {
			delete(r.comments, childID)
		}
	}
	return nil
}

func (r *fakeRepository) ListTopLevel(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]Comment, int64, error) {
	var out []Comment
	for _, comment := range r.comments {
		if comment.VideoID == videoID && comment.ParentID == nil {
			out = append(out, *comment)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepository) ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]Comment, error) {
	wanted := make(map[uuid.UUID]bool, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = true
	}
	var out []Comment
	for _, comment := range r.comments {
		if comment.ParentID != nil && wanted[*comment.ParentID] {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (r *fakeRepository) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var n int64
	for _, comment := range r.comments {
		if comment.VideoID == videoID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) ToggleReaction(ctx context.Context, commentID, userID uuid.UUID, reaction ReactionType) (*Comment, error) {
	comment, ok := r.comments[commentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("comment")
	}
	key := commentID.String() + "/" + userID.String()
	current, has := r.reactions[key]
	switch {
	case has && current == reaction:
		delete(r.reactions, key)
		if reaction == ReactionLike {
			comment.Likes--
		} else {
			comment.Dislikes--
		}
	case has:
		r.reactions[key] = reaction
		if reaction == ReactionLike {
			comment.Likes++
			comment.Dislikes--
		} else {
			comment.Dislikes++
			comment.Likes--
		}
	default:
		r.reactions[key] = reaction
		if reaction == ReactionLike {
			comment.Likes++
		} else {
			comment.Dislikes++
		}
	}
	clone := *comment
	return &clone, nil
}

// fakeVideos answers existence checks from a fixed set of video ids.
type fakeVideos struct {
	known map[uuid.UUID]bool
}

func (v *fakeVideos) Exists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	return v.known[videoID], nil
}

type commentFixture struct {
	service *Service
	repo    *fakeRepository
	videoID uuid.UUID
	userID  uuid.UUID
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		repo:    newFakeRepository(),
		videoID: uuid.New(),
		userID:  uuid.New(),
	}
	videos := &fakeVideos{known: map[uuid.UUID]bool{f.videoID: true}}
	f.service = NewService(f.repo, videos, &Config{MaxLength: 1000}, logger.NewNopLogger())
	return f
}

func TestCreateComment(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	comment, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "  nice video  "})
	require.NoError(t, err)
	assert.Equal(t, "nice video", comment.Content)
	assert.Nil(t, comment.ParentID)
}

func TestCreateCommentValidation(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: strings.Repeat("x", 1001)})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateCommentUnknownVideo(t *testing.T) {
	f := newCommentFixture()

	_, err := f.service.Create(context.Background(), uuid.New(), f.userID, &CreateRequest{Content: "hello"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateReply(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	parent, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "top level"})
	require.NoError(t, err)

	reply, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{
		Content:  "a reply",
		ParentID: parent.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	// Replies to replies are rejected.
	_, err = f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{
		Content:  "too deep",
		ParentID: reply.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateReplyCrossVideoRejected(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	parent, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "top level"})
	require.NoError(t, err)

	otherVideo := uuid.New()
	f.service.videos.(*fakeVideos).known[otherVideo] = true

	_, err = f.service.Create(ctx, otherVideo, f.userID, &CreateRequest{
		Content:  "wrong thread",
		ParentID: parent.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestListAttachesReplies(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	parent, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "parent"})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{
		Content:  "child",
		ParentID: parent.ID.String(),
	})
	require.NoError(t, err)

	page, err := f.service.List(ctx, f.videoID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	require.Len(t, page.Comments[0].Replies, 1)
	assert.Equal(t, "child", page.Comments[0].Replies[0].Content)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	comment, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "original"})
	require.NoError(t, err)

	_, err = f.service.Update(ctx, comment.ID, uuid.New(), &UpdateRequest{Content: "hijacked"})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorization(err))

	updated, err := f.service.Update(ctx, comment.ID, f.userID, &UpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteCommentPermissions(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	comment, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "to remove"})
	require.NoError(t, err)

	err = f.service.Delete(ctx, comment.ID, uuid.New(), false)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorization(err))

	// An admin may delete another user's comment.
	require.NoError(t, f.service.Delete(ctx, comment.ID, uuid.New(), true))
	_, err = f.repo.FindByID(ctx, comment.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToggleCommentReaction(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	comment, err := f.service.Create(ctx, f.videoID, f.userID, &CreateRequest{Content: "react to me"})
	require.NoError(t, err)

	liked, err := f.service.ToggleReaction(ctx, comment.ID, f.userID, ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.Likes)

	switched, err := f.service.ToggleReaction(ctx, comment.ID, f.userID, ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), switched.Likes)
	assert.Equal(t, int64(1), switched.Dislikes)

	cleared, err := f.service.ToggleReaction(ctx, comment.ID, f.userID, ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cleared.Dislikes)

	_, err = f.service.ToggleReaction(ctx, comment.ID, f.userID, ReactionType("meh"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
