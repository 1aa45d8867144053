package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Service implements comment business logic
type Service struct {
	repo   Repository
	videos VideoLookup
	config *Config
	logger logger.Logger
}

// NewService creates a new comment service
func NewService(repo Repository, videos VideoLookup, config *Config, log logger.Logger) *Service {
	return &Service{repo: repo, videos: videos, config: config, logger: log}
}

// Create posts a comment or a one-level reply on a video.
func (s *Service) Create(ctx context.Context, videoID, userID uuid.UUID, req *CreateRequest) (*Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("content", "comment cannot be empty")
	}
	if len(content) > s.config.MaxLength {
		return nil, apperrors.NewValidationError("content",
			fmt.Sprintf("comment must not exceed %d characters", s.config.MaxLength))
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("video")
	}

	comment := &Comment{
		VideoID: videoID,
		UserID:  userID,
		Content: content,
	}

	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, apperrors.NewValidationError("parentId", "invalid parent comment ID")
		}
		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent.VideoID != videoID {
			return nil, apperrors.NewValidationError("parentId", "parent comment belongs to another video")
		}
		if parent.ParentID != nil {
			return nil, apperrors.NewValidationError("parentId", "replies to replies are not allowed")
		}
		comment.ParentID = &parent.ID
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// List returns a page of top-level comments with their replies attached.
func (s *Service) List(ctx context.Context, videoID uuid.UUID, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	comments, total, err := s.repo.ListTopLevel(ctx, videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]uuid.UUID, len(comments))
	index := make(map[uuid.UUID]int, len(comments))
	for i, c := range comments {
		parentIDs[i] = c.ID
		index[c.ID] = i
	}

	replies, err := s.repo.ListReplies(ctx, parentIDs)
	if err != nil {
		return nil, err
	}
	for _, reply := range replies {
		if i, ok := index[*reply.ParentID]; ok {
			comments[i].Replies = append(comments[i].Replies, reply)
		}
	}

	return &ListResponse{Comments: comments, Total: total, Page: page, Limit: limit}, nil
}

// Update edits a comment's content. Only the author may edit.
func (s *Service) Update(ctx context.Context, commentID, userID uuid.UUID, req *UpdateRequest) (*Comment, error) {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperrors.NewAuthorizationError("only the author can edit this comment")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("content", "comment cannot be empty")
	}
	if len(content) > s.config.MaxLength {
		return nil, apperrors.NewValidationError("content",
			fmt.Sprintf("comment must not exceed %d characters", s.config.MaxLength))
	}

	comment.Content = content
	if err := s.repo.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and its replies. The author or an admin may
// delete.
func (s *Service) Delete(ctx context.Context, commentID, userID uuid.UUID, isAdmin bool) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && !isAdmin {
		return apperrors.NewAuthorizationError("only the author can delete this comment")
	}
	return s.repo.Delete(ctx, commentID)
}

// ToggleReaction flips the user's like or dislike on a comment.
func (s *Service) ToggleReaction(ctx context.Context, commentID, userID uuid.UUID, reaction ReactionType) (*Comment, error) {
	if !reaction.IsValid() {
		return nil, apperrors.NewValidationError("reaction", "reaction must be like or dislike")
	}
	return s.repo.ToggleReaction(ctx, commentID, userID, reaction)
}

// Count returns the total number of comments on a video.
func (s *Service) Count(ctx context.Context, videoID uuid.UUID) (int64, error) {
	return s.repo.CountByVideo(ctx, videoID)
}
