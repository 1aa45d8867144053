package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/analytics"
	"github.com/streamnest/streamnest/backend/internal/auth"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/video"
)

// Service implements moderation operations. Every method assumes the caller
// already passed the admin gate.
type Service struct {
	videos    *video.Service
	videoRepo video.Repository
	users     auth.Repository
	analytics *analytics.Service
	logger    logger.Logger
}

// NewService creates a new admin service
func NewService(videos *video.Service, videoRepo video.Repository, users auth.Repository, stats *analytics.Service, log logger.Logger) *Service {
	return &Service{
		videos:    videos,
		videoRepo: videoRepo,
		users:     users,
		analytics: stats,
		logger:    log,
	}
}

// ListVideos returns all videos regardless of visibility, hidden state or
// processing status.
func (s *Service) ListVideos(ctx context.Context, opts video.ListOptions) ([]video.Video, int64, error) {
	opts.IncludeNonPublic = true
	return s.videoRepo.List(ctx, opts)
}

// SetHidden flips the moderation flag on a video.
func (s *Service) SetHidden(ctx context.Context, videoID uuid.UUID, hidden bool, adminID uuid.UUID) error {
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		return err
	}
	if err := s.videoRepo.SetHidden(ctx, videoID, hidden); err != nil {
		return err
	}
	s.logger.LogInfo("Video moderation flag changed", map[string]interface{}{
		"video_id": videoID.String(),
		"hidden":   hidden,
		"admin_id": adminID.String(),
	})
	return nil
}

// DeleteVideo removes any video along with its stored files.
func (s *Service) DeleteVideo(ctx context.Context, videoID, adminID uuid.UUID) error {
	if err := s.videos.Delete(ctx, videoID, adminID, true); err != nil {
		return err
	}
	s.logger.LogInfo("Video removed by moderation", map[string]interface{}{
		"video_id": videoID.String(),
		"admin_id": adminID.String(),
	})
	return nil
}

// ListUsers returns a page of registered accounts.
func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]auth.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.users.ListUsers(ctx, (page-1)*limit, limit)
}

// SiteStats returns platform-wide totals.
func (s *Service) SiteStats(ctx context.Context) (*analytics.SiteStats, error) {
	return s.analytics.SiteStats(ctx)
}
