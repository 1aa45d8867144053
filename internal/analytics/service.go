package analytics

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Service implements analytics business logic
type Service struct {
	repo   Repository
	logger logger.Logger
}

// NewService creates a new analytics service
func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// ChannelSummary returns a channel's lifetime totals. Only the channel owner
// or an admin may read them.
func (s *Service) ChannelSummary(ctx context.Context, channelID, requesterID uuid.UUID, isAdmin bool) (*ChannelSummary, error) {
	if requesterID != channelID && !isAdmin {
		return nil, apperrors.NewAuthorizationError("analytics are only visible to the channel owner")
	}
	return s.repo.ChannelSummary(ctx, channelID)
}

// VideoBreakdown returns per-video stats for a channel. Owner or admin only.
func (s *Service) VideoBreakdown(ctx context.Context, channelID, requesterID uuid.UUID, isAdmin bool) ([]VideoStats, error) {
	if requesterID != channelID && !isAdmin {
		return nil, apperrors.NewAuthorizationError("analytics are only visible to the channel owner")
	}
	return s.repo.VideoBreakdown(ctx, channelID)
}

// SiteStats returns platform-wide totals for the admin dashboard.
func (s *Service) SiteStats(ctx context.Context) (*SiteStats, error) {
	return s.repo.SiteStats(ctx)
}
