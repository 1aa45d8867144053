package analytics

import (
	"context"

	"github.com/google/uuid"
)

// Repository computes aggregates over the relational store.
type Repository interface {
	ChannelSummary(ctx context.Context, channelID uuid.UUID) (*ChannelSummary, error)
	VideoBreakdown(ctx context.Context, channelID uuid.UUID) ([]VideoStats, error)
	SiteStats(ctx context.Context) (*SiteStats, error)
}
