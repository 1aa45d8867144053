package analytics

import (
	"time"

	"github.com/google/uuid"
)

// ChannelSummary aggregates a channel's lifetime totals
type ChannelSummary struct {
	ChannelID     uuid.UUID `json:"channelId"`
	TotalVideos   int64     `json:"totalVideos"`
	TotalViews    int64     `json:"totalViews"`
	TotalLikes    int64     `json:"totalLikes"`
	TotalDislikes int64     `json:"totalDislikes"`
	TotalComments int64     `json:"totalComments"`
	Subscribers   int64     `json:"subscribers"`
}

// VideoStats is the per-video breakdown backing the channel dashboard
type VideoStats struct {
	VideoID    uuid.UUID `json:"videoId"`
	Title      string    `json:"title"`
	Views      int64     `json:"views"`
	Likes      int64     `json:"likes"`
	Dislikes   int64     `json:"dislikes"`
	Comments   int64     `json:"comments"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SiteStats aggregates platform-wide totals for the admin dashboard
type SiteStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalVideos   int64 `json:"totalVideos"`
	TotalViews    int64 `json:"totalViews"`
	TotalComments int64 `json:"totalComments"`
	HiddenVideos  int64 `json:"hiddenVideos"`
}
