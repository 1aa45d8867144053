package subscription

import "github.com/streamnest/streamnest/backend/internal/video"

// Status reports the caller's relationship to a channel
type Status struct {
	ChannelID   string `json:"channelId"`
	Subscribed  bool   `json:"subscribed"`
	Subscribers int64  `json:"subscribers"`
}

// FeedResponse is a page of videos from subscribed channels
type FeedResponse struct {
	Videos []video.Video `json:"videos"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}
