package video

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// Visibility controls who can see a video
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPublic   Visibility = "public"
)

// IsValid checks if the value is a valid visibility
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityUnlisted, VisibilityPublic:
		return true
	}
	return false
}

// ProcessingStatus is the coarse lifecycle flag of an upload
type ProcessingStatus string

const (
	StatusUploading  ProcessingStatus = "uploading"
	StatusProcessing ProcessingStatus = "processing"
	StatusReady      ProcessingStatus = "ready"
	StatusFailed     ProcessingStatus = "failed"
)

// IsValid checks if the value is a valid processing status
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusReady, StatusFailed:
		return true
	}
	return false
}

// ReactionType identifies a like or dislike toggle
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Config represents video handling configuration
type Config struct {
	MaxFileSize     int64         `mapstructure:"maxFileSize" yaml:"maxFileSize"`
	MaxTitleLength  int           `mapstructure:"maxTitleLength" yaml:"maxTitleLength"`
	MaxDescLength   int           `mapstructure:"maxDescLength" yaml:"maxDescLength"`
	StreamMimeType  string        `mapstructure:"streamMimeType" yaml:"streamMimeType"`
	StreamBasePath  string        `mapstructure:"streamBasePath" yaml:"streamBasePath"`
	DefaultCategory string        `mapstructure:"defaultCategory" yaml:"defaultCategory"`
	ProcessingDelay time.Duration `mapstructure:"processingDelay" yaml:"processingDelay"`
	ViewDedupWindow time.Duration `mapstructure:"viewDedupWindow" yaml:"viewDedupWindow"`
	TrendingTTL     time.Duration `mapstructure:"trendingTTL" yaml:"trendingTTL"`
}

// UploadInput carries a validated-to-be-parsed multipart upload request.
type UploadInput struct {
	UploaderID    uuid.UUID
	Title         string
	Description   string
	Visibility    string
	Category      string
	Tags          []string
	IsFeatured    bool
	IsForKids     bool
	AgeRestricted bool
	Video         *multipart.FileHeader
	Thumbnail     *multipart.FileHeader
}

// UpdateInput carries a partial metadata edit; nil fields are left unchanged.
type UpdateInput struct {
	Title         *string
	Description   *string
	Visibility    *string
	Category      *string
	Tags          []string
	IsFeatured    *bool
	IsForKids     *bool
	AgeRestricted *bool
	Thumbnail     *multipart.FileHeader
}

// ListOptions provides filtering and pagination for video queries.
type ListOptions struct {
	Page       int
	Limit      int
	Category   string
	Query      string
	UploaderID *uuid.UUID
	// IncludeNonPublic lists private/unlisted/hidden videos too; reserved
	// for owners and admin moderation views.
	IncludeNonPublic bool
	SortBy           string
}

// UploadResponse is the payload returned by a successful upload.
type UploadResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Filename         string    `json:"filename"`
	VideoURL         string    `json:"videoUrl"`
	Thumbnail        string    `json:"thumbnail"`
	UploadProgress   int       `json:"uploadProgress"`
	ProcessingStatus string    `json:"processingStatus"`
}

// ListResponse is a paginated list of videos.
type ListResponse struct {
	Videos []Video `json:"videos"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}
