package video

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the record store consumed by the video service. The gorm
// implementation is the production store; tests substitute an in-memory fake.
type Repository interface {
	Create(ctx context.Context, v *Video) error
	// CreateFeatured clears the featured flag on the uploader's other videos
	// and creates v in the same transaction.
	CreateFeatured(ctx context.Context, v *Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*Video, error)
	Save(ctx context.Context, v *Video) error
	// SaveFeatured clears the featured flag on the uploader's other videos
	// and saves v in the same transaction.
	SaveFeatured(ctx context.Context, v *Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts ListOptions) ([]Video, int64, error)
	ListByUploader(ctx context.Context, uploaderID uuid.UUID, includeNonPublic bool) ([]Video, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ProcessingStatus) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
}

// Prober extracts a duration in seconds from a media file.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Cache is the narrow cache surface the video service needs: trending list
// caching plus view-count deduplication.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
