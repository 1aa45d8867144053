package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/video"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed subscription store
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, sub *Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *gormRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).
		First(&sub, "subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscription")
		}
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&Subscription{}).Error
}

func (r *gormRepository) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *gormRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&total).Error
	return total, err
}

func (r *gormRepository) Feed(ctx context.Context, subscriberID uuid.UUID, offset, limit int) ([]video.Video, int64, error) {
	var videos []video.Video
	var total int64

	query := r.db.WithContext(ctx).Model(&video.Video{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = videos.uploader_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Where("videos.visibility = ?", video.VisibilityPublic).
		Where("videos.hidden = ?", false).
		Where("videos.processing_status = ?", video.StatusReady)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("videos.created_at DESC").Offset(offset).Limit(limit).Find(&videos).Error; err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}
