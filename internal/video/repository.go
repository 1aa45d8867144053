package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
)

// gormRepository implements Repository on Postgres via gorm.
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed video repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// CreateFeatured enforces the at-most-one-featured-per-uploader invariant by
// clearing siblings inside the same transaction as the insert.
func (r *gormRepository) CreateFeatured(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Video{}).
			Where("uploader_id = ? AND is_featured = ?", v.UploaderID, true).
			Update("is_featured", false).Error; err != nil {
			return err
		}
		return tx.Create(v).Error
	})
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	var v Video
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("video")
		}
		return nil, err
	}
	return &v, nil
}

func (r *gormRepository) Save(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *gormRepository) SaveFeatured(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Video{}).
			Where("uploader_id = ? AND is_featured = ? AND id <> ?", v.UploaderID, true, v.ID).
			Update("is_featured", false).Error; err != nil {
			return err
		}
		return tx.Save(v).Error
	})
}

// Delete removes the record and its dependent rows. Blob cleanup is the
// service's responsibility and happens before this call.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM reactions WHERE comment_id IN (SELECT id FROM comments WHERE video_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM comments WHERE video_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM playlist_items WHERE video_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Video{}, "id = ?", id).Error
	})
}

func (r *gormRepository) List(ctx context.Context, opts ListOptions) ([]Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&Video{})

	if !opts.IncludeNonPublic {
		query = query.Where("visibility = ? AND hidden = ? AND processing_status = ?",
			VisibilityPublic, false, StatusReady)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.Query != "" {
		query = query.Where("title ILIKE ?", "%"+opts.Query+"%")
	}
	if opts.UploaderID != nil {
		query = query.Where("uploader_id = ?", *opts.UploaderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if opts.SortBy == "views" {
		order = "views DESC"
	}

	var videos []Video
	err := query.Order(order).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&videos).Error
	return videos, total, err
}

func (r *gormRepository) ListByUploader(ctx context.Context, uploaderID uuid.UUID, includeNonPublic bool) ([]Video, error) {
	query := r.db.WithContext(ctx).Where("uploader_id = ?", uploaderID)
	if !includeNonPublic {
		query = query.Where("visibility = ? AND hidden = ?", VisibilityPublic, false)
	}

	var videos []Video
	err := query.Order("created_at DESC").Find(&videos).Error
	return videos, err
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status ProcessingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid processing status: %s", status)
	}
	return r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ?", id).
		Update("processing_status", status).Error
}

func (r *gormRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *gormRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	return r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ?", id).
		Update("hidden", hidden).Error
}
