package playlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed playlist store
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, playlist *Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Playlist, error) {
	var playlist Playlist
	if err := r.db.WithContext(ctx).First(&playlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("playlist")
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *gormRepository) Save(ctx context.Context, playlist *Playlist) error {
	return r.db.WithContext(ctx).Save(playlist).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Playlist{}, "id = ?", id).Error
	})
}

func (r *gormRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, includePrivate bool) ([]Playlist, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includePrivate {
		query = query.Where("visibility = ?", "public")
	}

	var playlists []Playlist
	err := query.Order("created_at DESC").Find(&playlists).Error
	return playlists, err
}

func (r *gormRepository) ListItems(ctx context.Context, playlistID uuid.UUID) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Order("position ASC").
		Find(&items).Error
	return items, err
}

func (r *gormRepository) AddItem(ctx context.Context, playlistID, videoID uuid.UUID, maxItems int) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&Item{}).
			Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.NewValidationError("videoId", "video is already in this playlist")
		}

		var count int64
		if err := tx.Model(&Item{}).
			Where("playlist_id = ?", playlistID).
			Count(&count).Error; err != nil {
			return err
		}
		if maxItems > 0 && count >= int64(maxItems) {
			return apperrors.NewValidationError("videoId",
				fmt.Sprintf("playlist is full (max %d videos)", maxItems))
		}

		item = Item{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   int(count),
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) RemoveItem(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item Item
		err := tx.First(&item, "playlist_id = ? AND video_id = ?", playlistID, videoID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("playlist item")
			}
			return err
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return tx.Model(&Item{}).
			Where("playlist_id = ? AND position > ?", playlistID, item.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

func (r *gormRepository) MoveItem(ctx context.Context, playlistID, videoID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item Item
		err := tx.First(&item, "playlist_id = ? AND video_id = ?", playlistID, videoID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("playlist item")
			}
			return err
		}

		var count int64
		if err := tx.Model(&Item{}).
			Where("playlist_id = ?", playlistID).
			Count(&count).Error; err != nil {
			return err
		}
		if position < 0 || position >= int(count) {
			return apperrors.NewValidationError("position",
				fmt.Sprintf("position must be between 0 and %d", count-1))
		}
		if position == item.Position {
			return nil
		}

		if position > item.Position {
			err = tx.Model(&Item{}).
				Where("playlist_id = ? AND position > ? AND position <= ?", playlistID, item.Position, position).
				Update("position", gorm.Expr("position - 1")).Error
		} else {
			err = tx.Model(&Item{}).
				Where("playlist_id = ? AND position >= ? AND position < ?", playlistID, position, item.Position).
				Update("position", gorm.Expr("position + 1")).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&item).Update("position", position).Error
	})
}
