package comment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates the gorm-backed comment store
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var comment Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("comment")
		}
		return nil, err
	}
	return &comment, nil
}

func (r *gormRepository) Save(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM reactions WHERE comment_id = ? OR comment_id IN (SELECT id FROM comments WHERE parent_id = ?)",
			id, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Comment{}, "id = ?", id).Error
	})
}

func (r *gormRepository) ListTopLevel(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]Comment, int64, error) {
	var comments []Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&Comment{}).
		Where("video_id = ? AND parent_id IS NULL", videoID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *gormRepository) ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var replies []Comment
	err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *gormRepository) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Comment{}).
		Where("video_id = ?", videoID).
		Count(&total).Error
	return total, err
}

func (r *gormRepository) ToggleReaction(ctx context.Context, commentID, userID uuid.UUID, reaction ReactionType) (*Comment, error) {
	var updated Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("comment")
			}
			return err
		}

		var existing Reaction
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case err == nil && existing.Type == string(reaction):
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			adjustCounter(&comment, reaction, -1)
		case err == nil:
			previous := ReactionType(existing.Type)
			existing.Type = string(reaction)
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			adjustCounter(&comment, previous, -1)
			adjustCounter(&comment, reaction, +1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&Reaction{
				CommentID: commentID,
				UserID:    userID,
				Type:      string(reaction),
			}).Error; err != nil {
				return err
			}
			adjustCounter(&comment, reaction, +1)
		default:
			return err
		}

		if err := tx.Save(&comment).Error; err != nil {
			return err
		}
		updated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// adjustCounter floors counters at zero so a stray delete can never drive
// them negative.
func adjustCounter(c *Comment, reaction ReactionType, delta int64) {
	var counter *int64
	if reaction == ReactionLike {
		counter = &c.Likes
	} else {
		counter = &c.Dislikes
	}
	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
}
