package comment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a comment or a one-level reply on a video. Replies carry the
// parent comment id and can never themselves be reply targets.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"videoId"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Likes     int64      `gorm:"default:0" json:"likes"`
	Dislikes  int64      `gorm:"default:0" json:"dislikes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Replies []Comment `gorm:"-" json:"replies,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Reaction is one user's like or dislike on a comment. The unique index
// keeps at most one row per user and comment.
type Reaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CommentID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_comment_user;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_comment_user;not null"`
	Type      string    `gorm:"size:10;not null"`
	CreatedAt time.Time
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
