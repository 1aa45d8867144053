package playlist

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist is an ordered, named collection of videos owned by one user.
type Playlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:5000" json:"description"`
	Visibility  string    `gorm:"size:20;default:'private'" json:"visibility"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Items []Item `gorm:"-" json:"items,omitempty"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Item places one video at a position within a playlist. Positions are dense:
// 0..n-1 with no gaps. The unique index rejects duplicate videos.
type Item struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlaylistID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_playlist_video;index;not null" json:"playlistId"`
	VideoID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_playlist_video;not null" json:"videoId"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName keeps the table name unambiguous alongside other item-like
// models.
func (Item) TableName() string { return "playlist_items" }
