package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription links a subscriber to a channel. The unique index keeps at
// most one row per pair, which makes subscribe idempotent at the store level.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriber_channel;not null" json:"subscriberId"`
	ChannelID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriber_channel;index;not null" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
