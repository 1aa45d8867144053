package video

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Video represents one uploaded asset and its denormalized counters.
type Video struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string           `gorm:"not null" json:"title"`
	Description      string           `json:"description"`
	FileName         string           `gorm:"uniqueIndex;not null" json:"filename"`
	OriginalName     string           `json:"originalName"`
	FilePath         string           `json:"-"`
	FileSize         int64            `json:"fileSize"`
	MimeType         string           `json:"mimeType"`
	Duration         string           `gorm:"default:'0:00'" json:"duration"`
	ThumbnailPath    string           `json:"thumbnail"`
	Visibility       Visibility       `gorm:"type:string;default:'private'" json:"visibility"`
	ProcessingStatus ProcessingStatus `gorm:"type:string;default:'uploading'" json:"processingStatus"`
	UploadProgress   int              `json:"uploadProgress"`
	Category         string           `gorm:"default:'Entertainment'" json:"category"`
	Tags             pq.StringArray   `gorm:"type:text[]" json:"tags"`
	IsFeatured       bool             `json:"isFeatured"`
	IsForKids        bool             `json:"isForKids"`
	AgeRestricted    bool             `json:"ageRestricted"`
	Hidden           bool             `json:"-"`
	Views            int64            `json:"views"`
	Likes            int64            `json:"likes"`
	Dislikes         int64            `json:"dislikes"`
	LikedBy          pq.StringArray   `gorm:"type:text[]" json:"-"`
	DislikedBy       pq.StringArray   `gorm:"type:text[]" json:"-"`
	UploaderID       uuid.UUID        `gorm:"type:uuid;index;not null" json:"uploaderId"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// BeforeCreate hook assigns an id and default lifecycle values.
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.ProcessingStatus == "" {
		v.ProcessingStatus = StatusUploading
	}
	if v.Visibility == "" {
		v.Visibility = VisibilityPrivate
	}
	if v.Duration == "" {
		v.Duration = "0:00"
	}
	return nil
}

// LikedByUser reports whether userID is in the liked set.
func (v *Video) LikedByUser(userID uuid.UUID) bool {
	return containsID(v.LikedBy, userID)
}

// DislikedByUser reports whether userID is in the disliked set.
func (v *Video) DislikedByUser(userID uuid.UUID) bool {
	return containsID(v.DislikedBy, userID)
}

func containsID(ids pq.StringArray, id uuid.UUID) bool {
	s := id.String()
	for _, v := range ids {
		if v == s {
			return true
		}
	}
	return false
}

func removeID(ids pq.StringArray, id uuid.UUID) pq.StringArray {
	s := id.String()
	out := make(pq.StringArray, 0, len(ids))
	for _, v := range ids {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
