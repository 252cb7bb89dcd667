package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is metadata for an uploaded family file. The file itself lives
// on disk under the stored name; OriginalName is what the uploader called it.
type Document struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID     uuid.UUID `gorm:"type:uuid;index;not null" json:"familyId"`
	Name         string    `gorm:"size:256;not null" json:"name"`
	StoredName   string    `gorm:"uniqueIndex;size:128;not null" json:"-"`
	OriginalName string    `gorm:"size:256;not null" json:"originalName"`
	ContentType  string    `gorm:"size:128" json:"contentType"`
	Size         int64     `gorm:"not null" json:"size"`
	Category     string    `gorm:"size:64" json:"category"`
	UploadedBy   uuid.UUID `gorm:"type:uuid;not null" json:"uploadedBy"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
