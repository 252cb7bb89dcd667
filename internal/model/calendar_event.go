package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarEvent is a single entry on the shared family calendar.
type CalendarEvent struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"familyId"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"createdBy"`
	Title       string     `gorm:"size:256;not null" json:"title"`
	Description string     `json:"description"`
	Location    string     `gorm:"size:256" json:"location"`
	StartTime   time.Time  `gorm:"index;not null" json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	AllDay      bool       `gorm:"not null;default:false" json:"allDay"`
	Color       string     `gorm:"size:32" json:"color"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
