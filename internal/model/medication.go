package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication tracks a single medicine and its remaining stock.
// RemainingAmount is only ever decremented through an intake log entry
// with Taken set, and never goes below zero.
type Medication struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"familyId"`
	Name            string     `gorm:"size:256;not null" json:"name"`
	Dosage          string     `gorm:"size:64" json:"dosage"`
	Unit            string     `gorm:"size:32" json:"unit"`
	RemainingAmount int        `gorm:"not null;default:0" json:"remainingAmount"`
	RefillThreshold int        `gorm:"not null;default:0" json:"refillThreshold"`
	ExpirationDate  *time.Time `json:"expirationDate"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updatedAt"`

	// Associations
	Schedules []Schedule `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE" json:"schedules"`
}

func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RefillDue reports whether the stock has dropped to the refill threshold.
func (m *Medication) RefillDue() bool {
	return m.RefillThreshold > 0 && m.RemainingAmount <= m.RefillThreshold
}

// Schedule is a weekly recurrence rule owned by a medication: fire at Time
// on each weekday listed in DaysOfWeek. Weekdays use 0=Sunday..6=Saturday,
// matching time.Weekday. An empty DaysOfWeek never fires.
type Schedule struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MedicationID uuid.UUID `gorm:"type:uuid;index;not null" json:"medicationId"`
	Time         string    `gorm:"size:5;not null" json:"time"` // "HH:MM", 24h
	DaysOfWeek   []int     `gorm:"serializer:json" json:"daysOfWeek"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IntakeLog records that a dose was (or was not) taken at a point in time.
// Entries are immutable once created.
type IntakeLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MedicationID uuid.UUID `gorm:"type:uuid;index;not null" json:"medicationId"`
	FamilyID     uuid.UUID `gorm:"type:uuid;index;not null" json:"familyId"`
	Timestamp    time.Time `gorm:"index;not null" json:"timestamp"`
	Taken        bool      `gorm:"not null" json:"taken"`
	Notes        string    `json:"notes"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (l *IntakeLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
