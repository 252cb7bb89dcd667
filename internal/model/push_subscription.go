package model

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription holds the information for a browser push subscription.
// A user can register one subscription per browser endpoint; reminder
// notifications fan out to every subscription in the family.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	FamilyID  uuid.UUID `gorm:"type:uuid;index;not null" json:"familyId"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
