package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingList groups items the family still needs to buy.
type ShoppingList struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID `gorm:"type:uuid;index;not null" json:"familyId"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Items []ShoppingItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ShoppingItem is a single line on a shopping list.
type ShoppingItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListID    uuid.UUID `gorm:"type:uuid;index;not null" json:"listId"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Quantity  string    `gorm:"size:64" json:"quantity"`
	Category  string    `gorm:"size:64" json:"category"`
	Checked   bool      `gorm:"not null;default:false" json:"checked"`
	AddedBy   uuid.UUID `gorm:"type:uuid;not null" json:"addedBy"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (i *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
