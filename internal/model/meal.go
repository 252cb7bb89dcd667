package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType slots a plan entry into a fixed part of the day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// IngredientGroup is a named section of a recipe's ingredient list.
type IngredientGroup struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Recipe is a family recipe that meal plan slots can reference.
type Recipe struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID     uuid.UUID         `gorm:"type:uuid;index;not null" json:"familyId"`
	Title        string            `gorm:"size:256;not null" json:"title"`
	Instructions string            `json:"instructions"`
	Ingredients  []IngredientGroup `gorm:"serializer:json" json:"ingredients"`
	Servings     int               `json:"servings"`
	PrepTime     string            `gorm:"size:64" json:"prepTime"`
	CookTime     string            `gorm:"size:64" json:"cookTime"`
	CreatedBy    uuid.UUID         `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt    time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// MealPlan assigns a recipe or free-text meal to one slot of one day.
// A family has at most one entry per (date, meal type).
type MealPlan struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_meal_slot;not null" json:"familyId"`
	Date      string     `gorm:"size:10;uniqueIndex:idx_meal_slot;not null" json:"date"` // YYYY-MM-DD
	MealType  MealType   `gorm:"size:16;uniqueIndex:idx_meal_slot;not null" json:"mealType"`
	RecipeID  *uuid.UUID `gorm:"type:uuid" json:"recipeId"`
	Name      string     `gorm:"size:256" json:"name"`
	Notes     string     `json:"notes"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
