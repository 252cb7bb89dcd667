package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"familyhub-backend/internal/model"
)

func (s *gormStore) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	return s.db.WithContext(ctx).Create(recipe).Error
}

func (s *gormStore) ListRecipes(ctx context.Context, familyID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("title ASC").
		Find(&recipes).Error
	return recipes, err
}

func (s *gormStore) GetRecipe(ctx context.Context, familyID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ? AND family_id = ?", id, familyID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &recipe, nil
}

func (s *gormStore) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	res := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ? AND family_id = ?", recipe.ID, recipe.FamilyID).
		Select("Title", "Instructions", "Ingredients", "Servings", "PrepTime", "CookTime").
		Updates(recipe)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteRecipe(ctx context.Context, familyID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND family_id = ?", id, familyID).
		Delete(&model.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertMealPlan creates or replaces the entry for the plan's
// (family, date, meal type) slot.
func (s *gormStore) UpsertMealPlan(ctx context.Context, plan *model.MealPlan) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "family_id"}, {Name: "date"}, {Name: "meal_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"recipe_id", "name", "notes", "updated_at",
		}),
	}).Create(plan).Error
}

// ListMealPlans returns the family's plan entries with dates in [from, to],
// both formatted YYYY-MM-DD.
func (s *gormStore) ListMealPlans(ctx context.Context, familyID uuid.UUID, from, to string) ([]model.MealPlan, error) {
	var plans []model.MealPlan
	err := s.db.WithContext(ctx).
		Where("family_id = ? AND date >= ? AND date <= ?", familyID, from, to).
		Order("date ASC, meal_type ASC").
		Find(&plans).Error
	return plans, err
}

func (s *gormStore) DeleteMealPlan(ctx context.Context, familyID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND family_id = ?", id, familyID).
		Delete(&model.MealPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
