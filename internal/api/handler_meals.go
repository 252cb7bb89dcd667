package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
)

type recipeRequest struct {
	Title        string                  `json:"title" binding:"required"`
	Instructions string                  `json:"instructions"`
	Ingredients  []model.IngredientGroup `json:"ingredients"`
	Servings     int                     `json:"servings"`
	PrepTime     string                  `json:"prepTime"`
	CookTime     string                  `json:"cookTime"`
}

// CreateRecipe handles POST /api/recipes.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := model.Recipe{
		FamilyID:     auth.FamilyID(c),
		Title:        req.Title,
		Instructions: req.Instructions,
		Ingredients:  req.Ingredients,
		Servings:     req.Servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		CreatedBy:    auth.UserID(c),
	}
	if err := h.store.CreateRecipe(c.Request.Context(), &recipe); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// ListRecipes handles GET /api/recipes.
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.store.ListRecipes(c.Request.Context(), auth.FamilyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles GET /api/recipes/:id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.store.GetRecipe(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := model.Recipe{
		ID:           id,
		FamilyID:     auth.FamilyID(c),
		Title:        req.Title,
		Instructions: req.Instructions,
		Ingredients:  req.Ingredients,
		Servings:     req.Servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
	}
	if err := h.store.UpdateRecipe(c.Request.Context(), &recipe); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteRecipe(c.Request.Context(), auth.FamilyID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type mealPlanRequest struct {
	Date     string     `json:"date" binding:"required"`
	MealType string     `json:"mealType" binding:"required,oneof=breakfast lunch dinner"`
	RecipeID *uuid.UUID `json:"recipeId"`
	Name     string     `json:"name"`
	Notes    string     `json:"notes"`
}

// UpsertMealPlan handles PUT /api/meals: create or replace the entry for
// one (date, meal type) slot.
func (h *Handler) UpsertMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: expected YYYY-MM-DD"})
		return
	}
	if req.RecipeID == nil && req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a recipeId or a name"})
		return
	}

	// Referenced recipes must exist within the family.
	if req.RecipeID != nil {
		if _, err := h.store.GetRecipe(c.Request.Context(), auth.FamilyID(c), *req.RecipeID); err != nil {
			fail(c, err)
			return
		}
	}

	plan := model.MealPlan{
		FamilyID:  auth.FamilyID(c),
		Date:      req.Date,
		MealType:  model.MealType(req.MealType),
		RecipeID:  req.RecipeID,
		Name:      req.Name,
		Notes:     req.Notes,
		CreatedBy: auth.UserID(c),
	}
	if err := h.store.UpsertMealPlan(c.Request.Context(), &plan); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListMealPlans handles GET /api/meals?from=&to=. The range defaults to the
// current week (Monday through Sunday).
func (h *Handler) ListMealPlans(c *gin.Context) {
	now := time.Now().UTC()
	offset := (int(now.Weekday()) + 6) % 7 // days since Monday
	monday := now.AddDate(0, 0, -offset)
	from := monday.Format("2006-01-02")
	to := monday.AddDate(0, 0, 6).Format("2006-01-02")

	if raw := c.Query("from"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date: expected YYYY-MM-DD"})
			return
		}
		from = raw
	}
	if raw := c.Query("to"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date: expected YYYY-MM-DD"})
			return
		}
		to = raw
	}

	plans, err := h.store.ListMealPlans(c.Request.Context(), auth.FamilyID(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// DeleteMealPlan handles DELETE /api/meals/:id.
func (h *Handler) DeleteMealPlan(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteMealPlan(c.Request.Context(), auth.FamilyID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
