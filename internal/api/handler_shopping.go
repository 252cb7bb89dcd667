package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
)

type listRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateShoppingList handles POST /api/shopping.
func (h *Handler) CreateShoppingList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := model.ShoppingList{
		FamilyID:  auth.FamilyID(c),
		Name:      req.Name,
		CreatedBy: auth.UserID(c),
	}
	if err := h.store.CreateShoppingList(c.Request.Context(), &list); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// ListShoppingLists handles GET /api/shopping.
func (h *Handler) ListShoppingLists(c *gin.Context) {
	lists, err := h.store.ListShoppingLists(c.Request.Context(), auth.FamilyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// GetShoppingList handles GET /api/shopping/:id.
func (h *Handler) GetShoppingList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	list, err := h.store.GetShoppingList(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// RenameShoppingList handles PUT /api/shopping/:id.
func (h *Handler) RenameShoppingList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := model.ShoppingList{ID: id, FamilyID: auth.FamilyID(c), Name: req.Name}
	if err := h.store.UpdateShoppingList(c.Request.Context(), &list); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": req.Name})
}

// DeleteShoppingList handles DELETE /api/shopping/:id.
func (h *Handler) DeleteShoppingList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteShoppingList(c.Request.Context(), auth.FamilyID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type itemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
}

// AddShoppingItem handles POST /api/shopping/:id/items.
func (h *Handler) AddShoppingItem(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.ShoppingItem{
		ListID:   listID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
		Checked:  req.Checked,
		AddedBy:  auth.UserID(c),
	}
	if err := h.store.AddShoppingItem(c.Request.Context(), auth.FamilyID(c), &item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateShoppingItem handles PUT /api/shopping/:id/items/:item_id.
func (h *Handler) UpdateShoppingItem(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "item_id")
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.ShoppingItem{
		ID:       itemID,
		ListID:   listID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
		Checked:  req.Checked,
	}
	if err := h.store.UpdateShoppingItem(c.Request.Context(), auth.FamilyID(c), &item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteShoppingItem handles DELETE /api/shopping/:id/items/:item_id.
func (h *Handler) DeleteShoppingItem(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "item_id")
	if !ok {
		return
	}
	if err := h.store.DeleteShoppingItem(c.Request.Context(), auth.FamilyID(c), listID, itemID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCheckedItems handles POST /api/shopping/:id/clear-checked.
func (h *Handler) ClearCheckedItems(c *gin.Context) {
	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	removed, err := h.store.ClearCheckedItems(c.Request.Context(), auth.FamilyID(c), listID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
