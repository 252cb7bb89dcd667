package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
)

// GetFamily returns the caller's family with its members.
func (h *Handler) GetFamily(c *gin.Context) {
	family, err := h.store.GetFamily(c.Request.Context(), auth.FamilyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, family)
}

// ListMembers returns the caller's family members.
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.store.ListFamilyMembers(c.Request.Context(), auth.FamilyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// RotateInviteCode replaces the family's invite code. Admin only: a leaked
// code should be revocable without members being able to churn it.
func (h *Handler) RotateInviteCode(c *gin.Context) {
	user, err := h.store.GetUserByID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	code := newInviteCode()
	if err := h.store.RotateInviteCode(c.Request.Context(), auth.FamilyID(c), code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invite_code": code})
}
