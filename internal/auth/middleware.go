package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by Middleware for downstream handlers.
const (
	CtxUserID   = "auth_user_id"
	CtxFamilyID = "auth_family_id"
)

// Middleware rejects requests without a valid bearer token and stores the
// caller's user and family IDs in the Gin context.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, familyID, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxFamilyID, familyID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the Gin context.
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(CtxUserID)
	uid, _ := id.(uuid.UUID)
	return uid
}

// FamilyID returns the authenticated user's family ID from the Gin context.
func FamilyID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(CtxFamilyID)
	fid, _ := id.(uuid.UUID)
	return fid
}
