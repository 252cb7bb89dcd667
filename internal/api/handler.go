package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
	"familyhub-backend/internal/store"
	"familyhub-backend/internal/upload"
)

// RefillNotifier pushes a low-stock alert when an intake drops a
// medication to its refill threshold.
type RefillNotifier interface {
	NotifyRefill(familyID uuid.UUID, med *model.Medication)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	issuer   *auth.TokenIssuer
	saver    *upload.Saver
	notifier RefillNotifier
	vapidKey string
}

// NewHandler creates a new API handler. notifier may be nil when push
// notifications are not configured.
func NewHandler(s store.Store, issuer *auth.TokenIssuer, saver *upload.Saver, notifier RefillNotifier, vapidKey string) *Handler {
	return &Handler{
		store:    s,
		issuer:   issuer,
		saver:    saver,
		notifier: notifier,
		vapidKey: vapidKey,
	}
}

// fail writes a store/domain error as JSON. ErrNotFound covers both missing
// rows and rows owned by another family, so it always maps to 404.
func fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// pathUUID parses a UUID path parameter, writing a 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
