package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
)

type eventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartTime   time.Time  `json:"startTime" binding:"required"`
	EndTime     *time.Time `json:"endTime"`
	AllDay      bool       `json:"allDay"`
	Color       string     `json:"color"`
}

func (r *eventRequest) validate() string {
	if r.EndTime != nil && r.EndTime.Before(r.StartTime) {
		return "endTime must not be before startTime"
	}
	return ""
}

// CreateEvent handles POST /api/events.
func (h *Handler) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	event := model.CalendarEvent{
		FamilyID:    auth.FamilyID(c),
		CreatedBy:   auth.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Color:       req.Color,
	}
	if err := h.store.CreateEvent(c.Request.Context(), &event); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListEvents handles GET /api/events?from=&to=. The range defaults to the
// current calendar month.
func (h *Handler) ListEvents(c *gin.Context) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' timestamp. Use RFC3339."})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' timestamp. Use RFC3339."})
			return
		}
	}

	events, err := h.store.ListEvents(c.Request.Context(), auth.FamilyID(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /api/events/:id.
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	event, err := h.store.GetEvent(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent handles PUT /api/events/:id.
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	event := model.CalendarEvent{
		ID:          id,
		FamilyID:    auth.FamilyID(c),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Color:       req.Color,
	}
	if err := h.store.UpdateEvent(c.Request.Context(), &event); err != nil {
		fail(c, err)
		return
	}

	updated, err := h.store.GetEvent(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEvent handles DELETE /api/events/:id.
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteEvent(c.Request.Context(), auth.FamilyID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
