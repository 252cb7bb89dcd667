package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/reminder"
)

// resolveToday loads the family's medication snapshot and resolves it
// against the current time. Both reminder endpoints and the background
// dispatcher share the same resolver, so the HTTP view and the push
// notifications can never drift apart.
func (h *Handler) resolveToday(c *gin.Context) (time.Time, []reminder.Instance, bool) {
	familyID := auth.FamilyID(c)
	now := time.Now().UTC()

	meds, err := h.store.ListMedications(c.Request.Context(), familyID)
	if err != nil {
		fail(c, err)
		return now, nil, false
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	logs, err := h.store.ListIntakeLogsSince(c.Request.Context(), familyID, startOfDay)
	if err != nil {
		fail(c, err)
		return now, nil, false
	}

	return now, reminder.Resolve(now, meds, logs), true
}

// TodayReminders handles GET /api/reminders/today: the flat, time-ordered
// list of today's reminder instances.
func (h *Handler) TodayReminders(c *gin.Context) {
	_, instances, ok := h.resolveToday(c)
	if !ok {
		return
	}
	if instances == nil {
		instances = []reminder.Instance{}
	}
	c.JSON(http.StatusOK, instances)
}

// RemindersOverview handles GET /api/reminders/overview: today's reminders
// bucketed into due / upcoming / taken / missed.
func (h *Handler) RemindersOverview(c *gin.Context) {
	now, instances, ok := h.resolveToday(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reminder.Classify(now, instances))
}
