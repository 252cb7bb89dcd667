package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/model"
	"familyhub-backend/internal/parse"
)

type medicationRequest struct {
	Name            string     `json:"name" binding:"required"`
	Dosage          string     `json:"dosage"`
	Unit            string     `json:"unit"`
	RemainingAmount int        `json:"remainingAmount"`
	RefillThreshold int        `json:"refillThreshold"`
	ExpirationDate  *time.Time `json:"expirationDate"`
}

func (r *medicationRequest) validate() string {
	if r.RemainingAmount < 0 {
		return "remainingAmount must not be negative"
	}
	if r.RefillThreshold < 0 {
		return "refillThreshold must not be negative"
	}
	return ""
}

// CreateMedication handles POST /api/medications.
func (h *Handler) CreateMedication(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	med := model.Medication{
		FamilyID:        auth.FamilyID(c),
		Name:            req.Name,
		Dosage:          req.Dosage,
		Unit:            req.Unit,
		RemainingAmount: req.RemainingAmount,
		RefillThreshold: req.RefillThreshold,
		ExpirationDate:  req.ExpirationDate,
		CreatedBy:       auth.UserID(c),
	}
	if err := h.store.CreateMedication(c.Request.Context(), &med); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, med)
}

// ListMedications handles GET /api/medications.
func (h *Handler) ListMedications(c *gin.Context) {
	meds, err := h.store.ListMedications(c.Request.Context(), auth.FamilyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

// GetMedication handles GET /api/medications/:id.
func (h *Handler) GetMedication(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	med, err := h.store.GetMedication(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, med)
}

// UpdateMedication handles PUT /api/medications/:id.
func (h *Handler) UpdateMedication(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	med := model.Medication{
		ID:              id,
		FamilyID:        auth.FamilyID(c),
		Name:            req.Name,
		Dosage:          req.Dosage,
		Unit:            req.Unit,
		RemainingAmount: req.RemainingAmount,
		RefillThreshold: req.RefillThreshold,
		ExpirationDate:  req.ExpirationDate,
	}
	if err := h.store.UpdateMedication(c.Request.Context(), &med); err != nil {
		fail(c, err)
		return
	}

	updated, err := h.store.GetMedication(c.Request.Context(), auth.FamilyID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMedication handles DELETE /api/medications/:id.
func (h *Handler) DeleteMedication(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteMedication(c.Request.Context(), auth.FamilyID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type scheduleRequest struct {
	Time       string `json:"time" binding:"required"`
	DaysOfWeek []int  `json:"daysOfWeek"`
	Active     *bool  `json:"active"`
}

// validateSchedule rejects malformed times and weekdays up front: the
// resolver assumes stored schedules are well formed.
func (r *scheduleRequest) validateSchedule() string {
	if _, _, err := parse.Clock(r.Time); err != nil {
		return err.Error()
	}
	if err := parse.Weekdays(r.DaysOfWeek); err != nil {
		return err.Error()
	}
	return ""
}

// AddSchedule handles POST /api/medications/:id/schedules.
func (h *Handler) AddSchedule(c *gin.Context) {
	medID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validateSchedule(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sched := model.Schedule{
		MedicationID: medID,
		Time:         req.Time,
		DaysOfWeek:   req.DaysOfWeek,
		Active:       active,
	}
	if err := h.store.AddSchedule(c.Request.Context(), auth.FamilyID(c), &sched); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// UpdateSchedule handles PUT /api/medications/:id/schedules/:schedule_id.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	medID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	schedID, ok := pathUUID(c, "schedule_id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validateSchedule(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sched := model.Schedule{
		ID:           schedID,
		MedicationID: medID,
		Time:         req.Time,
		DaysOfWeek:   req.DaysOfWeek,
		Active:       active,
	}
	if err := h.store.UpdateSchedule(c.Request.Context(), auth.FamilyID(c), &sched); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// DeleteSchedule handles DELETE /api/medications/:id/schedules/:schedule_id.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	medID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	schedID, ok := pathUUID(c, "schedule_id")
	if !ok {
		return
	}
	if err := h.store.DeleteSchedule(c.Request.Context(), auth.FamilyID(c), medID, schedID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type intakeRequest struct {
	Taken     *bool      `json:"taken" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
	Notes     string     `json:"notes"`
}

// RecordIntake handles POST /api/medications/:id/intake. A taken dose
// decrements the stock atomically with the log write; the response carries
// the updated medication and whether a refill is now due.
func (h *Handler) RecordIntake(c *gin.Context) {
	medID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := model.IntakeLog{
		MedicationID: medID,
		Taken:        *req.Taken,
		Notes:        req.Notes,
		CreatedBy:    auth.UserID(c),
	}
	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}

	result, err := h.store.RecordIntake(c.Request.Context(), auth.FamilyID(c), &entry)
	if err != nil {
		fail(c, err)
		return
	}

	if result.RefillDue && h.notifier != nil {
		h.notifier.NotifyRefill(auth.FamilyID(c), &result.Medication)
	}
	c.JSON(http.StatusCreated, result)
}

// ListIntakeLogs handles GET /api/medications/:id/logs?limit=.
func (h *Handler) ListIntakeLogs(c *gin.Context) {
	medID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	logs, err := h.store.ListIntakeLogs(c.Request.Context(), auth.FamilyID(c), medID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
