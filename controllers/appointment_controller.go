package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
)

// AppointmentController books and manages time slots for estimates.
type AppointmentController struct {
	DB *gorm.DB
}

func NewAppointmentController(db *gorm.DB) *AppointmentController {
	return &AppointmentController{DB: db}
}

// ScheduleAppointmentRequest represents the request body for booking a slot
type ScheduleAppointmentRequest struct {
	EstimateID string    `json:"estimate_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
}

// UpdateAppointmentStatusRequest represents the request body for a status change
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ScheduleAppointment handles POST /api/v1/appointments - books a slot for
// an estimate. The end time is always start plus the fixed slot length; it is
// never taken from the request.
func (a *AppointmentController) ScheduleAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var estimate models.Estimate
	err := a.DB.First(&estimate, "id = ?", req.EstimateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ESTIMATE_NOT_FOUND", "Estimate not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to look up estimate")
		return
	}

	// An estimate from another tenant exists but is off limits; nothing
	// is written in that case.
	if estimate.TenantID != user.OrganizationID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to book this estimate")
		return
	}

	appointment := models.Appointment{
		TenantID:   user.OrganizationID,
		EstimateID: estimate.ID,
		StartTime:  req.StartTime,
		EndTime:    req.StartTime.Add(models.AppointmentDuration),
		Status:     models.AppointmentScheduled,
	}

	if err := a.DB.Create(&appointment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create appointment")
		return
	}

	respondData(c, http.StatusCreated, appointment)
}

// UpcomingAppointments handles GET /api/v1/appointments/upcoming - scheduled
// future appointments, soonest first, with an optional ?limit (default 10).
func (a *AppointmentController) UpcomingAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	var appointments []models.Appointment
	if err := a.DB.Where("tenant_id = ? AND status = ? AND start_time > ?",
		user.OrganizationID, models.AppointmentScheduled, time.Now()).
		Order("start_time ASC").
		Limit(limit).
		Find(&appointments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch appointments")
		return
	}

	respondData(c, http.StatusOK, appointments)
}

// UpdateStatus handles PATCH /api/v1/appointments/:id/status - marks an
// appointment completed or cancelled.
func (a *AppointmentController) UpdateStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	status := models.AppointmentStatus(req.Status)
	if status != models.AppointmentCompleted && status != models.AppointmentCancelled {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be completed or cancelled")
		return
	}

	var appointment models.Appointment
	if err := a.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&appointment).Error; err != nil {
		respondError(c, http.StatusNotFound, "APPOINTMENT_NOT_FOUND", "Appointment not found")
		return
	}

	if appointment.Status != models.AppointmentScheduled {
		respondError(c, http.StatusConflict, "CONFLICT", "Appointment is no longer scheduled")
		return
	}

	if err := a.DB.Model(&appointment).Update("status", status).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update appointment")
		return
	}

	respondData(c, http.StatusOK, appointment)
}

// MarkDepositPaid handles PATCH /api/v1/appointments/:id/deposit - records
// that the booking deposit was received.
func (a *AppointmentController) MarkDepositPaid(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := a.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&appointment).Error; err != nil {
		respondError(c, http.StatusNotFound, "APPOINTMENT_NOT_FOUND", "Appointment not found")
		return
	}

	if err := a.DB.Model(&appointment).Update("deposit_paid", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update appointment")
		return
	}

	respondData(c, http.StatusOK, appointment)
}
