package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
)

// ServiceController tracks live detailing jobs on the staff dashboard.
type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// StartServiceRequest represents the request body for starting a job
type StartServiceRequest struct {
	ClientID         string    `json:"client_id" binding:"required"`
	VehicleID        string    `json:"vehicle_id" binding:"required"`
	ServiceName      string    `json:"service_name" binding:"required"`
	AssignedStaff    string    `json:"assigned_staff" binding:"required"`
	EstimatedEndTime time.Time `json:"estimated_end_time" binding:"required"`
}

// UpdateServiceStatusRequest represents the request body for a status change
type UpdateServiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StartService handles POST /api/v1/services - opens a live job record.
func (s *ServiceController) StartService(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req StartServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var client models.Client
	if err := s.DB.Where("id = ? AND tenant_id = ?", req.ClientID, user.OrganizationID).
		First(&client).Error; err != nil {
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
		return
	}

	var vehicle models.Vehicle
	if err := s.DB.Where("id = ? AND tenant_id = ?", req.VehicleID, user.OrganizationID).
		First(&vehicle).Error; err != nil {
		respondError(c, http.StatusNotFound, "VEHICLE_NOT_FOUND", "Vehicle not found")
		return
	}

	service := models.OngoingService{
		TenantID:         user.OrganizationID,
		ClientID:         client.ID,
		VehicleID:        vehicle.ID,
		ServiceName:      req.ServiceName,
		AssignedStaff:    req.AssignedStaff,
		Status:           models.ServiceInProgress,
		StartTime:        time.Now(),
		EstimatedEndTime: req.EstimatedEndTime,
	}

	if err := s.DB.Create(&service).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to start service")
		return
	}

	respondData(c, http.StatusCreated, service)
}

// OngoingServices handles GET /api/v1/services/ongoing - the tenant's jobs
// still in progress, oldest first.
func (s *ServiceController) OngoingServices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var services []models.OngoingService
	if err := s.DB.Where("tenant_id = ? AND status = ?", user.OrganizationID, models.ServiceInProgress).
		Order("start_time ASC").
		Find(&services).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch services")
		return
	}

	respondData(c, http.StatusOK, services)
}

// UpdateStatus handles PATCH /api/v1/services/:id/status - completes a job.
func (s *ServiceController) UpdateStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateServiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	status := models.ServiceStatus(req.Status)
	if !status.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be in_progress or completed")
		return
	}

	var service models.OngoingService
	if err := s.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&service).Error; err != nil {
		respondError(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	if err := s.DB.Model(&service).Update("status", status).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update service")
		return
	}

	respondData(c, http.StatusOK, service)
}
