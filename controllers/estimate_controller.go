package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/utils"
)

// EstimateController generates and manages priced quotes.
type EstimateController struct {
	DB *gorm.DB
}

func NewEstimateController(db *gorm.DB) *EstimateController {
	return &EstimateController{DB: db}
}

// GenerateEstimateRequest captures the intake form: client contact details,
// the vehicle and the requested services, all in one submission.
type GenerateEstimateRequest struct {
	ClientName  string   `json:"client_name" binding:"required"`
	ClientEmail string   `json:"client_email" binding:"omitempty,email"`
	ClientPhone string   `json:"client_phone" binding:"omitempty"`
	Make        string   `json:"make" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Size        string   `json:"size" binding:"required"`
	Services    []string `json:"services" binding:"required,min=1"`
}

// UpdateEstimateStatusRequest represents the request body for a status change
type UpdateEstimateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GenerateEstimate handles POST /api/v1/estimates - prices the requested
// services against the tenant's price list and records client, vehicle and
// estimate together. Nothing is persisted when pricing fails.
func (e *EstimateController) GenerateEstimate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req GenerateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	size := models.VehicleSize(req.Size)
	if !size.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Vehicle size must be small, medium or large")
		return
	}

	var tenant models.Tenant
	if err := e.DB.First(&tenant, "id = ?", user.OrganizationID).Error; err != nil {
		respondError(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found. Please complete onboarding first.")
		return
	}

	total, err := utils.ComputeTotal(tenant.PriceList, req.Services, size)
	if err != nil {
		var pricingErr *utils.PricingError
		if errors.As(err, &pricingErr) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", pricingErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to price estimate")
		return
	}

	var estimate models.Estimate
	txErr := e.DB.Transaction(func(tx *gorm.DB) error {
		client := models.Client{
			TenantID: user.OrganizationID,
			Name:     req.ClientName,
			Email:    req.ClientEmail,
			Phone:    req.ClientPhone,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		vehicle := models.Vehicle{
			TenantID: user.OrganizationID,
			ClientID: client.ID,
			Make:     req.Make,
			Model:    req.Model,
			Year:     req.Year,
			Size:     size,
		}
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}

		estimate = models.Estimate{
			TenantID:   user.OrganizationID,
			ClientID:   client.ID,
			VehicleID:  vehicle.ID,
			Services:   req.Services,
			TotalPrice: total,
			Status:     models.EstimatePending,
		}
		return tx.Create(&estimate).Error
	})
	if txErr != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create estimate")
		return
	}

	if err := e.DB.Preload("Client").Preload("Vehicle").
		First(&estimate, "id = ?", estimate.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load estimate details")
		return
	}

	respondData(c, http.StatusCreated, estimate)
}

// RecentEstimates handles GET /api/v1/estimates/recent - newest first, with
// an optional ?limit (default 10, max 100).
func (e *EstimateController) RecentEstimates(c *gin.Context) {
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

	var estimates []models.Estimate
	if err := e.DB.Where("tenant_id = ?", user.OrganizationID).
		Preload("Client").
		Preload("Vehicle").
		Order("created_at DESC").
		Limit(limit).
		Find(&estimates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch estimates")
		return
	}

	respondData(c, http.StatusOK, estimates)
}

// UpdateStatus handles PATCH /api/v1/estimates/:id/status - transitions a
// pending estimate to approved or rejected. Decided estimates are final.
func (e *EstimateController) UpdateStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateEstimateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	status := models.EstimateStatus(req.Status)
	if status != models.EstimateApproved && status != models.EstimateRejected {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be approved or rejected")
		return
	}

	var estimate models.Estimate
	if err := e.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&estimate).Error; err != nil {
		respondError(c, http.StatusNotFound, "ESTIMATE_NOT_FOUND", "Estimate not found")
		return
	}

	if estimate.Status != models.EstimatePending {
		respondError(c, http.StatusConflict, "CONFLICT", "Estimate has already been decided")
		return
	}

	if err := e.DB.Model(&estimate).Update("status", status).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update estimate")
		return
	}

	respondData(c, http.StatusOK, estimate)
}
