package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/utils"
)

// TenantController manages the per-organization business record.
type TenantController struct {
	DB         *gorm.DB
	AppBaseURL string
	Logger     *logrus.Logger
}

func NewTenantController(db *gorm.DB, appBaseURL string, logger *logrus.Logger) *TenantController {
	return &TenantController{DB: db, AppBaseURL: appBaseURL, Logger: logger}
}

// UpdateSettingsRequest carries the tenant configuration fields. All fields
// are optional; absent fields are left untouched.
type UpdateSettingsRequest struct {
	Name        string            `json:"name" binding:"omitempty"`
	PriceList   *models.PriceList `json:"price_list" binding:"omitempty"`
	CostOfGoods []models.CostItem `json:"cost_of_goods" binding:"omitempty"`
	LaborCost   *float64          `json:"labor_cost" binding:"omitempty"`
}

// EnsureTenant handles POST /api/v1/tenants - gets or creates the tenant row
// for the caller's organization. The row's primary key is the organization id
// itself, so ensure is an idempotent lookup-then-insert.
func (t *TenantController) EnsureTenant(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	err := t.DB.First(&tenant, "id = ?", user.OrganizationID).Error
	if err == nil {
		respondData(c, http.StatusOK, tenant)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to look up business")
		return
	}

	tenant = models.Tenant{
		Name:    fmt.Sprintf("%s's Auto Detailing", user.Name),
		OwnerID: user.UserID,
	}
	tenant.ID = user.OrganizationID

	qr, err := utils.GenerateTenantQRCode(t.AppBaseURL, tenant.ID)
	if err != nil {
		// The booking QR is a convenience; tenant creation still succeeds.
		t.Logger.WithError(err).WithField("tenant_id", tenant.ID).Warn("failed to generate booking QR code")
	} else {
		tenant.QRCode = qr
	}

	if err := t.DB.Create(&tenant).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent ensure; return the winner's row.
			if err := t.DB.First(&tenant, "id = ?", user.OrganizationID).Error; err == nil {
				respondData(c, http.StatusOK, tenant)
				return
			}
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create business")
		return
	}

	respondData(c, http.StatusCreated, tenant)
}

// GetMyTenant handles GET /api/v1/tenants/me - fetches the caller's tenant.
func (t *TenantController) GetMyTenant(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	if err := t.DB.First(&tenant, "id = ?", user.OrganizationID).Error; err != nil {
		respondError(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found. Please complete onboarding first.")
		return
	}

	respondData(c, http.StatusOK, tenant)
}

// UpdateSettings handles PUT /api/v1/tenants/settings - updates business
// configuration. A submitted price list replaces the stored one wholesale
// and must pass validation before anything is written.
func (t *TenantController) UpdateSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if req.PriceList != nil {
		if err := req.PriceList.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}
	if req.LaborCost != nil && *req.LaborCost < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Labor cost must not be negative")
		return
	}

	var tenant models.Tenant
	if err := t.DB.First(&tenant, "id = ?", user.OrganizationID).Error; err != nil {
		respondError(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found. Please complete onboarding first.")
		return
	}

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.PriceList != nil {
		tenant.PriceList = *req.PriceList
	}
	if req.CostOfGoods != nil {
		tenant.CostOfGoods = req.CostOfGoods
	}
	if req.LaborCost != nil {
		tenant.LaborCost = *req.LaborCost
	}

	if err := t.DB.Save(&tenant).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update settings")
		return
	}

	respondData(c, http.StatusOK, tenant)
}
