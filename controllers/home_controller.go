package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/permissions"
)

// HomeController serves the role-dispatched landing data and the
// role-specific dashboard summaries.
type HomeController struct {
	DB *gorm.DB
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{DB: db}
}

// Me handles GET /api/v1/me - routes the caller to their home surface based
// on the role claim. Unknown roles are rejected rather than given a default.
func (h *HomeController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var home string
	switch user.Role {
	case permissions.RoleAdmin:
		home = "/admin"
	case permissions.RoleManager:
		home = "/manager"
	case permissions.RoleClient:
		home = "/client"
	case permissions.RoleMember, permissions.RoleNonMember:
		home = "/dashboard"
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":          "PERMISSION_DENIED",
				"message":       "Your account role is not recognized",
				"required_role": "Any valid role",
			},
		})
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user_id":         user.UserID,
		"organization_id": user.OrganizationID,
		"role":            user.Role.String(),
		"home":            home,
	})
}

// AdminDashboard handles GET /api/v1/admin - platform-wide counts.
func (h *HomeController) AdminDashboard(c *gin.Context) {
	var tenants, users int64
	if err := h.DB.Model(&models.Tenant{}).Count(&tenants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard data")
		return
	}
	if err := h.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard data")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"tenant_count": tenants,
		"user_count":   users,
	})
}

// ManagerDashboard handles GET /api/v1/manager - tenant business summary.
func (h *HomeController) ManagerDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var pendingEstimates, upcomingAppointments int64
	if err := h.DB.Model(&models.Estimate{}).
		Where("tenant_id = ? AND status = ?", user.OrganizationID, models.EstimatePending).
		Count(&pendingEstimates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard data")
		return
	}
	if err := h.DB.Model(&models.Appointment{}).
		Where("tenant_id = ? AND status = ? AND start_time > ?",
			user.OrganizationID, models.AppointmentScheduled, time.Now()).
		Count(&upcomingAppointments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard data")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"pending_estimates":     pendingEstimates,
		"upcoming_appointments": upcomingAppointments,
	})
}

// ClientPortal handles GET /api/v1/client - booking surface for clients.
func (h *HomeController) ClientPortal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	if err := h.DB.First(&tenant, "id = ?", user.OrganizationID).Error; err != nil {
		respondError(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"tenant_name": tenant.Name,
		"price_list":  tenant.PriceList,
	})
}

// Dashboard handles GET /api/v1/dashboard - staff working view with the
// tenant's live jobs.
func (h *HomeController) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var inProgress int64
	if err := h.DB.Model(&models.OngoingService{}).
		Where("tenant_id = ? AND status = ?", user.OrganizationID, models.ServiceInProgress).
		Count(&inProgress).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard data")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"services_in_progress": inProgress,
	})
}
