package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
)

// ClientController manages clients and their vehicles.
type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty"`
}

// CreateVehicleRequest represents the request body for adding a vehicle
type CreateVehicleRequest struct {
	Make  string `json:"make" binding:"required"`
	Model string `json:"model" binding:"required"`
	Year  int    `json:"year" binding:"required"`
	Size  string `json:"size" binding:"required"`
}

// CreateClient handles POST /api/v1/clients - registers a client under the
// caller's tenant.
func (cc *ClientController) CreateClient(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	client := models.Client{
		TenantID: user.OrganizationID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	if err := cc.DB.Create(&client).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create client")
		return
	}

	respondData(c, http.StatusCreated, client)
}

// ListClients handles GET /api/v1/clients - lists the caller's clients.
func (cc *ClientController) ListClients(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := cc.DB.Where("tenant_id = ?", user.OrganizationID).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch clients")
		return
	}

	respondData(c, http.StatusOK, clients)
}

// GetClient handles GET /api/v1/clients/:id - fetches one client. A client
// belonging to another tenant is indistinguishable from a missing one.
func (cc *ClientController) GetClient(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var client models.Client
	if err := cc.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&client).Error; err != nil {
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
		return
	}

	respondData(c, http.StatusOK, client)
}

// CreateVehicle handles POST /api/v1/clients/:id/vehicles - adds a vehicle
// to a client.
func (cc *ClientController) CreateVehicle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var client models.Client
	if err := cc.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&client).Error; err != nil {
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	size := models.VehicleSize(req.Size)
	if !size.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Vehicle size must be small, medium or large")
		return
	}

	vehicle := models.Vehicle{
		TenantID: user.OrganizationID,
		ClientID: client.ID,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Size:     size,
	}

	if err := cc.DB.Create(&vehicle).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create vehicle")
		return
	}

	respondData(c, http.StatusCreated, vehicle)
}

// ListVehicles handles GET /api/v1/clients/:id/vehicles - lists a client's
// vehicles.
func (cc *ClientController) ListVehicles(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var client models.Client
	if err := cc.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&client).Error; err != nil {
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
		return
	}

	var vehicles []models.Vehicle
	if err := cc.DB.Where("client_id = ? AND tenant_id = ?", client.ID, user.OrganizationID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch vehicles")
		return
	}

	respondData(c, http.StatusOK, vehicles)
}
