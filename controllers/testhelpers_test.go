package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/middleware"
	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/permissions"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Auto-migrate all models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Client{},
		&models.Vehicle{},
		&models.Estimate{},
		&models.Appointment{},
		&models.Message{},
		&models.OngoingService{},
		&models.VehicleAssessment{},
		&models.ServiceReport{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// mockAuthMiddleware injects the same context values the real JWT middleware
// sets after validation.
func mockAuthMiddleware(user *permissions.UserData, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, user.UserID)
		c.Set(middleware.ContextUserDataKey, user)
		c.Set(middleware.ContextAccessTokenKey, accessToken)
		c.Next()
	}
}

func testUser(orgID string, role permissions.Role) *permissions.UserData {
	return &permissions.UserData{
		UserID:         "auth0|user_" + orgID,
		OrganizationID: orgID,
		Role:           role,
		Email:          "user@" + orgID + ".example.com",
		Name:           "Taylor Pellerin",
	}
}

func seedTenant(t *testing.T, db *gorm.DB, orgID string) *models.Tenant {
	tenant := &models.Tenant{
		Name:    "Shine Works Detailing",
		OwnerID: "auth0|owner_" + orgID,
		PriceList: models.PriceList{
			{
				ServiceName:    "wash",
				BasePrice:      50,
				SizeMultiplier: models.SizeMultiplier{Small: 1, Medium: 1.5, Large: 2},
			},
			{
				ServiceName:    "wax",
				BasePrice:      80,
				SizeMultiplier: models.SizeMultiplier{Small: 1, Medium: 1.25, Large: 1.5},
			},
			{
				ServiceName:    "interior detail",
				BasePrice:      120,
				SizeMultiplier: models.SizeMultiplier{Small: 1, Medium: 1.2, Large: 1.4},
			},
		},
		LaborCost: 25,
	}
	tenant.ID = orgID
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("Failed to seed tenant: %v", err)
	}
	return tenant
}

func seedClient(t *testing.T, db *gorm.DB, orgID, name string) *models.Client {
	client := &models.Client{
		TenantID: orgID,
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "555-0100",
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}
	return client
}

func seedVehicle(t *testing.T, db *gorm.DB, orgID, clientID string, size models.VehicleSize) *models.Vehicle {
	vehicle := &models.Vehicle{
		TenantID: orgID,
		ClientID: clientID,
		Make:     "Toyota",
		Model:    "Corolla",
		Year:     2019,
		Size:     size,
	}
	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("Failed to seed vehicle: %v", err)
	}
	return vehicle
}

// performJSON marshals the body, runs the request and decodes the response
// envelope.
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", w.Body.String(), err)
	}
	return w, response
}

func assertErrorCode(t *testing.T, response map[string]interface{}, code string) {
	t.Helper()
	if success, ok := response["success"].(bool); !ok || success {
		t.Fatalf("Expected error envelope, got %v", response)
	}
	errorData, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error object, got %v", response)
	}
	if errorData["code"] != code {
		t.Fatalf("Expected error code %s, got %v", code, errorData["code"])
	}
}
