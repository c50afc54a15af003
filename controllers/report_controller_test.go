package controllers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/permissions"
	"github.com/pellerin-apps/detailing-api/services"
)

type failingReportService struct{}

func (failingReportService) BuildServiceReport(services.ReportContent) ([]byte, error) {
	return nil, errors.New("render failed")
}

func TestGenerateReport(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	client := seedClient(t, db, "org_alpha", "Jordan Price")
	vehicle := seedVehicle(t, db, "org_alpha", client.ID, models.SizeMedium)

	assessment := models.VehicleAssessment{
		TenantID:            "org_alpha",
		ClientID:            client.ID,
		VehicleID:           vehicle.ID,
		ImageS3Key:          "assessments/a.png",
		Description:         "Silver sedan",
		Condition:           "Good, light swirl marks",
		RecommendedServices: []string{"wash", "wax"},
		Embedding:           []float64{1, 0, 0},
	}
	if err := db.Create(&assessment).Error; err != nil {
		t.Fatalf("Failed to seed assessment: %v", err)
	}

	manager := testUser("org_alpha", permissions.RoleManager)
	totalCost := 175.0

	t.Run("renders, stores and records the report", func(t *testing.T) {
		mockS3 := services.NewMockS3Service()
		controller := NewReportController(db, mockS3, services.NewPDFReportService(), testLogger())

		router := setupTestRouter()
		router.POST("/reports", mockAuthMiddleware(manager, "mock-token"), controller.GenerateReport)

		w, response := performJSON(t, router, http.MethodPost, "/reports", map[string]interface{}{
			"assessment_id":      assessment.ID,
			"services_performed": []string{"wash", "wax"},
			"total_cost":         totalCost,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, totalCost, data["total_cost"])
		assert.Equal(t, assessment.ID, data["assessment_id"])

		s3Key := data["report_s3_key"].(string)
		assert.True(t, strings.HasPrefix(s3Key, "reports/"))
		assert.True(t, strings.HasSuffix(s3Key, ".pdf"))
		assert.True(t, mockS3.FileExists(s3Key))
		// A real PDF came out of the renderer
		assert.True(t, strings.HasPrefix(string(mockS3.FileContent(s3Key)), "%PDF"))
		assert.NotEmpty(t, data["report_url"])
	})

	t.Run("services default to the assessment's recommendations", func(t *testing.T) {
		mockS3 := services.NewMockS3Service()
		controller := NewReportController(db, mockS3, services.NewPDFReportService(), testLogger())

		router := setupTestRouter()
		router.POST("/reports", mockAuthMiddleware(manager, "mock-token"), controller.GenerateReport)

		w, response := performJSON(t, router, http.MethodPost, "/reports", map[string]interface{}{
			"assessment_id": assessment.ID,
			"total_cost":    totalCost,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		performed := data["services_performed"].([]interface{})
		assert.Len(t, performed, 2)
		assert.Equal(t, "wash", performed[0])
	})

	t.Run("unknown assessment", func(t *testing.T) {
		controller := NewReportController(db, services.NewMockS3Service(), services.NewPDFReportService(), testLogger())
		router := setupTestRouter()
		router.POST("/reports", mockAuthMiddleware(manager, "mock-token"), controller.GenerateReport)

		w, response := performJSON(t, router, http.MethodPost, "/reports", map[string]interface{}{
			"assessment_id": "nope",
			"total_cost":    totalCost,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "ASSESSMENT_NOT_FOUND")
	})

	t.Run("negative total cost is rejected", func(t *testing.T) {
		controller := NewReportController(db, services.NewMockS3Service(), services.NewPDFReportService(), testLogger())
		router := setupTestRouter()
		router.POST("/reports", mockAuthMiddleware(manager, "mock-token"), controller.GenerateReport)

		w, response := performJSON(t, router, http.MethodPost, "/reports", map[string]interface{}{
			"assessment_id": assessment.ID,
			"total_cost":    -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertErrorCode(t, response, "VALIDATION_ERROR")
	})

	t.Run("renderer failure writes nothing", func(t *testing.T) {
		mockS3 := services.NewMockS3Service()
		controller := NewReportController(db, mockS3, failingReportService{}, testLogger())

		var before int64
		db.Model(&models.ServiceReport{}).Count(&before)

		router := setupTestRouter()
		router.POST("/reports", mockAuthMiddleware(manager, "mock-token"), controller.GenerateReport)

		w, response := performJSON(t, router, http.MethodPost, "/reports", map[string]interface{}{
			"assessment_id": assessment.ID,
			"total_cost":    totalCost,
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assertErrorCode(t, response, "REPORT_ERROR")

		var after int64
		db.Model(&models.ServiceReport{}).Count(&after)
		assert.Equal(t, before, after)
	})

	t.Run("another tenant's assessment looks missing", func(t *testing.T) {
		controller := NewReportController(db, services.NewMockS3Service(), services.NewPDFReportService(), testLogger())
		router := setupTestRouter()
		router.POST("/reports", mockAuthMiddleware(testUser("org_beta", permissions.RoleManager), "mock-token"), controller.GenerateReport)

		w, response := performJSON(t, router, http.MethodPost, "/reports", map[string]interface{}{
			"assessment_id": assessment.ID,
			"total_cost":    totalCost,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "ASSESSMENT_NOT_FOUND")
	})
}

func TestGetReport(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")

	mockS3 := services.NewMockS3Service()
	assert.NoError(t, mockS3.UploadBytes([]byte("%PDF-1.4 fake"), "reports/r.pdf", "application/pdf"))

	report := models.ServiceReport{
		TenantID:          "org_alpha",
		ClientID:          "client_1",
		VehicleID:         "vehicle_1",
		AssessmentID:      "assessment_1",
		ServicesPerformed: []string{"wash"},
		TotalCost:         50,
		ReportS3Key:       "reports/r.pdf",
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("Failed to seed report: %v", err)
	}

	controller := NewReportController(db, mockS3, services.NewPDFReportService(), testLogger())

	t.Run("serves the record with a presigned URL", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/reports/:id", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.GetReport)

		w, response := performJSON(t, router, http.MethodGet, "/reports/"+report.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Contains(t, data["report_url"], "reports/r.pdf")
	})

	t.Run("another tenant's report looks missing", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/reports/:id", mockAuthMiddleware(testUser("org_beta", permissions.RoleMember), "mock-token"), controller.GetReport)

		w, response := performJSON(t, router, http.MethodGet, "/reports/"+report.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "REPORT_NOT_FOUND")
	})
}
