package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/services"
)

// ReportController produces and serves end-of-job PDF service reports.
type ReportController struct {
	DB      *gorm.DB
	S3      services.S3Interface
	Reports services.ReportService
	Logger  *logrus.Logger
}

func NewReportController(db *gorm.DB, s3 services.S3Interface, reports services.ReportService, logger *logrus.Logger) *ReportController {
	return &ReportController{DB: db, S3: s3, Reports: reports, Logger: logger}
}

// GenerateReportRequest represents the request body for generating a report
type GenerateReportRequest struct {
	AssessmentID      string   `json:"assessment_id" binding:"required"`
	ServicesPerformed []string `json:"services_performed" binding:"omitempty"`
	TotalCost         *float64 `json:"total_cost" binding:"required"`
}

// GenerateReport handles POST /api/v1/reports - renders a PDF for a finished
// job, stores it and records the report row. Services performed default to
// the assessment's recommendations when not supplied.
func (r *ReportController) GenerateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if *req.TotalCost < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Total cost must not be negative")
		return
	}

	var assessment models.VehicleAssessment
	if err := r.DB.Where("id = ? AND tenant_id = ?", req.AssessmentID, user.OrganizationID).
		First(&assessment).Error; err != nil {
		respondError(c, http.StatusNotFound, "ASSESSMENT_NOT_FOUND", "Assessment not found")
		return
	}

	var tenant models.Tenant
	if err := r.DB.First(&tenant, "id = ?", user.OrganizationID).Error; err != nil {
		respondError(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Business not found. Please complete onboarding first.")
		return
	}

	var client models.Client
	if err := r.DB.Where("id = ? AND tenant_id = ?", assessment.ClientID, user.OrganizationID).
		First(&client).Error; err != nil {
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
		return
	}

	var vehicle models.Vehicle
	if err := r.DB.Where("id = ? AND tenant_id = ?", assessment.VehicleID, user.OrganizationID).
		First(&vehicle).Error; err != nil {
		respondError(c, http.StatusNotFound, "VEHICLE_NOT_FOUND", "Vehicle not found")
		return
	}

	servicesPerformed := req.ServicesPerformed
	if len(servicesPerformed) == 0 {
		servicesPerformed = assessment.RecommendedServices
	}

	pdf, err := r.Reports.BuildServiceReport(services.ReportContent{
		TenantName:        tenant.Name,
		ClientName:        client.Name,
		VehicleLabel:      fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model),
		Condition:         assessment.Condition,
		ServicesPerformed: servicesPerformed,
		TotalCost:         *req.TotalCost,
		GeneratedAt:       time.Now(),
	})
	if err != nil {
		r.Logger.WithError(err).Error("service report rendering failed")
		respondError(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to generate report")
		return
	}

	s3Key := fmt.Sprintf("reports/%s.pdf", uuid.NewString())
	if err := r.S3.UploadBytes(pdf, s3Key, "application/pdf"); err != nil {
		r.Logger.WithError(err).Error("service report upload failed")
		respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store report")
		return
	}

	report := models.ServiceReport{
		TenantID:          user.OrganizationID,
		ClientID:          client.ID,
		VehicleID:         vehicle.ID,
		AssessmentID:      assessment.ID,
		ServicesPerformed: servicesPerformed,
		TotalCost:         *req.TotalCost,
		ReportS3Key:       s3Key,
	}

	if err := r.DB.Create(&report).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create report")
		return
	}

	r.attachReportURL(&report)
	respondData(c, http.StatusCreated, report)
}

// GetReport handles GET /api/v1/reports/:id - one report with a presigned
// download URL.
func (r *ReportController) GetReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var report models.ServiceReport
	if err := r.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&report).Error; err != nil {
		respondError(c, http.StatusNotFound, "REPORT_NOT_FOUND", "Report not found")
		return
	}

	r.attachReportURL(&report)
	respondData(c, http.StatusOK, report)
}

func (r *ReportController) attachReportURL(report *models.ServiceReport) {
	url, err := r.S3.GetPresignedURL(report.ReportS3Key)
	if err != nil {
		r.Logger.WithError(err).WithField("s3_key", report.ReportS3Key).Warn("failed to presign report")
		return
	}
	report.ReportURL = url
}
