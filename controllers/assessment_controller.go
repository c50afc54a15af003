package controllers

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/services"
	"github.com/pellerin-apps/detailing-api/utils"
)

// AssessmentController runs AI vehicle assessments on uploaded photos.
type AssessmentController struct {
	DB     *gorm.DB
	S3     services.S3Interface
	Vision services.VisionService
	Logger *logrus.Logger
}

func NewAssessmentController(db *gorm.DB, s3 services.S3Interface, vision services.VisionService, logger *logrus.Logger) *AssessmentController {
	return &AssessmentController{DB: db, S3: s3, Vision: vision, Logger: logger}
}

// CreateAssessment handles POST /api/v1/assessments - multipart upload of a
// vehicle photo plus client_id and vehicle_id form fields. The image goes to
// blob storage, the external model produces the assessment and an embedding
// for later similarity search.
func (a *AssessmentController) CreateAssessment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "An image file is required")
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	clientID := c.PostForm("client_id")
	vehicleID := c.PostForm("vehicle_id")
	if clientID == "" || vehicleID == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "client_id and vehicle_id are required")
		return
	}

	var client models.Client
	if err := a.DB.Where("id = ? AND tenant_id = ?", clientID, user.OrganizationID).
		First(&client).Error; err != nil {
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
		return
	}

	var vehicle models.Vehicle
	if err := a.DB.Where("id = ? AND tenant_id = ? AND client_id = ?", vehicleID, user.OrganizationID, client.ID).
		First(&vehicle).Error; err != nil {
		respondError(c, http.StatusNotFound, "VEHICLE_NOT_FOUND", "Vehicle not found")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read the uploaded file")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read the uploaded file")
		return
	}

	contentType := utils.ImageContentType(fileHeader.Filename)
	analysis, err := a.Vision.AnalyzeVehicleImage(c.Request.Context(), image, contentType)
	if err != nil {
		a.Logger.WithError(err).Warn("vehicle image analysis failed")
		respondError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Vehicle analysis is temporarily unavailable")
		return
	}

	embedding, err := a.Vision.EmbedText(c.Request.Context(), analysis.Description)
	if err != nil {
		a.Logger.WithError(err).Warn("assessment embedding failed")
		respondError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Vehicle analysis is temporarily unavailable")
		return
	}

	s3Key, err := a.S3.UploadFile(fileHeader, "assessments")
	if err != nil {
		a.Logger.WithError(err).Error("assessment image upload failed")
		respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store the uploaded image")
		return
	}

	assessment := models.VehicleAssessment{
		TenantID:            user.OrganizationID,
		ClientID:            client.ID,
		VehicleID:           vehicle.ID,
		ImageS3Key:          s3Key,
		Description:         analysis.Description,
		Condition:           analysis.Condition,
		RecommendedServices: analysis.RecommendedServices,
		Embedding:           embedding,
	}

	if err := a.DB.Create(&assessment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create assessment")
		return
	}

	a.attachImageURL(&assessment)
	respondData(c, http.StatusCreated, assessment)
}

// GetAssessment handles GET /api/v1/assessments/:id - one assessment with a
// presigned image URL.
func (a *AssessmentController) GetAssessment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var assessment models.VehicleAssessment
	if err := a.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&assessment).Error; err != nil {
		respondError(c, http.StatusNotFound, "ASSESSMENT_NOT_FOUND", "Assessment not found")
		return
	}

	a.attachImageURL(&assessment)
	respondData(c, http.StatusOK, assessment)
}

// similarResult pairs an assessment with its similarity score for ranking.
type similarResult struct {
	models.VehicleAssessment
	Similarity float64 `json:"similarity"`
}

// SimilarAssessments handles GET /api/v1/assessments/:id/similar - ranks the
// tenant's other assessments by cosine similarity of their embeddings.
func (a *AssessmentController) SimilarAssessments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 3
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		if parsed > 20 {
			parsed = 20
		}
		limit = parsed
	}

	var target models.VehicleAssessment
	err := a.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ASSESSMENT_NOT_FOUND", "Assessment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to look up assessment")
		return
	}

	var candidates []models.VehicleAssessment
	if err := a.DB.Where("tenant_id = ? AND id <> ?", user.OrganizationID, target.ID).
		Find(&candidates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch assessments")
		return
	}

	results := make([]similarResult, 0, len(candidates))
	for _, candidate := range candidates {
		score := utils.CosineSimilarity(target.Embedding, candidate.Embedding)
		results = append(results, similarResult{VehicleAssessment: candidate, Similarity: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		a.attachImageURL(&results[i].VehicleAssessment)
	}

	respondData(c, http.StatusOK, results)
}

// attachImageURL fills the computed presigned URL. A presigning failure only
// drops the URL from the response; the record itself is still served.
func (a *AssessmentController) attachImageURL(assessment *models.VehicleAssessment) {
	url, err := a.S3.GetPresignedURL(assessment.ImageS3Key)
	if err != nil {
		a.Logger.WithError(err).WithField("s3_key", assessment.ImageS3Key).Warn("failed to presign assessment image")
		return
	}
	assessment.ImageURL = url
}
