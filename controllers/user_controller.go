package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/middleware"
	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/services"
)

// UserController provisions and serves user profiles.
type UserController struct {
	DB       *gorm.DB
	Identity *services.IdentityService
}

func NewUserController(db *gorm.DB, identity *services.IdentityService) *UserController {
	return &UserController{DB: db, Identity: identity}
}

// CreateProfile handles POST /api/v1/users - creates a profile row from the
// identity provider's userinfo endpoint. Name and email always come from the
// provider, never from the request body.
func (u *UserController) CreateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	userInfo, err := u.Identity.GetUserInfo(accessToken)
	if err != nil {
		respondError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch user information from the identity provider")
		return
	}

	if userInfo.Email == "" {
		respondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Email not provided by the identity provider")
		return
	}
	if userInfo.Name == "" {
		respondError(c, http.StatusBadRequest, "MISSING_NAME", "Name not provided by the identity provider")
		return
	}

	profile := models.User{
		SubjectID: user.UserID,
		Name:      userInfo.Name,
		Email:     userInfo.Email,
		Role:      user.Role.String(),
	}

	if err := u.DB.Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "USER_EXISTS", "A profile for this user already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user")
		return
	}

	respondData(c, http.StatusCreated, profile)
}

// GetMyProfile handles GET /api/v1/users/me - gets the caller's profile.
func (u *UserController) GetMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var profile models.User
	if err := u.DB.Where("subject_id = ?", user.UserID).First(&profile).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}

	respondData(c, http.StatusOK, profile)
}
