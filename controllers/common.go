package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pellerin-apps/detailing-api/middleware"
	"github.com/pellerin-apps/detailing-api/permissions"
)

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondValidationError includes binding details alongside the envelope.
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": details,
		},
	})
}

// respondData writes the standard success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// currentUser pulls the authenticated identity out of the context. When it
// is missing the middleware chain was misconfigured; respond 401 and abort.
func currentUser(c *gin.Context) (*permissions.UserData, bool) {
	user, err := middleware.GetUserData(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return nil, false
	}
	return user, true
}

// isUniqueViolation checks for duplicate-key errors from both PostgreSQL
// and SQLite, which phrase the constraint failure differently.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
