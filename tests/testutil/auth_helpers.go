package testutil

import (
	"github.com/gin-gonic/gin"

	"github.com/pellerin-apps/detailing-api/middleware"
	"github.com/pellerin-apps/detailing-api/permissions"
)

// NewUser builds the identity record the middleware would produce for a
// validated token with the given organization and role claims.
func NewUser(orgID string, role permissions.Role) *permissions.UserData {
	return &permissions.UserData{
		UserID:         "auth0|test_" + orgID,
		OrganizationID: orgID,
		Role:           role,
		Email:          "staff@" + orgID + ".example.com",
		Name:           "Test Staffer",
	}
}

// MockAuth injects an identity the way the JWT middleware does after
// validation.
func MockAuth(user *permissions.UserData) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, user.UserID)
		c.Set(middleware.ContextUserDataKey, user)
		c.Set(middleware.ContextAccessTokenKey, "test-token")
	}
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
