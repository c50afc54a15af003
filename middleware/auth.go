package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/pellerin-apps/detailing-api/config"
	"github.com/pellerin-apps/detailing-api/permissions"
)

// Gin context keys set by EnsureValidToken. Exported so tests can install
// identities without running the real JWKS validation.
const (
	ContextUserIDKey      = "user_id"
	ContextUserDataKey    = "user_data"
	ContextAccessTokenKey = "access_token"
)

// CustomClaims contains the organization fields the identity provider adds
// to its access tokens.
type CustomClaims struct {
	OrganizationID   string `json:"org_id"`
	OrganizationRole string `json:"org_role"`
	Email            string `json:"email"`
	Name             string `json:"name"`
}

// Validate does nothing here, but is required to satisfy the
// validator.CustomClaims interface.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken is a middleware that checks the validity of the JWT and
// extracts the caller's identity into the request context. Token signatures
// are verified against the identity provider's JWKS; this service never
// implements the auth protocol itself.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	issuerURL, err := url.Parse("https://" + cfg.AuthDomain + "/")
	if err != nil {
		log.Fatalf("Failed to parse the issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.AuthAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator")
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			log.Printf("Failed to write error response: %v", writeErr)
		}
	}

	jwtMiddleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			customClaims, _ := token.CustomClaims.(*CustomClaims)
			if customClaims == nil {
				customClaims = &CustomClaims{}
			}

			// Decode the verified token into the typed user record every
			// tenant-scoped operation works from.
			userData, err := permissions.ExtractUserData(permissions.Claims{
				Subject:          token.RegisteredClaims.Subject,
				OrganizationID:   customClaims.OrganizationID,
				OrganizationRole: customClaims.OrganizationRole,
				Email:            customClaims.Email,
				Name:             customClaims.Name,
			})
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INVALID_TOKEN",
						"message": "Token is missing required identity fields",
					},
				})
				return
			}

			c.Set(ContextUserIDKey, userData.UserID)
			c.Set(ContextUserDataKey, userData)
			c.Set(ContextAccessTokenKey, bearerToken(r))

			c.Next()
		}

		jwtMiddleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)

		if encounteredError {
			c.Abort()
		}
	}
}

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return ""
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetUserData extracts the typed identity record from the Gin context
func GetUserData(c *gin.Context) (*permissions.UserData, error) {
	value, exists := c.Get(ContextUserDataKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "User data not found in context"}
	}

	userData, ok := value.(*permissions.UserData)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "User data is not in the expected format"}
	}

	return userData, nil
}

// GetAccessToken extracts the raw bearer token from the Gin context
func GetAccessToken(c *gin.Context) (string, error) {
	value, exists := c.Get(ContextAccessTokenKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}

	token, ok := value.(string)
	if !ok || token == "" {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}

	return token, nil
}

// RequireRole gates a route on the permission policy. Every role check in
// the service goes through here and permissions.Authorize; handlers never
// re-derive role conditions inline.
func RequireRole(required ...permissions.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userData, err := GetUserData(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Could not retrieve caller identity",
				},
			})
			return
		}

		if _, err := permissions.Authorize(userData, required...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":          "FORBIDDEN",
					"message":       fmt.Sprintf("Access denied. Required role: %s", roleNames(required)),
					"required_role": roleNames(required),
				},
			})
			return
		}

		c.Next()
	}
}

// roleNames renders a requirement set for an access-denied message.
func roleNames(required []permissions.Role) string {
	if len(required) == 0 {
		return "Any valid role"
	}
	names := make([]string, len(required))
	for i, r := range required {
		names[i] = r.String()
	}
	return strings.Join(names, " or ")
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
