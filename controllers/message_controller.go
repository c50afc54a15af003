package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/permissions"
)

// MessageController handles the tenant/client conversation threads.
type MessageController struct {
	DB *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage handles POST /api/v1/clients/:id/messages - appends a message
// to the conversation with a client. The sender side comes from the caller's
// role, never from the body.
func (m *MessageController) SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var client models.Client
	if err := m.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&client).Error; err != nil {
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CLIENT_NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Whitespace-only content is rejected before anything is written.
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Message content must not be empty",
			},
		})
		return
	}

	sender := models.SenderTenant
	if user.Role == permissions.RoleClient {
		sender = models.SenderClient
	}

	message := models.Message{
		TenantID: user.OrganizationID,
		ClientID: client.ID,
		Content:  content,
		Sender:   sender,
	}

	if err := m.DB.Create(&message).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create message",
			},
		})
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListMessages handles GET /api/v1/clients/:id/messages - the full thread in
// chronological order.
func (m *MessageController) ListMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var client models.Client
	if err := m.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), user.OrganizationID).
		First(&client).Error; err != nil {
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CLIENT_NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	var messages []models.Message
	if err := m.DB.Where("tenant_id = ? AND client_id = ?", user.OrganizationID, client.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}
