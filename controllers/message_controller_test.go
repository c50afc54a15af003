package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/permissions"
)

func TestSendMessage(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	client := seedClient(t, db, "org_alpha", "Jordan Price")
	controller := NewMessageController(db)

	tests := []struct {
		name           string
		user           *permissions.UserData
		clientID       string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		expectedSender string
	}{
		{
			name:           "staff message is recorded as the tenant side",
			user:           testUser("org_alpha", permissions.RoleMember),
			clientID:       client.ID,
			requestBody:    map[string]interface{}{"content": "Your car is ready for pickup."},
			expectedStatus: http.StatusCreated,
			expectedSender: "tenant",
		},
		{
			name:           "client message is recorded as the client side",
			user:           testUser("org_alpha", permissions.RoleClient),
			clientID:       client.ID,
			requestBody:    map[string]interface{}{"content": "What time should I come by?"},
			expectedStatus: http.StatusCreated,
			expectedSender: "client",
		},
		{
			name:           "sender field in the body is ignored",
			user:           testUser("org_alpha", permissions.RoleMember),
			clientID:       client.ID,
			requestBody:    map[string]interface{}{"content": "Spoofed", "sender": "client"},
			expectedStatus: http.StatusCreated,
			expectedSender: "tenant",
		},
		{
			name:           "missing content is rejected",
			user:           testUser("org_alpha", permissions.RoleMember),
			clientID:       client.ID,
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "whitespace-only content is rejected",
			user:           testUser("org_alpha", permissions.RoleMember),
			clientID:       client.ID,
			requestBody:    map[string]interface{}{"content": "   \n\t  "},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "another tenant's client looks missing",
			user:           testUser("org_beta", permissions.RoleMember),
			clientID:       client.ID,
			requestBody:    map[string]interface{}{"content": "Hello"},
			expectedStatus: http.StatusNotFound,
			expectedError:  "CLIENT_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/clients/:id/messages", mockAuthMiddleware(tt.user, "mock-token"), controller.SendMessage)

			w, response := performJSON(t, router, http.MethodPost, "/clients/"+tt.clientID+"/messages", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assertErrorCode(t, response, tt.expectedError)
				return
			}

			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.expectedSender, data["sender"])
			assert.Equal(t, "org_alpha", data["tenant_id"])
		})
	}
}

func TestSendMessagePersistsNothingWhenRejected(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	client := seedClient(t, db, "org_alpha", "Jordan Price")
	controller := NewMessageController(db)

	router := setupTestRouter()
	router.POST("/clients/:id/messages", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.SendMessage)

	w, response := performJSON(t, router, http.MethodPost, "/clients/"+client.ID+"/messages",
		map[string]interface{}{"content": "  \t \n "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorCode(t, response, "VALIDATION_ERROR")

	var count int64
	db.Model(&models.Message{}).Count(&count)
	assert.Zero(t, count)
}

func TestListMessages(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	client := seedClient(t, db, "org_alpha", "Jordan Price")
	emptyClient := seedClient(t, db, "org_alpha", "Quiet Customer")
	controller := NewMessageController(db)

	seedMessage := func(content string, sender models.MessageSender) {
		message := models.Message{
			TenantID: "org_alpha",
			ClientID: client.ID,
			Content:  content,
			Sender:   sender,
		}
		if err := db.Create(&message).Error; err != nil {
			t.Fatalf("Failed to seed message: %v", err)
		}
	}
	seedMessage("First message from the shop", models.SenderTenant)
	seedMessage("Reply from the client", models.SenderClient)
	seedMessage("Second message from the shop", models.SenderTenant)

	t.Run("lists the thread in chronological order", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/clients/:id/messages", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.ListMessages)

		w, response := performJSON(t, router, http.MethodGet, "/clients/"+client.ID+"/messages", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].([]interface{})
		assert.Len(t, data, 3)
		assert.Equal(t, "First message from the shop", data[0].(map[string]interface{})["content"])
		assert.Equal(t, "Reply from the client", data[1].(map[string]interface{})["content"])
		assert.Equal(t, "Second message from the shop", data[2].(map[string]interface{})["content"])
	})

	t.Run("returns empty array when no messages exist", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/clients/:id/messages", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.ListMessages)

		w, response := performJSON(t, router, http.MethodGet, "/clients/"+emptyClient.ID+"/messages", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response["data"].([]interface{}), 0)
	})

	t.Run("another tenant cannot read the thread", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/clients/:id/messages", mockAuthMiddleware(testUser("org_beta", permissions.RoleMember), "mock-token"), controller.ListMessages)

		w, response := performJSON(t, router, http.MethodGet, "/clients/"+client.ID+"/messages", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "CLIENT_NOT_FOUND")
	})
}
