package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/models"
)

func chatRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewChatHandler(db)

	router := gin.New()
	router.Use(asUser(userID, false))
	router.POST("/ai-chat", handler.Send)
	router.GET("/ai-chat", handler.History)
	return router
}

func TestMatchChatResponse(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"Referral Keyword", "How does the referral program work?", "referral program"},
		{"Payment Keyword", "Can I pay with bank transfer?", "payment methods"},
		{"Kyc Keyword", "how do I verify my account", "KYC verification"},
		{"Greeting", "Hi there", "Welcome to ETHERDOXSHEFZYSMS"},
		{"Case Insensitive", "WHATSAPP numbers available?", "WhatsApp numbers"},
		{"No Match Falls Back", "asdf qwerty", defaultChatResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, matchChatResponse(tt.message), tt.contains)
		})
	}
}

func TestChatSend(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.User{Username: "chatter"})
	router := chatRouter(db, user.ID)

	w := doJSON(router, "POST", "/ai-chat", gin.H{"message": "tell me about the referral program"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var saved models.ChatMessage
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&saved).Error)
	assert.Equal(t, "tell me about the referral program", saved.Message)
	assert.Contains(t, saved.Response, "referral program")
}

func TestChatSendEmptyMessage(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.User{Username: "chatter"})
	router := chatRouter(db, user.ID)

	w := doJSON(router, "POST", "/ai-chat", gin.H{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message is required")
}

func TestChatHistoryScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.User{Username: "chatter"})
	other := seedUser(t, db, models.User{Username: "other"})

	doJSON(chatRouter(db, user.ID), "POST", "/ai-chat", gin.H{"message": "hello"})
	doJSON(chatRouter(db, user.ID), "POST", "/ai-chat", gin.H{"message": "price of numbers?"})
	doJSON(chatRouter(db, other.ID), "POST", "/ai-chat", gin.H{"message": "thanks"})

	w := doJSON(chatRouter(db, user.ID), "GET", "/ai-chat", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var chats []models.ChatMessage
	assert.NoError(t, db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&chats).Error)
	assert.Len(t, chats, 2)
	assert.Equal(t, "hello", chats[0].Message)
}
