package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
)

// ChatHandler is the keyword-matched assistant. It scans the message for
// known topics and answers from a canned table; every exchange is persisted.
type ChatHandler struct {
	db *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

const defaultChatResponse = "I'm ETHERVOX AI, your virtual assistant. How can I help you today?"

var chatResponses = []struct {
	keywords []string
	response string
}{
	{
		keywords: []string{"referral", "refer"},
		response: "Our referral program is simple! You earn ₦100 for each new user you refer. Just share your unique referral link from your dashboard. The earnings go directly to your referral wallet which you can withdraw at any time!",
	},
	{
		keywords: []string{"payment", "pay", "transfer"},
		response: "We accept multiple payment methods: Bank transfer, wallet balance, and direct Opay transfers. After payment, your order will be processed immediately!",
	},
	{
		keywords: []string{"whatsapp", "number"},
		response: "Our WhatsApp numbers are sourced from trusted providers and delivered instantly after payment confirmation. After purchase, you'll receive the number and activation code. Numbers can be used for WhatsApp, Telegram, Signal, WeChat and other messaging apps!",
	},
	{
		keywords: []string{"kyc", "verify", "verification"},
		response: "KYC verification is required to unlock all platform features. Go to the KYC page from your dashboard, upload your ID (front and back) and a selfie. Our team reviews submissions within 24 hours. Approved users can access referral rewards and higher purchasing limits!",
	},
	{
		keywords: []string{"problem", "issue", "help"},
		response: "I'm sorry you're experiencing issues! For technical support, please describe your problem in detail. For payment issues, contact us at support@etherdoxshefzysms.com or message our admin on WhatsApp.",
	},
	{
		keywords: []string{"price", "cost", "expensive"},
		response: "Our number prices vary based on country and service type. Nigerian numbers start at ₦1,500, while US and UK numbers start at ₦3,500. Bulk discounts are available for purchases of 5 or more numbers. Check our store for current pricing and special offers!",
	},
	{
		keywords: []string{"wallet", "balance", "withdraw"},
		response: "You have two wallet types: your main balance for purchases and your referral wallet for referral earnings. You can withdraw from your referral wallet once you reach ₦1,000. Withdrawals are processed within 24 hours to your specified bank account.",
	},
	{
		keywords: []string{"country", "nigeria", "international"},
		response: "We offer numbers from multiple countries including Nigeria, Indonesia, United States, United Kingdom, Canada, Australia, Germany, France, Brazil, India, and China. Each country has different pricing and availability. Check our store for current inventory!",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		response: "Hello! Welcome to ETHERDOXSHEFZYSMS. I'm ETHERVOX AI, your personal assistant. How may I help you today? Feel free to ask about our services, payment methods, or referral program!",
	},
	{
		keywords: []string{"thank"},
		response: "You're welcome! I'm glad I could help. If you have any other questions, feel free to ask. We appreciate your business and trust in ETHERDOXSHEFZYSMS!",
	},
}

func matchChatResponse(message string) string {
	lower := strings.ToLower(message)
	for _, entry := range chatResponses {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.response
			}
		}
	}
	return defaultChatResponse
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
		return
	}

	chat := models.ChatMessage{
		UserID:   userID,
		Message:  req.Message,
		Response: matchChatResponse(req.Message),
	}
	if err := h.db.Create(&chat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save chat"})
		return
	}

	c.JSON(http.StatusCreated, chat)
}

func (h *ChatHandler) History(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var chats []models.ChatMessage
	if err := h.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&chats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch chats"})
		return
	}

	c.JSON(http.StatusOK, chats)
}
