package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

type PaymentHandler struct {
	db     *gorm.DB
	engine *settlement.Engine
}

func NewPaymentHandler(db *gorm.DB, engine *settlement.Engine) *PaymentHandler {
	return &PaymentHandler{db: db, engine: engine}
}

type CreatePaymentRequest struct {
	OrderID *uint   `json:"orderId"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	payment, err := h.engine.SubmitPayment(userID, req.OrderID, req.Amount)
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var payments []models.Payment
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
