package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/config"
	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
	"github.com/etherdox/ethersms/utils"
)

type OrderHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	engine *settlement.Engine
}

func NewOrderHandler(db *gorm.DB, cfg *config.Config, engine *settlement.Engine) *OrderHandler {
	return &OrderHandler{db: db, cfg: cfg, engine: engine}
}

type CreateOrderRequest struct {
	PhoneNumberID    uint `json:"phoneNumberId" binding:"required"`
	IsReferralReward bool `json:"isReferralReward"`
}

type orderResponse struct {
	models.Order
	WhatsappRedirect utils.WhatsAppRedirect `json:"whatsappRedirect"`
}

// Create places an order through the settlement engine and returns it with
// the support deep link.
func (h *OrderHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	order, err := h.engine.PlaceOrder(userID, req.PhoneNumberID, req.IsReferralReward)
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	var number models.PhoneNumber
	h.db.First(&number, order.PhoneNumberID)

	c.JSON(http.StatusCreated, orderResponse{
		Order:            *order,
		WhatsappRedirect: utils.BuildWhatsAppRedirect(h.cfg.SupportWhatsApp, number.Number, order.ID),
	})
}

func (h *OrderHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var orders []models.Order
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Get returns a single order. Users can only see their own; admins see all.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if order.UserID != userID && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, order)
}
