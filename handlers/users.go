package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

func (h *UserHandler) Profile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Activities(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var activities []models.Activity
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// Referrals lists the users who registered with the caller's referral code.
func (h *UserHandler) Referrals(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var referrals []models.User
	if err := h.db.Where("referred_by = ?", user.ReferralCode).Order("created_at DESC").Find(&referrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch referrals"})
		return
	}

	c.JSON(http.StatusOK, referrals)
}

func (h *UserHandler) Products(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var products []models.Product
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
