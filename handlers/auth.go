package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/config"
	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

const tokenLifetime = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	engine *settlement.Engine
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, engine *settlement.Engine) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, engine: engine}
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required,min=3"`
	Password   string `json:"password" binding:"required,min=6"`
	ReferredBy string `json:"referredBy"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account. A referral code, when supplied, must
// be the configured admin code or another user's code; referring users earn
// a referral count increment.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		return
	}
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already taken"})
		return
	}

	referrerCode := ""
	if req.ReferredBy != "" {
		settings := settlement.LoadSettings(h.db)
		if settings.AdminCode == "" || req.ReferredBy != settings.AdminCode {
			var referrer models.User
			if err := h.db.Where("referral_code = ?", req.ReferredBy).First(&referrer).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid referral code"})
				return
			}
			referrerCode = referrer.ReferralCode
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		Password:     string(hash),
		ReferralCode: newReferralCode(),
		ReferredBy:   req.ReferredBy,
		KycStatus:    models.KycStatusNone,
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	if referrerCode != "" {
		h.db.Model(&models.User{}).
			Where("referral_code = ?", referrerCode).
			Update("referral_count", gorm.Expr("referral_count + 1"))
	}

	token, err := middleware.GenerateToken(user.ID, user.IsAdmin, h.cfg.JWTSecret, tokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	h.engine.LogActivity(user.ID, "User registration", "Completed")

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// Login authenticates by email and password and returns a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if user.IsBanned {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account has been banned"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.IsAdmin, h.cfg.JWTSecret, tokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	h.engine.LogActivity(user.ID, "User login", "Completed")

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func newReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
