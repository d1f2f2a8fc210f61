package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/config"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

func authRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(db, cfg, settlement.NewEngine(db))

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	return router
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	t.Run("Success", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":    "new@example.com",
			"username": "newuser",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"token"`)
		assert.Contains(t, w.Body.String(), `"referralCode"`)
		assert.NotContains(t, w.Body.String(), "secret123")

		var user models.User
		assert.NoError(t, db.Where("email = ?", "new@example.com").First(&user).Error)
		assert.NotEqual(t, "secret123", user.Password)
		assert.Equal(t, models.KycStatusNone, user.KycStatus)

		var activity models.Activity
		assert.NoError(t, db.Where("user_id = ?", user.ID).First(&activity).Error)
		assert.Equal(t, "User registration", activity.Action)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":    "new@example.com",
			"username": "another",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email already in use")
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":    "other@example.com",
			"username": "newuser",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Username already taken")
	})

	t.Run("Invalid Payload", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":    "not-an-email",
			"username": "x",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterWithReferralCode(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	referrer := seedUser(t, db, models.User{Username: "referrer"})

	t.Run("Invalid Code", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":      "friend@example.com",
			"username":   "friend",
			"password":   "secret123",
			"referredBy": "NOSUCHCODE",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid referral code")
	})

	t.Run("User Code Increments Referrer", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":      "friend@example.com",
			"username":   "friend",
			"password":   "secret123",
			"referredBy": referrer.ReferralCode,
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var updated models.User
		db.First(&updated, referrer.ID)
		assert.Equal(t, 1, updated.ReferralCount)
	})

	t.Run("Admin Code", func(t *testing.T) {
		assert.NoError(t, db.Save(&models.Setting{Key: models.SettingAdminCode, Value: "ETHERDOX"}).Error)

		w := doJSON(router, "POST", "/auth/register", gin.H{
			"email":      "insider@example.com",
			"username":   "insider",
			"password":   "secret123",
			"referredBy": "ETHERDOX",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		// The admin code credits nobody.
		var updated models.User
		db.First(&updated, referrer.ID)
		assert.Equal(t, 1, updated.ReferralCount)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := doJSON(router, "POST", "/auth/register", gin.H{
		"email":    "login@example.com",
		"username": "loginuser",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	t.Run("Success", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login", gin.H{
			"email":    "login@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token"`)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login", gin.H{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("Unknown Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/login", gin.H{
			"email":    "ghost@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Banned", func(t *testing.T) {
		db.Model(&models.User{}).Where("email = ?", "login@example.com").Update("is_banned", true)

		w := doJSON(router, "POST", "/auth/login", gin.H{
			"email":    "login@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Account has been banned")
	})
}
