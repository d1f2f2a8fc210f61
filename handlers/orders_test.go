package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/config"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

func orderRouter(db *gorm.DB, userID uint, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret", SupportWhatsApp: "+2347088501777"}
	handler := NewOrderHandler(db, cfg, settlement.NewEngine(db))

	router := gin.New()
	router.Use(asUser(userID, isAdmin))
	router.POST("/orders", handler.Create)
	router.GET("/orders", handler.List)
	router.GET("/orders/:id", handler.Get)
	return router
}

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.User{Username: "buyer", Balance: 1000})
	number := seedNumber(t, db, 500)
	router := orderRouter(db, user.ID, false)

	w := doJSON(router, "POST", "/orders", gin.H{"phoneNumberId": number.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		models.Order
		WhatsappRedirect struct {
			URL     string `json:"url"`
			Number  string `json:"number"`
			Message string `json:"message"`
		} `json:"whatsappRedirect"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 500.0, resp.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, resp.Status)
	assert.Contains(t, resp.WhatsappRedirect.URL, "https://wa.me/2347088501777")
	assert.Contains(t, resp.WhatsappRedirect.Message, number.Number)

	var updated models.User
	db.First(&updated, user.ID)
	assert.Equal(t, 500.0, updated.Balance)
}

func TestCreateOrderInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.User{Username: "broke", Balance: 100})
	number := seedNumber(t, db, 500)
	router := orderRouter(db, user.ID, false)

	w := doJSON(router, "POST", "/orders", gin.H{"phoneNumberId": number.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient balance", resp["message"])
	assert.Equal(t, 100.0, resp["balance"])
	assert.Equal(t, 500.0, resp["required"])
}

func TestCreateOrderReferralRewardShort(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Save(&models.Setting{Key: models.SettingKycRequiredForReferral, Value: "false"}).Error)
	user := seedUser(t, db, models.User{Username: "almost", ReferralCount: 19})
	number := seedNumber(t, db, 500)
	router := orderRouter(db, user.ID, false)

	w := doJSON(router, "POST", "/orders", gin.H{"phoneNumberId": number.ID, "isReferralReward": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 19.0, resp["current"])
	assert.Equal(t, 20.0, resp["needed"])
}

func TestCreateOrderMissingNumber(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.User{Username: "buyer", Balance: 1000})
	router := orderRouter(db, user.ID, false)

	w := doJSON(router, "POST", "/orders", gin.H{"phoneNumberId": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Phone number not found")
}

func TestGetOrderAccess(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, models.User{Username: "owner", Balance: 1000})
	stranger := seedUser(t, db, models.User{Username: "stranger"})
	admin := seedUser(t, db, models.User{Username: "admin", IsAdmin: true})
	number := seedNumber(t, db, 500)

	order, err := settlement.NewEngine(db).PlaceOrder(owner.ID, number.ID, false)
	assert.NoError(t, err)

	path := fmt.Sprintf("/orders/%d", order.ID)

	w := doJSON(orderRouter(db, owner.ID, false), "GET", path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(orderRouter(db, stranger.ID, false), "GET", path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(orderRouter(db, admin.ID, true), "GET", path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(orderRouter(db, owner.ID, false), "GET", "/orders/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
