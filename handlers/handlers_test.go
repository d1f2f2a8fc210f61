package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/config"
	"github.com/etherdox/ethersms/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, config.Migrate(db))
	return db
}

// asUser stands in for the JWT middleware in handler tests.
func asUser(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, u models.User) models.User {
	if u.Email == "" {
		u.Email = u.Username + "@example.com"
	}
	if u.Password == "" {
		u.Password = "irrelevant-hash"
	}
	if u.ReferralCode == "" {
		u.ReferralCode = "REF" + u.Username
	}
	assert.NoError(t, db.Create(&u).Error)
	return u
}

func seedNumber(t *testing.T, db *gorm.DB, price float64) models.PhoneNumber {
	n := models.PhoneNumber{Number: "+15550001111", Country: "US", Price: price, IsAvailable: true}
	assert.NoError(t, db.Create(&n).Error)
	return n
}
