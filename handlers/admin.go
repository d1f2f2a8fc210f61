package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

// AdminHandler hosts the back-office mutation endpoints. Every update goes
// through an explicit per-entity request type exposing only the mutable
// fields; unknown fields are silently dropped and an update touching none of
// the allowed fields is rejected.
type AdminHandler struct {
	db     *gorm.DB
	engine *settlement.Engine
}

func NewAdminHandler(db *gorm.DB, engine *settlement.Engine) *AdminHandler {
	return &AdminHandler{db: db, engine: engine}
}

// --- Users ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

type UserAdminUpdate struct {
	Balance       *float64 `json:"balance"`
	IsAdmin       *bool    `json:"isAdmin"`
	IsBanned      *bool    `json:"isBanned"`
	ReferralCount *int     `json:"referralCount"`
}

func (u UserAdminUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Balance != nil {
		m["balance"] = *u.Balance
	}
	if u.IsAdmin != nil {
		m["is_admin"] = *u.IsAdmin
	}
	if u.IsBanned != nil {
		m["is_banned"] = *u.IsBanned
	}
	if u.ReferralCount != nil {
		m["referral_count"] = *u.ReferralCount
	}
	return m
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if user.ID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot modify own account through this endpoint"})
		return
	}

	var req UserAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	changes := req.changes()
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&user).Updates(changes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}

	h.engine.LogActivity(adminID, fmt.Sprintf("Admin updated user %d", user.ID), "Completed")

	c.JSON(http.StatusOK, user)
}

// --- Phone numbers ---

type CreatePhoneNumberRequest struct {
	Number  string  `json:"number" binding:"required"`
	Country string  `json:"country" binding:"required"`
	Price   float64 `json:"price" binding:"required,gt=0"`
}

func (h *AdminHandler) CreatePhoneNumber(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req CreatePhoneNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	number := models.PhoneNumber{
		Number:      req.Number,
		Country:     req.Country,
		Price:       req.Price,
		IsAvailable: true,
	}
	if err := h.db.Create(&number).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create phone number"})
		return
	}

	h.engine.LogActivity(adminID, "Added new phone number: "+number.Number, "Completed")

	c.JSON(http.StatusCreated, number)
}

func (h *AdminHandler) ListPhoneNumbers(c *gin.Context) {
	var numbers []models.PhoneNumber
	if err := h.db.Order("created_at DESC").Find(&numbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch phone numbers"})
		return
	}

	c.JSON(http.StatusOK, numbers)
}

type PhoneNumberAdminUpdate struct {
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"isAvailable"`
	Country     *string  `json:"country"`
}

func (u PhoneNumberAdminUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Price != nil {
		m["price"] = *u.Price
	}
	if u.IsAvailable != nil {
		m["is_available"] = *u.IsAvailable
	}
	if u.Country != nil {
		m["country"] = *u.Country
	}
	return m
}

func (h *AdminHandler) UpdatePhoneNumber(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var number models.PhoneNumber
	if err := h.db.First(&number, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Phone number not found"})
		return
	}

	var req PhoneNumberAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	changes := req.changes()
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&number).Updates(changes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update phone number"})
		return
	}

	h.engine.LogActivity(adminID, "Updated phone number: "+number.Number, "Completed")

	c.JSON(http.StatusOK, number)
}

func (h *AdminHandler) DeletePhoneNumber(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var number models.PhoneNumber
	if err := h.db.First(&number, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Phone number not found"})
		return
	}

	if err := h.db.Delete(&number).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete phone number"})
		return
	}

	h.engine.LogActivity(adminID, "Deleted phone number: "+number.Number, "Completed")

	c.JSON(http.StatusOK, gin.H{"message": "Phone number deleted successfully"})
}

// --- Orders ---

func (h *AdminHandler) ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := h.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

type OrderAdminUpdate struct {
	Status *string `json:"status"`
	Code   *string `json:"code"`
}

func (u OrderAdminUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Status != nil {
		m["status"] = *u.Status
	}
	if u.Code != nil {
		m["code"] = *u.Code
	}
	return m
}

func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	var req OrderAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	changes := req.changes()
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&order).Updates(changes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	if req.Status != nil && *req.Status == models.OrderStatusCompleted {
		action := "Purchased WhatsApp number"
		if order.IsReferralReward {
			action = "Claimed free number with referrals"
		}
		h.engine.LogActivity(order.UserID, action, "Completed")
	}

	if req.Status != nil {
		h.engine.LogActivity(adminID, fmt.Sprintf("Updated order %d status to %s", order.ID, *req.Status), "Completed")
	} else {
		h.engine.LogActivity(adminID, fmt.Sprintf("Updated order %d", order.ID), "Completed")
	}

	c.JSON(http.StatusOK, order)
}

// --- Payments ---

func (h *AdminHandler) ListPayments(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if c.Query("pending") == "true" {
		query = query.Where("status = ?", models.PaymentStatusPending)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

type PaymentAdminUpdate struct {
	Status *string `json:"status"`
}

// UpdatePayment delegates to the settlement engine; completing a top-up is
// the only path that credits a balance.
func (h *AdminHandler) UpdatePayment(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req PaymentAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status field is required"})
		return
	}

	var payment models.Payment
	if err := h.db.First(&payment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	updated, err := h.engine.TransitionPayment(adminID, payment.ID, *req.Status)
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --- KYC ---

func (h *AdminHandler) ListKyc(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if c.Query("pending") == "true" {
		query = query.Where("status = ?", models.KycStatusPending)
	}

	var records []models.Kyc
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch KYC records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

type KycAdminUpdate struct {
	Status *string `json:"status"`
}

func (h *AdminHandler) UpdateKyc(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req KycAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status field is required"})
		return
	}
	if *req.Status != models.KycStatusApproved && *req.Status != models.KycStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be approved or rejected"})
		return
	}

	var record models.Kyc
	if err := h.db.First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "KYC record not found"})
		return
	}

	reviewed, err := h.engine.ReviewKyc(adminID, record.ID, *req.Status)
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviewed)
}

// --- Settings ---

func (h *AdminHandler) ListSettings(c *gin.Context) {
	var settings []models.Setting
	if err := h.db.Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings upserts string-valued keys; anything else in the body is
// ignored.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No settings to update"})
		return
	}

	var updated []string
	for key, value := range body {
		if s, ok := value.(string); ok {
			if err := h.db.Save(&models.Setting{Key: key, Value: s}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update settings"})
				return
			}
			updated = append(updated, key)
		}
	}

	if len(updated) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid settings to update"})
		return
	}

	h.engine.LogActivity(adminID, "Updated system settings: "+strings.Join(updated, ", "), "Completed")

	var settings []models.Setting
	h.db.Find(&settings)
	c.JSON(http.StatusOK, settings)
}

// --- Broadcast ---

type BroadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *AdminHandler) Broadcast(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message and title are required"})
		return
	}

	h.engine.LogActivity(adminID, "Broadcast message: "+req.Title, "Completed")

	c.JSON(http.StatusOK, gin.H{"message": "Broadcast sent successfully"})
}

// --- Products ---

func (h *AdminHandler) ListPendingProducts(c *gin.Context) {
	var products []models.Product
	err := h.db.Where("is_admin_approved = ?", false).Order("created_at DESC").Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

type ProductAdminUpdate struct {
	IsAdminApproved *bool    `json:"isAdminApproved"`
	Status          *string  `json:"status"`
	Price           *float64 `json:"price"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
}

func (u ProductAdminUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.IsAdminApproved != nil {
		m["is_admin_approved"] = *u.IsAdminApproved
	}
	if u.Status != nil {
		m["status"] = *u.Status
	}
	if u.Price != nil {
		m["price"] = *u.Price
	}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	return m
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var req ProductAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	changes := req.changes()
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&product).Updates(changes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	action := "Admin updated your marketplace product"
	if req.IsAdminApproved != nil && *req.IsAdminApproved {
		action = "Admin approved your marketplace product"
	}
	h.engine.LogActivity(product.UserID, action, "Completed")

	c.JSON(http.StatusOK, product)
}

// --- Services ---

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	service := models.Service{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}
	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *AdminHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

type ServiceAdminUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
}

func (u ServiceAdminUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Slug != nil {
		m["slug"] = *u.Slug
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	if u.Icon != nil {
		m["icon"] = *u.Icon
	}
	if u.IsActive != nil {
		m["is_active"] = *u.IsActive
	}
	return m
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
		return
	}

	var req ServiceAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	changes := req.changes()
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&service).Updates(changes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// --- Countries ---

type CreateCountryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
	Flag string `json:"flag"`
}

func (h *AdminHandler) CreateCountry(c *gin.Context) {
	var req CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	country := models.Country{
		Name:     req.Name,
		Code:     req.Code,
		Flag:     req.Flag,
		IsActive: true,
	}
	if err := h.db.Create(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create country"})
		return
	}

	c.JSON(http.StatusCreated, country)
}

func (h *AdminHandler) ListCountries(c *gin.Context) {
	var countries []models.Country
	if err := h.db.Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch countries"})
		return
	}

	c.JSON(http.StatusOK, countries)
}

type CountryAdminUpdate struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Flag     *string `json:"flag"`
	IsActive *bool   `json:"isActive"`
}

func (u CountryAdminUpdate) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Code != nil {
		m["code"] = *u.Code
	}
	if u.Flag != nil {
		m["flag"] = *u.Flag
	}
	if u.IsActive != nil {
		m["is_active"] = *u.IsActive
	}
	return m
}

func (h *AdminHandler) UpdateCountry(c *gin.Context) {
	var country models.Country
	if err := h.db.First(&country, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Country not found"})
		return
	}

	var req CountryAdminUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	changes := req.changes()
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&country).Updates(changes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update country"})
		return
	}

	c.JSON(http.StatusOK, country)
}
