package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

// CatalogHandler serves the browsing surface: phone numbers, services,
// countries and marketplace products.
type CatalogHandler struct {
	db     *gorm.DB
	engine *settlement.Engine
}

func NewCatalogHandler(db *gorm.DB, engine *settlement.Engine) *CatalogHandler {
	return &CatalogHandler{db: db, engine: engine}
}

func (h *CatalogHandler) PhoneNumbers(c *gin.Context) {
	var numbers []models.PhoneNumber
	if err := h.db.Where("is_available = ?", true).Order("created_at DESC").Find(&numbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch phone numbers"})
		return
	}

	c.JSON(http.StatusOK, numbers)
}

func (h *CatalogHandler) Services(c *gin.Context) {
	var services []models.Service
	if err := h.db.Where("is_active = ?", true).Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) Service(c *gin.Context) {
	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil || !service.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) Countries(c *gin.Context) {
	var countries []models.Country
	if err := h.db.Where("is_active = ?", true).Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch countries"})
		return
	}

	c.JSON(http.StatusOK, countries)
}

func (h *CatalogHandler) Country(c *gin.Context) {
	var country models.Country
	if err := h.db.First(&country, c.Param("id")).Error; err != nil || !country.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"message": "Country not found"})
		return
	}

	c.JSON(http.StatusOK, country)
}

// Products lists only admin-approved, active marketplace products.
func (h *CatalogHandler) Products(c *gin.Context) {
	var products []models.Product
	err := h.db.Where("is_admin_approved = ? AND status = ?", true, models.ProductStatusActive).
		Order("created_at DESC").Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) Product(c *gin.Context) {
	var product models.Product
	err := h.db.First(&product, c.Param("id")).Error
	if err != nil || !product.IsAdminApproved || product.Status != models.ProductStatusActive {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl"`
}

// CreateProduct uploads a marketplace product. Non-admin sellers need an
// approved KYC; their products await admin approval.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if !user.IsAdmin && user.KycStatus != models.KycStatusApproved {
		c.JSON(http.StatusForbidden, gin.H{"message": "KYC verification required to upload products"})
		return
	}

	product := models.Product{
		UserID:          user.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		Status:          models.ProductStatusActive,
		IsAdminApproved: user.IsAdmin,
	}
	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	status := "Pending approval"
	if user.IsAdmin {
		status = "Completed"
	}
	h.engine.LogActivity(user.ID, "Uploaded new product to marketplace", status)

	c.JSON(http.StatusCreated, product)
}
