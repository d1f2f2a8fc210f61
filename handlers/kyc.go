package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/middleware"
	"github.com/etherdox/ethersms/models"
	"github.com/etherdox/ethersms/settlement"
)

type KycHandler struct {
	db     *gorm.DB
	engine *settlement.Engine
}

func NewKycHandler(db *gorm.DB, engine *settlement.Engine) *KycHandler {
	return &KycHandler{db: db, engine: engine}
}

type SubmitKycRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	DocumentType   string `json:"documentType" binding:"required"`
	DocumentNumber string `json:"documentNumber"`
	FrontImage     string `json:"frontImage"`
	BackImage      string `json:"backImage"`
	Selfie         string `json:"selfie"`
}

func (h *KycHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req SubmitKycRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err.Error()})
		return
	}

	record, err := h.engine.SubmitKyc(userID, models.Kyc{
		FullName:       req.FullName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		FrontImage:     req.FrontImage,
		BackImage:      req.BackImage,
		Selfie:         req.Selfie,
	})
	if err != nil {
		respondSettlementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *KycHandler) Get(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var record models.Kyc
	if err := h.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "KYC not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}
