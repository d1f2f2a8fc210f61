package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/etherdox/ethersms/settlement"
)

// respondSettlementError maps settlement engine errors onto HTTP responses.
// Business-rule failures carry their state snapshots; anything unexpected is
// logged and reported as a generic 500.
func respondSettlementError(c *gin.Context, err error) {
	var insufficientBalance *settlement.InsufficientBalanceError
	var insufficientReferrals *settlement.InsufficientReferralsError
	var kycSubmitted *settlement.KycAlreadySubmittedError

	switch {
	case errors.Is(err, settlement.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, settlement.ErrPhoneNumberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Phone number not found"})
	case errors.Is(err, settlement.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	case errors.Is(err, settlement.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
	case errors.Is(err, settlement.ErrKycNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "KYC record not found"})
	case errors.Is(err, settlement.ErrNumberUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number is not available"})
	case errors.Is(err, settlement.ErrOrderNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"message": "Order doesn't belong to user"})
	case errors.Is(err, settlement.ErrOrderNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order is not pending payment"})
	case errors.Is(err, settlement.ErrPaymentNotPending):
		c.JSON(http.StatusConflict, gin.H{"message": "Payment has already been processed"})
	case errors.Is(err, settlement.ErrKycRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "KYC verification required to claim referral rewards"})
	case errors.As(err, &insufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":  "Insufficient balance",
			"balance":  insufficientBalance.Balance,
			"required": insufficientBalance.Required,
		})
	case errors.As(err, &insufficientReferrals):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Not enough referrals. Need %d referrals to claim a free number.", insufficientReferrals.Needed),
			"current": insufficientReferrals.Current,
			"needed":  insufficientReferrals.Needed,
		})
	case errors.As(err, &kycSubmitted):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "KYC already submitted",
			"status":  kycSubmitted.Status,
		})
	default:
		zap.L().Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
