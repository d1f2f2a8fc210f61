// Package settlement holds the order, payment and KYC state transitions.
// Every operation runs inside a single database transaction and mutates
// balances and referral counts with conditional updates, so concurrent
// requests cannot both pass a check and then both spend the same funds.
package settlement

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/models"
)

type Engine struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, log: zap.L().Named("settlement")}
}

// PlaceOrder executes order creation for the given user: either a paid
// purchase debited from the balance, or a referral reward that consumes the
// configured number of referrals. The phone number is marked unavailable in
// the same transaction, so a number can only be sold once.
func (e *Engine) PlaceOrder(userID, phoneNumberID uint, isReferralReward bool) (*models.Order, error) {
	var order models.Order

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var number models.PhoneNumber
		if err := tx.First(&number, phoneNumberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPhoneNumberNotFound
			}
			return err
		}

		if !number.IsAvailable {
			return ErrNumberUnavailable
		}

		var totalAmount float64
		if isReferralReward {
			settings := LoadSettings(tx)

			if user.ReferralCount < settings.ReferralsNeeded {
				return &InsufficientReferralsError{Current: user.ReferralCount, Needed: settings.ReferralsNeeded}
			}
			if settings.KycRequiredForReferral && user.KycStatus != models.KycStatusApproved {
				return ErrKycRequired
			}

			res := tx.Model(&models.User{}).
				Where("id = ? AND referral_count >= ?", user.ID, settings.ReferralsNeeded).
				Update("referral_count", gorm.Expr("referral_count - ?", settings.ReferralsNeeded))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientReferralsError{Current: user.ReferralCount, Needed: settings.ReferralsNeeded}
			}
			totalAmount = 0
		} else {
			if user.Balance < number.Price {
				return &InsufficientBalanceError{Balance: user.Balance, Required: number.Price}
			}

			res := tx.Model(&models.User{}).
				Where("id = ? AND balance >= ?", user.ID, number.Price).
				Update("balance", gorm.Expr("balance - ?", number.Price))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientBalanceError{Balance: user.Balance, Required: number.Price}
			}
			totalAmount = number.Price
		}

		res := tx.Model(&models.PhoneNumber{}).
			Where("id = ? AND is_available = ?", number.ID, true).
			Update("is_available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNumberUnavailable
		}

		order = models.Order{
			UserID:           user.ID,
			PhoneNumberID:    number.ID,
			TotalAmount:      totalAmount,
			IsReferralReward: isReferralReward,
			Status:           models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		action := "Purchased WhatsApp number"
		if isReferralReward {
			action = "Claimed free number with referrals"
		}
		return logActivity(tx, user.ID, action, "Completed")
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("order placed",
		zap.Uint("userId", order.UserID),
		zap.Uint("orderId", order.ID),
		zap.Bool("referralReward", order.IsReferralReward),
		zap.Float64("totalAmount", order.TotalAmount),
	)
	return &order, nil
}

// SubmitPayment records a pending payment. With an order id it must
// reference the caller's own pending order; without one it is a balance
// top-up awaiting admin confirmation.
func (e *Engine) SubmitPayment(userID uint, orderID *uint, amount float64) (*models.Payment, error) {
	var payment models.Payment

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if orderID != nil {
			var order models.Order
			if err := tx.First(&order, *orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}
			if order.UserID != user.ID {
				return ErrOrderNotOwned
			}
			if order.Status != models.OrderStatusPending {
				return ErrOrderNotPending
			}
		}

		payment = models.Payment{
			UserID:    user.ID,
			OrderID:   orderID,
			Amount:    amount,
			Reference: newPaymentReference(),
			Status:    models.PaymentStatusPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		action := "Added funds to account"
		if orderID != nil {
			action = "Payment submitted for order"
		}
		return logActivity(tx, user.ID, action, "Pending")
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("payment submitted",
		zap.Uint("userId", payment.UserID),
		zap.Uint("paymentId", payment.ID),
		zap.String("reference", payment.Reference),
	)
	return &payment, nil
}

// TransitionPayment applies an admin status change. Completing a top-up
// credits the user's balance; the transition out of pending is conditional,
// so repeating it cannot credit twice. Completing an order-linked payment is
// bookkeeping only, since the balance was already debited when the order was
// placed.
func (e *Engine) TransitionPayment(adminID, paymentID uint, status string) (*models.Payment, error) {
	var payment models.Payment

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if status == models.PaymentStatusCompleted {
			res := tx.Model(&models.Payment{}).
				Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
				Update("status", models.PaymentStatusCompleted)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrPaymentNotPending
			}

			if payment.OrderID == nil {
				res := tx.Model(&models.User{}).
					Where("id = ?", payment.UserID).
					Update("balance", gorm.Expr("balance + ?", payment.Amount))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrUserNotFound
				}
				if err := logActivity(tx, payment.UserID, "Added funds to account", "Completed"); err != nil {
					return err
				}
			}
		} else {
			if err := tx.Model(&payment).Update("status", status).Error; err != nil {
				return err
			}
		}
		payment.Status = status

		return logActivity(tx, adminID, "Updated payment "+payment.Reference+" status to "+status, "Completed")
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("payment transitioned",
		zap.Uint("paymentId", payment.ID),
		zap.String("status", payment.Status),
		zap.Uint("adminId", adminID),
	)
	return &payment, nil
}

// SubmitKyc stores the verification documents and moves the user to the
// pending KYC status. Each user gets at most one record.
func (e *Engine) SubmitKyc(userID uint, submission models.Kyc) (*models.Kyc, error) {
	var record models.Kyc

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var existing models.Kyc
		err := tx.Where("user_id = ?", user.ID).First(&existing).Error
		if err == nil {
			return &KycAlreadySubmittedError{Status: existing.Status}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record = submission
		record.ID = 0
		record.UserID = user.ID
		record.Status = models.KycStatusPending
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := tx.Model(&user).Update("kyc_status", models.KycStatusPending).Error; err != nil {
			return err
		}

		return logActivity(tx, user.ID, "Submitted KYC documents", "Pending")
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("kyc submitted", zap.Uint("userId", record.UserID), zap.Uint("kycId", record.ID))
	return &record, nil
}

// ReviewKyc applies the admin decision to the record and propagates it to
// the user, whose kycStatus gates referral rewards and product uploads.
func (e *Engine) ReviewKyc(adminID, kycID uint, status string) (*models.Kyc, error) {
	var record models.Kyc

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, kycID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrKycNotFound
			}
			return err
		}

		if err := tx.Model(&record).Update("status", status).Error; err != nil {
			return err
		}
		record.Status = status

		if err := tx.Model(&models.User{}).Where("id = ?", record.UserID).
			Update("kyc_status", status).Error; err != nil {
			return err
		}

		outcome := "Rejected"
		if status == models.KycStatusApproved {
			outcome = "Approved"
		}
		if err := logActivity(tx, record.UserID, "KYC verification", outcome); err != nil {
			return err
		}
		return logActivity(tx, adminID, "Updated KYC status to "+status, "Completed")
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("kyc reviewed",
		zap.Uint("kycId", record.ID),
		zap.String("status", record.Status),
		zap.Uint("adminId", adminID),
	)
	return &record, nil
}

// LogActivity appends an audit record outside any settlement transaction.
// Failures are logged and swallowed; the primary state change has already
// landed.
func (e *Engine) LogActivity(userID uint, action, status string) {
	if err := logActivity(e.db, userID, action, status); err != nil {
		e.log.Error("failed to write activity", zap.Uint("userId", userID), zap.String("action", action), zap.Error(err))
	}
}

func logActivity(tx *gorm.DB, userID uint, action, status string) error {
	return tx.Create(&models.Activity{
		UserID: userID,
		Action: action,
		Status: status,
	}).Error
}

func newPaymentReference() string {
	return "PAY-" + strings.ToUpper(uuid.NewString()[:8])
}
