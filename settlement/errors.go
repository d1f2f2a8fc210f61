package settlement

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing or mis-stated entities. Handlers map these to
// HTTP status codes.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPhoneNumberNotFound = errors.New("phone number not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrKycNotFound         = errors.New("kyc record not found")
	ErrNumberUnavailable   = errors.New("phone number is not available")
	ErrOrderNotOwned       = errors.New("order doesn't belong to user")
	ErrOrderNotPending     = errors.New("order is not pending payment")
	ErrPaymentNotPending   = errors.New("payment has already been processed")
	ErrKycRequired         = errors.New("kyc verification required to claim referral rewards")
)

// InsufficientBalanceError reports the balance snapshot taken at decision
// time alongside the rejection.
type InsufficientBalanceError struct {
	Balance  float64
	Required float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %.2f, need %.2f", e.Balance, e.Required)
}

// InsufficientReferralsError reports how many referrals the user holds
// against the configured threshold.
type InsufficientReferralsError struct {
	Current int
	Needed  int
}

func (e *InsufficientReferralsError) Error() string {
	return fmt.Sprintf("not enough referrals: have %d, need %d", e.Current, e.Needed)
}

// KycAlreadySubmittedError carries the status of the existing record so the
// caller can report it.
type KycAlreadySubmittedError struct {
	Status string
}

func (e *KycAlreadySubmittedError) Error() string {
	return fmt.Sprintf("kyc already submitted, status: %s", e.Status)
}
