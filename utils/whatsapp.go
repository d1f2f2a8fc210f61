package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppRedirect is the deep-link payload returned with a new order so the
// buyer can message support with the order details prefilled.
type WhatsAppRedirect struct {
	URL     string `json:"url"`
	Number  string `json:"number"`
	Message string `json:"message"`
}

// BuildWhatsAppRedirect formats the wa.me link for the support contact. Pure
// formatting; the support number comes from configuration.
func BuildWhatsAppRedirect(supportNumber, phoneNumber string, orderID uint) WhatsAppRedirect {
	message := fmt.Sprintf(
		"Hello, I just purchased a virtual number %s from ETHERDOXSHEFZYSMS. Please process my order. My order ID is %d.",
		phoneNumber, orderID,
	)

	digits := strings.NewReplacer("+", "", " ", "").Replace(supportNumber)

	return WhatsAppRedirect{
		URL:     "https://wa.me/" + digits + "?text=" + url.QueryEscape(message),
		Number:  supportNumber,
		Message: message,
	}
}
