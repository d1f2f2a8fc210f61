package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWhatsAppRedirect(t *testing.T) {
	redirect := BuildWhatsAppRedirect("+234 708 850 1777", "+15550001111", 42)

	assert.Equal(t, "+234 708 850 1777", redirect.Number)
	assert.Contains(t, redirect.Message, "+15550001111")
	assert.Contains(t, redirect.Message, "order ID is 42")

	assert.True(t, strings.HasPrefix(redirect.URL, "https://wa.me/2347088501777?text="), redirect.URL)
	assert.NotContains(t, redirect.URL, " ")
}
