package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{0, "NGN", "₦0.00"},
		{1000, "NGN", "₦1,000.00"},
		{1234567.5, "ngn", "₦1,234,567.50"},
		{999, "GHS", "GH₵999.00"},
		{-2500, "NGN", "-₦2,500.00"},
		{12, "EUR", "EUR 12.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money(tt.amount, tt.currency))
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "0", badge(0))
	assert.Equal(t, "99", badge(99))
	assert.Equal(t, "99+", badge(100))
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "05 Mar 2025", shortDate(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", shortDate(time.Time{}))
}
