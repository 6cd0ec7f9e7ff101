package mailer

import (
	"bookify/src/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingConfirmation(t *testing.T) {
	booking := &models.Booking{
		BookingNumber: "BK20250601ABCDEF12",
		CheckIn:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Nights:        2,
		TotalAmount:   200,
		Currency:      "USD",
		User:          &models.User{Name: "Sam", Email: "sam@example.com"},
		Room:          &models.Room{RoomNumber: "101"},
		RoomType:      &models.RoomType{Name: "Deluxe"},
	}
	input, err := NewBookingConfirmation(booking)
	require.NoError(t, err)
	assert.Equal(t, []string{"sam@example.com"}, input.To)
	assert.Contains(t, input.Subject, "BK20250601ABCDEF12")
	assert.Contains(t, input.Body, "Room: 101 - Deluxe")
	assert.Contains(t, input.Body, "Check-in: 2025-06-01")
	assert.Contains(t, input.Body, "Total: 200.00 USD")
}

func TestNewBookingConfirmationRequiresEmail(t *testing.T) {
	_, err := NewBookingConfirmation(&models.Booking{})
	assert.Error(t, err)
}

func TestSendBookingConfirmationDisabled(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("MAIL_TRANSPORT", "")
	assert.False(t, Enabled())
	assert.NoError(t, SendBookingConfirmation(&models.Booking{}))

	t.Setenv("MAIL_TRANSPORT", "SES")
	assert.True(t, Enabled())
}
