package mailer

import (
	"bookify/src/config"
	"bookify/src/lib"
	awslib "bookify/src/lib/aws"
	"bookify/src/models"
	"bookify/src/utils"
	"context"
	"errors"
	"fmt"
	"strings"
)

// Enabled reports whether confirmations can be delivered by the configured
// transport.
func Enabled() bool {
	if config.MailTransport() == "ses" {
		return true
	}
	return lib.SMTPConfigured()
}

// NewBookingConfirmation renders the confirmation email for a paid booking.
// booking must have User, Room and RoomType loaded.
func NewBookingConfirmation(booking *models.Booking) (*lib.SendMailInput, error) {
	if booking.User == nil || booking.User.Email == "" {
		return nil, errors.New("booking has no guest email")
	}
	room := ""
	if booking.Room != nil {
		room = booking.Room.RoomNumber
	}
	roomType := ""
	if booking.RoomType != nil {
		roomType = booking.RoomType.Name
	}
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", booking.User.Name)
	fmt.Fprintf(&body, "Your booking %s is confirmed.\n\n", booking.BookingNumber)
	fmt.Fprintf(&body, "Room: %s - %s\n", room, roomType)
	fmt.Fprintf(&body, "Check-in: %s\n", utils.FormatDate(booking.CheckIn))
	fmt.Fprintf(&body, "Check-out: %s\n", utils.FormatDate(booking.CheckOut))
	fmt.Fprintf(&body, "Nights: %d\n", booking.Nights)
	fmt.Fprintf(&body, "Total: %.2f %s\n", booking.TotalAmount, booking.Currency)
	return &lib.SendMailInput{
		From:     config.MailFrom(),
		FromName: "Bookify",
		To:       []string{booking.User.Email},
		Subject:  fmt.Sprintf("Booking %s confirmed", booking.BookingNumber),
		Body:     body.String(),
	}, nil
}

func SendBookingConfirmation(booking *models.Booking) error {
	if !Enabled() {
		return nil
	}
	input, err := NewBookingConfirmation(booking)
	if err != nil {
		return err
	}
	if config.MailTransport() == "ses" {
		return awslib.SESSendMail(context.Background(), input)
	}
	return lib.SendMail(input)
}
