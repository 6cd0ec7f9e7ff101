package common

import (
	"bookify/src/config"
	"bookify/src/db"
	"bookify/src/lib"
	"bookify/src/models"
	"bookify/src/types"
	"bookify/src/utils"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type CheckoutResult struct {
	SessionID   string           `json:"session_id"`
	RedirectURL string           `json:"redirect_url"`
	Bookings    []models.Booking `json:"bookings"`
}

// BuildCheckoutSessionInput prices each cart item per night in minor units
// and tags the session with the booking numbers and caller for the webhook.
func BuildCheckoutSessionInput(cart *Cart, bookingNumbers []string, userID uint, email string) types.CheckoutSessionInput {
	items := make([]types.CheckoutLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, types.CheckoutLineItem{
			Name:        fmt.Sprintf("%s - %s", item.RoomNumber, item.RoomTypeName),
			Description: fmt.Sprintf("Check-in: %s, Check-out: %s", utils.FormatDate(item.CheckIn), utils.FormatDate(item.CheckOut)),
			Currency:    cart.Currency,
			UnitAmount:  utils.ToMinorUnits(item.PricePerNight),
			Quantity:    int64(item.Nights),
		})
	}
	return types.CheckoutSessionInput{
		LineItems: items,
		Metadata: map[string]string{
			"bookingNumbers": strings.Join(bookingNumbers, ","),
			"userId":         strconv.FormatUint(uint64(userID), 10),
		},
		CustomerEmail: email,
		SuccessURL:    config.StripeSuccessURL(),
		CancelURL:     config.StripeCancelURL(),
	}
}

// Checkout books the cart and opens a payment session for it. If the session
// cannot be created the new bookings are cancelled so they stop holding rooms.
func Checkout(ctx context.Context, gateway lib.PaymentGateway, userID uint, email string, cart *Cart) (*CheckoutResult, error) {
	bookings, err := CreateBookings(userID, cart)
	if err != nil {
		return nil, err
	}
	input := BuildCheckoutSessionInput(cart, BookingNumbers(bookings), userID, email)
	session, err := gateway.CreateCheckoutSession(ctx, input)
	if err != nil {
		log.Printf("Error creating checkout session for user %d: %s\n", userID, err.Error())
		releaseBookings(bookings)
		return nil, types.ErrPaymentProvider
	}
	log.Printf("[CheckoutSession] %s opened for %s\n", session.ID, input.Metadata["bookingNumbers"])
	return &CheckoutResult{
		SessionID:   session.ID,
		RedirectURL: session.URL,
		Bookings:    bookings,
	}, nil
}

func releaseBookings(bookings []models.Booking) {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, b := range bookings {
			res := tx.
				Model(&models.Booking{}).
				Where("id = ? AND status = ?", b.ID, types.BOOKING_PENDING_PAYMENT).
				Updates(map[string]any{"status": types.BOOKING_CANCELLED, "updated_at": time.Now()})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := recordTransition(tx, b.ID, types.BOOKING_PENDING_PAYMENT, types.BOOKING_CANCELLED, models.TRAIL_INITIATOR_SYSTEM); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error releasing bookings %v: %s\n", BookingNumbers(bookings), err.Error())
	}
}

// ConfirmCheckoutSession handles the return from the payment page. The
// session must belong to userID; paid sessions confirm their bookings.
func ConfirmCheckoutSession(ctx context.Context, gateway lib.PaymentGateway, sessionID string, userID uint) ([]models.Booking, error) {
	session, err := gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Printf("Error retrieving checkout session %s: %s\n", sessionID, err.Error())
		return nil, types.ErrPaymentProvider
	}
	if session.Metadata["userId"] != strconv.FormatUint(uint64(userID), 10) {
		return nil, types.ErrNotOwner
	}
	numbers := splitBookingNumbers(session.Metadata["bookingNumbers"], session.Metadata["bookingNumber"])
	if session.PaymentStatus == paymentStatusPaid {
		if ok, err := ConfirmPayments(numbers, session.ID); !ok {
			log.Printf("Not every booking of session %s was confirmed: %v\n", session.ID, err)
		}
	}
	var bookings []models.Booking
	if len(numbers) == 0 {
		return bookings, nil
	}
	err = db.GetDb().
		Model(&models.Booking{}).
		Where("booking_number IN ? AND user_id = ?", numbers, userID).
		Preload("Room").
		Preload("RoomType").
		Order("id").
		Find(&bookings).
		Error
	if err != nil {
		log.Printf("Error loading bookings for session %s: %s\n", session.ID, err.Error())
		return nil, types.ErrPersistence
	}
	return bookings, nil
}
