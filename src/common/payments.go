package common

import (
	"bookify/src/db"
	"bookify/src/lib/mailer"
	"bookify/src/models"
	"bookify/src/types"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookOutcome string

const (
	WEBHOOK_PROCESSED WebhookOutcome = "processed"
	WEBHOOK_IGNORED   WebhookOutcome = "ignored"
)

const (
	checkoutCompletedEvent = "checkout.session.completed"
	paymentStatusPaid      = "paid"
)

// ConfirmPayment marks one booking paid under txnID. It returns false when the
// booking number is unknown.
func ConfirmPayment(bookingNumber, txnID string) (bool, error) {
	db := db.GetDb()
	var confirmed *models.Booking
	found := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		found, confirmed, err = confirmBookingPayment(tx, bookingNumber, txnID)
		return err
	})
	if err != nil {
		log.Printf("Error confirming payment %s for booking %s: %s\n", txnID, bookingNumber, err.Error())
		return false, types.ErrPersistence
	}
	if confirmed != nil && mailer.Enabled() {
		go notifyConfirmed([]uint{confirmed.ID})
	}
	return found, nil
}

// ConfirmPayments confirms each booking on its own. Earlier successes stay
// committed when a later one fails; the result is true only if all succeeded.
func ConfirmPayments(bookingNumbers []string, txnID string) (bool, error) {
	allOK := true
	var errs []error
	for _, number := range bookingNumbers {
		ok, err := ConfirmPayment(number, txnID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", number, err))
		}
		if !ok || err != nil {
			allOK = false
		}
	}
	return allOK, errors.Join(errs...)
}

// confirmBookingPayment moves a pending booking to Confirmed and upserts its
// payment row. Cancelled or completed bookings keep their status but the
// payment is still recorded.
func confirmBookingPayment(tx *gorm.DB, bookingNumber, txnID string) (bool, *models.Booking, error) {
	booking, err := GetBookingByNumber(tx, bookingNumber)
	if errors.Is(err, types.ErrBookingNotFound) {
		log.Printf("Payment %s references unknown booking %s, skipping\n", txnID, bookingNumber)
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}

	var confirmed *models.Booking
	now := time.Now()
	switch {
	case booking.Status == types.BOOKING_PENDING_PAYMENT:
		res := tx.
			Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, types.BOOKING_PENDING_PAYMENT).
			Updates(map[string]any{
				"status":            types.BOOKING_CONFIRMED,
				"payment_reference": txnID,
				"updated_at":        now,
			})
		if res.Error != nil {
			return false, nil, res.Error
		}
		if res.RowsAffected > 0 {
			if err := recordTransition(tx, booking.ID, booking.Status, types.BOOKING_CONFIRMED, models.TRAIL_INITIATOR_PAYMENT); err != nil {
				return false, nil, err
			}
			booking.Status = types.BOOKING_CONFIRMED
			confirmed = booking
		}
	case booking.Status == types.BOOKING_CONFIRMED:
		if booking.PaymentReference == nil {
			if err := tx.
				Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Updates(map[string]any{"payment_reference": txnID, "updated_at": now}).
				Error; err != nil {
				return false, nil, err
			}
		}
	case booking.Status.IsTerminal():
		log.Printf("Payment %s received for %s booking %s, status left unchanged\n", txnID, booking.Status, booking.BookingNumber)
	}

	payment := models.Payment{
		BookingID:             booking.ID,
		Provider:              types.PAYMENT_PROVIDER_STRIPE,
		ProviderTransactionID: txnID,
		Amount:                booking.TotalAmount,
		Currency:              booking.Currency,
		Status:                types.PAYMENT_SUCCEEDED,
	}
	if err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_transaction_id"}, {Name: "booking_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&payment).
		Error; err != nil {
		return false, nil, err
	}
	return true, confirmed, nil
}

// ParseBookingNumbers reads the comma-joined bookingNumbers metadata value,
// falling back to the single bookingNumber key older sessions carry.
func ParseBookingNumbers(metadata gjson.Result) []string {
	return splitBookingNumbers(metadata.Get("bookingNumbers").String(), metadata.Get("bookingNumber").String())
}

func splitBookingNumbers(list, legacy string) []string {
	raw := list
	if strings.TrimSpace(raw) == "" {
		raw = legacy
	}
	var numbers []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// VerifyStripeEvent checks the signature header against secret before the
// payload is decoded.
func VerifyStripeEvent(payload []byte, header, secret string) (stripe.Event, error) {
	if secret == "" {
		return stripe.Event{}, types.ErrWebhookNotConfigured
	}
	if err := webhook.ValidatePayload(payload, header, secret); err != nil {
		log.Printf("Error verifying webhook signature: %s\n", err.Error())
		return stripe.Event{}, types.ErrInvalidSignature
	}
	event, err := webhook.ConstructEventWithOptions(payload, header, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		log.Printf("Error decoding webhook payload: %s\n", err.Error())
		return stripe.Event{}, types.ErrMalformedPayload
	}
	return event, nil
}

// ProcessStripeEvent confirms the bookings named by a paid checkout session.
// Every booking and payment change for the event commits together.
func ProcessStripeEvent(event stripe.Event) (WebhookOutcome, error) {
	if string(event.Type) != checkoutCompletedEvent {
		log.Printf("[StripeEvent] ignoring %s\n", event.Type)
		return WEBHOOK_IGNORED, nil
	}
	if event.Data == nil || !gjson.ValidBytes(event.Data.Raw) {
		return WEBHOOK_IGNORED, types.ErrMalformedPayload
	}
	session := gjson.ParseBytes(event.Data.Raw)
	sessionID := session.Get("id").String()
	if sessionID == "" {
		return WEBHOOK_IGNORED, types.ErrMalformedPayload
	}
	if status := session.Get("payment_status").String(); status != paymentStatusPaid {
		log.Printf("[CheckoutSession] %s payment status is %q, ignoring\n", sessionID, status)
		return WEBHOOK_IGNORED, nil
	}
	numbers := ParseBookingNumbers(session.Get("metadata"))
	if len(numbers) == 0 {
		log.Printf("[CheckoutSession] %s carries no booking numbers\n", sessionID)
		return WEBHOOK_IGNORED, nil
	}

	var confirmed []uint
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		confirmed = confirmed[:0]
		for _, number := range numbers {
			_, booking, err := confirmBookingPayment(tx, number, sessionID)
			if err != nil {
				return err
			}
			if booking != nil {
				confirmed = append(confirmed, booking.ID)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error processing checkout session %s: %s\n", sessionID, err.Error())
		return WEBHOOK_IGNORED, types.ErrPersistence
	}
	log.Printf("[CheckoutSession] %s confirmed %d of %d booking(s)\n", sessionID, len(confirmed), len(numbers))
	if len(confirmed) > 0 && mailer.Enabled() {
		go notifyConfirmed(confirmed)
	}
	return WEBHOOK_PROCESSED, nil
}

// notifyConfirmed emails the guest for each newly confirmed booking.
func notifyConfirmed(ids []uint) {
	db := db.GetDb()
	var bookings []models.Booking
	if err := db.
		Model(&models.Booking{}).
		Where("id IN ?", ids).
		Preload("User").
		Preload("Room").
		Preload("RoomType").
		Find(&bookings).
		Error; err != nil {
		log.Printf("Error loading confirmed bookings %v: %s\n", ids, err.Error())
		return
	}
	for i := range bookings {
		if err := mailer.SendBookingConfirmation(&bookings[i]); err != nil {
			log.Printf("Could not send confirmation for %s: %s\n", bookings[i].BookingNumber, err.Error())
		}
	}
}
