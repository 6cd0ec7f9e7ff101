package common

import (
	"bookify/src/models"
	"bookify/src/types"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"
)

func checkoutEvent(sessionID, paymentStatus string, metadata map[string]string) stripe.Event {
	raw, _ := json.Marshal(map[string]any{
		"id":             sessionID,
		"object":         "checkout.session",
		"payment_status": paymentStatus,
		"metadata":       metadata,
	})
	return stripe.Event{
		ID:   "evt_" + sessionID,
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func (s *CommonSuite) paymentsFor(bookingID uint) []models.Payment {
	var payments []models.Payment
	s.Require().NoError(s.DB.Where("booking_id = ?", bookingID).Find(&payments).Error)
	return payments
}

func (s *CommonSuite) TestProcessStripeEventIsIdempotent() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))
	b := s.seedBooking(room, s.User.ID, s.day(1), s.day(3), types.BOOKING_PENDING_PAYMENT)
	event := checkoutEvent("cs_test_1", "paid", map[string]string{"bookingNumbers": b.BookingNumber, "userId": "1"})

	for i := 0; i < 2; i++ {
		outcome, err := ProcessStripeEvent(event)
		s.NoError(err)
		s.Equal(WEBHOOK_PROCESSED, outcome)

		got := s.reload(b.ID)
		s.Equal(types.BOOKING_CONFIRMED, got.Status)
		s.Require().NotNil(got.PaymentReference)
		s.Equal("cs_test_1", *got.PaymentReference)

		payments := s.paymentsFor(b.ID)
		s.Require().Len(payments, 1)
		s.Equal(types.PAYMENT_SUCCEEDED, payments[0].Status)
		s.Equal(200.0, payments[0].Amount)
		s.Equal(types.PAYMENT_PROVIDER_STRIPE, payments[0].Provider)
	}

	var trails int64
	s.DB.Model(&models.BookingTrail{}).Where("booking_id = ? AND to_status = ?", b.ID, types.BOOKING_CONFIRMED).Count(&trails)
	s.Equal(int64(1), trails)
}

func (s *CommonSuite) TestProcessStripeEventMultipleAndLegacyMetadata() {
	rt := s.seedRoomType("Deluxe", 100, 2)
	a := s.seedBooking(s.seedRoom("101", rt), s.User.ID, s.day(1), s.day(3), types.BOOKING_PENDING_PAYMENT)
	b := s.seedBooking(s.seedRoom("102", rt), s.User.ID, s.day(1), s.day(3), types.BOOKING_PENDING_PAYMENT)
	c := s.seedBooking(s.seedRoom("103", rt), s.User.ID, s.day(1), s.day(3), types.BOOKING_PENDING_PAYMENT)

	list := fmt.Sprintf(" %s, UNKNOWN ,%s", a.BookingNumber, b.BookingNumber)
	_, err := ProcessStripeEvent(checkoutEvent("cs_multi", "paid", map[string]string{"bookingNumbers": list}))
	s.NoError(err)
	s.Equal(types.BOOKING_CONFIRMED, s.reload(a.ID).Status)
	s.Equal(types.BOOKING_CONFIRMED, s.reload(b.ID).Status)

	_, err = ProcessStripeEvent(checkoutEvent("cs_legacy", "paid", map[string]string{"bookingNumber": c.BookingNumber}))
	s.NoError(err)
	s.Equal(types.BOOKING_CONFIRMED, s.reload(c.ID).Status)
	s.Len(s.paymentsFor(c.ID), 1)
}

func (s *CommonSuite) TestProcessStripeEventIgnoresOtherEvents() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))
	b := s.seedBooking(room, s.User.ID, s.day(1), s.day(3), types.BOOKING_PENDING_PAYMENT)
	md := map[string]string{"bookingNumbers": b.BookingNumber}

	unpaid := checkoutEvent("cs_unpaid", "unpaid", md)
	outcome, err := ProcessStripeEvent(unpaid)
	s.NoError(err)
	s.Equal(WEBHOOK_IGNORED, outcome)

	other := checkoutEvent("cs_expired", "paid", md)
	other.Type = "checkout.session.expired"
	outcome, err = ProcessStripeEvent(other)
	s.NoError(err)
	s.Equal(WEBHOOK_IGNORED, outcome)

	s.Equal(types.BOOKING_PENDING_PAYMENT, s.reload(b.ID).Status)
	s.Empty(s.paymentsFor(b.ID))
}

func (s *CommonSuite) TestProcessStripeEventMalformed() {
	event := stripe.Event{Type: "checkout.session.completed", Data: &stripe.EventData{Raw: []byte("{oops")}}
	_, err := ProcessStripeEvent(event)
	s.ErrorIs(err, types.ErrMalformedPayload)

	event = checkoutEvent("", "paid", map[string]string{"bookingNumbers": "BK1"})
	_, err = ProcessStripeEvent(event)
	s.ErrorIs(err, types.ErrMalformedPayload)
}

func (s *CommonSuite) TestConfirmPaymentLeavesTerminalStatus() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))
	b := s.seedBooking(room, s.User.ID, s.day(1), s.day(3), types.BOOKING_CANCELLED)

	ok, err := ConfirmPayment(b.BookingNumber, "cs_late")
	s.NoError(err)
	s.True(ok)
	s.Equal(types.BOOKING_CANCELLED, s.reload(b.ID).Status)
	s.Len(s.paymentsFor(b.ID), 1)
}

func (s *CommonSuite) TestConfirmPayments() {
	room := s.seedRoom("101", s.seedRoomType("Deluxe", 100, 2))
	a := s.seedBooking(room, s.User.ID, s.day(1), s.day(3), types.BOOKING_PENDING_PAYMENT)

	ok, err := ConfirmPayment("BK00000000MISSING", "cs_x")
	s.NoError(err)
	s.False(ok)

	ok, err = ConfirmPayments([]string{a.BookingNumber, "BK00000000MISSING"}, "cs_batch")
	s.NoError(err)
	s.False(ok)
	s.Equal(types.BOOKING_CONFIRMED, s.reload(a.ID).Status)

	ok, err = ConfirmPayments([]string{a.BookingNumber}, "cs_batch")
	s.NoError(err)
	s.True(ok)
	s.Len(s.paymentsFor(a.ID), 1)

	ok, err = ConfirmPayments(nil, "cs_empty")
	s.NoError(err)
	s.True(ok)
}

func TestParseBookingNumbers(t *testing.T) {
	cases := []struct {
		json string
		want []string
	}{
		{`{"bookingNumbers":"BK1,BK2"}`, []string{"BK1", "BK2"}},
		{`{"bookingNumbers":" BK1 , ,BK2,"}`, []string{"BK1", "BK2"}},
		{`{"bookingNumber":"BK9"}`, []string{"BK9"}},
		{`{"bookingNumbers":"","bookingNumber":"BK9"}`, []string{"BK9"}},
		{`{"bookingNumbers":"BK1","bookingNumber":"BK9"}`, []string{"BK1"}},
		{`{}`, nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseBookingNumbers(gjson.Parse(c.json)), c.json)
	}
}

func TestVerifyStripeEvent(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","api_version":"2020-08-27","data":{"object":{"id":"cs_1","payment_status":"paid"}}}`)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})

	event, err := VerifyStripeEvent(payload, signed.Header, secret)
	assert.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", string(event.Type))

	_, err = VerifyStripeEvent(payload, signed.Header, "whsec_other")
	assert.ErrorIs(t, err, types.ErrInvalidSignature)

	_, err = VerifyStripeEvent(payload, "", secret)
	assert.ErrorIs(t, err, types.ErrInvalidSignature)

	_, err = VerifyStripeEvent(payload, signed.Header, "")
	assert.ErrorIs(t, err, types.ErrWebhookNotConfigured)

	bad := []byte(`{"id":`)
	badSigned := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: bad, Secret: secret, Timestamp: time.Now()})
	_, err = VerifyStripeEvent(bad, badSigned.Header, secret)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}
