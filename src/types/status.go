package types

import (
	"encoding/json"
	"fmt"
)

// BookingStatus is persisted as a small integer. The codes below are part of the
// stored data and must never be renumbered.
type BookingStatus uint8

const (
	BOOKING_PENDING_PAYMENT BookingStatus = 1
	BOOKING_CONFIRMED       BookingStatus = 2
	BOOKING_CANCELLED       BookingStatus = 3
	BOOKING_COMPLETED       BookingStatus = 4
)

var bookingStatusNames = map[BookingStatus]string{
	BOOKING_PENDING_PAYMENT: "PendingPayment",
	BOOKING_CONFIRMED:       "Confirmed",
	BOOKING_CANCELLED:       "Cancelled",
	BOOKING_COMPLETED:       "Completed",
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BOOKING_PENDING_PAYMENT: {BOOKING_CONFIRMED, BOOKING_CANCELLED, BOOKING_COMPLETED},
	BOOKING_CONFIRMED:       {BOOKING_CANCELLED, BOOKING_COMPLETED},
}

// BookingStatuses lists every status in code order.
func BookingStatuses() []BookingStatus {
	return []BookingStatus{BOOKING_PENDING_PAYMENT, BOOKING_CONFIRMED, BOOKING_CANCELLED, BOOKING_COMPLETED}
}

// BlockingStatuses are the statuses that occupy a room for their date range.
func BlockingStatuses() []BookingStatus {
	return []BookingStatus{BOOKING_PENDING_PAYMENT, BOOKING_CONFIRMED}
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	for k, v := range bookingStatusNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown booking status %q", s)
}

func (s BookingStatus) String() string {
	if name, ok := bookingStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BookingStatus(%d)", uint8(s))
}

func (s BookingStatus) IsBlocking() bool {
	return s == BOOKING_PENDING_PAYMENT || s == BOOKING_CONFIRMED
}

func (s BookingStatus) IsTerminal() bool {
	return s == BOOKING_CANCELLED || s == BOOKING_COMPLETED
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BookingStatus) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		var code uint8
		if err := json.Unmarshal(b, &code); err != nil {
			return err
		}
		if _, ok := bookingStatusNames[BookingStatus(code)]; !ok {
			return fmt.Errorf("unknown booking status code %d", code)
		}
		*s = BookingStatus(code)
		return nil
	}
	parsed, err := ParseBookingStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type PaymentStatus uint8

const (
	PAYMENT_PENDING   PaymentStatus = 1
	PAYMENT_SUCCEEDED PaymentStatus = 2
	PAYMENT_FAILED    PaymentStatus = 3
)

var paymentStatusNames = map[PaymentStatus]string{
	PAYMENT_PENDING:   "Pending",
	PAYMENT_SUCCEEDED: "Succeeded",
	PAYMENT_FAILED:    "Failed",
}

func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PaymentStatus(%d)", uint8(s))
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

const (
	PAYMENT_PROVIDER_STRIPE = "Stripe"
)
