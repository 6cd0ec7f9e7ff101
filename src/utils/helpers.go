package utils

import (
	"bookify/src/config"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// Today is the current calendar date at UTC midnight.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(config.DATE_FORMAT, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(config.DATE_FORMAT)
}

// NightsBetween counts whole days between two calendar dates.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(DateOf(checkOut).Sub(DateOf(checkIn)).Hours() / 24)
}

// GenerateBookingNumber builds BK{YYYYMMDD}{8 uppercase hex} from the UTC creation date.
func GenerateBookingNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%s%s", config.BOOKING_NUMBER_PREFIX, now.UTC().Format("20060102"), strings.ToUpper(suffix))
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 {
	if v < 0 {
		return -RoundMoney(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}

// ToMinorUnits converts a decimal amount to cents for the payment provider.
func ToMinorUnits(v float64) int64 {
	return int64(RoundMoney(v)*100 + 0.5)
}
