package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingNumber(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	bn := GenerateBookingNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^BK20250601[0-9A-F]{8}$`), bn)
	assert.NotEqual(t, bn, GenerateBookingNumber(now))
}

func TestGenerateBookingNumberUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2025, 6, 2, 3, 0, 0, 0, loc)
	assert.Equal(t, "BK20250601", GenerateBookingNumber(now)[:10])
}

func TestNightsBetween(t *testing.T) {
	in, _ := ParseDate("2025-06-01")
	out, _ := ParseDate("2025-06-03")
	assert.Equal(t, 2, NightsBetween(in, out))
	assert.Equal(t, 0, NightsBetween(in, in))
	assert.Equal(t, -2, NightsBetween(out, in))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-02-28 ")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-02-28", FormatDate(d))

	_, err = ParseDate("28/02/2025")
	assert.Error(t, err)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(10000), ToMinorUnits(100))
	assert.Equal(t, int64(12999), ToMinorUnits(129.99))
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
}
