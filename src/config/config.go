package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=bookify port=5432 sslmode=disable TimeZone=UTC"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := getenv("DATABASE_TIMEZONE", "UTC")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_FORMAT = "2006-01-02"
const CSV_TIMESTAMP_FORMAT = "2006-01-02 15:04:05"
const BOOKING_NUMBER_PREFIX = "BK"
const DEFAULT_PAGE_SIZE = 12

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func JWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func StripeSecretKey() string {
	return os.Getenv("STRIPE_SECRET_KEY")
}

func StripeWebhookSecret() string {
	return os.Getenv("STRIPE_WEBHOOK_SECRET")
}

func StripeSuccessURL() string {
	return getenv("STRIPE_SUCCESS_URL", fmt.Sprintf("%s/checkout/success?session_id={CHECKOUT_SESSION_ID}", os.Getenv("APP_HOST")))
}

func StripeCancelURL() string {
	return getenv("STRIPE_CANCEL_URL", fmt.Sprintf("%s/cart", os.Getenv("APP_HOST")))
}

// DefaultCurrency is the ISO code used for carts and bookings.
func DefaultCurrency() string {
	return strings.ToUpper(getenv("DEFAULT_CURRENCY", "USD"))
}

func RedisURL() string {
	return os.Getenv("REDIS_HOST")
}

func CartTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("CART_TTL"))
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func CompletionSweepInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("COMPLETION_SWEEP_INTERVAL"))
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

func MaintenanceMode() bool {
	on, err := strconv.ParseBool(os.Getenv("MAINTENANCE_MODE"))
	return err == nil && on
}

func MailFrom() string {
	return getenv("MAIL_FROM", "no-reply@bookify.local")
}

func PassDir() string {
	return getenv("PASS_DIR", os.TempDir())
}

// PassBucket is where stay passes are published; empty serves them from PassDir.
func PassBucket() string {
	return os.Getenv("S3_ASSETS_BUCKET")
}

// MailTransport is "smtp" (default) or "ses".
func MailTransport() string {
	return strings.ToLower(getenv("MAIL_TRANSPORT", "smtp"))
}
