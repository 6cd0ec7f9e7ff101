package models

import "bookify/src/types"

type Payment struct {
	ID                    uint                `gorm:"primarykey" json:"id"`
	BookingID             uint                `gorm:"uniqueIndex:idx_payments_txn_booking;not null" json:"booking_id"`
	Provider              string              `gorm:"size:50;not null" json:"provider"`
	ProviderTransactionID string              `gorm:"size:255;uniqueIndex:idx_payments_txn_booking;not null" json:"provider_transaction_id"`
	Amount                float64             `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency              string              `gorm:"size:3;not null" json:"currency"`
	Status                types.PaymentStatus `gorm:"type:smallint;not null" json:"status"`

	types.Timestamps
}
