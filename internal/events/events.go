// Package events defines the domain events exchanged over the "nexo" topic
// exchange. Routing keys double as event names.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	UserRegistered       = "user.registered"
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	WalletPaymentUpdated = "wallet.payment_updated"
)

const (
	BookingKindCar   = "car"
	BookingKindHotel = "hotel"
)

type UserRegisteredEvent struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type BookingEvent struct {
	BookingID  uint            `json:"booking_id"`
	Kind       string          `json:"kind"`
	UserID     uint            `json:"user_id"`
	Email      string          `json:"email"`
	Status     string          `json:"status"`
	Summary    string          `json:"summary"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type PaymentEvent struct {
	TransactionID uint            `json:"transaction_id"`
	UserID        uint            `json:"user_id"`
	Email         string          `json:"email"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Reference     string          `json:"reference"`
}
