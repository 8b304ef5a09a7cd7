package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// CanTransitionTo allows pending -> confirmed|cancelled and
// confirmed -> completed|cancelled. Cancelled and completed are final.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

type CarBooking struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	CarID           uint            `gorm:"not null;index" json:"car_id"`
	PickupLocation  string          `gorm:"type:varchar(255)" json:"pickup_location"`
	DropoffLocation string          `gorm:"type:varchar(255)" json:"dropoff_location"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         time.Time       `gorm:"not null" json:"end_date"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status          BookingStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes           string          `gorm:"type:varchar(500)" json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Car *Car `gorm:"foreignKey:CarID" json:"car,omitempty"`
}

type HotelBooking struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	HotelName    string          `gorm:"type:varchar(255);not null" json:"hotel_name"`
	Location     string          `gorm:"type:varchar(255)" json:"location"`
	RoomType     string          `gorm:"type:varchar(100)" json:"room_type"`
	NumGuests    int             `gorm:"not null" json:"num_guests"`
	CheckInDate  time.Time       `gorm:"not null" json:"check_in_date"`
	CheckOutDate time.Time       `gorm:"not null" json:"check_out_date"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status       BookingStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes        string          `gorm:"type:varchar(500)" json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
