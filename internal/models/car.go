package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Car struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OwnerID      *uint           `gorm:"index" json:"owner_id,omitempty"`
	Make         string          `gorm:"type:varchar(100);not null" json:"make"`
	Model        string          `gorm:"type:varchar(100);not null" json:"model"`
	Year         int             `json:"year"`
	LicensePlate string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_plate"`
	DailyRate    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"daily_rate"`
	Available    bool            `gorm:"not null;default:true" json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Bookings []CarBooking `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
