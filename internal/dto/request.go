package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" form:"full_name" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" form:"full_name" validate:"omitempty,max=255"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email,max=255"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" form:"role" validate:"required,oneof=user admin"`
}

type CreateContactRequest struct {
	Phone   string `json:"phone" form:"phone" validate:"required,max=50"`
	Address string `json:"address" form:"address" validate:"max=255"`
	City    string `json:"city" form:"city" validate:"max=100"`
	Country string `json:"country" form:"country" validate:"max=100"`
}

type UpdateContactRequest struct {
	Phone   *string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" form:"address" validate:"omitempty,max=255"`
	City    *string `json:"city" form:"city" validate:"omitempty,max=100"`
	Country *string `json:"country" form:"country" validate:"omitempty,max=100"`
}

type CreateCarRequest struct {
	Make         string          `json:"make" validate:"required,max=100"`
	Model        string          `json:"model" validate:"required,max=100"`
	Year         int             `json:"year" validate:"required,gte=1950,lte=2100"`
	LicensePlate string          `json:"license_plate" validate:"required,max=50"`
	DailyRate    decimal.Decimal `json:"daily_rate" validate:"gt=0"`
	Available    *bool           `json:"available"`
	OwnerID      *uint           `json:"owner_id"`
}

type UpdateCarRequest struct {
	Make         *string          `json:"make" validate:"omitempty,max=100"`
	Model        *string          `json:"model" validate:"omitempty,max=100"`
	Year         *int             `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	LicensePlate *string          `json:"license_plate" validate:"omitempty,max=50"`
	DailyRate    *decimal.Decimal `json:"daily_rate"`
	Available    *bool            `json:"available"`
}

type CreateCarBookingRequest struct {
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	PickupLocation  string    `json:"pickup_location" validate:"max=255"`
	DropoffLocation string    `json:"dropoff_location" validate:"max=255"`
	Notes           string    `json:"notes" validate:"max=500"`
}

type CreateHotelBookingRequest struct {
	HotelName    string          `json:"hotel_name" validate:"required,max=255"`
	Location     string          `json:"location" validate:"max=255"`
	RoomType     string          `json:"room_type" validate:"max=100"`
	NumGuests    int             `json:"num_guests" validate:"required,gte=1,lte=20"`
	CheckInDate  time.Time       `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time       `json:"check_out_date" validate:"required"`
	TotalPrice   decimal.Decimal `json:"total_price" validate:"gt=0"`
	Notes        string          `json:"notes" validate:"max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type LoadRequest struct {
	Amount   decimal.Decimal `json:"amount" form:"amount" validate:"gt=0"`
	Currency string          `json:"currency" form:"currency" validate:"omitempty,len=3"`
}

type TransferRequest struct {
	RecipientEmail string          `json:"recipient_email" form:"recipient_email" validate:"required,email"`
	Amount         decimal.Decimal `json:"amount" form:"amount" validate:"gt=0"`
	Description    string          `json:"description" form:"description" validate:"max=500"`
}

type PayRequest struct {
	Amount      decimal.Decimal `json:"amount" form:"amount" validate:"gt=0"`
	Currency    string          `json:"currency" form:"currency" validate:"omitempty,len=3"`
	Description string          `json:"description" form:"description" validate:"max=500"`
	ReturnURL   string          `json:"return_url" form:"return_url" validate:"omitempty,url"`
}

// WebhookRequest is the gateway callback. Signature may instead arrive in
// the X-Nexo-Signature header.
type WebhookRequest struct {
	TransactionID uint   `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=completed failed cancelled"`
	Reference     string `json:"reference" validate:"required,max=255"`
	Signature     string `json:"signature"`
}

type ChatRequest struct {
	Message string `json:"message" form:"message" validate:"required,max=4000"`
	Model   string `json:"model" form:"model" validate:"omitempty,max=100"`
}
