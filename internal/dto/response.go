package dto

import (
	"time"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/shopspring/decimal"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      models.Role `json:"role"`
	IsAdmin   bool        `json:"is_admin"`
	CreatedAt time.Time   `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CSRFResponse struct {
	CSRFToken string    `json:"csrf_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ContactResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

type CarResponse struct {
	ID           uint            `json:"id"`
	OwnerID      *uint           `json:"owner_id,omitempty"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	LicensePlate string          `json:"license_plate"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	Available    bool            `json:"available"`
}

type CarBookingResponse struct {
	ID              uint                 `json:"id"`
	UserID          uint                 `json:"user_id"`
	CarID           uint                 `json:"car_id"`
	PickupLocation  string               `json:"pickup_location"`
	DropoffLocation string               `json:"dropoff_location"`
	StartDate       time.Time            `json:"start_date"`
	EndDate         time.Time            `json:"end_date"`
	TotalPrice      decimal.Decimal      `json:"total_price"`
	Status          models.BookingStatus `json:"status"`
	Notes           string               `json:"notes"`
	CreatedAt       time.Time            `json:"created_at"`
	Car             *CarResponse         `json:"car,omitempty"`
}

type HotelBookingResponse struct {
	ID           uint                 `json:"id"`
	UserID       uint                 `json:"user_id"`
	HotelName    string               `json:"hotel_name"`
	Location     string               `json:"location"`
	RoomType     string               `json:"room_type"`
	NumGuests    int                  `json:"num_guests"`
	CheckInDate  time.Time            `json:"check_in_date"`
	CheckOutDate time.Time            `json:"check_out_date"`
	TotalPrice   decimal.Decimal      `json:"total_price"`
	Status       models.BookingStatus `json:"status"`
	Notes        string               `json:"notes"`
	CreatedAt    time.Time            `json:"created_at"`
}

type TransactionResponse struct {
	ID              uint                     `json:"id"`
	TransactionType models.TransactionType   `json:"transaction_type"`
	Amount          decimal.Decimal          `json:"amount"`
	Currency        string                   `json:"currency"`
	Status          models.TransactionStatus `json:"status"`
	BalanceBefore   decimal.Decimal          `json:"balance_before"`
	BalanceAfter    decimal.Decimal          `json:"balance_after"`
	Reference       *string                  `json:"reference,omitempty"`
	Description     string                   `json:"description"`
	CounterpartyID  *uint                    `json:"counterparty_id,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

type PaymentResponse struct {
	TransactionID uint                     `json:"transaction_id"`
	PaymentURL    string                   `json:"payment_url"`
	Reference     string                   `json:"reference"`
	Status        models.TransactionStatus `json:"status"`
	Message       string                   `json:"message"`
}

type WebhookResponse struct {
	TransactionID uint                     `json:"transaction_id"`
	Status        models.TransactionStatus `json:"status"`
	Duplicate     bool                     `json:"duplicate"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

type DashboardStatistics struct {
	Users               int64           `json:"users"`
	Cars                int64           `json:"cars"`
	AvailableCars       int64           `json:"available_cars"`
	CarBookings         int64           `json:"car_bookings"`
	HotelBookings       int64           `json:"hotel_bookings"`
	Transactions        int64           `json:"transactions"`
	PendingTransactions int64           `json:"pending_transactions"`
	TotalLoaded         decimal.Decimal `json:"total_loaded"`
}

type DashboardResponse struct {
	Statistics  DashboardStatistics `json:"statistics"`
	GeneratedAt time.Time           `json:"generated_at"`
	Cached      bool                `json:"cached"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsAdmin:   u.Role.IsAdmin(),
		CreatedAt: u.CreatedAt,
	}
}

func ToContactResponse(c *models.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
	}
}

func ToCarResponse(c *models.Car) CarResponse {
	return CarResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		LicensePlate: c.LicensePlate,
		DailyRate:    c.DailyRate,
		Available:    c.Available,
	}
}

func ToCarBookingResponse(b *models.CarBooking) CarBookingResponse {
	resp := CarBookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		CarID:           b.CarID,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}
	if b.Car != nil {
		car := ToCarResponse(b.Car)
		resp.Car = &car
	}
	return resp
}

func ToHotelBookingResponse(b *models.HotelBooking) HotelBookingResponse {
	return HotelBookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		HotelName:    b.HotelName,
		Location:     b.Location,
		RoomType:     b.RoomType,
		NumGuests:    b.NumGuests,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
	}
}

func ToTransactionResponse(t *models.WalletTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		TransactionType: t.Type,
		Amount:          t.Amount,
		Currency:        t.Currency,
		Status:          t.Status,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		Reference:       t.Reference,
		Description:     t.Description,
		CounterpartyID:  t.CounterpartyID,
		CreatedAt:       t.CreatedAt,
	}
}
