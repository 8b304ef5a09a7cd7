package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(255)" json:"full_name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Contacts      []Contact           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CarBookings   []CarBooking        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	HotelBookings []HotelBooking      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Transactions  []WalletTransaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CanAccess reports whether u may read or modify a row owned by ownerID.
func (u *User) CanAccess(ownerID uint) bool {
	return u.ID == ownerID || u.Role.IsAdmin()
}
