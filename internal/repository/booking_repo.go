package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/nexo-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CarBookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.CarBooking) error
	FindByID(ctx context.Context, id uint) (*models.CarBooking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.CarBooking, error)
	// FindAll lists every booking when userID is nil, otherwise only that user's.
	FindAll(ctx context.Context, userID *uint) ([]models.CarBooking, error)
	CountOverlapping(ctx context.Context, tx *gorm.DB, carID uint, start, end time.Time) (int64, error)
	// CountConfirmed counts confirmed bookings of carID other than excludeID.
	CountConfirmed(ctx context.Context, tx *gorm.DB, carID, excludeID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
}

type carBookingRepository struct {
	db *gorm.DB
}

func NewCarBookingRepository(db *gorm.DB) CarBookingRepository {
	return &carBookingRepository{db: db}
}

func (r *carBookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.CarBooking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *carBookingRepository) FindByID(ctx context.Context, id uint) (*models.CarBooking, error) {
	var booking models.CarBooking
	if err := r.db.WithContext(ctx).Preload("Car").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *carBookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.CarBooking, error) {
	var booking models.CarBooking
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *carBookingRepository) FindAll(ctx context.Context, userID *uint) ([]models.CarBooking, error) {
	var bookings []models.CarBooking
	q := r.db.WithContext(ctx).Preload("Car")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountOverlapping counts non-cancelled bookings of carID whose inclusive
// [start_date, end_date] range intersects [start, end].
func (r *carBookingRepository) CountOverlapping(ctx context.Context, tx *gorm.DB, carID uint, start, end time.Time) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.CarBooking{}).
		Where("car_id = ? AND status <> ?", carID, models.BookingCancelled).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count, err
}

func (r *carBookingRepository) CountConfirmed(ctx context.Context, tx *gorm.DB, carID, excludeID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.CarBooking{}).
		Where("car_id = ? AND id <> ? AND status = ?", carID, excludeID, models.BookingConfirmed).
		Count(&count).Error
	return count, err
}

func (r *carBookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.CarBooking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

type HotelBookingRepository interface {
	Create(ctx context.Context, booking *models.HotelBooking) error
	FindByID(ctx context.Context, id uint) (*models.HotelBooking, error)
	FindAll(ctx context.Context, userID *uint) ([]models.HotelBooking, error)
	UpdateStatus(ctx context.Context, bookingID uint, from, to models.BookingStatus) (bool, error)
}

type hotelBookingRepository struct {
	db *gorm.DB
}

func NewHotelBookingRepository(db *gorm.DB) HotelBookingRepository {
	return &hotelBookingRepository{db: db}
}

func (r *hotelBookingRepository) Create(ctx context.Context, booking *models.HotelBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *hotelBookingRepository) FindByID(ctx context.Context, id uint) (*models.HotelBooking, error) {
	var booking models.HotelBooking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *hotelBookingRepository) FindAll(ctx context.Context, userID *uint) ([]models.HotelBooking, error) {
	var bookings []models.HotelBooking
	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus moves a booking from -> to and reports false when the row was
// no longer in from, so two racing updates cannot both apply.
func (r *hotelBookingRepository) UpdateStatus(ctx context.Context, bookingID uint, from, to models.BookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.HotelBooking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
