package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/nexo-service/internal/events"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CarBookingInput struct {
	StartDate       time.Time
	EndDate         time.Time
	PickupLocation  string
	DropoffLocation string
	Notes           string
}

type BookingService interface {
	BookCar(ctx context.Context, actor *models.User, carID uint, in CarBookingInput) (*models.CarBooking, error)
	ListCarBookings(ctx context.Context, actor *models.User) ([]models.CarBooking, error)
	GetCarBooking(ctx context.Context, actor *models.User, id uint) (*models.CarBooking, error)
	UpdateCarBookingStatus(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.CarBooking, error)

	CreateHotelBooking(ctx context.Context, actor *models.User, booking *models.HotelBooking) error
	ListHotelBookings(ctx context.Context, actor *models.User) ([]models.HotelBooking, error)
	GetHotelBooking(ctx context.Context, actor *models.User, id uint) (*models.HotelBooking, error)
	UpdateHotelBookingStatus(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.HotelBooking, error)
}

type bookingService struct {
	tx        repository.Transactor
	users     repository.UserRepository
	cars      repository.CarRepository
	carBooks  repository.CarBookingRepository
	hotels    repository.HotelBookingRepository
	publisher EventPublisher
	log       *logger.Logger
}

func NewBookingService(tx repository.Transactor, users repository.UserRepository, cars repository.CarRepository,
	carBooks repository.CarBookingRepository, hotels repository.HotelBookingRepository,
	publisher EventPublisher, log *logger.Logger) BookingService {
	return &bookingService{
		tx:        tx,
		users:     users,
		cars:      cars,
		carBooks:  carBooks,
		hotels:    hotels,
		publisher: publisher,
		log:       log,
	}
}

// day truncates t to its calendar date in UTC.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays counts the days between start and end, charging at least one.
func RentalDays(start, end time.Time) int64 {
	days := int64(day(end).Sub(day(start)) / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

func (s *bookingService) BookCar(ctx context.Context, actor *models.User, carID uint, in CarBookingInput) (*models.CarBooking, error) {
	start, end := day(in.StartDate), day(in.EndDate)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	var result *models.CarBooking

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		// Lock the car row: concurrent bookings of one car serialize here.
		car, err := s.cars.FindByIDForUpdate(ctx, tx, carID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}
		if !car.Available {
			return ErrCarUnavailable
		}

		overlapping, err := s.carBooks.CountOverlapping(ctx, tx, carID, start, end)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrCarAlreadyBooked
		}

		booking := &models.CarBooking{
			UserID:          actor.ID,
			CarID:           carID,
			PickupLocation:  in.PickupLocation,
			DropoffLocation: in.DropoffLocation,
			StartDate:       start,
			EndDate:         end,
			TotalPrice:      car.DailyRate.Mul(decimal.NewFromInt(RentalDays(start, end))),
			Status:          models.BookingPending,
			Notes:           in.Notes,
		}
		if err := s.carBooks.Create(ctx, tx, booking); err != nil {
			return err
		}
		booking.Car = car
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("car booked", "booking_id", result.ID, "car_id", carID, "user_id", actor.ID)
	publish(ctx, s.publisher, s.log, events.BookingCreated, carBookingEvent(result, actor.Email))

	return result, nil
}

func (s *bookingService) ListCarBookings(ctx context.Context, actor *models.User) ([]models.CarBooking, error) {
	return s.carBooks.FindAll(ctx, ownerFilter(actor))
}

func (s *bookingService) GetCarBooking(ctx context.Context, actor *models.User, id uint) (*models.CarBooking, error) {
	booking, err := s.carBooks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) UpdateCarBookingStatus(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.CarBooking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		booking, err := s.carBooks.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !actor.CanAccess(booking.UserID) {
			return ErrForbidden
		}
		if !booking.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
		}

		if err := s.carBooks.UpdateStatus(ctx, tx, id, status); err != nil {
			return err
		}

		switch {
		case status == models.BookingConfirmed:
			return s.cars.SetAvailable(ctx, tx, booking.CarID, false)
		case booking.Status == models.BookingConfirmed:
			return s.releaseCar(ctx, tx, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.carBooks.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}

	s.log.Info("car booking status changed", "booking_id", id, "status", status, "actor_id", actor.ID)
	publish(ctx, s.publisher, s.log, events.BookingStatusChanged, carBookingEvent(booking, s.ownerEmail(ctx, actor, booking.UserID)))

	return booking, nil
}

// releaseCar marks the car available once the booking leaving confirmed was
// the last confirmed one. The car row lock serializes concurrent releases.
func (s *bookingService) releaseCar(ctx context.Context, tx *gorm.DB, booking *models.CarBooking) error {
	if _, err := s.cars.FindByIDForUpdate(ctx, tx, booking.CarID); err != nil {
		return fmt.Errorf("lock car: %w", err)
	}
	others, err := s.carBooks.CountConfirmed(ctx, tx, booking.CarID, booking.ID)
	if err != nil {
		return err
	}
	if others > 0 {
		return nil
	}
	return s.cars.SetAvailable(ctx, tx, booking.CarID, true)
}

func (s *bookingService) CreateHotelBooking(ctx context.Context, actor *models.User, booking *models.HotelBooking) error {
	booking.CheckInDate, booking.CheckOutDate = day(booking.CheckInDate), day(booking.CheckOutDate)
	if booking.CheckOutDate.Before(booking.CheckInDate) {
		return ErrInvalidDateRange
	}

	booking.UserID = actor.ID
	booking.Status = models.BookingPending
	if err := s.hotels.Create(ctx, booking); err != nil {
		return fmt.Errorf("create hotel booking: %w", err)
	}

	s.log.Info("hotel booked", "booking_id", booking.ID, "user_id", actor.ID)
	publish(ctx, s.publisher, s.log, events.BookingCreated, hotelBookingEvent(booking, actor.Email))

	return nil
}

func (s *bookingService) ListHotelBookings(ctx context.Context, actor *models.User) ([]models.HotelBooking, error) {
	return s.hotels.FindAll(ctx, ownerFilter(actor))
}

func (s *bookingService) GetHotelBooking(ctx context.Context, actor *models.User, id uint) (*models.HotelBooking, error) {
	booking, err := s.hotels.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.CanAccess(booking.UserID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) UpdateHotelBookingStatus(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.HotelBooking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.GetHotelBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	updated, err := s.hotels.UpdateStatus(ctx, id, booking.Status, status)
	if err != nil {
		return nil, fmt.Errorf("update hotel booking: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: booking changed concurrently", ErrInvalidTransition)
	}
	booking.Status = status

	s.log.Info("hotel booking status changed", "booking_id", id, "status", status, "actor_id", actor.ID)
	publish(ctx, s.publisher, s.log, events.BookingStatusChanged, hotelBookingEvent(booking, s.ownerEmail(ctx, actor, booking.UserID)))

	return booking, nil
}

func ownerFilter(actor *models.User) *uint {
	if actor.Role.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}

// ownerEmail avoids a lookup when the actor owns the booking.
func (s *bookingService) ownerEmail(ctx context.Context, actor *models.User, ownerID uint) string {
	if actor.ID == ownerID {
		return actor.Email
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		s.log.Warn("failed to load booking owner", "user_id", ownerID, "error", err)
		return ""
	}
	return owner.Email
}

func carBookingEvent(b *models.CarBooking, email string) events.BookingEvent {
	summary := fmt.Sprintf("Car #%d", b.CarID)
	if b.Car != nil {
		summary = fmt.Sprintf("%s %s (%s)", b.Car.Make, b.Car.Model, b.Car.LicensePlate)
	}
	return events.BookingEvent{
		BookingID:  b.ID,
		Kind:       events.BookingKindCar,
		UserID:     b.UserID,
		Email:      email,
		Status:     string(b.Status),
		Summary:    summary,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
	}
}

func hotelBookingEvent(b *models.HotelBooking, email string) events.BookingEvent {
	return events.BookingEvent{
		BookingID:  b.ID,
		Kind:       events.BookingKindHotel,
		UserID:     b.UserID,
		Email:      email,
		Status:     string(b.Status),
		Summary:    fmt.Sprintf("%s, %s (%d guests)", b.HotelName, b.Location, b.NumGuests),
		StartDate:  b.CheckInDate,
		EndDate:    b.CheckOutDate,
		TotalPrice: b.TotalPrice,
	}
}
