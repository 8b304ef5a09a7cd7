package service

import (
	"context"
	"sync"
	"time"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"gorm.io/gorm"
)

var testLog = logger.Nop()

// --- Transactor ---

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	return fn(nil)
}

// --- Publisher ---

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key: key, payload: payload})
	return p.err
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.key)
	}
	return keys
}

// --- UserRepository ---

type mockUserRepo struct {
	createFn            func(ctx context.Context, user *models.User) error
	findByIDFn          func(ctx context.Context, id uint) (*models.User, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	findByEmailFn       func(ctx context.Context, email string) (*models.User, error)
	findAllFn           func(ctx context.Context) ([]models.User, error)
	updateFn            func(ctx context.Context, user *models.User) error
	deleteFn            func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.findAllFn(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.updateFn(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// usersByID answers lookups from a fixed set of users.
func usersByID(users ...*models.User) *mockUserRepo {
	byID := func(id uint) (*models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}
	return &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) { return byID(id) },
		findByIDForUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
			return byID(id)
		},
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			for _, u := range users {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

// --- ContactRepository ---

type mockContactRepo struct {
	createFn       func(ctx context.Context, contact *models.Contact) error
	findByIDFn     func(ctx context.Context, id uint) (*models.Contact, error)
	findByUserIDFn func(ctx context.Context, userID uint) ([]models.Contact, error)
	updateFn       func(ctx context.Context, contact *models.Contact) error
	deleteFn       func(ctx context.Context, id uint) error
}

func (m *mockContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	return m.createFn(ctx, contact)
}
func (m *mockContactRepo) FindByID(ctx context.Context, id uint) (*models.Contact, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockContactRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Contact, error) {
	return m.findByUserIDFn(ctx, userID)
}
func (m *mockContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	return m.updateFn(ctx, contact)
}
func (m *mockContactRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- CarRepository ---

type mockCarRepo struct {
	createFn            func(ctx context.Context, car *models.Car) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Car, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Car, error)
	findAllFn           func(ctx context.Context, filter repository.CarFilter) ([]models.Car, error)
	updateFn            func(ctx context.Context, car *models.Car) error
	setAvailableFn      func(ctx context.Context, tx *gorm.DB, id uint, available bool) error
	deleteFn            func(ctx context.Context, id uint) error
}

func (m *mockCarRepo) Create(ctx context.Context, car *models.Car) error {
	return m.createFn(ctx, car)
}
func (m *mockCarRepo) FindByID(ctx context.Context, id uint) (*models.Car, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCarRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Car, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockCarRepo) FindAll(ctx context.Context, filter repository.CarFilter) ([]models.Car, error) {
	return m.findAllFn(ctx, filter)
}
func (m *mockCarRepo) Update(ctx context.Context, car *models.Car) error {
	return m.updateFn(ctx, car)
}
func (m *mockCarRepo) SetAvailable(ctx context.Context, tx *gorm.DB, id uint, available bool) error {
	return m.setAvailableFn(ctx, tx, id, available)
}
func (m *mockCarRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- CarBookingRepository ---

type mockCarBookingRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, booking *models.CarBooking) error
	findByIDFn          func(ctx context.Context, id uint) (*models.CarBooking, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.CarBooking, error)
	findAllFn           func(ctx context.Context, userID *uint) ([]models.CarBooking, error)
	countOverlappingFn  func(ctx context.Context, tx *gorm.DB, carID uint, start, end time.Time) (int64, error)
	countConfirmedFn    func(ctx context.Context, tx *gorm.DB, carID, excludeID uint) (int64, error)
	updateStatusFn      func(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error
}

func (m *mockCarBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.CarBooking) error {
	return m.createFn(ctx, tx, booking)
}
func (m *mockCarBookingRepo) FindByID(ctx context.Context, id uint) (*models.CarBooking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCarBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.CarBooking, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockCarBookingRepo) FindAll(ctx context.Context, userID *uint) ([]models.CarBooking, error) {
	return m.findAllFn(ctx, userID)
}
func (m *mockCarBookingRepo) CountOverlapping(ctx context.Context, tx *gorm.DB, carID uint, start, end time.Time) (int64, error) {
	return m.countOverlappingFn(ctx, tx, carID, start, end)
}
func (m *mockCarBookingRepo) CountConfirmed(ctx context.Context, tx *gorm.DB, carID, excludeID uint) (int64, error) {
	return m.countConfirmedFn(ctx, tx, carID, excludeID)
}
func (m *mockCarBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error {
	return m.updateStatusFn(ctx, tx, id, status)
}

// --- HotelBookingRepository ---

type mockHotelBookingRepo struct {
	createFn       func(ctx context.Context, booking *models.HotelBooking) error
	findByIDFn     func(ctx context.Context, id uint) (*models.HotelBooking, error)
	findAllFn      func(ctx context.Context, userID *uint) ([]models.HotelBooking, error)
	updateStatusFn func(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error)
}

func (m *mockHotelBookingRepo) Create(ctx context.Context, booking *models.HotelBooking) error {
	return m.createFn(ctx, booking)
}
func (m *mockHotelBookingRepo) FindByID(ctx context.Context, id uint) (*models.HotelBooking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockHotelBookingRepo) FindAll(ctx context.Context, userID *uint) ([]models.HotelBooking, error) {
	return m.findAllFn(ctx, userID)
}
func (m *mockHotelBookingRepo) UpdateStatus(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error) {
	return m.updateStatusFn(ctx, id, from, to)
}
