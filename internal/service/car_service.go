package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CarUpdate struct {
	Make         *string
	Model        *string
	Year         *int
	LicensePlate *string
	DailyRate    *decimal.Decimal
	Available    *bool
}

type CarService interface {
	ListCars(ctx context.Context, filter repository.CarFilter) ([]models.Car, error)
	GetCar(ctx context.Context, id uint) (*models.Car, error)
	CreateCar(ctx context.Context, actor *models.User, car *models.Car) error
	UpdateCar(ctx context.Context, actor *models.User, id uint, update CarUpdate) (*models.Car, error)
	DeleteCar(ctx context.Context, actor *models.User, id uint) error
}

type carService struct {
	cars repository.CarRepository
}

func NewCarService(cars repository.CarRepository) CarService {
	return &carService{cars: cars}
}

func (s *carService) ListCars(ctx context.Context, filter repository.CarFilter) ([]models.Car, error) {
	return s.cars.FindAll(ctx, filter)
}

func (s *carService) GetCar(ctx context.Context, id uint) (*models.Car, error) {
	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) CreateCar(ctx context.Context, actor *models.User, car *models.Car) error {
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if !car.DailyRate.IsPositive() {
		return ErrInvalidDailyRate
	}
	if err := s.cars.Create(ctx, car); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPlateTaken
		}
		return fmt.Errorf("create car: %w", err)
	}
	return nil
}

func (s *carService) UpdateCar(ctx context.Context, actor *models.User, id uint, update CarUpdate) (*models.Car, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	car, err := s.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Make != nil {
		car.Make = *update.Make
	}
	if update.Model != nil {
		car.Model = *update.Model
	}
	if update.Year != nil {
		car.Year = *update.Year
	}
	if update.LicensePlate != nil {
		car.LicensePlate = *update.LicensePlate
	}
	if update.DailyRate != nil {
		if !update.DailyRate.IsPositive() {
			return nil, ErrInvalidDailyRate
		}
		car.DailyRate = *update.DailyRate
	}
	if update.Available != nil {
		car.Available = *update.Available
	}

	if err := s.cars.Update(ctx, car); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPlateTaken
		}
		return nil, fmt.Errorf("update car: %w", err)
	}
	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, actor *models.User, id uint) error {
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if err := s.cars.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}
