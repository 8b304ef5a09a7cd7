package repository

import (
	"context"

	"github.com/Eursukkul/nexo-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CarFilter struct {
	Available *bool
	Make      string
}

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	FindByID(ctx context.Context, id uint) (*models.Car, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Car, error)
	FindAll(ctx context.Context, filter CarFilter) ([]models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	SetAvailable(ctx context.Context, tx *gorm.DB, id uint, available bool) error
	Delete(ctx context.Context, id uint) error
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) FindByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// FindByIDForUpdate locks the car row so concurrent bookings of the same car
// serialize.
func (r *carRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Car, error) {
	var car models.Car
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&car, id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) FindAll(ctx context.Context, filter CarFilter) ([]models.Car, error) {
	var cars []models.Car
	q := r.db.WithContext(ctx)
	if filter.Available != nil {
		q = q.Where("available = ?", *filter.Available)
	}
	if filter.Make != "" {
		q = q.Where("LOWER(make) = LOWER(?)", filter.Make)
	}
	if err := q.Order("id ASC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

func (r *carRepository) SetAvailable(ctx context.Context, tx *gorm.DB, id uint, available bool) error {
	return tx.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", id).
		Update("available", available).Error
}

func (r *carRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Car{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
