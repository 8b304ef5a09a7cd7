package repository

import (
	"context"
	"fmt"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardStats struct {
	Users               int64           `db:"users" json:"users"`
	Cars                int64           `db:"cars" json:"cars"`
	AvailableCars       int64           `db:"available_cars" json:"available_cars"`
	CarBookings         int64           `db:"car_bookings" json:"car_bookings"`
	HotelBookings       int64           `db:"hotel_bookings" json:"hotel_bookings"`
	Transactions        int64           `db:"transactions" json:"transactions"`
	PendingTransactions int64           `db:"pending_transactions" json:"pending_transactions"`
	TotalLoaded         decimal.Decimal `db:"total_loaded" json:"total_loaded"`
}

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// statsRepository runs reporting queries through sqlx on the same pool gorm
// uses.
type statsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository wraps gorm's connection pool. driver is the gorm
// dialect name and selects the bind variable style.
func NewStatsRepository(db *gorm.DB, driver string) (StatsRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return &statsRepository{db: sqlx.NewDb(sqlDB, driver)}, nil
}

const dashboardStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM users) AS users,
	(SELECT COUNT(*) FROM cars) AS cars,
	(SELECT COUNT(*) FROM cars WHERE available = ?) AS available_cars,
	(SELECT COUNT(*) FROM car_bookings) AS car_bookings,
	(SELECT COUNT(*) FROM hotel_bookings) AS hotel_bookings,
	(SELECT COUNT(*) FROM nexo_paisa_transactions) AS transactions,
	(SELECT COUNT(*) FROM nexo_paisa_transactions WHERE status = ?) AS pending_transactions,
	(SELECT COALESCE(SUM(amount), 0) FROM nexo_paisa_transactions
		WHERE transaction_type = ? AND status = ?) AS total_loaded`

func (r *statsRepository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := r.db.GetContext(ctx, &stats, r.db.Rebind(dashboardStatsQuery),
		true,
		string(models.TxPending),
		string(models.TxDeposit),
		string(models.TxCompleted),
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
