//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "nexo_test_db"),
	)

	var err error
	testDB, err = database.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	dropAll()
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	code := m.Run()

	dropAll()
	os.Exit(code)
}

// dropAll removes tables children first.
func dropAll() {
	tables := database.Models()
	for i := len(tables) - 1; i >= 0; i-- {
		_ = testDB.Migrator().DropTable(tables[i])
	}
}

func cleanTables() {
	testDB.Exec("TRUNCATE processed_webhook_events, nexo_paisa_transactions, hotel_bookings, car_bookings, cars, contacts, users RESTART IDENTITY CASCADE")
}

func createUser(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", FullName: email, Role: models.RoleUser}
	require.NoError(t, testDB.Create(u).Error)
	return u
}

func createCar(t *testing.T, plate string, rate int64) *models.Car {
	t.Helper()
	c := &models.Car{Make: "Toyota", Model: "Corolla", Year: 2022, LicensePlate: plate, DailyRate: decimal.NewFromInt(rate), Available: true}
	require.NoError(t, testDB.Create(c).Error)
	return c
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
