package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		ServerPort:        "8080",
		DBDriver:          DriverPostgres,
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "postgres",
		DBPassword:        "secret",
		DBName:            "nexo_db",
		DBSSLMode:         "disable",
		JWTSecret:         "jwt-secret",
		JWTExpiry:         24 * time.Hour,
		CSRFSecret:        "csrf-secret",
		CSRFTTL:           time.Hour,
		ChatTimeout:       30 * time.Second,
		DashboardCacheTTL: time.Minute,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.ServerPort = "99999"
	cfg.DBDriver = "sqlite"
	cfg.JWTSecret = ""
	cfg.CSRFTTL = 0

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "CSRF_TTL")
}

func TestValidate_SharedSecretsRejected(t *testing.T) {
	cfg := validConfig()
	cfg.CSRFSecret = cfg.JWTSecret

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CSRF_SECRET must differ")
}

func TestDSN_PerDriver(t *testing.T) {
	cfg := validConfig()
	assert.True(t, strings.HasPrefix(cfg.DSN(), "host=localhost port=5432"))

	cfg.DBDriver = DriverMySQL
	cfg.DBPort = "3306"
	assert.Equal(t, "postgres:secret@tcp(localhost:3306)/nexo_db?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("NEXO_TEST_INT", "42")
	t.Setenv("NEXO_TEST_BAD_INT", "x")
	t.Setenv("NEXO_TEST_DUR", "90s")
	t.Setenv("NEXO_TEST_BOOL", "true")

	assert.Equal(t, 42, getEnvInt("NEXO_TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("NEXO_TEST_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, getEnvDuration("NEXO_TEST_DUR", time.Second))
	assert.True(t, getEnvBool("NEXO_TEST_BOOL", false))
	assert.Equal(t, "fallback", getEnv("NEXO_TEST_UNSET", "fallback"))
}

func TestLogValues_HidesSecrets(t *testing.T) {
	cfg := validConfig()
	for _, v := range cfg.LogValues() {
		if s, ok := v.(string); ok {
			assert.NotEqual(t, cfg.JWTSecret, s)
			assert.NotEqual(t, cfg.DBPassword, s)
		}
	}
}
