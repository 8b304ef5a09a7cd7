package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	ServerPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RabbitURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret    string
	JWTExpiry    time.Duration
	CSRFSecret   string
	CSRFTTL      time.Duration
	CookieSecure bool

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	ChatTimeout   time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	PaymentAPIKey        string
	PaymentBaseURL       string
	PaymentWebhookSecret string

	DashboardCacheTTL time.Duration

	// AdminEmail is granted the admin role when it registers.
	AdminEmail string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment. It exits when
// the resulting configuration is invalid.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "nexo_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RabbitURL: getEnv("RABBITMQ_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiry:    getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		CSRFSecret:   getEnv("CSRF_SECRET", ""),
		CSRFTTL:      getEnvDuration("CSRF_TTL", time.Hour),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		ChatTimeout:   getEnvDuration("CHAT_TIMEOUT", 30*time.Second),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@nexo.com"),

		PaymentAPIKey:        getEnv("PAYMENT_API_KEY", ""),
		PaymentBaseURL:       getEnv("PAYMENT_BASE_URL", "https://nexopaisa.example.com/pay"),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),

		DashboardCacheTTL: getEnvDuration("DASHBOARD_CACHE_TTL", time.Minute),

		AdminEmail: strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("SERVER_PORT must be between 1 and 65535, got: %s", c.ServerPort))
	}
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverMySQL {
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be %q or %q, got: %s", DriverPostgres, DriverMySQL, c.DBDriver))
	}
	if c.DBName == "" {
		problems = append(problems, "DB_NAME cannot be empty")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	if c.CSRFSecret == "" {
		problems = append(problems, "CSRF_SECRET cannot be empty")
	}
	if c.JWTSecret != "" && c.JWTSecret == c.CSRFSecret {
		problems = append(problems, "CSRF_SECRET must differ from JWT_SECRET")
	}
	if c.JWTExpiry <= 0 {
		problems = append(problems, fmt.Sprintf("JWT_EXPIRY must be positive, got: %s", c.JWTExpiry))
	}
	if c.CSRFTTL <= 0 {
		problems = append(problems, fmt.Sprintf("CSRF_TTL must be positive, got: %s", c.CSRFTTL))
	}
	if c.ChatTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("CHAT_TIMEOUT must be positive, got: %s", c.ChatTimeout))
	}
	if c.DashboardCacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("DASHBOARD_CACHE_TTL must be positive, got: %s", c.DashboardCacheTTL))
	}

	if len(problems) > 0 {
		msg := "configuration validation failed:\n"
		for i, p := range problems {
			msg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// LogValues returns the loaded configuration as logger attributes, with
// secrets reduced to whether they are set.
func (c *Config) LogValues() []any {
	return []any{
		"port", c.ServerPort,
		"db_driver", c.DBDriver,
		"db_host", c.DBHost,
		"db_name", c.DBName,
		"rabbitmq_enabled", c.RabbitURL != "",
		"redis_enabled", c.RedisAddr != "",
		"jwt_expiry", c.JWTExpiry,
		"csrf_ttl", c.CSRFTTL,
		"openai_key_set", c.OpenAIKey != "",
		"smtp_user_set", c.SMTPUser != "",
		"payment_key_set", c.PaymentAPIKey != "",
		"webhook_secret_set", c.PaymentWebhookSecret != "",
		"dashboard_cache_ttl", c.DashboardCacheTTL,
		"admin_email_set", c.AdminEmail != "",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
