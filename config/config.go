package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	AppEnv string
	Port   string

	DBDriver   string // postgres, mysql or sqlite
	DBDSN      string // full DSN, overrides the parts below
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey    string
	JWTTTL    time.Duration
	SaltRound int

	CorsOrigins  string
	RateLimitMax int

	SendgridApiKey   string
	EmailSender      string
	NotifyWebhookURL string

	ReminderCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "5000"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBDSN:      getEnv("DB_DSN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "driving_school"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:    getEnv("JWT_SECRET", "defaultSecret"),
		JWTTTL:    getEnvDuration("JWT_TTL", time.Hour),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CorsOrigins:  getEnv("CORS_ORIGINS", "http://localhost:5173"),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		SendgridApiKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailSender:      getEnv("EMAIL_SENDER", "no-reply@drivingschool.local"),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		ReminderCron: getEnv("REMINDER_CRON", "0 18 * * *"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
	}
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}
