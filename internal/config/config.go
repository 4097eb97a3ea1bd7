package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionTTL time.Duration

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string

	// Rate limiting (requests per minute per IP; <= 0 disables)
	RateLimitMax     int
	AuthRateLimitMax int

	// Startup seeding
	SeedSampleData bool
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "gametrackr"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionTTL: parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),

		Port:        getEnv("PORT", "3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		AppEnv:      getEnv("APP_ENV", "development"),

		RateLimitMax:     parseInt(getEnv("RATE_LIMIT_MAX", "120")),
		AuthRateLimitMax: parseInt(getEnv("AUTH_RATE_LIMIT_MAX", "20")),

		SeedSampleData: getEnv("SEED_SAMPLE_DATA", "true") == "true",
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Production reports whether the server should hide internal error details.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
