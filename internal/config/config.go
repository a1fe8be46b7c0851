package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key"

type Config struct {
	HTTPPort    string
	CORSOrigins string

	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	DBSSLMode      string
	DBMaxOpenConns int
	AutoMigrate    bool

	JWTSecret    string
	JWTExpiresIn time.Duration

	RequestTimeout time.Duration

	// Bootstrap admin, created on startup when no admin user exists.
	AdminUsername string
	AdminPassword string
}

// Load reads the environment (and a .env file when present). Every key has a
// fallback so the server starts against a local database with no setup.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn(".env could not be read, using process environment", "err", err)
	}

	cfg := &Config{
		HTTPPort:       getEnv("PORT", "5000"),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "admin"),
		DBName:         getEnv("DB_NAME", "payroll_management"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		AutoMigrate:    getEnvBool("AUTO_MIGRATE", true),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiresIn:   getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin"),
	}

	if cfg.JWTSecret == defaultJWTSecret {
		slog.Warn("JWT_SECRET is not set, falling back to the built-in secret; set it in production")
	}
	if cfg.AdminPassword == "admin" {
		slog.Warn("ADMIN_PASSWORD is not set, bootstrap admin uses the default password")
	}

	slog.Info("database configuration",
		"host", cfg.DBHost,
		"user", cfg.DBUser,
		"database", cfg.DBName,
		"port", cfg.DBPort,
	)

	return cfg
}

// DSN is the key/value form used by the gorm postgres driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// MigrationURL is the URL form expected by golang-migrate. Credentials are
// escaped so passwords may contain reserved characters.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return def
	}
	return d
}
