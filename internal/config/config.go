package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Auth settings
	JWTSecret string
	TokenTTL  time.Duration // lifetime of issued bearer tokens (default: 24h)

	// Pagination settings
	PageSize int // fixed page size for index endpoints (default: 10)
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	tokenTTL := 24 * time.Hour
	if ttlEnv := os.Getenv("TOKEN_TTL"); ttlEnv != "" {
		val, err := time.ParseDuration(ttlEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL value: %v", err)
		}
		tokenTTL = val
	}
	pageSize := 10
	if sizeEnv := os.Getenv("PAGE_SIZE"); sizeEnv != "" {
		val, err := strconv.Atoi(sizeEnv)
		if err == nil && val > 0 {
			pageSize = val
		}
	}
	cfg := &Config{
		AppPort:    os.Getenv("APP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  tokenTTL,
		PageSize:  pageSize,
	}
	// Basic validation for required fields
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
// Driver errors are translated so unique-constraint violations surface as
// gorm.ErrDuplicatedKey.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return db, nil
}
