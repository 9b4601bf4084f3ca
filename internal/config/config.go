// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Platform    PlatformConfig
	Payment     PaymentConfig
	AWS         AWSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // in hours
	RefreshTokenTTL int // in hours
}

// PlatformConfig carries the marketplace identities that exist before any
// request is served. The operator is a regular user account whose id grants
// the operator-only endpoints; the treasury id owns the custodial wallet
// that buyer funds settle into.
type PlatformConfig struct {
	OperatorID     uuid.UUID
	TreasuryID     uuid.UUID
	FeeBasisPoints int // seed value for a fresh database
	DownloadURLTTL time.Duration
}

type PaymentConfig struct {
	StripeSecretKey      string
	StripePublishableKey string
	Currency             string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

// Development ids keep local seeding deterministic; production must override.
const (
	defaultOperatorID = "00000000-0000-0000-0000-000000000001"
	defaultTreasuryID = "00000000-0000-0000-0000-000000000002"
)

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	operatorID, err := getEnvAsUUID("PLATFORM_OPERATOR_ID", defaultOperatorID)
	if err != nil {
		return nil, fmt.Errorf("PLATFORM_OPERATOR_ID: %w", err)
	}
	treasuryID, err := getEnvAsUUID("PLATFORM_TREASURY_ID", defaultTreasuryID)
	if err != nil {
		return nil, fmt.Errorf("PLATFORM_TREASURY_ID: %w", err)
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "vendora"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL:  getEnvAsInt("JWT_ACCESS_TTL", 24),   // 24 hours
			RefreshTokenTTL: getEnvAsInt("JWT_REFRESH_TTL", 168), // 7 days
		},
		Platform: PlatformConfig{
			OperatorID:     operatorID,
			TreasuryID:     treasuryID,
			FeeBasisPoints: getEnvAsInt("PLATFORM_FEE_BASIS_POINTS", 250),
			DownloadURLTTL: time.Duration(getEnvAsInt("DOWNLOAD_URL_TTL_MINUTES", 15)) * time.Minute,
		},
		Payment: PaymentConfig{
			StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			Currency:             getEnv("PAYMENT_CURRENCY", "usd"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "vendora-assets"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Platform.OperatorID == uuid.Nil || c.Platform.TreasuryID == uuid.Nil {
		return fmt.Errorf("operator and treasury ids must be set")
	}

	if c.Platform.OperatorID == c.Platform.TreasuryID {
		return fmt.Errorf("operator and treasury ids must differ")
	}

	if c.Platform.FeeBasisPoints < 0 || c.Platform.FeeBasisPoints > 1000 {
		return fmt.Errorf("platform fee must be between 0 and 1000 basis points")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUUID(key, defaultValue string) (uuid.UUID, error) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return uuid.Parse(value)
}
