// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Pricing     PricingConfig
	Admin       AdminConfig
	I18n        I18nConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	RateLimitPerSec int
	RateLimitBurst  int
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
	SecretKey      string
	AccessTokenTTL int // in hours
}

type RedisConfig struct {
	Enabled         bool
	Host            string
	Port            string
	Password        string
	DB              int
	PromotionTTLSec int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	PresignTTLMin   int
}

// PricingConfig seeds the store customization settings on first boot.
type PricingConfig struct {
	Currency             string
	DesignSmall          string
	DesignMedium         string
	DesignLarge          string
	PersonalizationSmall string
	PersonalizationLarge string
}

type AdminConfig struct {
	Email        string
	PasswordHash string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", ""),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:     getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			RateLimitPerSec: getEnvAsInt("RATE_LIMIT_PER_SEC", 20),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "apparel_shop"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 12),
		},
		Redis: RedisConfig{
			Enabled:         getEnvAsBool("REDIS_ENABLED", false),
			Host:            getEnv("REDIS_HOST", "localhost"),
			Port:            getEnv("REDIS_PORT", "6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			PromotionTTLSec: getEnvAsInt("REDIS_PROMOTION_TTL", 30),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "apparel-uploads"),
			PresignTTLMin:   getEnvAsInt("AWS_PRESIGN_TTL_MINUTES", 15),
		},
		Pricing: PricingConfig{
			Currency:             getEnv("PRICING_CURRENCY", "USD"),
			DesignSmall:          getEnv("PRICING_DESIGN_SMALL", "2.00"),
			DesignMedium:         getEnv("PRICING_DESIGN_MEDIUM", "5.00"),
			DesignLarge:          getEnv("PRICING_DESIGN_LARGE", "10.00"),
			PersonalizationSmall: getEnv("PRICING_PERSONALIZATION_SMALL", "1.00"),
			PersonalizationLarge: getEnv("PRICING_PERSONALIZATION_LARGE", "3.00"),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@example.com"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
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

	if c.Admin.PasswordHash == "" && c.Environment == "production" {
		return fmt.Errorf("admin password hash is required in production")
	}

	prices := map[string]string{
		"PRICING_DESIGN_SMALL":          c.Pricing.DesignSmall,
		"PRICING_DESIGN_MEDIUM":         c.Pricing.DesignMedium,
		"PRICING_DESIGN_LARGE":          c.Pricing.DesignLarge,
		"PRICING_PERSONALIZATION_SMALL": c.Pricing.PersonalizationSmall,
		"PRICING_PERSONALIZATION_LARGE": c.Pricing.PersonalizationLarge,
	}
	for key, value := range prices {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s is not a valid amount: %w", key, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("%s must not be negative", key)
		}
	}

	return nil
}

func (r *RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

func (r *RedisConfig) PromotionTTL() time.Duration {
	return time.Duration(r.PromotionTTLSec) * time.Second
}

func (a *AWSConfig) PresignTTL() time.Duration {
	return time.Duration(a.PresignTTLMin) * time.Minute
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
