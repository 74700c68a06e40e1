package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"restorebot/internal/constants"
)

type Environment struct {
	// Server configs
	IsDocker          bool
	Port              string
	Environment       string
	CorsAllowedOrigin string

	// Auth configs
	JWTSecret                        string
	JWTExpirationMilliseconds        int
	JWTRefreshExpirationMilliseconds int
	AdminUser                        string
	AdminPassword                    string

	// Target store configs
	TargetMongoURI string

	// Restoration configs
	MetadataDir            string
	ConcurrencyLimit       int
	SyntheticDocumentCount int
	StripSampleID          bool
	DropExisting           bool

	// Redis configs (run summaries and token blacklist)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
}

var Env Environment

// LoadEnv loads environment variables from .env file if present
// and validates required variables
func LoadEnv() error {
	// Check if running in Docker
	Env.IsDocker = os.Getenv("IS_DOCKER") == "true"

	// Load .env file only if not running in Docker
	if !Env.IsDocker {
		if err := godotenv.Load(); err != nil {
			fmt.Printf("Warning: .env file not found: %v\n", err)
		}
	}

	// Server configs
	Env.Port = getEnvWithDefault("PORT", "3000")
	Env.Environment = getEnvWithDefault("ENVIRONMENT", "DEVELOPMENT")
	Env.CorsAllowedOrigin = getEnvWithDefault("CORS_ALLOWED_ORIGIN", "http://localhost:5173")

	// Auth configs
	Env.JWTSecret = getRequiredEnv("JWT_SECRET", "restorebot_jwt_secret")
	Env.JWTExpirationMilliseconds = getIntEnvWithDefault("JWT_EXPIRATION_MILLISECONDS", 1000*60*60*24*10)                 // 10 days default
	Env.JWTRefreshExpirationMilliseconds = getIntEnvWithDefault("JWT_REFRESH_EXPIRATION_MILLISECONDS", 1000*60*60*24*30) // 30 days default
	Env.AdminUser = getEnvWithDefault("RESTOREBOT_ADMIN_USERNAME", "admin")
	Env.AdminPassword = getEnvWithDefault("RESTOREBOT_ADMIN_PASSWORD", "admin")

	// Target store configs
	Env.TargetMongoURI = getRequiredEnv("RESTOREBOT_TARGET_MONGODB_URI", "mongodb://localhost:27017/restorebot")

	// Restoration configs
	Env.MetadataDir = getEnvWithDefault("RESTOREBOT_METADATA_DIR", "mongodb_metadata")
	Env.ConcurrencyLimit = getIntEnvWithDefault("RESTOREBOT_CONCURRENCY_LIMIT", constants.DefaultConcurrencyLimit)
	Env.SyntheticDocumentCount = getIntEnvWithDefault("RESTOREBOT_DOCUMENT_COUNT", constants.DefaultSyntheticDocumentCount)
	Env.StripSampleID = getBoolEnvWithDefault("RESTOREBOT_STRIP_SAMPLE_ID", true)
	Env.DropExisting = getBoolEnvWithDefault("RESTOREBOT_DROP_EXISTING", true)

	// Redis configs
	Env.RedisHost = getRequiredEnv("RESTOREBOT_REDIS_HOST", "localhost")
	Env.RedisPort = getRequiredEnv("RESTOREBOT_REDIS_PORT", "6379")
	Env.RedisUsername = getEnvWithDefault("RESTOREBOT_REDIS_USERNAME", "")
	Env.RedisPassword = getEnvWithDefault("RESTOREBOT_REDIS_PASSWORD", "")

	return validateConfig()
}

// Helper functions to get environment variables with defaults and validation
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getRequiredEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strValue)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(strValue)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %v\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func validateConfig() error {
	// Validate target MongoDB URI format
	if !isValidURI(Env.TargetMongoURI) {
		return fmt.Errorf("invalid RESTOREBOT_TARGET_MONGODB_URI format: %s", Env.TargetMongoURI)
	}

	// Validate JWT expiration
	if Env.JWTExpirationMilliseconds <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MILLISECONDS must be positive, got: %d", Env.JWTExpirationMilliseconds)
	}

	if Env.ConcurrencyLimit <= 0 {
		return fmt.Errorf("RESTOREBOT_CONCURRENCY_LIMIT must be positive, got: %d", Env.ConcurrencyLimit)
	}

	if Env.SyntheticDocumentCount <= 0 {
		return fmt.Errorf("RESTOREBOT_DOCUMENT_COUNT must be positive, got: %d", Env.SyntheticDocumentCount)
	}

	return nil
}

func isValidURI(uri string) bool {
	return len(uri) > 10
}
