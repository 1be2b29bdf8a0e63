package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application.
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Server
	ServerPort string

	// Redis (login throttling; the service degrades gracefully without it)
	RedisHost string
	RedisPort string
	RedisDB   int

	// JWT authentication
	JWTSecretKey string
	// TokenLifetime is how long an issued session token stays valid.
	TokenLifetime time.Duration

	// Seed super admin
	SuperAdminUsername string
	SuperAdminPassword string
}

// LoadConfig loads config from environment variables.
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")

	return &Config{
		EnvType: envType,

		DBHost:     getEnvRequired("DB_HOST"),
		DBUser:     getEnvRequired("DB_USER"),
		DBPassword: getEnvRequired("DB_PASSWORD"),
		DBName:     getEnvRequired("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "3306"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		JWTSecretKey:  getEnv("JWT_SECRET_KEY", "janasampark-secret-key-change-in-production"),
		TokenLifetime: 7 * 24 * time.Hour,

		SuperAdminUsername: getEnv("SUPER_ADMIN_USERNAME", "superadmin"),
		SuperAdminPassword: getEnvRequired("SUPER_ADMIN_PASSWORD"),
	}
}

// GetConfig returns the application configuration as a singleton.
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string.
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true"
}

// GetRedisAddr returns the Redis address.
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper function to get environment variable with default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function for environment variables that must be provided.
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
