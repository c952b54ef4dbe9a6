package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`
	DBPath     string `json:"db_path"`

	// Logging configuration
	LogLevel string `json:"log_level"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DBDriver: %s, DBHost: %s, DBPort: %s, DBUser: %s, DBPassword: [REDACTED], DBName: %s, DBSSLMode: %s, DBPath: %s, LogLevel: %s}",
		c.Port, c.Host, c.Environment, c.DBDriver, c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBSSLMode, c.DBPath, c.LogLevel)
}

// LoadConfig reads the configuration from environment variables and returns a Config struct
// Returns an error if any environment variable holds an invalid value
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		Environment: GetEnvWithDefault("APP_ENV", "development"),
		DBDriver:    GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:      GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:      GetEnvWithDefault("DB_PORT", "5432"),
		DBUser:      GetEnvWithDefault("DB_USER", "user"),
		DBPassword:  GetEnvWithDefault("DB_PASSWORD", "password"),
		DBName:      GetEnvWithDefault("DB_NAME", "users"),
		DBSSLMode:   GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:      GetEnvWithDefault("DB_PATH", "users.sqlite"),
		LogLevel:    GetEnvWithDefault("LOG_LEVEL", "info"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
