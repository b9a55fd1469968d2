package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server Server `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Mongo / media storage configuration
	Mongo MongoConfig `json:"mongo"`

	// Delivery (retry loop) configuration
	Delivery DeliveryConfig `json:"delivery"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// Server contains server-related configuration
type Server struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains GridFS media storage configuration
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
	Enabled  bool   `json:"enabled"`
}

// DeliveryConfig contains the redelivery loop configuration
type DeliveryConfig struct {
	MaxRetries int `json:"max_retries"` // Max redelivery attempts per message
	RetryDelay int `json:"retry_delay"` // Seconds between attempts
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, text
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

// Load builds a Config from environment variables with development defaults.
func Load() *Config {
	return &Config{
		Server: Server{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8003"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "3306"),
			Username:     getEnv("DB_USER", "gochat_user"),
			Password:     getEnv("DB_PASSWORD", ""),
			DatabaseName: getEnv("DB_NAME", "gochat_db"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "gochat_media"),
			Enabled:  getEnv("MONGO_ENABLED", "true") == "true",
		},
		Delivery: DeliveryConfig{
			MaxRetries: getEnvInt("DELIVERY_MAX_RETRIES", 3),
			RetryDelay: getEnvInt("DELIVERY_RETRY_DELAY", 10),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "text"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// RetryDelay returns the delay between redelivery attempts as a Duration.
func (cfg *Config) RetryDelay() time.Duration {
	return time.Duration(cfg.Delivery.RetryDelay) * time.Second
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
