package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

// ErrMissingConnectionString is returned when DB_CONNECTION_STRING is unset.
var ErrMissingConnectionString = errors.New("DB_CONNECTION_STRING is required")

type envConfig struct {
	// database config
	DB_CONNECTION_STRING string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// server config
	APP_PORT string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
	// export config
	EXPORT_TEMPLATE_PATH string
}

// LoadEnvConfig reads .env (if present) into the process environment and
// fills DefaultEnvConfig. A missing .env file is not an error.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &envConfig{
		DB_CONNECTION_STRING: getEnvString("DB_CONNECTION_STRING", ""),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
		EXPORT_TEMPLATE_PATH: getEnvString("EXPORT_TEMPLATE_PATH", ""),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	DefaultEnvConfig = cfg
	return nil
}

// Validate reports settings the application cannot start without.
func (c *envConfig) Validate() error {
	if c.DB_CONNECTION_STRING == "" {
		return ErrMissingConnectionString
	}
	if c.DB_MAX_OPEN_CONNS > 0 && c.DB_MAX_IDLE_CONNS > c.DB_MAX_OPEN_CONNS {
		return fmt.Errorf("DB_MAX_IDLE_CONNS (%d) exceeds DB_MAX_OPEN_CONNS (%d)", c.DB_MAX_IDLE_CONNS, c.DB_MAX_OPEN_CONNS)
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
