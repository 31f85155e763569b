package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TZ           string
	LogLevel     string
	BindAddr     string
	HistoryDB    string
	DBDSN        string
	HistoryLimit int
}

func Load() *Config {
	env, err := godotenv.Read(".env")
	if err != nil {
		env = map[string]string{}
	}
	return &Config{
		TZ:           getEnv(env, "DATEMATH_TZ", "UTC"),
		LogLevel:     getEnv(env, "DATEMATH_LOG_LEVEL", "info"),
		BindAddr:     getEnv(env, "DATEMATH_BIND_ADDR", ":8080"),
		HistoryDB:    getEnv(env, "DATEMATH_HISTORY_DB", "./datemath-history.sqlite"),
		DBDSN:        getEnv(env, "DATEMATH_DB_DSN", ""),
		HistoryLimit: getEnvInt(env, "DATEMATH_HISTORY_LIMIT", 50),
	}
}

// Location resolves the configured time zone name.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TZ)
}

// getEnv prefers the process environment, then .env, then the default.
func getEnv(env map[string]string, key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := env[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(env map[string]string, key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(env, key, "")); err == nil {
		return n
	}
	return defaultValue
}
