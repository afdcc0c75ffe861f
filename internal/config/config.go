package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBPath        string
	ServerPort    string
	RedisURL      string
	Env           string
	RedisTTL      time.Duration
	FrontendURLs  []string
	SessionKeys   []string
	SessionMaxAge time.Duration
	SSL           bool
	AdminUsername string
	AdminPassword string
}

func LoadConfig() Config {
	ttl := getEnvAsDuration("REDIS_TTL", 5*time.Minute)
	sessionMaxAge := getEnvAsDuration("SESSION_MAX_AGE", 12*time.Hour)

	return Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:        getEnv("DB_HOST", "postgres"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPass:        getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "trello"),
		DBPath:        getEnv("DB_PATH", "trello.db"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		RedisURL:      getEnv("REDIS_URL", ""),
		Env:           getEnv("ENV", "dev"),
		RedisTTL:      ttl,
		FrontendURLs:  getEnvAsList("FRONTEND_URL"),
		SessionKeys:   getEnvAsList("SESSION_KEYS"),
		SessionMaxAge: sessionMaxAge,
		SSL:           getEnvAsBool("SSL", false),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}

// getEnvAsList splits a comma-separated variable, dropping blank entries.
func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
