package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DateFormatBR  = "br"
	DateFormatISO = "iso"
)

const (
	defaultDatabasePath   = "cadastro.db"
	defaultPort           = "8080"
	defaultPageSize       = 50
	defaultMaxPageSize    = 500
	defaultRequestTimeout = 60
)

type Config struct {
	// database path (file name or sqlite DSN)
	DatabasePath string
	DBLogLevel   string

	// http server
	Port               string
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string

	// wire format of birth dates, one of DateFormatBR or DateFormatISO
	DateFormat string

	// pagination defaults applied by the handlers
	DefaultPageSize int
	MaxPageSize     int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadConfig() (Config, error) {
	dateFormat := strings.ToLower(getEnvOrDefault("DATE_FORMAT", DateFormatBR))
	if dateFormat != DateFormatBR && dateFormat != DateFormatISO {
		return Config{}, fmt.Errorf("invalid DATE_FORMAT '%s': expected '%s' or '%s'", dateFormat, DateFormatBR, DateFormatISO)
	}

	dbLogLevel := strings.ToLower(getEnvOrDefault("DB_LOG_LEVEL", "warn"))
	switch dbLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return Config{}, fmt.Errorf("invalid DB_LOG_LEVEL '%s'", dbLogLevel)
	}

	pageSize := getEnvIntOrDefault("DEFAULT_PAGE_SIZE", defaultPageSize)
	maxPageSize := getEnvIntOrDefault("MAX_PAGE_SIZE", defaultMaxPageSize)
	if pageSize > maxPageSize {
		return Config{}, fmt.Errorf("DEFAULT_PAGE_SIZE (%d) exceeds MAX_PAGE_SIZE (%d)", pageSize, maxPageSize)
	}

	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cfg := Config{
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		DBLogLevel:         dbLogLevel,
		Port:               getEnvOrDefault("PORT", defaultPort),
		RequestTimeout:     time.Duration(getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)) * time.Second,
		CORSAllowedOrigins: origins,
		DateFormat:         dateFormat,
		DefaultPageSize:    pageSize,
		MaxPageSize:        maxPageSize,
	}

	return cfg, nil
}
