package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iPad7/gantt-4team/internal/core/domain"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	AppPort            string
	DbDriver           string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	DbParams           string
	SqlitePath         string
	AutoMigrate        bool
	ProjectStart       string
	ProjectEnd         string
	JWTSecret          string
	TokenTTL           time.Duration
	CorsAllowedOrigins []string
	TrustedProxies     []string
	LogFile            string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		DbDriver:           getEnv("DB_DRIVER", DriverMySQL),
		DbHost:             getEnv("MYSQL_HOST", "db"),
		DbPort:             getEnv("MYSQL_PORT", "3306"),
		DbUser:             getEnv("MYSQL_USER", "wbs"),
		DbPassword:         getEnv("MYSQL_PASSWORD", "wbs"),
		DbName:             getEnv("MYSQL_DATABASE", "wbs"),
		DbParams:           getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		SqlitePath:         getEnv("SQLITE_PATH", "wbs.db"),
		AutoMigrate:        getEnv("AUTO_MIGRATE", "false") == "true",
		ProjectStart:       getEnv("PROJECT_START", "2025-07-23"),
		ProjectEnd:         getEnv("PROJECT_END", "2025-09-15"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           parseDuration(os.Getenv("TOKEN_TTL"), 24*time.Hour),
		CorsAllowedOrigins: parseList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     parseList(os.Getenv("TRUSTED_PROXIES")),
		LogFile:            os.Getenv("LOG_FILE"),
	}
}

// ProjectWindow parses the configured project period.
func (c *Config) ProjectWindow() (domain.ProjectWindow, error) {
	start, err := domain.ParseDate(c.ProjectStart)
	if err != nil {
		return domain.ProjectWindow{}, fmt.Errorf("PROJECT_START: %w", err)
	}
	end, err := domain.ParseDate(c.ProjectEnd)
	if err != nil {
		return domain.ProjectWindow{}, fmt.Errorf("PROJECT_END: %w", err)
	}
	return domain.NewProjectWindow(start, end)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
