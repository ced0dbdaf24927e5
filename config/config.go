package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath  string
	Event      string
	OutputDir  string
	EventsFile string
	LogLevel   string

	SlotMinutes   int
	ReportWorkers int

	HTTPAddr    string
	MaxUploadMB int

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	PDFEnabled bool
	ChromeBin  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputPath:  getEnv("INPUT_PATH", ""),
		Event:      getEnv("EVENT", DefaultEvent),
		OutputDir:  getEnv("OUTPUT_DIR", "./output"),
		EventsFile: getEnv("EVENTS_FILE", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		SlotMinutes:   getEnvInt("SLOT_MINUTES", 30),
		ReportWorkers: getEnvInt("REPORT_WORKERS", 3),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "setmore"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "setmore"),
		PostgresDB:       getEnv("POSTGRES_DB", "schedules"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),

		PDFEnabled: getEnvBool("PDF_ENABLED", false),
		ChromeBin:  getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
		log.Printf("[config] Invalid int for %s=%q, using default %d", key, val, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
		log.Printf("[config] Invalid bool for %s=%q, using default %t", key, val, fallback)
	}
	return fallback
}
