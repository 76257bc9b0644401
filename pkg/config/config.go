package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Sheets   SheetsConfig
	OCR      OCRConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TelegramConfig struct {
	Token         string
	WebhookSecret string
	WebhookURL    string
	APIBaseURL    string
}

type SheetsConfig struct {
	SpreadsheetID   string
	Range           string
	CredentialsJSON string
}

type OCRConfig struct {
	Endpoint string
	APIKey   string
	Language string
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	PasswordHash string
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file in the current directory or the project root.
func Load() (*Config, error) {
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	tokenTTL, _ := strconv.Atoi(getEnv("AUTH_TOKEN_TTL_HOURS", "24"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gastobot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Telegram: TelegramConfig{
			Token:         os.Getenv("TELEGRAM_TOKEN"),
			WebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
			WebhookURL:    os.Getenv("TELEGRAM_WEBHOOK_URL"),
			APIBaseURL:    getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			Range:           getEnv("GOOGLE_SHEET_RANGE", "Dados!A:F"),
			CredentialsJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT"),
		},
		OCR: OCRConfig{
			Endpoint: getEnv("OCR_ENDPOINT", "https://api.ocr.space/parse/image"),
			APIKey:   os.Getenv("OCR_API_KEY"),
			Language: getEnv("OCR_LANGUAGE", "por"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET_KEY", "change-me-in-production"),
			TokenTTL:     time.Duration(tokenTTL) * time.Hour,
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
