package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	SessionSecret    string
	AuthMode         string
	PublicBaseURL    string
	StoragePath      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	OAuthClientID    string
	OAuthClientSec   string
	OAuthAuthURL     string
	OAuthTokenURL    string
	OAuthRedirectURL string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	EmailFrom        string
	AdminEmail       string
	MaxUploadFiles   int
	MaxUploadBytes   int64
	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             port,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		AuthMode:         getEnv("AUTH_MODE", "always_grant"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		StoragePath:      getEnv("STORAGE_PATH", "./uploads"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "dall-e-3"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OAuthClientID:    os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSec:   os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthAuthURL:     os.Getenv("OAUTH_AUTH_URL"),
		OAuthTokenURL:    os.Getenv("OAUTH_TOKEN_URL"),
		OAuthRedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
		SMTPHost:         os.Getenv("EMAIL_HOST"),
		SMTPPort:         getEnvInt("EMAIL_PORT", 587),
		SMTPUser:         os.Getenv("EMAIL_USER"),
		SMTPPass:         os.Getenv("EMAIL_PASS"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		MaxUploadFiles:   getEnvInt("MAX_UPLOAD_FILES", 5),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		AllowedOrigins:   []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
