// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// OrderStore selects where order records are kept.
type OrderStore string

const (
	OrderStoreFile     OrderStore = "file"
	OrderStorePostgres OrderStore = "postgres"
	OrderStoreNone     OrderStore = "none"
)

const devSessionSecret = "dev-secret-change-in-production-32bytes"

// Config はサーバーの実行時設定
type Config struct {
	Port        string
	FrontendURL string
	BackendURL  string
	Env         string
	LogLevel    string

	SessionSecret string

	DatabaseURL string
	OrderStore  OrderStore
	OrderFile   string
	RedisURL    string

	FormRelayURL     string
	FormRelayTimeout time.Duration

	TelegramBotToken string
	TelegramChatID   int64

	GoogleClientID     string
	GoogleClientSecret string
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// GoogleEnabled reports whether Google sign-in has credentials.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// TelegramEnabled reports whether order/contact alerts go to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Unset keys take their defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:               get("PORT", "8080"),
		FrontendURL:        get("FRONTEND_URL", "http://localhost:3000"),
		Env:                get("ENV", "development"),
		LogLevel:           get("LOG_LEVEL", "INFO"),
		SessionSecret:      get("SESSION_SECRET", ""),
		DatabaseURL:        get("DATABASE_URL", ""),
		OrderStore:         OrderStore(strings.ToLower(get("ORDER_STORE", string(OrderStoreFile)))),
		OrderFile:          get("ORDER_FILE", "data/orders.json"),
		RedisURL:           get("REDIS_URL", ""),
		FormRelayURL:       get("FORM_RELAY_URL", ""),
		TelegramBotToken:   get("TELEGRAM_BOT_TOKEN", ""),
		GoogleClientID:     get("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: get("GOOGLE_CLIENT_SECRET", ""),
	}
	cfg.BackendURL = get("BACKEND_URL", "http://localhost:"+cfg.Port)

	switch cfg.OrderStore {
	case OrderStoreFile, OrderStoreNone:
	case OrderStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("ORDER_STORE=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("invalid ORDER_STORE %q", cfg.OrderStore)
	}

	timeout, err := time.ParseDuration(get("FORM_RELAY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORM_RELAY_TIMEOUT: %w", err)
	}
	cfg.FormRelayTimeout = timeout

	if v := get("TELEGRAM_CHAT_ID", ""); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET is required in production")
		}
		cfg.SessionSecret = devSessionSecret
	}
	return cfg, nil
}
