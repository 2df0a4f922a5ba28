package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Session SessionConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigin  string // origin của SPA dev server, "*" cho development
}

// BackendConfig trỏ tới REST API của HackLog backend
// Front end này không có database riêng - mọi data đi qua API
type BackendConfig struct {
	BaseURL string        // e.g. http://localhost:3000/api
	Timeout time.Duration // per-request timeout cho mọi backend call
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled bool
	ListTTL time.Duration // TTL cho cached list responses (articles, users, likes, tags)
}

type SessionConfig struct {
	CookieName string        // cookie của backend session, forward nguyên vẹn
	PageTTL    time.Duration // idle TTL cho per-session page state
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "HackLog Frontend"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigin:  getEnv("CORS_ALLOW_ORIGIN", "*"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000/api"),
			Timeout: time.Duration(getEnvInt("BACKEND_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			ListTTL: time.Duration(getEnvInt("CACHE_LIST_TTL_SECONDS", 30)) * time.Second,
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "connect.sid"),
			PageTTL:    time.Duration(getEnvInt("SESSION_PAGE_TTL_SECONDS", 900)) * time.Second,
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
