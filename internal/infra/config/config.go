package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string
	LogLevel           string
	HTTPAddr           string
	BackendURL         string
	BackendTimeout     time.Duration
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheTTL           time.Duration
	DraftTTL           time.Duration
	IdempotencyTTL     time.Duration
	SessionCookie      string
	RoleCookie         string
	SessionMaxAge      time.Duration
	LoginPath          string
	CORSOrigins        []string
	CalendarWindowDays int
}

// Defaults is what Load starts from; cmd falls back to it when Load fails.
func Defaults() Config {
	return Config{
		Env:                "dev",
		LogLevel:           "info",
		HTTPAddr:           ":8080",
		BackendURL:         "http://localhost:8000/api/v1",
		BackendTimeout:     5 * time.Second,
		CacheTTL:           30 * time.Second,
		DraftTTL:           24 * time.Hour,
		IdempotencyTTL:     24 * time.Hour,
		SessionCookie:      "token",
		RoleCookie:         "role",
		SessionMaxAge:      7 * 24 * time.Hour,
		LoginPath:          "/login",
		CORSOrigins:        []string{"http://localhost:3000"},
		CalendarWindowDays: 90,
	}
}

// LoadDotEnv merges .env files into the environment. Missing files are skipped
// and variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	def := Defaults()
	cfg := Config{
		Env:           getEnv("APP_ENV", def.Env),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", def.LogLevel)),
		HTTPAddr:      getEnv("HTTP_ADDR", def.HTTPAddr),
		BackendURL:    strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionCookie: getEnv("SESSION_COOKIE", def.SessionCookie),
		RoleCookie:    getEnv("ROLE_COOKIE", def.RoleCookie),
		LoginPath:     getEnv("LOGIN_PATH", def.LoginPath),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", strings.Join(def.CORSOrigins, ","))),
	}

	var err error
	if cfg.BackendTimeout, err = parseDurationEnv("BACKEND_TIMEOUT", def.BackendTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = parseDurationEnv("CACHE_TTL", def.CacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.DraftTTL, err = parseDurationEnv("DRAFT_TTL", def.DraftTTL); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = parseDurationEnv("IDEMP_TTL", def.IdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.SessionMaxAge, err = parseDurationEnv("SESSION_MAX_AGE", def.SessionMaxAge); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.CalendarWindowDays, err = parseIntEnv("CALENDAR_WINDOW_DAYS", def.CalendarWindowDays); err != nil {
		return Config{}, err
	}

	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("BACKEND_URL is required")
	}
	if cfg.CalendarWindowDays <= 0 {
		return Config{}, fmt.Errorf("CALENDAR_WINDOW_DAYS must be positive")
	}
	if !strings.HasPrefix(cfg.LoginPath, "/") {
		cfg.LoginPath = "/" + cfg.LoginPath
	}
	return cfg, nil
}

// UsesRedis reports whether caches and stores should be redis-backed.
func (c Config) UsesRedis() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}
