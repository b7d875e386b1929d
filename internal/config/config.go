package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	AuthModeToken = "token"
	AuthModeNone  = "none"

	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
)

// Config собирает все настройки процесса из переменных окружения.
type Config struct {
	Addr string

	// AuthMode выбирает политику выдачи креденшелов: "token" — подписанный
	// JWT и bearer-проверка на каждом запросе, "none" — логин возвращает
	// голую identity, личность берётся из userId в запросе.
	AuthMode  string
	JWTSecret string

	StoreBackend string
	DatabaseURL  string
	DataDir      string

	RedisURL string

	UploadDir      string
	UploadMaxBytes int64

	// EnforceMembership включает проверку, что отправитель сообщения
	// состоит в чате. По умолчанию выключено.
	EnforceMembership bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:         ":" + getEnvOrDefault("PORT", "8080"),
		AuthMode:     getEnvOrDefault("AUTH_MODE", AuthModeToken),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		StoreBackend: getEnvOrDefault("STORE_BACKEND", BackendPostgres),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DataDir:      getEnvOrDefault("DATA_DIR", "data"),
		RedisURL:     os.Getenv("REDIS_URL"),
		UploadDir:    getEnvOrDefault("UPLOAD_DIR", "uploads"),
	}

	switch cfg.AuthMode {
	case AuthModeToken, AuthModeNone:
	default:
		return nil, fmt.Errorf("invalid AUTH_MODE: %q", cfg.AuthMode)
	}
	if cfg.AuthMode == AuthModeToken && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_MODE=token")
	}

	switch cfg.StoreBackend {
	case BackendPostgres, BackendSQLite, BackendJSON:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND: %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
	}

	maxBytes, err := parseInt64Env("UPLOAD_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = maxBytes

	enforce, err := parseBoolEnv("ENFORCE_MEMBERSHIP", false)
	if err != nil {
		return nil, err
	}
	cfg.EnforceMembership = enforce

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64Env(key string, defaultValue int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return val, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
