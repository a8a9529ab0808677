package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DatabaseURL string
	ServerPort  string
	LogLevel    string

	// AdminKey and AdminSecondKey are compared against the email and
	// password submitted at sign-up to recognise the bootstrap administrator.
	AdminKey       string
	AdminSecondKey string

	SessionAuthKey []byte
	SessionEncKey  []byte
	CookieSecure   bool

	BcryptCost int
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getenv("DATABASE_URL"),
		ServerPort:     getenv("SERVER_PORT"),
		LogLevel:       getenv("LOG_LEVEL"),
		AdminKey:       getenv("ADMIN_KEY"),
		AdminSecondKey: getenv("ADMIN_SECOND_KEY"),
		BcryptCost:     bcrypt.DefaultCost,
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.AdminKey == "" {
		missing = append(missing, "ADMIN_KEY")
	}
	if cfg.AdminSecondKey == "" {
		missing = append(missing, "ADMIN_SECOND_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if v := getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}

	if v := getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("BCRYPT_COST must be an integer in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.BcryptCost = cost
	}

	var err error
	if cfg.SessionAuthKey, err = sessionKey(getenv("SESSION_AUTH_KEY"), "SESSION_AUTH_KEY", 32); err != nil {
		return nil, err
	}
	if cfg.SessionEncKey, err = sessionKey(getenv("SESSION_ENC_KEY"), "SESSION_ENC_KEY", 32); err != nil {
		return nil, err
	}

	return cfg, nil
}

// sessionKey returns the configured key or, when unset, a random one. A
// random key invalidates every session on restart.
func sessionKey(v, name string, size int) ([]byte, error) {
	if v != "" {
		if name == "SESSION_ENC_KEY" && !validAESKeyLen(len(v)) {
			return nil, fmt.Errorf("%s must be 16, 24 or 32 bytes, got %d", name, len(v))
		}
		return []byte(v), nil
	}
	slog.Warn("session key not set, generating a per-process key", "env", name)
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	return key, nil
}

func validAESKeyLen(n int) bool {
	return n == 16 || n == 24 || n == 32
}
