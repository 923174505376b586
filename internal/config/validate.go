package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	MinSecretKeyLength = 32
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an insecure placeholder value")
	ErrSecretKeyTooShort    = errors.New("SECRET_KEY must be at least 32 characters")
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := ValidateSecretKey(c.Security.SecretKey); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if c.Security.DeviceTokenTTL <= 0 {
		return fmt.Errorf("security.device_token_ttl must be > 0 (got %s)", c.Security.DeviceTokenTTL)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}

	return nil
}

// ValidateSecretKey rejects empty, placeholder and short secrets.
func ValidateSecretKey(raw string) error {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretPlaceholders[strings.ToLower(secret)]; insecure {
		return ErrSecretKeyPlaceholder
	}
	if len(secret) < MinSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case DriverSQLite:
		if strings.TrimSpace(s.DBPath) == "" {
			return errors.New("db_path is required for the sqlite driver")
		}
	case DriverRedis:
		if strings.TrimSpace(s.RedisAddr) == "" {
			return errors.New("redis_addr is required for the redis driver")
		}
		if s.RedisDB < 0 {
			return fmt.Errorf("redis_db must be >= 0 (got %d)", s.RedisDB)
		}
	default:
		return fmt.Errorf("unknown driver %q", s.Driver)
	}
	return nil
}
