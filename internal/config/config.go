package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Security SecurityConfig `yaml:"security"`
	I18n     I18nConfig     `yaml:"i18n"`
	Log      LogConfig      `yaml:"log"`
	TimeZone string         `yaml:"time_zone" env:"TZ" env-default:"UTC"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"                    env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects the key-value backend for device namespaces.
type StorageConfig struct {
	Driver        string `yaml:"driver"         env:"STORAGE_DRIVER" env-default:"sqlite"`
	DBPath        string `yaml:"db_path"        env:"DB_PATH"        env-default:"data/ovumcalendar.db"`
	RedisAddr     string `yaml:"redis_addr"     env:"REDIS_ADDR"     env-default:"127.0.0.1:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"REDIS_DB"       env-default:"0"`
}

// SecurityConfig holds device session settings.
type SecurityConfig struct {
	SecretKey      string        `yaml:"secret_key"       env:"SECRET_KEY"       env-required:"true"`
	CookieSecure   bool          `yaml:"cookie_secure"    env:"COOKIE_SECURE"    env-default:"false"`
	DeviceTokenTTL time.Duration `yaml:"device_token_ttl" env:"DEVICE_TOKEN_TTL" env-default:"8760h"`
}

// I18nConfig holds localization settings.
type I18nConfig struct {
	DefaultLanguage string `yaml:"default_language" env:"DEFAULT_LANGUAGE" env-default:"en"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Location resolves TimeZone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return location
}

// ListenAddr is the host:port pair passed to the HTTP listener.
func (s ServerConfig) ListenAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
