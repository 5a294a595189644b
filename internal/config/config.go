// Package config manages environment variables.
//
// It reads variables from the process environment (and the `.env` file,
// when present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into process env
	// before any env var is read below.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Defaults are loaded first from a flat map (confmap provider).
	- The two variables the site has always used, PORT and MONGODB_URI,
	  are mapped onto server.port and database.uri.
	- Namespaced env vars use the PORTFOLIO_ prefix and "__" for nesting:
	  PORTFOLIO_DATABASE__OPERATION_TIMEOUT -> database.operation_timeout
	  Later providers win, so namespaced vars override the plain ones.
*/

const (
	// EnvPrefix is the prefix of every namespaced variable.
	EnvPrefix = "PORTFOLIO_"

	// envNestingSeparator separates nesting levels inside a variable name.
	envNestingSeparator = "__"

	// ServiceName labels logs and APM data.
	ServiceName = "portfolio-backend"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Cache         CacheConfig          `koanf:"cache"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int             `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,min=1"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-client request limiter.
// RPS of zero disables limiting.
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps" validate:"min=0"`
	Burst int     `koanf:"burst" validate:"min=0"`
}

// DatabaseConfig contains MongoDB connection parameters.
type DatabaseConfig struct {
	// URI is the full connection string (mongodb:// or mongodb+srv://).
	URI string `koanf:"uri" validate:"required"`

	// Name is the database holding the skills/projects/blogs collections.
	Name string `koanf:"name" validate:"required"`

	MaxPoolSize      uint64        `koanf:"max_pool_size" validate:"min=1"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout" validate:"min=1s"`
	OperationTimeout time.Duration `koanf:"operation_timeout" validate:"min=1ms"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; leaving it empty disables caching and background jobs.
type RedisConfig struct {
	Address  string `koanf:"address" validate:"omitempty,hostname_port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// CacheConfig controls the collection list cache.
type CacheConfig struct {
	ListTTL time.Duration `koanf:"list_ttl" validate:"min=1s"`
}

// defaults is the base layer every other provider overrides.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env": "development",

		"server.port":                 "5000",
		"server.read_timeout":         15,
		"server.write_timeout":        15,
		"server.idle_timeout":         60,
		"server.shutdown_timeout":     30,
		"server.cors_allowed_origins": []string{"*"},
		"server.rate_limit.rps":       0,
		"server.rate_limit.burst":     0,

		"database.name":              "portfolio",
		"database.max_pool_size":     100,
		"database.connect_timeout":   "10s",
		"database.operation_timeout": "10s",

		"cache.list_ttl": "5m",
	}
}

// legacyKeys maps the un-prefixed variables onto koanf keys.
var legacyKeys = map[string]string{
	"PORT":        "server.port",
	"MONGODB_URI": "database.uri",
}

// listKeys are koanf keys whose env values are comma separated lists.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envKey converts PORTFOLIO_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(name string) string {
	key := strings.TrimPrefix(name, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, envNestingSeparator, ".")
}

// splitList turns "a, b,,c" into [a b c].
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it, applies observability defaults,
// and returns the result.
//
// Errors are returned rather than logged fatally; main decides how to exit.
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// Plain PORT / MONGODB_URI. Any other variable is skipped by returning "",
	// and so is an empty value (PORT= behaves like an unset PORT).
	err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return legacyKeys[name], value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, interface{}) {
		key := envKey(name)
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}

	// Using "" means "unmarshal everything from the root".
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// If observability config wasn't provided, inject a default.
	// It's a pointer field, so nil means "missing".
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	} else {
		mainConfig.Observability.applyDefaults()
	}

	// Service name and environment always follow the primary config so
	// logs and traces see consistent naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
