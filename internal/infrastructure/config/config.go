package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Cache  CacheConfig
	Sheets SheetsConfig
	Admin  AdminConfig
	Log    LogConfig
	HTTP   HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// CacheConfig holds local persistence settings
type CacheConfig struct {
	Path string // sqlite file path, or ":memory:"
}

// SheetsConfig holds remote sync settings. An empty endpoint disables
// sync entirely and the app runs on local data only.
type SheetsConfig struct {
	Endpoint         string
	Timeout          time.Duration
	SettleDelay      time.Duration
	ReconcileRetries int
	RetryDelay       time.Duration
}

// AdminConfig holds admin console settings
type AdminConfig struct {
	Password   string
	SessionTTL time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	RequestTimeout   time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with TAZAMART_ prefix (e.g., TAZAMART_ADMIN_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("TAZAMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Cache: CacheConfig{
			Path: v.GetString("cache.path"),
		},
		Sheets: SheetsConfig{
			Endpoint:         v.GetString("sheets.endpoint"),
			Timeout:          v.GetDuration("sheets.timeout"),
			SettleDelay:      v.GetDuration("sheets.settle_delay"),
			ReconcileRetries: v.GetInt("sheets.reconcile_retries"),
			RetryDelay:       v.GetDuration("sheets.retry_delay"),
		},
		Admin: AdminConfig{
			Password:   v.GetString("admin.password"),
			SessionTTL: v.GetDuration("admin.session_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			RequestTimeout:   v.GetDuration("http.request_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tazamart-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "tazamart.db"
	}
	if cfg.Sheets.Timeout == 0 {
		cfg.Sheets.Timeout = 15 * time.Second
	}
	if cfg.Sheets.SettleDelay == 0 {
		cfg.Sheets.SettleDelay = time.Second
	}
	if cfg.Sheets.ReconcileRetries == 0 {
		cfg.Sheets.ReconcileRetries = 3
	}
	if cfg.Sheets.RetryDelay == 0 {
		cfg.Sheets.RetryDelay = 2 * time.Second
	}
	if cfg.Admin.SessionTTL == 0 {
		cfg.Admin.SessionTTL = 12 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.RequestTimeout == 0 {
		cfg.HTTP.RequestTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		// Payment proofs arrive base64-embedded in JSON bodies
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	// CORS origins get no wildcard fallback. An empty list means no
	// cross-origin requests are allowed until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Sheets.Endpoint != "" {
		u, err := url.Parse(c.Sheets.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("sheets.endpoint must be an absolute URL, got %q", c.Sheets.Endpoint)
		}
	}
	if c.Sheets.ReconcileRetries < 0 {
		return fmt.Errorf("sheets.reconcile_retries cannot be negative")
	}

	if c.App.Env == "production" {
		if c.Admin.Password != "" && len(c.Admin.Password) < 8 {
			return fmt.Errorf("admin.password must be at least 8 characters in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}
