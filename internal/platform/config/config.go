package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

type Config struct {
	Addr               string        `env:"APP_ADDR" envDefault:":8080"`
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	DBMaxConns         int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns         int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTResourceID      string        `env:"JWT_RESOURCE_ID" envDefault:"employee-service"`
	JWTPrincipalClaim  string        `env:"JWT_PRINCIPAL_CLAIM" envDefault:"preferred_username"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"LOG_FORMAT" envDefault:"json"`
	MessagesLang       string        `env:"MESSAGES_LANG" envDefault:"en"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute int64         `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPath        string        `env:"METRICS_PATH" envDefault:"/metrics"`
	DefaultPageSize    int           `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize        int           `env:"MAX_PAGE_SIZE" envDefault:"100"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SeedPositions      []string      `env:"SEED_POSITIONS" envSeparator:","`
	CleanupInterval    time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
	IdempotencyTTL     time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	AuditRetentionDays int           `env:"AUDIT_RETENTION_DAYS" envDefault:"0"`
}

// Load reads .env files when present and then the process environment.
func Load() (Config, error) {
	if err := loadEnvFiles(".env", ".env.local"); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

func loadEnvFiles(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return errors.Wrap(godotenv.Load(existing...), "load env files")
}

func (c Config) IsProduction() bool {
	return c.Environment == Production
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return errors.New("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return errors.New("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize < c.DefaultPageSize {
		return errors.New("DEFAULT_PAGE_SIZE must be positive and not exceed MAX_PAGE_SIZE")
	}
	if c.AuditRetentionDays < 0 {
		return errors.New("AUDIT_RETENTION_DAYS must not be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "LOG_LEVEL")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return errors.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	switch c.MessagesLang {
	case "en", "ru":
	default:
		return errors.Errorf("MESSAGES_LANG must be en or ru, got %q", c.MessagesLang)
	}
	return nil
}
