package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"

	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/database"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/storage"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"JICA Project Manager"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"Asia/Tokyo"`
	}

	DB struct {
		URL             string        `envconfig:"DATABASE_URL"`
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            int           `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"postgres"`
		Password        string        `envconfig:"DB_PASSWORD" default:""`
		Name            string        `envconfig:"DB_NAME" default:"jica"`
		SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
		AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	Auth struct {
		JWTSecret  string `envconfig:"AUTH_JWT_SECRET" required:"true"`
		Audience   string `envconfig:"AUTH_AUDIENCE" default:"authenticated"`
		Issuer     string `envconfig:"AUTH_ISSUER"`
		CookieName string `envconfig:"AUTH_COOKIE_NAME" default:"sb-access-token"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Storage struct {
		Bucket        string `envconfig:"STORAGE_BUCKET"`
		Endpoint      string `envconfig:"STORAGE_ENDPOINT"`
		Region        string `envconfig:"STORAGE_REGION" default:"auto"`
		AccessKey     string `envconfig:"STORAGE_ACCESS_KEY"`
		SecretKey     string `envconfig:"STORAGE_SECRET_KEY"`
		PublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL"`
		UsePathStyle  bool   `envconfig:"STORAGE_USE_PATH_STYLE" default:"true"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
	}

	Thresholds struct {
		OverloadedAbove       int     `envconfig:"WORKLOAD_OVERLOADED_ABOVE" default:"5"`
		HighFrom              int     `envconfig:"WORKLOAD_HIGH_FROM" default:"4"`
		NormalFrom            int     `envconfig:"WORKLOAD_NORMAL_FROM" default:"1"`
		IncomeTargetPercent   float64 `envconfig:"INCOME_TARGET_PERCENT" default:"10"`
		BudgetWarningPercent  float64 `envconfig:"BUDGET_WARNING_PERCENT" default:"80"`
		BudgetCriticalPercent float64 `envconfig:"BUDGET_CRITICAL_PERCENT" default:"90"`
		AlertWindowDays       int     `envconfig:"ALERT_WINDOW_DAYS" default:"7"`
		AlertUrgentDays       int     `envconfig:"ALERT_URGENT_DAYS" default:"3"`
		AlertsPerRule         int     `envconfig:"ALERTS_PER_RULE" default:"5"`
		DueSoonDays           int     `envconfig:"DUE_SOON_DAYS" default:"7"`
		UpcomingPaymentDays   int     `envconfig:"UPCOMING_PAYMENT_DAYS" default:"30"`
	}
}

// ConnectionString prefers DATABASE_URL and otherwise assembles one from the
// DB_* settings.
func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}

	return u.String()
}

func (c *Config) Pool() database.Pool {
	return database.Pool{
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
	}
}

// Location is the time zone calendar boundaries (today, this month, fiscal
// year) are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func (c *Config) MetricThresholds() metrics.Thresholds {
	t := c.Thresholds

	return metrics.Thresholds{
		OverloadedAbove:       t.OverloadedAbove,
		HighFrom:              t.HighFrom,
		NormalFrom:            t.NormalFrom,
		IncomeTargetPercent:   t.IncomeTargetPercent,
		BudgetWarningPercent:  t.BudgetWarningPercent,
		BudgetCriticalPercent: t.BudgetCriticalPercent,
		AlertWindowDays:       t.AlertWindowDays,
		AlertUrgentDays:       t.AlertUrgentDays,
		AlertsPerRule:         t.AlertsPerRule,
		DueSoonDays:           t.DueSoonDays,
		UpcomingPaymentDays:   t.UpcomingPaymentDays,
	}
}

func (c *Config) AuthConfig() auth.Config {
	return auth.Config{
		Secret:     c.Auth.JWTSecret,
		Audience:   c.Auth.Audience,
		Issuer:     c.Auth.Issuer,
		CookieName: c.Auth.CookieName,
	}
}

func (c *Config) StorageConfig() storage.Config {
	s := c.Storage

	return storage.Config{
		Bucket:        s.Bucket,
		Endpoint:      s.Endpoint,
		Region:        s.Region,
		AccessKey:     s.AccessKey,
		SecretKey:     s.SecretKey,
		PublicBaseURL: s.PublicBaseURL,
		UsePathStyle:  s.UsePathStyle,
	}
}

// LogLevel maps LOG_LEVEL onto slog. Unknown values fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
