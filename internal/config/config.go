package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"dogwalk-app-go/pkg/logger"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort       string
	Env            string
	LogLevel       string
	LogFormat      string
	StorageDriver  string
	AllowedOrigins []string
	Keywords       KeywordsConfig
	Matches        MatchesConfig
	Stats          StatsConfig
	DB             DBConfig
	Auth           AuthConfig
}

type KeywordsConfig struct {
	CacheTTL time.Duration
}

type MatchesConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

type StatsConfig struct {
	CacheTTL time.Duration
}

type DBConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	AutoMigrate     bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	Issuer        string
	Audience      string
	SkipAuth      bool
	MockUserID    string
	MockUserEmail string
	MockUserName  string
}

var defaults = map[string]any{
	"HTTP_PORT":            "8080",
	"ENV":                  "development",
	"LOG_LEVEL":            "",
	"LOG_FORMAT":           "json",
	"STORAGE_DRIVER":       StorageDriverPostgres,
	"CORS_ALLOWED_ORIGINS": "http://localhost:5173",
	"KEYWORD_CACHE_TTL":    "5m",
	"MATCH_RATE_LIMIT_RPS": 2.0,
	"MATCH_RATE_BURST":     10,
	"STATS_CACHE_TTL":      "1m",
	"DB_URL":               "",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "postgres",
	"DB_NAME":              "dogwalk_app",
	"DB_SSLMODE":           "disable",
	"DB_TIMEZONE":          "UTC",
	"DB_AUTO_MIGRATE":      true,
	"DB_MAX_OPEN_CONNS":    10,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "30m",
	"AUTH_JWT_SECRET":      "",
	"AUTH_JWT_ISSUER":      "",
	"AUTH_JWT_AUDIENCE":    "authenticated",
	"AUTH_SKIP":            false,
	"AUTH_MOCK_USER_ID":    "00000000-0000-0000-0000-000000000001",
	"AUTH_MOCK_USER_EMAIL": "",
	"AUTH_MOCK_USER_NAME":  "",
}

// Load reads .env (if any) and the process environment. The environment
// overrides .env, and both override the defaults above.
func Load(log logger.Logger) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := readDotEnv(v, log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		Env:            v.GetString("ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Keywords: KeywordsConfig{
			CacheTTL: v.GetDuration("KEYWORD_CACHE_TTL"),
		},
		Matches: MatchesConfig{
			RateLimitRPS:   v.GetFloat64("MATCH_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("MATCH_RATE_BURST"),
		},
		Stats: StatsConfig{
			CacheTTL: v.GetDuration("STATS_CACHE_TTL"),
		},
		DB: DBConfig{
			URL:             v.GetString("DB_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			TimeZone:        v.GetString("DB_TIMEZONE"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("AUTH_JWT_SECRET"),
			Issuer:        v.GetString("AUTH_JWT_ISSUER"),
			Audience:      v.GetString("AUTH_JWT_AUDIENCE"),
			SkipAuth:      v.GetBool("AUTH_SKIP"),
			MockUserID:    v.GetString("AUTH_MOCK_USER_ID"),
			MockUserEmail: v.GetString("AUTH_MOCK_USER_EMAIL"),
			MockUserName:  v.GetString("AUTH_MOCK_USER_NAME"),
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPPort) == "" {
		return fmt.Errorf("config: HTTP_PORT must be set")
	}
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.Auth.SkipAuth && c.Env == "production" {
		return fmt.Errorf("config: AUTH_SKIP must not be true when ENV=production")
	}
	if !c.Auth.SkipAuth && c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: AUTH_JWT_SECRET is required unless AUTH_SKIP=true")
	}
	if c.Matches.RateLimitRPS < 0 || c.Matches.RateLimitBurst < 0 {
		return fmt.Errorf("config: match rate limit must not be negative")
	}
	return nil
}

// GetDSN returns a postgres:// URL usable by both gorm and golang-migrate.
func (c DBConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}

	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	if c.TimeZone != "" {
		query.Set("TimeZone", c.TimeZone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
