package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Amadeus  Amadeus    `mapstructure:",squash"`
	Scanner  Scanner    `mapstructure:",squash"`
	History  History    `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Amadeus holds the upstream flight-offer API configuration. The test
// and production environments use different base URLs and credentials.
type Amadeus struct {
	BaseURL        string        `mapstructure:"AMADEUS_BASE_URL"`
	APIKey         string        `mapstructure:"AMADEUS_API_KEY"`
	APISecret      string        `mapstructure:"AMADEUS_API_SECRET"`
	RequestTimeout time.Duration `mapstructure:"AMADEUS_REQUEST_TIMEOUT"`
	MaxRetries     int           `mapstructure:"AMADEUS_MAX_RETRIES"`
	RetryBudget    time.Duration `mapstructure:"AMADEUS_RETRY_BUDGET"`
	RateLimitRPS   int           `mapstructure:"AMADEUS_RATE_LIMIT"`
}

// Scanner holds the date-range sweep tuning knobs.
type Scanner struct {
	Concurrency     int           `mapstructure:"SCANNER_CONCURRENCY"`
	PaceInterval    time.Duration `mapstructure:"SCANNER_PACE_INTERVAL"`
	Cooldown        time.Duration `mapstructure:"SCANNER_COOLDOWN"`
	CacheExpiration time.Duration `mapstructure:"SCAN_CACHE_EXPIRATION"`
	LockTimeout     time.Duration `mapstructure:"SCAN_LOCK_TIMEOUT"`
}

type History struct {
	Path string `mapstructure:"HISTORY_DB_PATH"`
}
