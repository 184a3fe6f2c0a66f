package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL      string `env:"-"`
	ClientDBPath   string `env:"CLIENT_DB_PATH"`   // base dir for per-user client DBs; empty = user config dir
	DwellMS        int    `env:"DWELL_MS"`         // dwell threshold for the view tracker, milliseconds
	PingIntervalMS int    `env:"PING_INTERVAL_MS"` // connectivity probe period, milliseconds
	Version        bool   `env:"-"`                // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the Vibes server (may be host:port or full URL)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "base directory for per-user client databases")
	flag.IntVar(&cfg.DwellMS, "dwell-ms", cfg.DwellMS, "dwell threshold before a vibe counts as scrolled, ms")
	flag.IntVar(&cfg.PingIntervalMS, "ping-interval-ms", cfg.PingIntervalMS, "connectivity probe interval, ms")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.DwellMS <= 0 {
		cfg.DwellMS = 3000
	}
	if cfg.PingIntervalMS <= 0 {
		cfg.PingIntervalMS = 10000
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}

// DwellThreshold возвращает порог удержания как Duration.
func (c *Config) DwellThreshold() time.Duration {
	return time.Duration(c.DwellMS) * time.Millisecond
}

// PingInterval возвращает период проверки связи как Duration.
func (c *Config) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalMS) * time.Millisecond
}
