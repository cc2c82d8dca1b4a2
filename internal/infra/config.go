package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	SupabaseURL    string
	SupabaseAPIKey string

	HelcimAPIToken string
	HelcimBaseURL  string

	CoinGeckoBaseURL string
	ChainlinkFeedURL string
	PriceTTL         time.Duration
	PriceSymbols     []string

	ValidationWindowDays int
	SweepInterval        time.Duration

	GeoIPDBPath        string
	CORSAllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseAPIKey: os.Getenv("SUPABASE_API_KEY"),

		HelcimAPIToken: os.Getenv("HELCIM_API_TOKEN"),
		HelcimBaseURL:  getEnv("HELCIM_BASE_URL", "https://api.helcim.com/v2"),

		CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		ChainlinkFeedURL: os.Getenv("CHAINLINK_FEED_URL"),
		PriceTTL:         time.Second * time.Duration(getEnvInt("PRICE_TTL_SECONDS", 60)),
		PriceSymbols:     getEnvList("PRICE_SYMBOLS", []string{"ETH", "MATIC", "LINK"}),

		ValidationWindowDays: getEnvInt("VALIDATION_WINDOW_DAYS", 30),
		SweepInterval:        time.Second * time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 300)),

		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.ValidationWindowDays <= 0 {
		return nil, fmt.Errorf("VALIDATION_WINDOW_DAYS must be positive")
	}

	return cfg, nil
}

// ValidationWindow returns the configured validation window as a duration.
func (c *Config) ValidationWindow() time.Duration {
	return time.Duration(c.ValidationWindowDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
