package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Portfolio
	ReportingCurrency   string
	EnabledBrokers      []string
	CostBasisPerAccount bool

	// Prices
	PriceSyncEnabled  bool
	PriceSyncSchedule string
	PriceSyncTimezone string
	PriceCacheTTL     time.Duration
	PriceFeedTimeout  time.Duration

	// Transport
	RateLimit          string
	LoginRateLimit     string
	CORSAllowedOrigins []string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "portfolio-tracker")
	viper.SetDefault("REPORTING_CURRENCY", "CAD")
	viper.SetDefault("ENABLED_BROKERS", "")
	viper.SetDefault("COST_BASIS_PER_ACCOUNT", false)
	viper.SetDefault("PRICE_SYNC_ENABLED", true)
	viper.SetDefault("PRICE_SYNC_SCHEDULE", "0 6 * * *")
	viper.SetDefault("PRICE_SYNC_TIMEZONE", "America/Toronto")
	viper.SetDefault("PRICE_CACHE_TTL", "15m")
	viper.SetDefault("PRICE_FEED_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = duration("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.ReportingCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("REPORTING_CURRENCY")))
	if len(cfg.ReportingCurrency) != 3 {
		log.Printf("Warning: Invalid REPORTING_CURRENCY ('%s'). Defaulting to CAD.\n", cfg.ReportingCurrency)
		cfg.ReportingCurrency = "CAD"
	}
	// Empty means every known broker; the registry resolves it.
	cfg.EnabledBrokers = list("ENABLED_BROKERS")
	cfg.CostBasisPerAccount = viper.GetBool("COST_BASIS_PER_ACCOUNT")

	cfg.PriceSyncEnabled = viper.GetBool("PRICE_SYNC_ENABLED")
	cfg.PriceSyncSchedule = viper.GetString("PRICE_SYNC_SCHEDULE")
	cfg.PriceSyncTimezone = viper.GetString("PRICE_SYNC_TIMEZONE")
	cfg.PriceCacheTTL = duration("PRICE_CACHE_TTL", 15*time.Minute)
	cfg.PriceFeedTimeout = duration("PRICE_FEED_TIMEOUT", 10*time.Second)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = list("CORS_ALLOWED_ORIGINS")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

// duration reads a Go duration string, falling back when it is missing or invalid.
func duration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

// list reads a comma separated value, dropping blanks.
func list(key string) []string {
	var out []string
	for _, item := range strings.Split(viper.GetString(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
