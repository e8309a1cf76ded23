package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	JWTExpiration  time.Duration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	EmailFrom      string
	ClientURL      string
	MarketCacheTTL time.Duration

	// Base URLs for the upstream price providers, overridable for tests.
	CoinGeckoURL    string
	BinanceURL      string
	ExchangeRateURL string
	StooqURL        string
}

func LoadConfig() *Config {
	// Try to load .env file but don't fail if it doesn't exist
	_ = godotenv.Load()

	expiration, err := time.ParseDuration(getEnv("JWT_EXPIRATION", "168h"))
	if err != nil {
		log.Fatal("Invalid JWT_EXPIRATION format. Use format like '168h'")
	}

	ttlMs, err := strconv.Atoi(getEnv("MARKET_CACHE_TTL_MS", "10000"))
	if err != nil {
		log.Fatal("Invalid MARKET_CACHE_TTL_MS, expected integer milliseconds")
	}

	return &Config{
		AppPort:        getEnv("APP_PORT", "3301"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "orumgs_db"),
		JWTSecret:      getEnv("JWT_SECRET", "default-secret"),
		JWTExpiration:  expiration,
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USER", "apikey"),
		SMTPPassword:   getEnv("SMTP_PASS", ""),
		EmailFrom:      getEnv("MAIL_FROM", "no-reply@example.com"),
		ClientURL:      getEnv("CLIENT_URL", ""),
		MarketCacheTTL: time.Duration(ttlMs) * time.Millisecond,

		CoinGeckoURL:    getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
		BinanceURL:      getEnv("BINANCE_URL", "https://api.binance.com"),
		ExchangeRateURL: getEnv("EXCHANGERATE_URL", "https://api.exchangerate.host"),
		StooqURL:        getEnv("STOOQ_URL", "https://stooq.com"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
