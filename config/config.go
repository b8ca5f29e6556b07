package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// storage drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory" // no database required (local demos)
)

// Config holds all application configuration
type Config struct {
	// General
	AppEnv   string // DEV | PRD
	APIPort  string
	CertFile string
	KeyFile  string

	// main database (mongoDB)
	DBDriver string
	DBUser   string
	DBPass   string
	DBHost   string
	DBPort   string
	DBName   string

	// JWT store (redis)
	CacheHost string
	CachePort string
	CachePass string
	JWTDB     int

	// tokens
	AccessSecret  string
	CookieName    string
	CookieHashKey string

	CORSOrigin string

	// analytics (influxDB)
	UseAnalytics    bool
	AnalyticsURL    string
	AnalyticsToken  string
	AnalyticsOrg    string
	AnalyticsBucket string

	ReviewModeration bool
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		AppEnv:          "DEV",
		APIPort:         "3000",
		DBDriver:        DriverMongo,
		DBHost:          "localhost",
		DBPort:          "27017",
		DBName:          "storefront",
		CacheHost:       "localhost",
		CachePort:       "6379",
		CookieName:      "sf_tokens",
		CORSOrigin:      "http://localhost:4200",
		AnalyticsBucket: "showcase-engagement",
	}
}

// Load reads the .env file (if present) and the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv overrides the configuration from environment variables
func (c *Config) LoadFromEnv() error {
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.APIPort, "API_PORT")
	setString(&c.CertFile, "APP_CERTFILE")
	setString(&c.KeyFile, "APP_KEYFILE")

	setString(&c.DBDriver, "DB_DRIVER")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPass, "DB_PASS")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBName, "DB_NAME")

	setString(&c.CacheHost, "CACHE_HOST")
	setString(&c.CachePort, "CACHE_PORT")
	setString(&c.CachePass, "CACHE_PASS")
	if v := os.Getenv("JWT_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JWT_DB: %w", err)
		}
		c.JWTDB = n
	}

	setString(&c.AccessSecret, "ACCESS_SECRET")
	setString(&c.CookieName, "JWTCK_NAME")
	setString(&c.CookieHashKey, "JWTCK_HASHKEY")
	setString(&c.CORSOrigin, "CORS_ORIGIN")

	c.UseAnalytics = os.Getenv("USE_ANALYTICS") == "YES"
	setString(&c.AnalyticsURL, "ANALYTICS_URL")
	setString(&c.AnalyticsToken, "ANALYTICS_TOKEN")
	setString(&c.AnalyticsOrg, "ANALYTICS_ORG")
	setString(&c.AnalyticsBucket, "ANALYTICS_BUCKET")

	c.ReviewModeration = os.Getenv("REVIEW_MODERATION") == "YES"

	return c.Validate()
}

// Validate checks the combination of settings
func (c *Config) Validate() error {
	switch c.AppEnv {
	case "DEV":
	case "PRD":
		if c.CertFile == "" || c.KeyFile == "" {
			return fmt.Errorf("APP_CERTFILE and APP_KEYFILE are required when APP_ENV=PRD")
		}
	default:
		return fmt.Errorf("APP_ENV must be DEV or PRD, got %q", c.AppEnv)
	}

	if c.DBDriver != DriverMongo && c.DBDriver != DriverMemory {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, c.DBDriver)
	}

	if c.UseAnalytics && c.AnalyticsURL == "" {
		return fmt.Errorf("ANALYTICS_URL is required when USE_ANALYTICS=YES")
	}

	return nil
}

// MongoURI builds the connection string of the main database
func (c *Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%s", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", c.DBUser, c.DBPass, c.DBHost, c.DBPort)
}

// CacheAddr is the redis address
func (c *Config) CacheAddr() string {
	return c.CacheHost + ":" + c.CachePort
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
