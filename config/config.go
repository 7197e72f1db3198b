package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverS3       = "s3"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	// Settings gate
	SettingsPIN   string
	SessionSecret string
	SessionExpiry time.Duration
	// Mapbox
	MapboxToken     string
	MapboxBaseURL   string
	MapboxCountries string
	MapboxLanguage  string
	RoutingTimeout  time.Duration // 0 keeps the transport default
	// Document store
	StoreDriver    string
	StoreTimeout   time.Duration
	MigrateOnStart bool
	// DB Config
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2Prefix          string
	// Local cache
	CacheSnapshotPath string
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),

		SettingsPIN:   getEnv("SETTINGS_PIN", ""),
		SessionSecret: getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		SessionExpiry: getDurationEnv("SETTINGS_SESSION_EXPIRY", 30*time.Minute),

		MapboxToken:     getEnv("MAPBOX_TOKEN", ""),
		MapboxBaseURL:   strings.TrimSuffix(getEnv("MAPBOX_BASE_URL", "https://api.mapbox.com"), "/"),
		MapboxCountries: getEnv("MAPBOX_COUNTRIES", "NZ,AU"),
		MapboxLanguage:  getEnv("MAPBOX_LANGUAGE", "en"),
		RoutingTimeout:  getDurationEnv("ROUTING_TIMEOUT", 0),

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		StoreTimeout:   getDurationEnv("STORE_TIMEOUT", 10*time.Second),
		MigrateOnStart: getBoolEnv("MIGRATE_ON_START", true),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 0),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2Prefix:          getEnv("R2_PREFIX", "warehouses"),

		CacheSnapshotPath: getEnv("CACHE_SNAPSHOT_PATH", ".cache/warehouse-settings.gob"),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 40),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.MapboxToken == "" {
		log.Fatal("CRITICAL: MAPBOX_TOKEN environment variable is required")
	}
	switch c.StoreDriver {
	case StoreDriverMemory:
		log.Println("WARNING: STORE_DRIVER=memory, warehouse settings are lost on restart")
	case StoreDriverPostgres:
		if c.DBUrl == "" {
			log.Fatal("CRITICAL: DB_DSN is required when STORE_DRIVER=postgres")
		}
	case StoreDriverS3:
		if c.R2AccountID == "" || c.R2BucketName == "" {
			log.Fatal("CRITICAL: R2_ACCOUNT_ID and R2_BUCKET_NAME are required when STORE_DRIVER=s3")
		}
	default:
		log.Fatalf("CRITICAL: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SettingsPIN == "" {
		log.Println("WARNING: SETTINGS_PIN is empty, the settings screen cannot be unlocked")
	}
	if c.SessionSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
