package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	JWT       JWTConfig
	Log       LogConfig
	CORS      CORSConfig
	Reconcile ReconcileConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig for the project summary cache. Empty URL disables caching.
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
	CacheTTL time.Duration
}

// NATSConfig for domain event publishing. Empty URL disables publishing.
type NATSConfig struct {
	URL string // nats://localhost:4222
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// CORSConfig lists the only origins that receive CORS headers.
type CORSConfig struct {
	AllowedOrigins []string
}

// ReconcileConfig controls the periodic project re-aggregation job.
type ReconcileConfig struct {
	Enabled bool
	Cron    string
}

// RateLimitConfig throttles API requests per client IP. Zero disables it.
type RateLimitConfig struct {
	RequestsPerMin int
	Burst          int
}

func LoadConfig() (*Config, error) {
	// missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	jwtTTLHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "168"))
	if err != nil || jwtTTLHours <= 0 {
		jwtTTLHours = 168
	}

	rpm, _ := strconv.Atoi(getEnv("RATE_LIMIT_PER_MIN", "300"))
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "50"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Taskboard API"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		NATS: NATSConfig{
			URL: os.Getenv("NATS_URL"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			TTL:    time.Duration(jwtTTLHours) * time.Hour,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		},
		Reconcile: ReconcileConfig{
			Enabled: getEnv("RECONCILE_ENABLED", "true") == "true",
			Cron:    getEnv("RECONCILE_CRON", "0 * * * *"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMin: rpm,
			Burst:          burst,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseList splits a comma-separated value, dropping blanks.
// "a, b,,c" -> ["a", "b", "c"]
func parseList(s string) []string {
	var items []string
	for _, p := range strings.Split(s, ",") {
		if item := strings.TrimSpace(p); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
