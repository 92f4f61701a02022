package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via the environment.
type AppConfig struct {
	AppPort string
	BaseURL string

	// Signing configuration for session tokens
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	// Document database
	MongoDBURL   string
	DatabaseName string

	// Local blob storage
	UploadDir string

	// SMTP for email verification (optional; mailer degrades to logging)
	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string

	// Out-of-band elevation of the first ops account
	BootstrapOpsEmail string

	AllowedOrigins     []string
	RateLimitPerMinute int

	// Gin framework configuration
	GinMode string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration from environment variables. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	cfg = AppConfig{
		AppPort:                  getEnv("APP_PORT", "8080"),
		BaseURL:                  getEnv("BASE_URL", ""),
		SecretKey:                getEnv("SECRET_KEY", ""),
		Algorithm:                getEnv("ALGORITHM", "HS256"),
		AccessTokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		MongoDBURL:               getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		DatabaseName:             getEnv("DATABASE_NAME", "secure_file_share"),
		UploadDir:                getEnv("UPLOAD_DIR", "uploads"),
		SMTPServer:               getEnv("SMTP_SERVER", ""),
		SMTPPort:                 getEnvInt("SMTP_PORT", 587),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		FromEmail:                getEnv("FROM_EMAIL", ""),
		BootstrapOpsEmail:        getEnv("BOOTSTRAP_OPS_EMAIL", ""),
		AllowedOrigins:           splitCSV(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimitPerMinute:       getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		GinMode:                  getEnv("GIN_MODE", "release"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		LogPath:                  getEnv("LOG_PATH", ""),
		LogMaxSizeMB:             getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:            getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:            getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:              getEnvBool("LOG_COMPRESS", false),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.AppPort
	}

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
