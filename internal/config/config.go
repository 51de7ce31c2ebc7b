package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Stripe    StripeConfig
	Google    GoogleConfig
	Mail      MailConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	OTP       OTPConfig
	Jobs      JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	Env     string
	Version string
}

// IsProduction reports whether the service runs in production mode
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// DSN returns the key/value connection string understood by lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret     string
	Expiry     time.Duration
	CookieName string
}

// StripeConfig holds payment processor configuration.
// An empty SecretKey selects the sandbox gateway.
type StripeConfig struct {
	SecretKey string
	Currency  string
}

// GoogleConfig holds OAuth client and Maps configuration
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	MapsAPIKey   string
}

// MailConfig holds SES configuration. An empty Sender logs mail instead of sending it.
type MailConfig struct {
	Region      string
	Sender      string
	SendTimeout time.Duration
}

// UploadConfig holds logo upload configuration
type UploadConfig struct {
	LogoDir     string
	MaxLogoSize int
}

// RateLimitConfig holds the public endpoint limiter settings
type RateLimitConfig struct {
	RPS   int
	Burst int
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// OTPConfig holds one-time code settings
type OTPConfig struct {
	TTL time.Duration
}

// JobsConfig holds background job intervals
type JobsConfig struct {
	OTPCleanupInterval time.Duration
}

var newViper = func() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		// a missing or malformed file leaves env and defaults in charge
		_ = v.ReadInConfig()
	}
	return v
}

// Load loads configuration from environment variables and an optional CONFIG_FILE
func Load() *Config {
	v := newViper()

	return &Config{
		Server: ServerConfig{
			Port:    getEnv(v, "SERVER_PORT", "8080"),
			Env:     getEnv(v, "SERVER_ENV", "development"),
			Version: getEnv(v, "SERVER_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:        getEnv(v, "DB_HOST", "localhost"),
			Port:        getEnvAsInt(v, "DB_PORT", 5432),
			User:        getEnv(v, "DB_USER", "postgres"),
			Password:    getEnv(v, "DB_PASSWORD", "postgres"),
			DBName:      getEnv(v, "DB_NAME", "keephy"),
			SSLMode:     getEnv(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool(v, "DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv(v, "REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv(v, "REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:     getEnv(v, "JWT_SECRET", "change-this-in-production"),
			Expiry:     getEnvAsDuration(v, "JWT_EXPIRY", 24*time.Hour),
			CookieName: getEnv(v, "JWT_COOKIE_NAME", "access_token"),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv(v, "STRIPE_SECRET_KEY", ""),
			Currency:  getEnv(v, "STRIPE_CURRENCY", "usd"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv(v, "GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv(v, "GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv(v, "GOOGLE_REDIRECT_URL", "postmessage"),
			MapsAPIKey:   getEnv(v, "GOOGLE_MAPS_API_KEY", ""),
		},
		Mail: MailConfig{
			Region:      getEnv(v, "AWS_REGION", "us-east-1"),
			Sender:      getEnv(v, "MAIL_SENDER", ""),
			SendTimeout: getEnvAsDuration(v, "MAIL_SEND_TIMEOUT", 15*time.Second),
		},
		Upload: UploadConfig{
			LogoDir:     getEnv(v, "UPLOAD_LOGO_DIR", "uploads/logo"),
			MaxLogoSize: getEnvAsInt(v, "UPLOAD_MAX_LOGO_BYTES", 2<<20),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsInt(v, "RATE_LIMIT_RPS", 5),
			Burst: getEnvAsInt(v, "RATE_LIMIT_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList(v, "CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
		},
		OTP: OTPConfig{
			TTL: getEnvAsDuration(v, "OTP_TTL", 10*time.Minute),
		},
		Jobs: JobsConfig{
			OTPCleanupInterval: getEnvAsDuration(v, "JOBS_OTP_CLEANUP_INTERVAL", 15*time.Minute),
		},
	}
}

func getEnv(v *viper.Viper, key, defaultValue string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(v *viper.Viper, key string, defaultValue int) int {
	if value := v.GetString(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(v *viper.Viper, key string, defaultValue bool) bool {
	if value := v.GetString(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if value := v.GetString(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(v *viper.Viper, key string, defaultValue []string) []string {
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
