package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envRedisAddr             = "REDIS_ADDR"
	envRedisPassword         = "REDIS_PASSWORD"
	envRedisDB               = "REDIS_DB"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY_MINUTES"
	envBearerTokens          = "API_BEARER_TOKENS"
	envAuthExemptPaths       = "AUTH_EXEMPT_PATHS"
	envLogSecurityEvents     = "LOG_SECURITY_EVENTS"
	envAllowedOriginDomains  = "ALLOWED_ORIGIN_DOMAINS"
	envMailFrom              = "MAIL_FROM"
	envMailStrategy          = "MAIL_STRATEGY"
	envResendAPIKey          = "RESEND_API_KEY"
	envSendGridAPIKey        = "SENDGRID_API_KEY"
	envPasswordResetURL      = "PASSWORD_RESET_URL"
	envPasswordResetTTL      = "PASSWORD_RESET_TTL"
	envPaginationPageSize    = "PAGINATION_PAGE_SIZE"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "orderservice"
	defaultDBUser             = "orderservice_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultRedisAddr          = "localhost:6379"
	defaultJWTExpiry          = 60 * time.Minute
	defaultMailStrategy       = "failover"
	defaultPasswordResetTTL   = time.Hour
	defaultPageSize           = 100
	minJWTSecretLength        = 32
	minBearerTokenLength      = 16
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2

	errPortRequiredFmt          = "PORT must be set"
	errDBPasswordRequiredFmt    = "DB_PASSWORD must be set"
	errJWTSecretRequiredFmt     = "JWT_SECRET must be set"
	errJWTSecretMinLengthFmt    = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropyFmt   = "JWT_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errBearerTokensRequiredFmt  = "API_BEARER_TOKENS must contain at least one token"
	errBearerTokenMinLengthFmt  = "API_BEARER_TOKENS entries must be at least %d characters"
	errMailFromRequiredFmt      = "MAIL_FROM must be set"
	errMailProviderRequiredFmt  = "at least one of RESEND_API_KEY or SENDGRID_API_KEY must be set"
	errResetURLRequiredFmt      = "PASSWORD_RESET_URL must be set"
	errInvalidConfigurationFmt  = "invalid configuration: %w"
	errUnknownMailStrategyFmt   = "unknown MAIL_STRATEGY %q (expected single or failover)"
	knownMailStrategySingle     = "single"
	knownMailStrategyFailover   = "failover"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Mail     MailConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration
}

// AuthConfig carries the bearer gate settings. BearerTokens and ExemptPaths
// are read once here and immutable afterwards.
type AuthConfig struct {
	BearerTokens         []string
	ExemptPaths          []string
	LogSecurityEvents    bool
	AllowedOriginDomains []string
}

type MailConfig struct {
	From             string
	Strategy         string
	ResendAPIKey     string
	SendGridAPIKey   string
	PasswordResetURL string
	PasswordResetTTL time.Duration
}

type AppConfig struct {
	PageSize int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: requireEnv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		Redis: RedisConfig{
			Addr:     getEnv(envRedisAddr, defaultRedisAddr),
			Password: os.Getenv(envRedisPassword),
			DB:       getIntEnv(envRedisDB, 0),
		},
		JWT: JWTConfig{
			Secret:         requireEnv(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		Auth: AuthConfig{
			BearerTokens:         getSliceEnv(envBearerTokens),
			ExemptPaths:          getSliceEnv(envAuthExemptPaths),
			LogSecurityEvents:    getBoolEnv(envLogSecurityEvents, true),
			AllowedOriginDomains: getSliceEnv(envAllowedOriginDomains),
		},
		Mail: MailConfig{
			From:             requireEnv(envMailFrom),
			Strategy:         getEnv(envMailStrategy, defaultMailStrategy),
			ResendAPIKey:     os.Getenv(envResendAPIKey),
			SendGridAPIKey:   os.Getenv(envSendGridAPIKey),
			PasswordResetURL: requireEnv(envPasswordResetURL),
			PasswordResetTTL: getDurationEnv(envPasswordResetTTL, defaultPasswordResetTTL),
		},
		App: AppConfig{
			PageSize: getIntEnv(envPaginationPageSize, defaultPageSize),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequiredFmt)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropyFmt)
	}

	if len(c.Auth.BearerTokens) == 0 {
		return fmt.Errorf(errBearerTokensRequiredFmt)
	}

	for _, token := range c.Auth.BearerTokens {
		if len(token) < minBearerTokenLength {
			return fmt.Errorf(errBearerTokenMinLengthFmt, minBearerTokenLength)
		}
	}

	if c.Mail.From == "" {
		return fmt.Errorf(errMailFromRequiredFmt)
	}

	if c.Mail.ResendAPIKey == "" && c.Mail.SendGridAPIKey == "" {
		return fmt.Errorf(errMailProviderRequiredFmt)
	}

	if c.Mail.Strategy != knownMailStrategySingle && c.Mail.Strategy != knownMailStrategyFailover {
		return fmt.Errorf(errUnknownMailStrategyFmt, c.Mail.Strategy)
	}

	if c.Mail.PasswordResetURL == "" {
		return fmt.Errorf(errResetURLRequiredFmt)
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(messages.requiredEnvNotSet(key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getSliceEnv splits a comma-separated value, dropping empty entries.
func getSliceEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
