package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "orders",
			User:     "orders",
			Password: "secret",
		},
		JWT: JWTConfig{
			Secret:         "k9Xw!2mQz#7vRb$4tYp&1nLc@8dFg^5h",
			ExpiryDuration: time.Hour,
		},
		Auth: AuthConfig{
			BearerTokens: []string{"0123456789abcdef0123456789abcdef"},
		},
		Mail: MailConfig{
			From:             "noreply@example.com",
			Strategy:         "failover",
			ResendAPIKey:     "re_test",
			PasswordResetURL: "https://example.com/reset",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"missing db password", func(c *Config) { c.Database.Password = "" }},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }},
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"low entropy jwt secret", func(c *Config) { c.JWT.Secret = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" }},
		{"no bearer tokens", func(c *Config) { c.Auth.BearerTokens = nil }},
		{"short bearer token", func(c *Config) { c.Auth.BearerTokens = []string{"tooshort"} }},
		{"missing mail from", func(c *Config) { c.Mail.From = "" }},
		{"no mail provider", func(c *Config) {
			c.Mail.ResendAPIKey = ""
			c.Mail.SendGridAPIKey = ""
		}},
		{"unknown mail strategy", func(c *Config) { c.Mail.Strategy = "roundrobin" }},
		{"missing reset url", func(c *Config) { c.Mail.PasswordResetURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetSliceEnv(t *testing.T) {
	t.Setenv("TEST_SLICE", "a, b,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getSliceEnv("TEST_SLICE"))

	t.Setenv("TEST_SLICE", "")
	assert.Nil(t, getSliceEnv("TEST_SLICE"))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getDurationEnv("TEST_DURATION", time.Minute))

	// Bare integers are read as minutes.
	t.Setenv("TEST_DURATION", "15")
	assert.Equal(t, 15*time.Minute, getDurationEnv("TEST_DURATION", time.Minute))

	t.Setenv("TEST_DURATION", "not-a-duration")
	assert.Equal(t, time.Minute, getDurationEnv("TEST_DURATION", time.Minute))
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "orders",
		User:     "svc",
		Password: "pw",
		SSLMode:  "require",
	}
	assert.Equal(t, "host=db.internal port=5433 user=svc password=pw dbname=orders sslmode=require", cfg.DSN())
}
