package config

import (
	"testing"
	"time"
)

func validConfigForTest() *Config {
	return &Config{
		Env:                          "development",
		DatabaseURL:                  "postgres://x",
		JWTSecret:                    "abcdefghijklmnopqrstuvwxyz123456",
		SessionTTL:                   168 * time.Hour,
		OTPCodeTTL:                   10 * time.Minute,
		EmailDevMode:                 true,
		SMTPPort:                     587,
		AuthRateLimitPerMin:          30,
		APIRateLimitPerMin:           120,
		OTELTraceSamplingRatio:       1.0,
		OTELMetricsExportInterval:    10 * time.Second,
		OTELLogLevel:                 "info",
		ShutdownTimeout:              30 * time.Second,
		ShutdownHTTPDrainTimeout:     20 * time.Second,
		ShutdownObservabilityTimeout: 10 * time.Second,
	}
}

func TestValidateAcceptsDevProfile(t *testing.T) {
	if err := validConfigForTest().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "short" }},
		{"zero session ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"session ttl too long", func(c *Config) { c.SessionTTL = 31 * 24 * time.Hour }},
		{"otp ttl too long", func(c *Config) { c.OTPCodeTTL = 2 * time.Hour }},
		{"smtp host required outside dev mode", func(c *Config) { c.EmailDevMode = false; c.SMTPHost = "" }},
		{"bad smtp port", func(c *Config) { c.SMTPPort = 0 }},
		{"redis enabled without addr", func(c *Config) { c.RedisEnabled = true; c.RedisAddr = "" }},
		{"bad sampling ratio", func(c *Config) { c.OTELTraceSamplingRatio = 2 }},
		{"bad log level", func(c *Config) { c.OTELLogLevel = "loud" }},
		{"zero auth rate limit", func(c *Config) { c.AuthRateLimitPerMin = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfigForTest()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadParsesDurationsAndDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("JWT_SECRET", "abcdefghijklmnopqrstuvwxyz123456")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("OTP_CODE_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl: %v", cfg.SessionTTL)
	}
	if cfg.OTPCodeTTL != 5*time.Minute {
		t.Fatalf("otp ttl: %v", cfg.OTPCodeTTL)
	}
	if !cfg.EmailDevMode {
		t.Fatal("dev env should default to email dev mode")
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("default port: %v", cfg.HTTPPort)
	}
}
