package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

// Public holds settings safe to log or expose to operators.
type Public struct {
	Port               string   `yaml:"port"`
	Env                string   `yaml:"env"` // "development" or "production"
	LogLevel           string   `yaml:"log_level"`
	LogJSON            bool     `yaml:"log_json"`
	SecureCookies      bool     `yaml:"secure_cookies"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	JwtTTLHours        int      `yaml:"jwt_ttl_hours"`
	MinPasswordLen     int      `yaml:"min_password_len"`
	ContactRecipient   string   `yaml:"contact_recipient"`
	Smtp               Smtp     `yaml:"smtp"`
}

// Smtp configures outgoing mail. An empty Server disables delivery and
// contact submissions are only logged.
type Smtp struct {
	Server         string `yaml:"server"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	SenderName     string `yaml:"sender_name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Private holds secrets, sourced from the environment only.
type Private struct {
	DatabaseURL         string
	JwtKey              string
	UploadSigningSecret string
	SmtpPassword        string
}

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLHours) * time.Hour
}

func (c *Config) DatabaseURL() string {
	return c.private.DatabaseURL
}

func (c *Config) UploadSigningSecret() string {
	return c.private.UploadSigningSecret
}

func (c *Config) SmtpPassword() string {
	return c.private.SmtpPassword
}

func defaults() Public {
	return Public{
		Port:           "8080",
		Env:            "development",
		LogLevel:       "info",
		JwtTTLHours:    24,
		MinPasswordLen: 8,
	}
}

// MustLoad reads the public yaml config and pulls secrets from the
// environment. It panics on a broken file or a missing secret: starting
// without a signing key or a database is never acceptable.
func MustLoad(configPath string) *Config {
	public := defaults()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			panic("can't read config file: " + configPath)
		}
		if err := yaml.Unmarshal(raw, &public); err != nil {
			panic("can't unmarshal config file: " + err.Error())
		}
	}

	private := Private{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JwtKey:              os.Getenv("JWT_SECRET"),
		UploadSigningSecret: os.Getenv("UPLOAD_SIGNING_SECRET"),
		SmtpPassword:        os.Getenv("SMTP_PASSWORD"),
	}
	if private.DatabaseURL == "" {
		panic("DATABASE_URL is required")
	}
	if private.JwtKey == "" {
		panic("JWT_SECRET is required")
	}

	return &Config{Public: public, private: private}
}

// NewForTesting builds a config without touching files or the environment.
func NewForTesting(public Public, databaseURL, jwtKey string) *Config {
	if public.JwtTTLHours == 0 {
		public.JwtTTLHours = defaults().JwtTTLHours
	}
	if public.MinPasswordLen == 0 {
		public.MinPasswordLen = defaults().MinPasswordLen
	}
	return &Config{Public: public, private: Private{DatabaseURL: databaseURL, JwtKey: jwtKey}}
}
