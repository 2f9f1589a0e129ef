package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is loaded once at
// startup and passed explicitly to the components that need it.
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogFile     string `env:"LOG_FILE" envDefault:"./logs/api.log"`

	// SMTP Configuration
	SMTPHost       string `env:"SMTP_SERVER" envDefault:"smtp.gmail.com"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPEncryption string `env:"SMTP_ENCRYPTION" envDefault:"tls"` // 'tls', 'ssl' or 'none'
	SMTPUsername   string `env:"EMAIL_USER"`
	SMTPPassword   string `env:"EMAIL_PASSWORD"`

	// Sender and recipient identities
	MailFrom     string `env:"MAIL_FROM"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Contact Form"`
	MailTo       string `env:"MAIL_TO"`
	MailToName   string `env:"MAIL_TO_NAME"`

	// Anti-abuse limits
	MaxEmailsPerHour int    `env:"MAX_EMAILS_PER_HOUR" envDefault:"5"`
	HoneypotField    string `env:"HONEYPOT_FIELD" envDefault:"website"`

	// CAPTCHA (Cloudflare Turnstile)
	TurnstileEnabled bool   `env:"TURNSTILE_ENABLED" envDefault:"false"`
	TurnstileSecret  string `env:"TURNSTILE_SECRET"`

	// Allowed CORS origins
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Rate limit store. RedisAddr selects the Redis-backed store when set,
	// otherwise entries are kept in RateLimitFile.
	RateLimitFile string `env:"RATE_LIMIT_FILE" envDefault:"./logs/rate_limit.json"`
	RedisAddr     string `env:"REDIS_ADDR"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists. If ENV is set, prefer the
	// environment-specific file.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// The envelope sender defaults to the SMTP account
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}

	// Ensure log and state directories exist
	for _, dir := range []string{filepath.Dir(cfg.LogFile), filepath.Dir(cfg.RateLimitFile)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}
