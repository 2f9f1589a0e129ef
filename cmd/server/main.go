package main

import (
	"fmt"
	"os"

	"github.com/vector-geodezja/contact-api/internal/api/handlers"
	"github.com/vector-geodezja/contact-api/internal/config"
	"github.com/vector-geodezja/contact-api/internal/logging"
	"github.com/vector-geodezja/contact-api/internal/ratelimit"
	"github.com/vector-geodezja/contact-api/internal/server"
	"github.com/vector-geodezja/contact-api/internal/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration before anything else; the logger needs the file path
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Configure and get logger
	if err := logging.InitLogger(logging.DefaultConfig(cfg.LogFile)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	// Select the rate-limit store
	var store ratelimit.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = ratelimit.NewRedisStore(rdb)
		logger.Info("Using Redis rate limit store at %s", cfg.RedisAddr)
	} else {
		store = ratelimit.NewFileStore(cfg.RateLimitFile)
		logger.Info("Using file rate limit store at %s", cfg.RateLimitFile)
	}
	limiter := ratelimit.NewLimiter(store, cfg.MaxEmailsPerHour)

	// Select the mail transport once at startup
	mailer := service.NewMailerFromConfig(cfg)
	if _, ok := mailer.(*service.SMTPMailer); ok {
		logger.Info("Mail transport: authenticated SMTP via %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		logger.Warn("SMTP credentials not configured, using plain fallback transport via %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}

	verifier := service.NewTurnstileService(cfg.TurnstileSecret)
	if cfg.TurnstileEnabled {
		logger.Info("Turnstile CAPTCHA verification enabled")
	}

	contactHandler := handlers.NewContactHandler(cfg, verifier, limiter, mailer)

	// Create and start server
	srv := server.NewServer(cfg, contactHandler)
	logger.Info("Listening on port %s", cfg.Port)
	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
