package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vector-geodezja/contact-api/internal/api/dto/contact"
	"github.com/vector-geodezja/contact-api/internal/api/validation"
	"github.com/vector-geodezja/contact-api/internal/config"
	"github.com/vector-geodezja/contact-api/internal/logging"
	"github.com/vector-geodezja/contact-api/internal/ratelimit"
	"github.com/vector-geodezja/contact-api/internal/service"
	"github.com/vector-geodezja/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ContactHandler sequences a submission through the honeypot gate, field
// validation, CAPTCHA verification, rate limiting and email dispatch.
type ContactHandler struct {
	cfg      *config.Config
	verifier service.CaptchaVerifier
	limiter  *ratelimit.Limiter
	mailer   service.Mailer
	validate *validator.Validate
}

// NewContactHandler creates a new contact handler
func NewContactHandler(cfg *config.Config, verifier service.CaptchaVerifier, limiter *ratelimit.Limiter, mailer service.Mailer) *ContactHandler {
	validate := validator.New()
	validation.RegisterValidators(validate)
	return &ContactHandler{
		cfg:      cfg,
		verifier: verifier,
		limiter:  limiter,
		mailer:   mailer,
		validate: validate,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	logger := logging.GetGlobalLogger()
	clientIP := utils.GetRealIP(c)

	logger.Info("New request from IP: %s", clientIP)

	// Read the raw body first: the honeypot field is looked up by its
	// configured name, so binding straight into the struct won't do
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.HandleError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		utils.HandleError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	// Honeypot gate. The bot gets a success response so it cannot tell it
	// was detected; nothing else runs.
	if honeypotFilled(raw[h.cfg.HoneypotField]) {
		logger.Warn("Bot detected - honeypot filled from IP: %s", clientIP)
		utils.HandleSuccess(c, "")
		return
	}

	var req contact.SubmitRequest
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		utils.HandleError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	req.Normalize()

	// Validate, collecting every violated rule
	if err := h.validate.Struct(&req); err != nil {
		messages := validation.FormatValidationError(err)
		if len(messages) == 0 {
			utils.HandleAPIError(c, err, http.StatusInternalServerError, "Validation failed unexpectedly")
			return
		}
		utils.HandleError(c, http.StatusBadRequest, strings.Join(messages, ", "))
		return
	}

	// CAPTCHA check, only when enabled
	if h.cfg.TurnstileEnabled {
		ok, err := h.verifier.Verify(c.Request.Context(), req.TurnstileToken, clientIP)
		if !ok {
			logger.Warn("CAPTCHA verification failed for IP %s: %v", clientIP, err)
			utils.HandleError(c, http.StatusBadRequest, "CAPTCHA verification failed")
			return
		}
	}

	// Per-client hourly window
	allowed, err := h.limiter.Allow(c.Request.Context(), clientIP)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, "Rate limit check failed")
		return
	}
	if !allowed {
		logger.Warn("Rate limit exceeded for IP: %s", clientIP)
		utils.HandleError(c, http.StatusTooManyRequests, "Too many messages. Please try again in an hour.")
		return
	}

	// Dispatch
	msg := &service.Message{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Body:       req.Message,
		ClientIP:   clientIP,
		ReceivedAt: time.Now(),
	}
	if err := h.mailer.Send(c.Request.Context(), msg); err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, "Email dispatch failed")
		return
	}

	logger.Info("Email sent successfully for: %s", req.Email)
	utils.HandleSuccess(c, "Your message has been sent successfully")
}

// honeypotFilled reports whether the honeypot field carries any value. Bots
// occasionally submit non-string values, which count as filled too.
func honeypotFilled(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	default:
		return true
	}
}
