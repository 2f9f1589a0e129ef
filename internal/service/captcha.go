package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// CaptchaVerifier validates a client-supplied challenge token
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// TurnstileService handles Cloudflare Turnstile verification
type TurnstileService struct {
	secret   string
	endpoint string
	client   *http.Client
}

// NewTurnstileService creates a new Turnstile verification service
func NewTurnstileService(secret string) *TurnstileService {
	return &TurnstileService{
		secret:   secret,
		endpoint: turnstileVerifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// turnstileResponse represents the response from the siteverify API
type turnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify checks a Turnstile token against the siteverify endpoint. It fails
// closed: a missing token or secret, a transport failure or an undecodable
// response all report false. The returned error carries the detail for the
// log only.
func (s *TurnstileService) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if s.secret == "" {
		return false, fmt.Errorf("turnstile secret not configured")
	}

	if token == "" {
		return false, fmt.Errorf("turnstile token is required")
	}

	// Prepare the request
	data := url.Values{}
	data.Set("secret", s.secret)
	data.Set("response", token)
	data.Set("remoteip", remoteIP)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Send verification request
	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to verify turnstile token: %w", err)
	}
	defer resp.Body.Close()

	// Parse response
	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to parse turnstile response: %w", err)
	}

	// Check if verification was successful
	if !result.Success {
		return false, fmt.Errorf("turnstile verification failed: %v", result.ErrorCodes)
	}

	return true, nil
}
