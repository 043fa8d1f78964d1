package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Email is the payload accepted by the external email service.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	MemberID int64  `json:"user_id"`
	BookID   int64  `json:"book_id,omitempty"`
}

// Sender delivers a single email. Implementations report failure through the
// returned error; callers decide whether that failure matters.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// HTTPSender posts emails to the external email service as JSON.
type HTTPSender struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPSender(baseURL, token string, timeout time.Duration) *HTTPSender {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSender) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}

// Noop discards every email. Used in tests and when MAILER_URL is unset.
type Noop struct{}

func (Noop) Send(ctx context.Context, email Email) error {
	return nil
}
