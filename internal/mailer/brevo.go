// Package mailer delivers transactional email through the Brevo HTTP
// API. Failures surface as errors so the queue worker can retry.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.brevo.com/v3/smtp/email"

// Mailer is the transport contract the queue worker consumes.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type BrevoClient struct {
	apiKey      string
	senderEmail string
	senderName  string
	baseURL     string
	httpClient  *http.Client
}

func NewBrevoClient(apiKey, senderEmail, senderName, baseURL string) *BrevoClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &BrevoClient{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (c *BrevoClient) Send(ctx context.Context, to, subject, body string) error {
	if to == "" || subject == "" || body == "" {
		return errors.New("to, subject and body must not be empty")
	}

	payload := sendEmailReq{
		Sender:      map[string]string{"email": c.senderEmail, "name": c.senderName},
		To:          []map[string]string{{"email": to}},
		Subject:     subject,
		HTMLContent: body,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("brevo api status %d: %v", resp.StatusCode, errBody)
	}
	return nil
}
