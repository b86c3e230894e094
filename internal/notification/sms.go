package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SMSGatewayConfig holds settings for the HTTP SMS gateway.
type SMSGatewayConfig struct {
	URL     string
	APIKey  string
	From    string
	Timeout time.Duration
}

// GatewaySMS posts messages to an HTTP SMS gateway.
type GatewaySMS struct {
	cfg    SMSGatewayConfig
	client *http.Client
}

// NewGatewaySMS builds an SMS sender for the configured gateway.
func NewGatewaySMS(cfg SMSGatewayConfig) *GatewaySMS {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GatewaySMS{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type gatewayPayload struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

// SendSMS delivers the message through the gateway.
func (s *GatewaySMS) SendSMS(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(gatewayPayload{To: to, From: s.cfg.From, Body: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}
