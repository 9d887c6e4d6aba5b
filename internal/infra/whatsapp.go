package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WhatsAppClient talks to the message gateway HTTP API. The gateway accepts
// a phone target plus plain-text message and fans out the actual delivery.
type WhatsAppClient struct {
	apiURL      string
	token       string
	countryCode string
	httpClient  *http.Client
}

func NewWhatsAppClient(apiURL, token, countryCode string) *WhatsAppClient {
	return &WhatsAppClient{
		apiURL:      apiURL,
		token:       token,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsAppRequest struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

type whatsAppResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
}

// Send delivers one text message to the given phone number. The number is
// normalized to digits and prefixed with the shop's country code when the
// caller passed a local 10-digit number.
func (c *WhatsAppClient) Send(ctx context.Context, phone, message string) error {
	target := c.normalizePhone(phone)
	if target == "" {
		return fmt.Errorf("whatsapp: empty phone number")
	}

	body, err := json.Marshal(whatsAppRequest{Target: target, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("whatsapp: gateway returned %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed whatsAppResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("whatsapp: unexpected response: %s", string(raw))
	}
	if !parsed.Status {
		return fmt.Errorf("whatsapp: send rejected: %s", parsed.Reason)
	}
	return nil
}

func (c *WhatsAppClient) normalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n := digits.String()
	if len(n) == 10 {
		return c.countryCode + n
	}
	return n
}
