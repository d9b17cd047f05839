// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer delivers transactional email through the Resend HTTP
// API. Delivery is retried with exponential backoff; a missing API key
// disables the mailer so development environments run without outbound
// email.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// defaultBaseURL is the Resend API endpoint.
const defaultBaseURL = "https://api.resend.com"

// Message is one outbound email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Mailer sends email via Resend.
type Mailer struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

// New creates a Mailer. Returns nil when apiKey is empty, which callers
// treat as "email disabled".
func New(apiKey, from string) *Mailer {
	if apiKey == "" {
		return nil
	}
	return &Mailer{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers a message, retrying transient failures with exponential
// backoff for up to 30 seconds.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" {
		msg.From = m.from
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mailer marshal: %w", err)
	}

	operation := func() error {
		return m.post(ctx, payload)
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(30*time.Second),
	), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("mailer send: %w", err)
	}

	slog.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *Mailer) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("mailer request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	// Client errors won't improve on retry; server errors and rate
	// limits might.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(fmt.Errorf("mailer rejected: status %d: %s", resp.StatusCode, body))
	}
	return fmt.Errorf("mailer transient failure: status %d: %s", resp.StatusCode, body)
}
