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

var ErrNotConfigured = errors.New("mail relay not configured")

// Message is one outbound mail.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers transactional mail.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type relayPayload struct {
	From     address   `json:"from"`
	To       []address `json:"to"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text,omitempty"`
	HTML     string    `json:"html,omitempty"`
	Category string    `json:"category,omitempty"`
}

// Relay posts messages to an HTTP mail API authenticated with a bearer token.
type Relay struct {
	url        string
	token      string
	from       string
	fromName   string
	httpClient *http.Client
}

func NewRelay(url, token, from, fromName string) *Relay {
	return &Relay{
		url:        url,
		token:      token,
		from:       from,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *Relay) Send(ctx context.Context, msg Message) error {
	if r.url == "" || r.token == "" {
		return ErrNotConfigured
	}

	payload := relayPayload{
		From:     address{Email: r.from, Name: r.fromName},
		To:       []address{{Email: msg.To, Name: msg.ToName}},
		Subject:  msg.Subject,
		Text:     msg.Text,
		HTML:     msg.HTML,
		Category: "Transactional",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("mail relay status %d", res.StatusCode)
	}
	return nil
}
