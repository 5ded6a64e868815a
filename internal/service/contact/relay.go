//go:generate go run go.uber.org/mock/mockgen -source=relay.go -destination=../../mocks/mock_sender.go -package=mocks
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrRelayRejected = errors.New("email relay rejected the message")

// Sender delivers an inquiry to the sales inbox.
type Sender interface {
	Send(ctx context.Context, inquiry Inquiry) error
}

// RelayConfig describes the hosted email-relay account used for the contact form.
type RelayConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// EmailRelay sends template emails through an EmailJS-compatible REST API.
type EmailRelay struct {
	client *resty.Client
	cfg    RelayConfig
}

const sendEndpoint = "/api/v1.0/email/send"

func NewEmailRelay(cfg RelayConfig) *EmailRelay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &EmailRelay{client: client, cfg: cfg}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (r *EmailRelay) Send(ctx context.Context, inquiry Inquiry) error {
	body := sendRequest{
		ServiceID:   r.cfg.ServiceID,
		TemplateID:  r.cfg.TemplateID,
		UserID:      r.cfg.PublicKey,
		AccessToken: r.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"from_name":  inquiry.Name,
			"from_email": inquiry.Email,
			"phone":      inquiry.Phone,
			"subject":    inquiry.Subject,
			"message":    inquiry.Message,
		},
	}

	res, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(sendEndpoint)
	if err != nil {
		return fmt.Errorf("email relay request failed: %w", err)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("%w: status %d: %s", ErrRelayRejected, res.StatusCode(), strings.TrimSpace(res.String()))
	}
	return nil
}
