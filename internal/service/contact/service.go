package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/propnest/realty/backend/internal/model/lead"
)

var (
	ErrInvalidInquiry = errors.New("invalid inquiry")
	ErrRelayDisabled  = errors.New("email relay is not configured")
	ErrDeliveryFailed = errors.New("inquiry could not be delivered")
)

var validate = validator.New()

// Inquiry is what a visitor submits through the contact form.
type Inquiry struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=20"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (i Inquiry) normalized() Inquiry {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	i.Phone = strings.TrimSpace(i.Phone)
	i.Subject = strings.TrimSpace(i.Subject)
	i.Message = strings.TrimSpace(i.Message)
	return i
}

// Service validates inquiries, records them as leads and relays them by email.
type Service struct {
	sender Sender
	leads  lead.Repository
}

// NewService wires the contact flow. A nil sender keeps leads but reports ErrRelayDisabled.
func NewService(sender Sender, leads lead.Repository) *Service {
	return &Service{sender: sender, leads: leads}
}

// Submit records the inquiry and tries to deliver it. The lead is stored even when delivery fails.
func (s *Service) Submit(ctx context.Context, in Inquiry) (lead.Lead, error) {
	in = in.normalized()
	if err := validate.Struct(in); err != nil {
		return lead.Lead{}, fmt.Errorf("%w: %v", ErrInvalidInquiry, err)
	}

	l := lead.Lead{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    lead.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.leads.SaveLead(ctx, l); err != nil {
		return lead.Lead{}, fmt.Errorf("saving lead: %w", err)
	}

	if s.sender == nil {
		log.Printf("[contact] relay disabled, lead %s kept for follow-up", l.ID)
		return l, ErrRelayDisabled
	}

	sendErr := s.sender.Send(ctx, in)
	if sendErr != nil {
		l.Status = lead.StatusFailed
		l.Error = sendErr.Error()
		log.Printf("[contact] delivery of lead %s failed: %v", l.ID, sendErr)
	} else {
		l.Status = lead.StatusDelivered
	}

	if err := s.leads.SaveLead(ctx, l); err != nil {
		log.Printf("[contact] failed to update lead %s: %v", l.ID, err)
	}

	if sendErr != nil {
		return l, fmt.Errorf("%w: %v", ErrDeliveryFailed, sendErr)
	}
	return l, nil
}
