// Package support handles the contact form and post-purchase complaints.
// Contact mail goes out over SMTP directly; complaints are forwarded to the
// commerce platform because they attach to an order.
package support

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/omega-wallet/storefront-api/internal/commerce"
	"github.com/omega-wallet/storefront-api/pkg/config"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
)

// ContactMessage is the storefront contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type complaintGateway interface {
	AddComplaint(ctx context.Context, complaint commerce.Complaint) error
}

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Service sends contact mail and forwards complaints.
type Service struct {
	cfg      config.SMTPConfig
	gateway  complaintGateway
	sendMail sendMailFunc
	logg     *logger.Logger
}

// NewService wires the support service over the configured SMTP account.
func NewService(cfg config.SMTPConfig, gateway complaintGateway, logg *logger.Logger) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("complaint gateway required")
	}
	return &Service{cfg: cfg, gateway: gateway, sendMail: smtp.SendMail, logg: logg}, nil
}

// SendContact mails the message to the shop inbox and a copy-style
// confirmation to the sender. The confirmation is best effort: the inbox
// delivery is the one that must succeed.
func (s *Service) SendContact(ctx context.Context, msg ContactMessage) error {
	if strings.TrimSpace(s.cfg.Email) == "" || strings.TrimSpace(s.cfg.Password) == "" {
		return pkgerrors.New(pkgerrors.CodeConfigMissing, "smtp account is not configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Email, s.cfg.Password, s.cfg.Host)

	inbox := buildMail(s.cfg.Email, s.cfg.Email,
		fmt.Sprintf("Contact form: %s", msg.Subject),
		fmt.Sprintf("From: %s <%s>\r\n\r\n%s", msg.Name, msg.Email, msg.Message))
	if err := s.sendMail(s.cfg.Addr(), auth, s.cfg.Email, []string{s.cfg.Email}, inbox); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "send contact mail")
	}

	confirmation := buildMail(s.cfg.Email, msg.Email,
		"We received your message",
		fmt.Sprintf("Hello %s,\r\n\r\nthanks for reaching out. We will get back to you shortly.\r\n\r\nYour message:\r\n%s", msg.Name, msg.Message))
	if err := s.sendMail(s.cfg.Addr(), auth, s.cfg.Email, []string{msg.Email}, confirmation); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "contact confirmation mail failed")
	}
	return nil
}

// SubmitComplaint validates and forwards a complaint to the platform.
func (s *Service) SubmitComplaint(ctx context.Context, complaint commerce.Complaint) error {
	if strings.TrimSpace(complaint.OrderID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(complaint.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(complaint.Message) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	return s.gateway.AddComplaint(ctx, complaint)
}

func buildMail(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
