package support

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/omega-wallet/storefront-api/internal/commerce"
	"github.com/omega-wallet/storefront-api/pkg/config"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

type stubComplaintGateway struct {
	calls int
	last  commerce.Complaint
	err   error
}

func (s *stubComplaintGateway) AddComplaint(_ context.Context, complaint commerce.Complaint) error {
	s.calls++
	s.last = complaint
	return s.err
}

func smtpConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "smtp.office365.com",
		Port:     587,
		Email:    "shop@example.com",
		Password: "secret",
	}
}

func newTestService(t *testing.T, cfg config.SMTPConfig, gateway complaintGateway) (*Service, *[]sentMail) {
	t.Helper()
	svc, err := NewService(cfg, gateway, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	var sent []sentMail
	svc.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return svc, &sent
}

func TestSendContactMailsInboxAndSender(t *testing.T) {
	t.Parallel()

	svc, sent := newTestService(t, smtpConfig(), &stubComplaintGateway{})
	err := svc.SendContact(context.Background(), ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "sizing question",
		Message: "does the wallet fit cards?",
	})
	if err != nil {
		t.Fatalf("send contact: %v", err)
	}

	if len(*sent) != 2 {
		t.Fatalf("expected inbox plus confirmation, got %d mails", len(*sent))
	}
	inbox := (*sent)[0]
	if inbox.addr != "smtp.office365.com:587" {
		t.Fatalf("addr = %q", inbox.addr)
	}
	if inbox.to[0] != "shop@example.com" || !strings.Contains(inbox.msg, "sizing question") {
		t.Fatalf("inbox mail wrong: %+v", inbox)
	}
	confirmation := (*sent)[1]
	if confirmation.to[0] != "ada@example.com" || !strings.Contains(confirmation.msg, "Hello Ada") {
		t.Fatalf("confirmation mail wrong: %+v", confirmation)
	}
}

func TestSendContactRequiresSMTPAccount(t *testing.T) {
	t.Parallel()

	svc, sent := newTestService(t, config.SMTPConfig{Host: "smtp.office365.com", Port: 587}, &stubComplaintGateway{})
	err := svc.SendContact(context.Background(), ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "x", Message: "y"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConfigMissing {
		t.Fatalf("expected config missing, got %v", err)
	}
	if len(*sent) != 0 {
		t.Fatalf("no mail must leave without credentials")
	}
}

func TestSendContactInboxFailure(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, smtpConfig(), &stubComplaintGateway{})
	svc.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return pkgerrors.New(pkgerrors.CodeNetworkFailure, "connection refused")
	}

	err := svc.SendContact(context.Background(), ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "x", Message: "y"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNetworkFailure {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestSubmitComplaintForwards(t *testing.T) {
	t.Parallel()

	gateway := &stubComplaintGateway{}
	svc, _ := newTestService(t, smtpConfig(), gateway)

	err := svc.SubmitComplaint(context.Background(), commerce.Complaint{
		OrderID: "ord-1",
		Email:   "a@b.com",
		Subject: "damaged",
		Message: "arrived scratched",
	})
	if err != nil {
		t.Fatalf("submit complaint: %v", err)
	}
	if gateway.calls != 1 || gateway.last.OrderID != "ord-1" {
		t.Fatalf("complaint not forwarded: %+v", gateway.last)
	}
}

func TestSubmitComplaintValidation(t *testing.T) {
	t.Parallel()

	gateway := &stubComplaintGateway{}
	svc, _ := newTestService(t, smtpConfig(), gateway)
	ctx := context.Background()

	cases := []commerce.Complaint{
		{Email: "a@b.com", Message: "m"},
		{OrderID: "ord-1", Message: "m"},
		{OrderID: "ord-1", Email: "a@b.com"},
	}
	for i, complaint := range cases {
		err := svc.SubmitComplaint(ctx, complaint)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if gateway.calls != 0 {
		t.Fatalf("invalid complaints must not reach the platform")
	}
}
