package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/FeyzullahTeklik/esantiyem-backend/config"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.uber.org/zap"
)

// SMTPMailer sends plain-text notification emails over SMTP with TLS. It
// implements Service by delivering inline; production wiring puts the
// AsynqDispatcher in front so lifecycle requests never block on SMTP.
type SMTPMailer struct{}

// NewSMTPMailer creates a mailer using the SMTP settings in AppConfig.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

// ProposalSubmitted notifies the job owner that a new proposal arrived.
func (m *SMTPMailer) ProposalSubmitted(ctx context.Context, to, jobTitle, providerName string, price float64) error {
	subject, body := composeProposalSubmitted(jobTitle, providerName, price)
	return m.Send(ctx, to, subject, body)
}

// ProposalAccepted notifies the provider that their proposal won the job.
func (m *SMTPMailer) ProposalAccepted(ctx context.Context, to, jobTitle, customerName string, price float64) error {
	subject, body := composeProposalAccepted(jobTitle, customerName, price)
	return m.Send(ctx, to, subject, body)
}

// JobApproved notifies the owner that their posting went live.
func (m *SMTPMailer) JobApproved(ctx context.Context, to, jobTitle string) error {
	subject, body := composeJobApproved(jobTitle)
	return m.Send(ctx, to, subject, body)
}

// PasswordResetOTP delivers a short-lived password reset code.
func (m *SMTPMailer) PasswordResetOTP(ctx context.Context, to, otp string) error {
	subject, body := composePasswordResetOTP(otp)
	return m.Send(ctx, to, subject, body)
}

// Send delivers a single plain-text message over SMTP with TLS. When SMTP is
// not configured the message is logged and dropped, so development setups run
// without a mail server.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		utils.GetLogger().Info("SMTP not configured, dropping email",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\n", cfg.SMTPFrom)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"utf-8\"\r\n"
	msg += "\r\n" + body + "\r\n"

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.SMTPHost})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.SMTPHost)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}
