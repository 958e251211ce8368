package report

import (
	"context"
	"fmt"
	"net/smtp"
	"sinetsur-notifier/internal/config"
	"sinetsur-notifier/internal/poller"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("report")

const email_time_layout = "02/01/2006 15:04"

type sendFunc func(mail *email.Email, addr string, auth smtp.Auth) error

func sendMail(mail *email.Email, addr string, auth smtp.Auth) error {
	return mail.Send(addr, auth)
}

// Email sends one plain text message for every cycle that found new
// records, every other cycle is ignored.
type Email struct {
	config config.EmailConfig
	send   sendFunc
}

func NewEmail(cfg config.EmailConfig) Email {
	if cfg.SmtpPort == 0 {
		cfg.SmtpPort = 587
	}
	return Email{config: cfg, send: sendMail}
}

func (e Email) message(result poller.CycleResult) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("SINETSUR Notifier <%s>", e.config.From)
	mail.To = e.config.To
	mail.Subject = fmt.Sprintf("SINETSUR: %s", Summary(result))

	var body strings.Builder
	fmt.Fprintf(&body, "New pediatric patients on the board at %s.\n\n", result.At.Format(email_time_layout))
	for _, record := range result.Records {
		fmt.Fprintf(&body, "Patient ID: %s\nData: %s\n\n", record.Id, RecordLine(record))
	}
	mail.Text = []byte(body.String())
	return mail
}

func (e Email) Report(ctx context.Context, result poller.CycleResult) error {
	if result.Kind != poller.RESULT_SUCCESS || len(result.Records) == 0 {
		return nil
	}

	_, span := tracer.Start(ctx, "email:Report")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(result.Records)))

	mail := e.message(result)
	addr := fmt.Sprintf("%s:%d", e.config.SmtpHost, e.config.SmtpPort)

	var auth smtp.Auth
	if e.config.Username != "" {
		auth = smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.SmtpHost)
	}
	err := e.send(mail, addr, auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = e.send(mail, addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
