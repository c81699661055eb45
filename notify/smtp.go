package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"

	"github.com/nadimo15/pakomi-packaging/models"
	"go.uber.org/zap"
)

type smtpNotifier struct {
	from     string
	password string
	host     string
	port     string
	logger   *zap.Logger
}

// NewSMTPNotifier reads SMTP_USER, SMTP_PASSWORD, SMTP_HOST and SMTP_PORT
// from the environment.
func NewSMTPNotifier(logger *zap.Logger) Notifier {
	return &smtpNotifier{
		from:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		logger:   logger,
	}
}

func (s *smtpNotifier) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	subject, body := confirmationBody(order)
	return s.send(order, subject, body)
}

func (s *smtpNotifier) SendShipmentNotification(ctx context.Context, order *models.Order) error {
	subject, body := shipmentBody(order)
	return s.send(order, subject, body)
}

func (s *smtpNotifier) send(order *models.Order, subject, body string) error {
	if order.Email == "" {
		return errors.New("order has no buyer email")
	}

	msg := []byte("Subject: " + subject + "\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n" +
		body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	s.logger.Info("sending order email",
		zap.String("order_id", order.ID),
		zap.String("to", order.Email),
		zap.String("subject", subject),
	)

	if err := smtp.SendMail(addr, auth, s.from, []string{order.Email}, msg); err != nil {
		s.logger.Error("failed to send order email",
			zap.String("order_id", order.ID),
			zap.String("to", order.Email),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// logNotifier writes the email to the log instead of sending it. Used in
// demo and development environments without an SMTP account.
type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (l *logNotifier) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	subject, body := confirmationBody(order)
	l.logger.Info("mock email",
		zap.String("to", order.Email),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

func (l *logNotifier) SendShipmentNotification(ctx context.Context, order *models.Order) error {
	subject, body := shipmentBody(order)
	l.logger.Info("mock email",
		zap.String("to", order.Email),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
