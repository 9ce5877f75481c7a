// Package sender реализует отправку почтовых уведомлений об активации подписки.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	smtplib "github.com/magabrotheeeer/movie-streaming/internal/lib/smtp"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Transport описывает почтовый транспорт воркера уведомлений.
type Transport interface {
	Connect() (smtplib.Client, error)
	GetSMTPUser() string
}

// Service отправляет письма по событиям из очереди уведомлений.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport Transport) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendSubscriptionActivated отправляет письмо об активации подписки.
// body — JSON события из очереди уведомлений.
func (s *Service) SendSubscriptionActivated(body []byte) error {
	var message models.SubscriptionActivatedEvent
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Подписка активирована"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаша подписка %s оплачена и активирована.",
		message.Username, message.Plan)
	if message.EndDate != "" {
		bodyText += fmt.Sprintf("\nПодписка действует до %s.", message.EndDate)
	}
	bodyText += "\n\nПриятного просмотра!"

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
