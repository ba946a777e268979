package utils

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"

	"tripai-backend/internal/config"
)

// EmailService sends transactional mail over SMTP. When the SMTP host is
// not configured the service logs the message instead of sending it, which
// keeps local development working without a mail account.
type EmailService struct {
	cfg config.EmailConfig
}

func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) configured() bool {
	return s.cfg.SMTPHost != "" && s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != ""
}

func (s *EmailService) send(to, subject, body string) error {
	if !s.configured() {
		log.Info().Str("to", to).Str("subject", subject).Msg("SMTP not configured, skipping email")
		return nil
	}

	from := s.cfg.FromEmail
	if from == "" {
		from = s.cfg.SMTPUsername
	}
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.cfg.FromName, from, to, subject, body)

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendResetCode mails a 6-digit password reset code.
func (s *EmailService) SendResetCode(to, code string) error {
	body := fmt.Sprintf("Your TripAI password reset code is %s.\n\nThe code expires in 3 minutes. If you did not request a reset, ignore this email.", code)
	return s.send(to, "TripAI Password Reset Code", body)
}

// SendBookingConfirmation mails a booking summary after a successful booking.
func (s *EmailService) SendBookingConfirmation(to, customerName, destinationName, date string, totalPrice float64, currencySymbol string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s on %s is confirmed.\nTotal paid: %s%.0f\n\nHappy travels,\nThe TripAI Team",
		customerName, destinationName, date, currencySymbol, totalPrice)
	return s.send(to, fmt.Sprintf("Booking Confirmed: %s", destinationName), body)
}
