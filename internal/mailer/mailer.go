package mailer

import (
	"net/mail"

	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/logger"
)

type Mailer interface {
	IsCorrect(email string) error
	Send(recipient, subject, body string) error
}

// LogMailer is used when no SMTP server is configured. Submissions still
// succeed for the caller and land in the logs for the site owner.
type LogMailer struct{}

func (LogMailer) IsCorrect(email string) error {
	return validateAddress(email)
}

func (LogMailer) Send(recipient, subject, body string) error {
	logger.Log.Info("mail delivery disabled, logging instead", "recipient", recipient, "subject", subject, "body", body)
	return nil
}

func validateAddress(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return internal_errors.Validation("Invalid email address")
	}
	return nil
}
