package notify

import (
	"fmt"
	"net/url"
	"time"

	"order-service/internal/domain/order"
	"order-service/pkg/mailer"
	"order-service/pkg/mailer/providers"
	"order-service/pkg/mailer/templates"
)

const (
	companyName             = "Order Service"
	subjectPasswordReset    = "Reset your password"
	subjectOrderConfirmFmt  = "Order confirmation: %s"
	resetTokenQueryParam    = "token"
	errBuildResetURLFmt     = "failed to build reset URL: %w"
	errSendPasswordResetFmt = "failed to send password reset email: %w"
	errSendOrderConfirmFmt  = "failed to send order confirmation email: %w"
)

// Service renders and sends the application's notification emails. Templates
// are parsed once at construction.
type Service struct {
	email            *mailer.EmailService
	passwordReset    *templates.TypedTemplate[templates.PasswordResetContext]
	orderConfirm     *templates.TypedTemplate[templates.OrderConfirmationContext]
	passwordResetURL string
	resetTTL         time.Duration
}

func NewService(email *mailer.EmailService, passwordResetURL string, resetTTL time.Duration) (*Service, error) {
	passwordReset, err := templates.PasswordResetTemplate()
	if err != nil {
		return nil, err
	}

	orderConfirm, err := templates.OrderConfirmationTemplate()
	if err != nil {
		return nil, err
	}

	return &Service{
		email:            email,
		passwordReset:    passwordReset,
		orderConfirm:     orderConfirm,
		passwordResetURL: passwordResetURL,
		resetTTL:         resetTTL,
	}, nil
}

// SendPasswordReset emails a reset link carrying the plaintext token. The
// token itself never appears in logs or errors.
func (s *Service) SendPasswordReset(to, token string) error {
	resetURL, err := buildResetURL(s.passwordResetURL, token)
	if err != nil {
		return fmt.Errorf(errBuildResetURLFmt, err)
	}

	expiryHours := int(s.resetTTL.Hours())
	if expiryHours < 1 {
		expiryHours = 1
	}

	_, err = mailer.SendWithTypedTemplate(s.email, s.passwordReset, templates.PasswordResetContext{
		Company:     companyName,
		ResetURL:    resetURL,
		ExpiryHours: expiryHours,
	}, &providers.EmailData{
		To:      []string{to},
		Subject: subjectPasswordReset,
	})
	if err != nil {
		return fmt.Errorf(errSendPasswordResetFmt, err)
	}

	return nil
}

func (s *Service) SendOrderConfirmation(to string, o *order.Order) error {
	_, err := mailer.SendWithTypedTemplate(s.email, s.orderConfirm, templates.OrderConfirmationContext{
		Company:     companyName,
		OrderID:     o.ID.String(),
		Item:        o.Item,
		Quantity:    o.Quantity,
		AmountCents: o.AmountCents,
	}, &providers.EmailData{
		To:      []string{to},
		Subject: fmt.Sprintf(subjectOrderConfirmFmt, o.ID),
	})
	if err != nil {
		return fmt.Errorf(errSendOrderConfirmFmt, err)
	}

	return nil
}

func buildResetURL(base, token string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set(resetTokenQueryParam, token)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
