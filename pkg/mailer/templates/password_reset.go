package templates

import (
	"net/url"
	"strings"

	"order-service/pkg/mailer/registry"
)

type PasswordResetContext struct {
	Company     string
	UserName    string
	ResetURL    string
	ExpiryHours int
}

func PasswordResetTemplate() (*TypedTemplate[PasswordResetContext], error) {
	htmlTmpl := `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 24px; background-color: #f4f4f5;">
  <div style="max-width: 520px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="margin-top: 0;">Reset your password</h2>
    <p>Hi {{if .UserName}}{{.UserName}}{{else}}there{{end}},</p>
    <p>We received a request to reset the password for your {{.Company}} account.
    Click the button below to choose a new one.</p>
    <p style="text-align: center; margin: 32px 0;">
      <a href="{{.ResetURL}}" style="background: #2563eb; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Reset password</a>
    </p>
    <p>This link expires in {{.ExpiryHours}} hour{{if ne .ExpiryHours 1}}s{{end}}.
    If you did not request a reset, you can safely ignore this email.</p>
    <p style="color: #71717a; font-size: 12px;">{{.Company}}</p>
  </div>
</body>
</html>`

	textTmpl := `Hi {{if .UserName}}{{.UserName}}{{else}}there{{end}},

We received a request to reset the password for your {{.Company}} account.
Open the link below to choose a new one:

{{.ResetURL}}

This link expires in {{.ExpiryHours}} hour{{if ne .ExpiryHours 1}}s{{end}}.
If you did not request a reset, you can safely ignore this email.

{{.Company}}`

	parser := func(context PasswordResetContext) (PasswordResetContext, error) {
		if context.ResetURL == "" {
			return context, registry.ErrResetURLRequired
		}

		parsed, err := url.Parse(context.ResetURL)
		if err != nil || !parsed.IsAbs() {
			return context, registry.ErrResetURLAbsolute
		}

		scheme := strings.ToLower(parsed.Scheme)
		if scheme != registry.URLSchemeHTTP && scheme != registry.URLSchemeHTTPS {
			return context, registry.ErrResetURLScheme
		}

		if context.ExpiryHours <= 0 {
			context.ExpiryHours = registry.PasswordResetExpiryHours
		}

		return context, nil
	}

	return NewTemplate(registry.TemplateNamePasswordReset, htmlTmpl, textTmpl, parser)
}
