package templates

import (
	"fmt"

	"order-service/pkg/mailer/registry"
)

type OrderConfirmationContext struct {
	Company     string
	UserName    string
	OrderID     string
	Item        string
	Quantity    int
	AmountCents int64
}

// AmountFormatted renders the order total as a dollar string for templates.
func (c OrderConfirmationContext) AmountFormatted() string {
	return fmt.Sprintf("$%d.%02d", c.AmountCents/100, c.AmountCents%100)
}

func OrderConfirmationTemplate() (*TypedTemplate[OrderConfirmationContext], error) {
	htmlTmpl := `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 24px; background-color: #f4f4f5;">
  <div style="max-width: 520px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="margin-top: 0;">Order received</h2>
    <p>Hi {{if .UserName}}{{.UserName}}{{else}}there{{end}},</p>
    <p>Thanks for your order with {{.Company}}. Here is what we have:</p>
    <table style="width: 100%; border-collapse: collapse; margin: 24px 0;">
      <tr><td style="padding: 8px 0; color: #71717a;">Order</td><td style="text-align: right;">{{.OrderID}}</td></tr>
      <tr><td style="padding: 8px 0; color: #71717a;">Item</td><td style="text-align: right;">{{.Item}}</td></tr>
      <tr><td style="padding: 8px 0; color: #71717a;">Quantity</td><td style="text-align: right;">{{.Quantity}}</td></tr>
      <tr><td style="padding: 8px 0; color: #71717a;">Total</td><td style="text-align: right;">{{.AmountFormatted}}</td></tr>
    </table>
    <p>We will email you again when it ships.</p>
    <p style="color: #71717a; font-size: 12px;">{{.Company}}</p>
  </div>
</body>
</html>`

	textTmpl := `Hi {{if .UserName}}{{.UserName}}{{else}}there{{end}},

Thanks for your order with {{.Company}}.

Order:    {{.OrderID}}
Item:     {{.Item}}
Quantity: {{.Quantity}}
Total:    {{.AmountFormatted}}

We will email you again when it ships.

{{.Company}}`

	parser := func(context OrderConfirmationContext) (OrderConfirmationContext, error) {
		if context.OrderID == "" {
			return context, registry.ErrTemplateContextRequired
		}
		return context, nil
	}

	return NewTemplate(registry.TemplateNameOrderConfirmation, htmlTmpl, textTmpl, parser)
}
