package mailer

import (
	"order-service/pkg/mailer/providers"
	"order-service/pkg/mailer/registry"
	"order-service/pkg/mailer/strategies"
	"order-service/pkg/mailer/templates"
)

// EmailService is constructed once at startup and injected wherever mail is
// sent. Providers, strategy and default sender are fixed at construction, so
// the service is safe for concurrent use without locking.
type EmailService struct {
	providers   []providers.EmailProvider
	strategy    strategies.EmailStrategy
	defaultFrom string
}

type EmailServiceConfig struct {
	Providers   []providers.EmailProvider
	Strategy    strategies.EmailStrategy
	DefaultFrom string
}

func NewEmailService(config EmailServiceConfig) (*EmailService, error) {
	if len(config.Providers) == 0 {
		return nil, registry.ErrAtLeastOneProviderRequired
	}

	providerList := make([]providers.EmailProvider, len(config.Providers))
	copy(providerList, config.Providers)

	for _, provider := range providerList {
		if provider == nil {
			return nil, registry.ErrProviderCannotBeNil
		}
	}

	strategy := config.Strategy
	if strategy == nil {
		strategy = &strategies.SingleProviderStrategy{}
	}

	if config.DefaultFrom != "" {
		if err := ValidateEmail(config.DefaultFrom); err != nil {
			return nil, registry.ErrInvalidDefaultFromEmail
		}
	}

	return &EmailService{
		providers:   providerList,
		strategy:    strategy,
		defaultFrom: config.DefaultFrom,
	}, nil
}

func (s *EmailService) Send(emailData *providers.EmailData) (*providers.EmailResult, error) {
	if emailData == nil {
		return &providers.EmailResult{
			Success:  false,
			Error:    registry.ErrEmailDataRequired.Error(),
			Provider: registry.ProviderLabelValidation,
		}, registry.ErrEmailDataRequired
	}

	data := *emailData
	data.To = append([]string(nil), emailData.To...)
	if data.From == "" && s.defaultFrom != "" {
		data.From = s.defaultFrom
	}

	if err := ValidateEmailData(&data); err != nil {
		return &providers.EmailResult{
			Success:  false,
			Error:    err.Error(),
			Provider: registry.ProviderLabelValidation,
		}, err
	}

	return s.strategy.Send(&data, s.providers)
}

func SendWithTypedTemplate[T any](service *EmailService, template *templates.TypedTemplate[T], context T, emailData *providers.EmailData) (*providers.EmailResult, error) {
	if service == nil {
		return &providers.EmailResult{
			Success:  false,
			Error:    registry.ErrEmailServiceRequired.Error(),
			Provider: registry.ProviderLabelTemplate,
		}, registry.ErrEmailServiceRequired
	}

	if template == nil {
		return &providers.EmailResult{
			Success:  false,
			Error:    registry.ErrEmailTemplateRequired.Error(),
			Provider: registry.ProviderLabelTemplate,
		}, registry.ErrEmailTemplateRequired
	}

	if emailData == nil {
		emailData = &providers.EmailData{}
	}

	html, text, err := template.Render(context)
	if err != nil {
		return &providers.EmailResult{
			Success:  false,
			Error:    err.Error(),
			Provider: registry.ProviderLabelTemplate,
		}, err
	}

	data := *emailData
	data.HTML = html
	data.Text = text

	return service.Send(&data)
}

func (s *EmailService) VerifyProviders() map[string]bool {
	results := make(map[string]bool)
	for _, provider := range s.providers {
		verified, _ := provider.Verify()
		results[provider.GetName()] = verified
	}

	return results
}
