package strategies

import (
	"order-service/pkg/mailer/providers"
	"order-service/pkg/mailer/registry"
)

// SingleProviderStrategy sends through the first configured provider only.
type SingleProviderStrategy struct{}

func (s *SingleProviderStrategy) Send(emailData *providers.EmailData, providerList []providers.EmailProvider) (*providers.EmailResult, error) {
	if len(providerList) == 0 || providerList[0] == nil {
		return &providers.EmailResult{
			Success:  false,
			Error:    registry.ErrNoProvidersConfigured.Error(),
			Provider: registry.ProviderLabelNone,
		}, registry.ErrNoProvidersConfigured
	}

	return providerList[0].Send(emailData)
}
