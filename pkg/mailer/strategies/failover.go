package strategies

import (
	"fmt"
	"strings"

	"order-service/pkg/mailer/providers"
	"order-service/pkg/mailer/registry"
)

// FailoverStrategy retries the send on each provider in order until one
// succeeds.
type FailoverStrategy struct{}

func (s *FailoverStrategy) Send(emailData *providers.EmailData, providerList []providers.EmailProvider) (*providers.EmailResult, error) {
	if len(providerList) == 0 {
		return &providers.EmailResult{
			Success:  false,
			Error:    registry.ErrNoProvidersConfigured.Error(),
			Provider: registry.ProviderLabelNone,
		}, registry.ErrNoProvidersConfigured
	}

	var errorMessages []string

	for _, provider := range providerList {
		if provider == nil {
			errorMessages = append(errorMessages, fmt.Sprintf(registry.MsgProviderErrorFmt, registry.UnknownProviderName, registry.ErrProviderCannotBeNil.Error()))
			continue
		}

		result, err := provider.Send(emailData)

		if result != nil && result.Success {
			return result, nil
		}

		errorText := ""
		if result != nil && result.Error != "" {
			errorText = result.Error
		} else if err != nil {
			errorText = err.Error()
		} else {
			errorText = registry.StrategySendFailedText
		}

		errorMessages = append(errorMessages, fmt.Sprintf(registry.MsgProviderErrorFmt, provider.GetName(), errorText))
	}

	return &providers.EmailResult{
		Success:  false,
		Error:    fmt.Sprintf(registry.MsgProviderErrorFmt, registry.ErrAllProvidersFailed.Error(), strings.Join(errorMessages, registry.MessageSeparator)),
		Provider: registry.ProviderLabelFailover,
	}, registry.ErrAllProvidersFailed
}
