package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"order-service/pkg/mailer/registry"
)

type SendGridProvider struct {
	BaseProvider
	APIURL string
}

type SendGridConfig struct {
	APIKey string
	APIURL string
}

func NewSendGridProvider(config SendGridConfig) *SendGridProvider {
	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = registry.SendGridAPIURL
	}

	return &SendGridProvider{
		BaseProvider: BaseProvider{
			APIKey:       config.APIKey,
			ProviderName: registry.ProviderSendGrid,
		},
		APIURL: apiURL,
	}
}

func (p *SendGridProvider) Send(emailData *EmailData) (*EmailResult, error) {
	if p.APIKey == "" {
		return &EmailResult{
			Success:  false,
			Error:    registry.ErrAPIKeyRequired.Error(),
			Provider: p.ProviderName,
		}, registry.ErrAPIKeyRequired
	}

	recipients := make([]map[string]string, 0, len(emailData.To))
	for _, to := range emailData.To {
		recipients = append(recipients, map[string]string{registry.JSONEmail: to})
	}

	content := []map[string]string{
		{registry.JSONType: registry.MIMETextHTML, registry.JSONValue: emailData.HTML},
	}
	if emailData.Text != "" {
		content = append([]map[string]string{
			{registry.JSONType: registry.MIMETextPlain, registry.JSONValue: emailData.Text},
		}, content...)
	}

	payload := map[string]interface{}{
		registry.JSONPersonalizations: []map[string]interface{}{
			{registry.JSONTo: recipients},
		},
		registry.JSONFrom:    map[string]string{registry.JSONEmail: emailData.From},
		registry.JSONSubject: emailData.Subject,
		registry.JSONContent: content,
	}

	if emailData.ReplyTo != "" {
		payload[registry.JSONReplyTo] = map[string]string{registry.JSONEmail: emailData.ReplyTo}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(registry.MsgFailedMarshalPayloadFmt, err),
			Provider: p.ProviderName,
		}, err
	}

	req, err := http.NewRequest(http.MethodPost, p.APIURL+registry.PathSendGridMailSend, bytes.NewBuffer(jsonData))
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(registry.MsgFailedCreateRequestFmt, err),
			Provider: p.ProviderName,
		}, err
	}

	req.Header.Set(registry.HeaderAuthorization, registry.AuthBearerPrefix+p.APIKey)
	req.Header.Set(registry.HeaderContentType, registry.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(registry.MsgRequestFailedFmt, err),
			Provider: p.ProviderName,
		}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if !isHTTPSuccess(resp.StatusCode) {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(registry.MsgSendGridAPIErrorFmt, resp.StatusCode, string(body)),
			Provider: p.ProviderName,
		}, registry.ErrAPIStatus(resp.StatusCode)
	}

	return &EmailResult{
		Success:   true,
		MessageID: resp.Header.Get(registry.HeaderMessageID),
		Provider:  p.ProviderName,
	}, nil
}

func (p *SendGridProvider) Verify() (bool, error) {
	if p.APIKey == "" {
		return false, registry.ErrAPIKeyRequired
	}

	req, err := http.NewRequest(http.MethodGet, p.APIURL+registry.PathSendGridScopes, nil)
	if err != nil {
		return false, err
	}

	req.Header.Set(registry.HeaderAuthorization, registry.AuthBearerPrefix+p.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return isHTTPSuccess(resp.StatusCode), nil
}
