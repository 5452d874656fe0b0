package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender отправка WhatsApp сообщений через Twilio
type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
	logger     Logger
}

// NewTwilioSender создает клиента Twilio
func NewTwilioSender(accountSID, authToken, fromNumber string, logger Logger) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendWhatsApp отправляет сообщение на номер в формате E.164
func (s *TwilioSender) SendWhatsApp(ctx context.Context, to, body string) error {
	if !strings.HasPrefix(to, "+") {
		return fmt.Errorf("%w: phone %q must be in E.164 format", ErrInvalidRecipient, to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(whatsappAddress(s.fromNumber))
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: twilio: %v", ErrSendFailed, err)
	}

	if resp.Sid != nil {
		s.logger.Info("SendWhatsApp: message sent to=%s sid=%s", to, *resp.Sid)
	}
	return nil
}

func whatsappAddress(phone string) string {
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}
