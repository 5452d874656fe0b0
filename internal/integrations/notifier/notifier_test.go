package notifier

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type sentMessage struct {
	to      string
	subject string
	body    string
}

type fakeEmail struct {
	sent []sentMessage
	err  error
}

func (f *fakeEmail) SendEmail(_ context.Context, to, subject, body string) error {
	f.sent = append(f.sent, sentMessage{to: to, subject: subject, body: body})
	return f.err
}

type fakeWhatsApp struct {
	sent []sentMessage
	err  error
}

func (f *fakeWhatsApp) SendWhatsApp(_ context.Context, to, body string) error {
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return f.err
}

type fakeMetrics struct {
	records []string
}

func (f *fakeMetrics) RecordNotification(channel, result string) {
	f.records = append(f.records, channel+":"+result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	notes := "Primera visita"
	return &domain.Booking{
		ID:          7,
		ClientName:  "Lucía Pérez",
		ClientEmail: "lucia@example.com",
		ClientPhone: "+34 600 111 222",
		ServiceName: "Masaje relajante",
		BookingDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		Status:      domain.BookingStatusPending,
		ClientNotes: &notes,
	}
}

func TestNotifier_BookingCreated(t *testing.T) {
	email := &fakeEmail{}
	wa := &fakeWhatsApp{}
	m := &fakeMetrics{}
	n := New(Config{SiteName: "Centro Armonía", AdminEmail: "admin@example.com", AdminPhone: "+34600000000"}, wa, email, m, nopLogger{})

	err := n.BookingCreated(context.Background(), testBooking())
	require.NoError(t, err)

	require.Len(t, email.sent, 2)
	assert.Equal(t, "admin@example.com", email.sent[0].to)
	assert.Contains(t, email.sent[0].subject, "Masaje relajante")
	assert.Contains(t, email.sent[0].body, "14/03/2026 10:00-11:00")
	assert.Contains(t, email.sent[0].body, "Notas: Primera visita")
	assert.Equal(t, "lucia@example.com", email.sent[1].to)
	assert.Contains(t, email.sent[1].body, "Hola Lucía Pérez")

	require.Len(t, wa.sent, 1)
	assert.Equal(t, "+34600000000", wa.sent[0].to)
	assert.Equal(t, []string{"email:ok", "email:ok", "whatsapp:ok"}, m.records)
}

func TestNotifier_FailuresAreJoinedAndCounted(t *testing.T) {
	email := &fakeEmail{err: ErrSendFailed}
	wa := &fakeWhatsApp{}
	m := &fakeMetrics{}
	n := New(Config{AdminEmail: "admin@example.com", AdminPhone: "+34600000000"}, wa, email, m, nopLogger{})

	err := n.BookingCreated(context.Background(), testBooking())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSendFailed))
	assert.Len(t, wa.sent, 1)
	assert.Equal(t, []string{"email:error", "email:error", "whatsapp:ok"}, m.records)
}

func TestNotifier_ChannelsAreOptional(t *testing.T) {
	m := &fakeMetrics{}
	n := New(Config{AdminEmail: "admin@example.com"}, nil, nil, m, nopLogger{})

	sale := &domain.Sale{ClientName: "Ana", ProductName: "Aceite", ProductPrice: decimal.NewFromInt(20)}
	require.NoError(t, n.SaleCreated(context.Background(), sale))
	assert.Equal(t, []string{"email:skipped", "whatsapp:skipped"}, m.records)
}

func TestNotifier_SaleUsesEffectivePrice(t *testing.T) {
	email := &fakeEmail{}
	n := New(Config{AdminEmail: "admin@example.com"}, nil, email, nil, nopLogger{})

	final := decimal.RequireFromString("15.5")
	sale := &domain.Sale{ClientName: "Ana", ProductName: "Aceite", ProductPrice: decimal.NewFromInt(20), FinalPrice: &final}
	require.NoError(t, n.SaleCreated(context.Background(), sale))

	require.Len(t, email.sent, 1)
	assert.Contains(t, email.sent[0].body, "Aceite (15.50 €)")
}

func TestNotifier_ContactReceived(t *testing.T) {
	email := &fakeEmail{}
	n := New(Config{AdminEmail: "admin@example.com"}, nil, email, nil, nopLogger{})

	err := n.ContactReceived(context.Background(), ContactMessage{
		Name:    "Marta",
		Email:   "marta@example.com",
		Message: "¿Tenéis cita el sábado?",
	})
	require.NoError(t, err)
	require.Len(t, email.sent, 1)
	assert.Equal(t, "Contacto web: Marta", email.sent[0].subject)
	assert.Contains(t, email.sent[0].body, "¿Tenéis cita el sábado?")
	assert.NotContains(t, email.sent[0].body, "Teléfono")
}

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		text  string
		want  string
	}{
		{name: "digits only", phone: "+34 600-111-222", text: "", want: "https://wa.me/34600111222"},
		{name: "with text", phone: "34600111222", text: "Hola qué tal", want: "https://wa.me/34600111222?text=Hola+qu%C3%A9+tal"},
		{name: "empty phone", phone: " ", text: "Hola", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WhatsAppLink(tt.phone, tt.text))
		})
	}
}

func TestBookingWhatsAppText(t *testing.T) {
	text := BookingWhatsAppText(testBooking())
	assert.Equal(t, "Hola, soy Lucía Pérez. Acabo de solicitar una cita para Masaje relajante el 14/03/2026 a las 10:00.", text)
}

func TestSMTPSender_SendEmail(t *testing.T) {
	sender, err := NewSMTPSender("smtp.example.com", 587, "user", "secret", "no-reply@example.com", "Centro Armonía")
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err = sender.SendEmail(context.Background(), "Lucía <lucia@example.com>", "Reserva recibida", "línea 1\nlínea 2")
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{"lucia@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Content-Type: text/plain; charset=\"utf-8\"\r\n")
	assert.Contains(t, msg, "Subject: Reserva recibida\r\n")
	assert.True(t, strings.HasSuffix(msg, "línea 1\r\nlínea 2"))
}

func TestSMTPSender_InvalidRecipient(t *testing.T) {
	sender, err := NewSMTPSender("smtp.example.com", 25, "", "", "no-reply@example.com", "")
	require.NoError(t, err)

	err = sender.SendEmail(context.Background(), "not-an-email", "x", "y")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestTwilioSender_RequiresE164(t *testing.T) {
	sender := NewTwilioSender("AC123", "token", "+14155238886", nopLogger{})
	err := sender.SendWhatsApp(context.Background(), "600111222", "hola")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}
