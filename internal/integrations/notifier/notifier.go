package notifier

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

const (
	channelEmail    = "email"
	channelWhatsApp = "whatsapp"
)

// Notifier рассылает уведомления о новых бронированиях, заказах и сообщениях.
// Каналы необязательны: nil канал пропускается.
type Notifier struct {
	cfg      Config
	whatsapp WhatsAppSender
	email    EmailSender
	metrics  MetricsRecorder
	logger   Logger
}

// New создает новый экземпляр Notifier
func New(cfg Config, whatsapp WhatsAppSender, email EmailSender, metrics MetricsRecorder, logger Logger) *Notifier {
	return &Notifier{
		cfg:      cfg,
		whatsapp: whatsapp,
		email:    email,
		metrics:  metrics,
		logger:   logger,
	}
}

// BookingCreated уведомляет администратора и клиента о новой заявке на запись
func (n *Notifier) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	data := struct {
		SiteName string
		Date     string
		Booking  *domain.Booking
	}{
		SiteName: n.cfg.SiteName,
		Date:     booking.BookingDate.Format("02/01/2006"),
		Booking:  booking,
	}

	var errs []error
	errs = append(errs, n.emailTemplate(ctx, n.cfg.AdminEmail, "booking_admin", data))
	errs = append(errs, n.emailTemplate(ctx, booking.ClientEmail, "booking_client", data))
	errs = append(errs, n.whatsappTemplate(ctx, n.cfg.AdminPhone, "booking_admin_body", data))

	return n.finish("BookingCreated", errors.Join(errs...))
}

// SaleCreated уведомляет администратора о новой заявке на покупку
func (n *Notifier) SaleCreated(ctx context.Context, sale *domain.Sale) error {
	data := struct {
		SiteName string
		Price    string
		Sale     *domain.Sale
	}{
		SiteName: n.cfg.SiteName,
		Price:    sale.EffectivePrice().StringFixed(2),
		Sale:     sale,
	}

	var errs []error
	errs = append(errs, n.emailTemplate(ctx, n.cfg.AdminEmail, "sale_admin", data))
	errs = append(errs, n.whatsappTemplate(ctx, n.cfg.AdminPhone, "sale_admin_body", data))

	return n.finish("SaleCreated", errors.Join(errs...))
}

// ContactReceived пересылает сообщение из формы обратной связи администратору
func (n *Notifier) ContactReceived(ctx context.Context, msg ContactMessage) error {
	data := struct {
		SiteName string
		Contact  ContactMessage
	}{
		SiteName: n.cfg.SiteName,
		Contact:  msg,
	}

	return n.finish("ContactReceived", n.emailTemplate(ctx, n.cfg.AdminEmail, "contact_admin", data))
}

func (n *Notifier) emailTemplate(ctx context.Context, to, name string, data interface{}) error {
	if n.email == nil || to == "" {
		n.record(channelEmail, "skipped")
		return nil
	}

	subject, err := render(name+"_subject", data)
	if err != nil {
		return err
	}
	body, err := render(name+"_body", data)
	if err != nil {
		return err
	}

	err = n.email.SendEmail(ctx, to, subject, body)
	n.recordResult(channelEmail, err)
	return err
}

func (n *Notifier) whatsappTemplate(ctx context.Context, to, name string, data interface{}) error {
	if n.whatsapp == nil || to == "" {
		n.record(channelWhatsApp, "skipped")
		return nil
	}

	body, err := render(name, data)
	if err != nil {
		return err
	}

	err = n.whatsapp.SendWhatsApp(ctx, to, body)
	n.recordResult(channelWhatsApp, err)
	return err
}

func (n *Notifier) finish(op string, err error) error {
	if err != nil {
		n.logger.Warn("%s: notification delivery failed: %v", op, err)
		return err
	}
	n.logger.Info("%s: notifications dispatched", op)
	return nil
}

func (n *Notifier) recordResult(channel string, err error) {
	if err != nil {
		n.record(channel, "error")
		return
	}
	n.record(channel, "ok")
}

func (n *Notifier) record(channel, result string) {
	if n.metrics != nil {
		n.metrics.RecordNotification(channel, result)
	}
}
