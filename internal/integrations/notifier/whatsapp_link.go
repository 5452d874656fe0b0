package notifier

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// WhatsAppLink deep link wa.me на номер с заранее заполненным текстом; пустая строка, если номер пустой
func WhatsAppLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}

	link := "https://wa.me/" + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

// BookingWhatsAppText текст, с которым клиент пишет в WhatsApp после заявки
func BookingWhatsAppText(booking *domain.Booking) string {
	return fmt.Sprintf(
		"Hola, soy %s. Acabo de solicitar una cita para %s el %s a las %s.",
		booking.ClientName,
		booking.ServiceName,
		booking.BookingDate.Format("02/01/2006"),
		booking.StartTime,
	)
}

// SaleWhatsAppText текст для уточнения заказа товара
func SaleWhatsAppText(sale *domain.Sale) string {
	return fmt.Sprintf("Hola, soy %s. Me interesa el producto %s.", sale.ClientName, sale.ProductName)
}
