package notifier

import (
	"bytes"
	"fmt"
	"text/template"
)

var templates = template.Must(template.New("notifier").Parse(`
{{define "booking_admin_subject"}}Nueva reserva: {{.Booking.ServiceName}} el {{.Date}} a las {{.Booking.StartTime}}{{end}}
{{define "booking_admin_body"}}Nueva solicitud de reserva en {{.SiteName}}

Cliente: {{.Booking.ClientName}}
Email: {{.Booking.ClientEmail}}
Teléfono: {{.Booking.ClientPhone}}
Servicio: {{.Booking.ServiceName}}
Fecha: {{.Date}} {{.Booking.StartTime}}-{{.Booking.EndTime}}
{{with .Booking.ClientNotes}}Notas: {{.}}
{{end}}{{end}}
{{define "booking_client_subject"}}Hemos recibido tu reserva en {{.SiteName}}{{end}}
{{define "booking_client_body"}}Hola {{.Booking.ClientName}},

Hemos recibido tu solicitud para {{.Booking.ServiceName}} el {{.Date}} a las {{.Booking.StartTime}}.
Te confirmaremos la cita en breve.

{{.SiteName}}
{{end}}
{{define "sale_admin_subject"}}Nueva solicitud de compra: {{.Sale.ProductName}}{{end}}
{{define "sale_admin_body"}}Nueva solicitud de compra en {{.SiteName}}

Cliente: {{.Sale.ClientName}}
Email: {{.Sale.ClientEmail}}
Teléfono: {{.Sale.ClientPhone}}
Producto: {{.Sale.ProductName}} ({{.Price}} €)
{{with .Sale.ClientNotes}}Notas: {{.}}
{{end}}{{end}}
{{define "contact_admin_subject"}}Contacto web: {{if .Contact.Subject}}{{.Contact.Subject}}{{else}}{{.Contact.Name}}{{end}}{{end}}
{{define "contact_admin_body"}}Mensaje desde el formulario de contacto de {{.SiteName}}

Nombre: {{.Contact.Name}}
Email: {{.Contact.Email}}
{{with .Contact.Phone}}Teléfono: {{.}}
{{end}}
{{.Contact.Message}}
{{end}}
`))

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return buf.String(), nil
}
