package documents

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

const receiptDateLayout = "02/01/2006 15:04"

var saleStatusLabels = map[domain.SaleStatus]string{
	domain.SaleStatusPending:   "Pendiente",
	domain.SaleStatusInProcess: "En proceso",
	domain.SaleStatusCompleted: "Completada",
	domain.SaleStatusCancelled: "Cancelada",
}

// ReceiptRenderer формирует PDF квитанцию продажи
type ReceiptRenderer struct {
	siteName string
	location *time.Location
}

// NewReceiptRenderer создает генератор квитанций
func NewReceiptRenderer(siteName string, location *time.Location) *ReceiptRenderer {
	if location == nil {
		location = time.UTC
	}
	return &ReceiptRenderer{siteName: siteName, location: location}
}

// Render пишет A4 квитанцию продажи в w
func (r *ReceiptRenderer) Render(w io.Writer, sale *domain.Sale) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Comprobante #%d", sale.ID), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(r.siteName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Comprobante de venta #%d", sale.ID)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Fecha", sale.CreatedAt.In(r.location).Format(receiptDateLayout)},
		{"Cliente", sale.ClientName},
		{"Email", sale.ClientEmail},
		{"Teléfono", sale.ClientPhone},
		{"Producto", sale.ProductName},
		{"Estado", statusLabel(sale.Status)},
	}
	if notes := ptr.Value(sale.ClientNotes); notes != "" {
		rows = append(rows, [2]string{"Notas", notes})
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, tr(row[1]), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(40, 10, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr(sale.EffectivePrice().StringFixed(2)+" EUR"), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: sale id=%d: %v", ErrRenderPDF, sale.ID, err)
	}
	return nil
}

func statusLabel(status domain.SaleStatus) string {
	if label, ok := saleStatusLabels[status]; ok {
		return label
	}
	return string(status)
}
