package newsletter

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

// exportDateLayout формат даты в CSV: dd/MM/yyyy
const exportDateLayout = "02/01/2006"

var exportHeader = []string{"email", "name", "source", "date"}

// writeCSV пишет только активных подписчиков ровно в четыре колонки
func writeCSV(w io.Writer, subscribers []*domain.Subscriber, loc *time.Location) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}

	written := 0
	for _, s := range subscribers {
		if !s.IsActive {
			continue
		}
		record := []string{
			s.Email,
			ptr.Value(s.Name),
			s.Source.Label(),
			s.SubscribedAt.In(loc).Format(exportDateLayout),
		}
		if err := cw.Write(record); err != nil {
			return written, err
		}
		written++
	}

	cw.Flush()
	return written, cw.Error()
}
