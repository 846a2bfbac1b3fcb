package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/magicalhair/citas/pkg/cita"
	log "github.com/sirupsen/logrus"
)

var Header = []string{"ID", "Sede", "Fecha", "Hora", "Cliente", "Telefono", "Servicio", "Notas", "Estado"}

type Renderer interface {
	Render(citas []cita.Cita) (string, error)
}

// TsvRendererImpl renders appointments as tab-separated text, one row per appointment.
// Unless quote is set, fields are written verbatim: a tab or newline inside a name or a note
// shifts the columns of that row.
type TsvRendererImpl struct {
	quote bool
}

func NewTsvRenderer(quote bool) *TsvRendererImpl {
	return &TsvRendererImpl{quote: quote}
}

func (t *TsvRendererImpl) Render(citas []cita.Cita) (string, error) {
	rows := make([][]string, 0, len(citas)+1)
	rows = append(rows, Header)
	for _, c := range citas {
		rows = append(rows, toRow(c))
	}

	if !t.quote {
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		return b.String(), nil
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	writer.Comma = '\t'
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to tsv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to tsv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func toRow(c cita.Cita) []string {
	return []string{c.ID, c.Sede, c.Fecha, c.Hora, c.Cliente, c.Telefono, c.Servicio, c.Notas, c.Estado}
}
