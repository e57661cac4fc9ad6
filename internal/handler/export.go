// Package handler: export.go implements GET /api/exportar/{fmt}.
// Returns every registro as CSV when fmt is "csv" (any case), JSON otherwise.
package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

// csvFilename is the attachment name offered to the client.
const csvFilename = "registros.csv"

// ExportRegistros implements GET /api/exportar/{fmt}.
func (s *Server) ExportRegistros(w http.ResponseWriter, r *http.Request) error {
	registros, err := s.export.Export(r.Context())
	if err != nil {
		return err
	}

	if domain.ParseExportFormat(chi.URLParam(r, "fmt")) == domain.ExportCSV {
		body := buildCSV(registros)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+csvFilename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		body.WriteTo(w)
		return nil
	}

	writeJSON(w, http.StatusOK, registros)
	return nil
}

// buildCSV encodes registros in domain.RegistroColumns order.
// The header line is bare; every data value is quoted, with embedded quotes
// doubled, so the output does not vary with the content of the values.
func buildCSV(registros []domain.Registro) *bytes.Buffer {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(domain.RegistroColumns, ","))
	buf.WriteByte('\n')

	for _, reg := range registros {
		for i, v := range csvRecord(reg) {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(v, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	return &buf
}

// csvRecord renders reg as text values in domain.RegistroColumns order.
// A nil observacoes becomes an empty string.
func csvRecord(reg domain.Registro) []string {
	obs := ""
	if reg.Observacoes != nil {
		obs = *reg.Observacoes
	}
	return []string{
		strconv.FormatInt(reg.ID, 10),
		reg.Condutor,
		reg.PlacaVeiculo,
		reg.DataSaida,
		reg.DataChegada,
		formatKm(reg.KmInicial),
		formatKm(reg.KmFinal),
		obs,
	}
}

// formatKm prints an odometer reading in its shortest exact form: 100, 100.5.
func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
