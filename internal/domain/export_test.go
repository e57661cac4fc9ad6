package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

func TestParseExportFormat(t *testing.T) {
	cases := map[string]domain.ExportFormat{
		"csv":  domain.ExportCSV,
		"CSV":  domain.ExportCSV,
		"CsV":  domain.ExportCSV,
		"json": domain.ExportJSON,
		"xlsx": domain.ExportJSON,
		"":     domain.ExportJSON,
		" csv": domain.ExportJSON,
		"csv ": domain.ExportJSON,
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.ParseExportFormat(in), "input %q", in)
	}
}
