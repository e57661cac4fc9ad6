package domain

import "strings"

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat maps a route value to an ExportFormat.
// "csv" in any letter case selects CSV; every other value, including the
// empty string and "csv" with surrounding spaces, selects JSON.
func ParseExportFormat(s string) ExportFormat {
	if strings.EqualFold(s, string(ExportCSV)) {
		return ExportCSV
	}
	return ExportJSON
}
