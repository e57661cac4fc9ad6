// Package domain contains the core data types for the quilometragem API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

// RegistroColumns is the fixed column order of a registro. SELECT lists, the
// CSV header, and CSV rows all follow it, so exports never depend on the
// iteration order of a driver's row map.
var RegistroColumns = []string{
	"id",
	"condutor",
	"placa_veiculo",
	"data_saida",
	"data_chegada",
	"km_inicial",
	"km_final",
	"observacoes",
}

// Registro is one vehicle trip log entry.
// Dates are kept as the text the client sent; the server never parses them.
type Registro struct {
	ID           int64   `json:"id"`
	Condutor     string  `json:"condutor"`
	PlacaVeiculo string  `json:"placa_veiculo"`
	DataSaida    string  `json:"data_saida"`
	DataChegada  string  `json:"data_chegada"`
	KmInicial    float64 `json:"km_inicial"`
	KmFinal      float64 `json:"km_final"`
	Observacoes  *string `json:"observacoes"` // nil is stored as NULL
}

// RegistroInput is the accepted shape of a create request.
// Every field is a pointer so an omitted field reaches the store as NULL;
// the NOT NULL constraints of the schema decide whether that is acceptable.
type RegistroInput struct {
	Condutor     *string  `json:"condutor"`
	PlacaVeiculo *string  `json:"placa_veiculo"`
	DataSaida    *string  `json:"data_saida"`
	DataChegada  *string  `json:"data_chegada"`
	KmInicial    *float64 `json:"km_inicial"`
	KmFinal      *float64 `json:"km_final"`
	Observacoes  *string  `json:"observacoes"`
}

// RegistroFilter narrows a registro listing. Nil fields are not applied.
type RegistroFilter struct {
	// Condutor matches a case-insensitive substring of condutor.
	Condutor *string
	// Placa matches a case-insensitive substring of placa_veiculo.
	Placa *string
	// DataInicio keeps rows with data_saida >= DataInicio (text comparison).
	DataInicio *string
	// DataFim keeps rows with data_chegada <= DataFim (text comparison).
	DataFim *string
}

// MutationResult is the store acknowledgment of an insert.
type MutationResult struct {
	ID      int64 `json:"id"`
	Changes int64 `json:"changes"`
}
