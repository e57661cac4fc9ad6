package domain

import "time"

// HistoricoAlteracao is one recorded change to a field of a registro.
// Rows are written by an external process; this API only reads them.
type HistoricoAlteracao struct {
	ID               int64     `json:"id"`
	RegistroID       int64     `json:"registro_id"`
	CampoAlterado    string    `json:"campo_alterado"`
	ValorAnterior    *string   `json:"valor_anterior"`
	ValorNovo        *string   `json:"valor_novo"`
	UsuarioAlteracao *string   `json:"usuario_alteracao"`
	AlteradoEm       time.Time `json:"alterado_em"`
}
