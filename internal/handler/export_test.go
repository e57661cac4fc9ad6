package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/quilometragem/backend/internal/domain"
	"github.com/pkordes/quilometragem/backend/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.Registro, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.Registro, error) {
	return m.export(ctx)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const csvHeader = "id,condutor,placa_veiculo,data_saida,data_chegada,km_inicial,km_final,observacoes\n"

// newExportHTTPHandler wires a Server with only the export service mock.
func newExportHTTPHandler(exportSvc handler.ExportServicer) http.Handler {
	return handler.NewServer(discardLogger(), nil, exportSvc).Routes()
}

func exportReturning(registros ...domain.Registro) *mockExportServicer {
	return &mockExportServicer{
		export: func(_ context.Context) ([]domain.Registro, error) { return registros, nil },
	}
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// ---- CSV -------------------------------------------------------------------

func TestExportRegistros_CSV_Empty(t *testing.T) {
	rec := get(newExportHTTPHandler(exportReturning()), "/api/exportar/csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, csvHeader, rec.Body.String())
}

func TestExportRegistros_CSV_Headers(t *testing.T) {
	rec := get(newExportHTTPHandler(exportReturning(registroFixture(1))), "/api/exportar/csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="registros.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
}

func TestExportRegistros_CSV_QuotesEveryValue(t *testing.T) {
	reg := registroFixture(1)
	reg.KmInicial = 100.5

	rec := get(newExportHTTPHandler(exportReturning(reg)), "/api/exportar/csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		csvHeader+`"1","Ana","ABC1234","2024-01-01","2024-01-02","100.5","250",""`+"\n",
		rec.Body.String(),
		"nil observacoes is an empty quoted value")
}

func TestExportRegistros_CSV_EscapesQuotes(t *testing.T) {
	reg := registroFixture(3)
	reg.Condutor = `O"Brien`
	reg.Observacoes = ptr("pneu, estepe\ntrocado")

	rec := get(newExportHTTPHandler(exportReturning(reg)), "/api/exportar/csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		csvHeader+`"3","O""Brien","ABC1234","2024-01-01","2024-01-02","100","250","pneu, estepe`+"\n"+`trocado"`+"\n",
		rec.Body.String())
}

func TestExportRegistros_CSV_PreservesOrder(t *testing.T) {
	rec := get(newExportHTTPHandler(exportReturning(registroFixture(9), registroFixture(4))), "/api/exportar/csv")

	require.Equal(t, http.StatusOK, rec.Code)
	row := `","Ana","ABC1234","2024-01-01","2024-01-02","100","250",""` + "\n"
	assert.Equal(t, csvHeader+`"9`+row+`"4`+row, rec.Body.String())
}

func TestExportRegistros_CSV_CaseInsensitive(t *testing.T) {
	for _, f := range []string{"CSV", "Csv"} {
		t.Run(f, func(t *testing.T) {
			rec := get(newExportHTTPHandler(exportReturning()), "/api/exportar/"+f)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, csvHeader, rec.Body.String())
		})
	}
}

// ---- JSON fallback ---------------------------------------------------------

func TestExportRegistros_JSON(t *testing.T) {
	for _, target := range []string{"/api/exportar/json", "/api/exportar/xml", "/api/exportar"} {
		t.Run(target, func(t *testing.T) {
			rec := get(newExportHTTPHandler(exportReturning(registroFixture(2), registroFixture(1))), target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Empty(t, rec.Header().Get("Content-Disposition"))

			var resp []domain.Registro
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.Len(t, resp, 2)
			assert.EqualValues(t, 2, resp[0].ID)
			assert.EqualValues(t, 1, resp[1].ID)
		})
	}
}

func TestExportRegistros_JSON_Empty(t *testing.T) {
	rec := get(newExportHTTPHandler(exportReturning([]domain.Registro{}...)), "/api/exportar/json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ---- errors ----------------------------------------------------------------

func TestExportRegistros_500(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context) ([]domain.Registro, error) {
			return nil, errors.New("service.ExportService.Export: no such table: registros")
		},
	}

	for _, f := range []string{"csv", "json"} {
		t.Run(f, func(t *testing.T) {
			rec := get(newExportHTTPHandler(svc), "/api/exportar/"+f)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "service.ExportService.Export: no such table: registros", errorMessage(t, rec))
		})
	}
}
