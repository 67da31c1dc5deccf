package exporter

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
	"Labusch/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() []strength.Result {
	names := []string{"W", "Mo"}
	return []strength.Result{
		{Elements: names, Concentrations: []float64{0, 1}, ShearModulus: 126, Strength: 5},
		{Elements: names, Concentrations: []float64{0.5, 0.5}, ShearModulus: 143.5, Strength: 9},
		{Elements: names, Concentrations: []float64{1, 0}, ShearModulus: 161, Strength: 7},
	}
}

func TestWorkbook_RoundTrip(t *testing.T) {
	wb := &Workbook{Exponent: "1/3", Step: 0.5}
	_, err := wb.WriteTo(&bytes.Buffer{})
	assert.Error(t, err)

	_, err = sweep.Publish(sample(), wb)
	require.NoError(t, err)
	defer wb.Close()

	var buf bytes.Buffer
	_, err = wb.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"W", "Mo", "shear_modulus_gpa", "solid_solution_strength_mpa"}, rows[0])
	assert.Equal(t, []string{"0.5", "0.5", "143.5", "9"}, rows[2])

	best, err := f.GetRows(BestSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.5", "0.5", "143.5", "9"}, best[1])
	v, err := f.GetCellValue(BestSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "1/3", v)
}

func TestWorkbook_SaveAs(t *testing.T) {
	wb := &Workbook{}
	_, err := sweep.Publish(sample(), wb)
	require.NoError(t, err)
	defer wb.Close()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, wb.SaveAs(path))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{ResultsSheet, BestSheet}, f.GetSheetList())
}

func TestHandler_Export(t *testing.T) {
	h := &Handler{Runner: sweep.Runner{Catalog: catalog.Default(), Model: strength.DefaultModel()}}

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/tools/export/xlsx",
		strings.NewReader(`{"elements":["Nb","Ta","W"],"step":0.25}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1+15)

	rec = httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"elements":["W"]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
