package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
	"Labusch/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDF_Consume(t *testing.T) {
	results := []strength.Result{
		{Elements: []string{"W", "Mo"}, Concentrations: []float64{1, 0}, ShearModulus: 161, Strength: 10},
		{Elements: []string{"W", "Mo"}, Concentrations: []float64{0.5, 0.5}, ShearModulus: 143.5, Strength: 30},
	}
	p := &PDF{Project: "alloys", Exponent: "1/3", Step: 0.5, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}

	_, err := p.Bytes()
	assert.Error(t, err, "nothing rendered yet")

	best, err := sweep.Publish(results, p)
	require.NoError(t, err)
	assert.InDelta(t, 30, best.Strength, 0)

	out, err := p.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRanked(t *testing.T) {
	in := []strength.Result{{Strength: 1}, {Strength: 3, ShearModulus: 1}, {Strength: 3, ShearModulus: 2}, {Strength: 2}}
	got := Ranked(in)
	require.Len(t, got, 4)
	assert.Equal(t, []float64{3, 3, 2, 1}, []float64{got[0].Strength, got[1].Strength, got[2].Strength, got[3].Strength})
	assert.InDelta(t, 1, got[0].ShearModulus, 0, "ties keep grid order")
	assert.InDelta(t, 1, in[0].Strength, 0, "input untouched")
}

func TestFormula(t *testing.T) {
	r := strength.Result{Elements: []string{"Nb", "Ta", "W"}, Concentrations: []float64{0.25, 0.5, 0.25}}
	assert.Equal(t, "Nb0.25 Ta0.50 W0.25", Formula(r))
}

func TestHandler_Generate(t *testing.T) {
	h := &Handler{Runner: sweep.Runner{Catalog: catalog.Default(), Model: strength.DefaultModel()}}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/tools/report/pdf",
		strings.NewReader(`{"elements":["W","Mo"],"step":0.1,"project":"demo"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"elements":["W","Xx"]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
