package batch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Labusch/internal/calc/strength"
	"Labusch/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Input {
	t.Helper()
	var in Input
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestCalculate(t *testing.T) {
	in := decode(t, `{"exponent":"2/3","items":[
		{"elements":[{"name":"W","concentration":1}]},
		{"elements":[{"name":"W","concentration":0.5},{"name":"Mo","concentration":0.5}]}
	]}`)
	out, err := Calculate(strength.DefaultModel(), catalog.Default(), in)
	require.NoError(t, err)
	assert.Equal(t, "2/3", out.Exponent)
	require.Len(t, out.Results, 2)
	assert.InDelta(t, 161, out.Results[0].ShearModulus, 1e-9)
	assert.InDelta(t, 143.5, out.Results[1].ShearModulus, 1e-9)

	model, err := strength.DefaultModel().WithExponent("2/3")
	require.NoError(t, err)
	w, err := catalog.Default().Get("W")
	require.NoError(t, err)
	single, err := model.SolidSolutionStrength([]strength.Member{{Element: w, Concentration: 1}})
	require.NoError(t, err)
	assert.Equal(t, single, out.Results[0])
}

func TestCalculate_FirstErrorFails(t *testing.T) {
	m, c := strength.DefaultModel(), catalog.Default()

	_, err := Calculate(m, c, Input{})
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = Calculate(m, c, decode(t, `{"items":[
		{"elements":[{"name":"W","concentration":1}]},
		{"elements":[{"name":"Xx","concentration":1}]}
	]}`))
	assert.ErrorIs(t, err, catalog.ErrUnknownElement)
	assert.Contains(t, err.Error(), "items[1]")

	_, err = Calculate(m, c, decode(t, `{"items":[{"elements":[{"name":"W","concentration":0.4}]}]}`))
	assert.ErrorIs(t, err, strength.ErrInvalidComposition)

	_, err = Calculate(m, c, decode(t, `{"exponent":"-1","items":[{"elements":[{"name":"W","concentration":1}]}]}`))
	assert.ErrorIs(t, err, strength.ErrInvalidModel)
}

func TestHandler_Calc(t *testing.T) {
	h := &Handler{Catalog: catalog.Default(), Model: strength.DefaultModel()}

	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/batch/calc",
		strings.NewReader(`{"items":[{"elements":[{"name":"Nb","concentration":0.5},{"name":"Ta","concentration":0.5}]}]}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out Output
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "1/3", out.Exponent)
	assert.Len(t, out.Results, 1)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
