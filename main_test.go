package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
	"Labusch/internal/catalog"
	"Labusch/internal/config"
	"Labusch/internal/logger"
	"Labusch/internal/repo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		TokenKey: "test-key",
		Model:    strength.DefaultModel(),
		Step:     0.1,
		Workers:  2,
	}
	r := mux.NewRouter()
	HandleList(r, cfg, logger.Discard(), catalog.Default(), repo.NewMemory())
	return CORS(r)
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_SweepFlow(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/elements", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var elements []strength.Element
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&elements))
	assert.Len(t, elements, 9)

	rec = do(t, h, http.MethodPost, "/api/register", "", `{"login":"ada","email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg))
	require.NotEmpty(t, reg.Token)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/api/user/tools/sweep/binary", "", `{"elements":["W","Mo"]}`).Code)

	rec = do(t, h, http.MethodPost, "/api/user/tools/sweep/binary", reg.Token, `{"elements":["W","Mo"],"omit_results":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out sweep.Outcome
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 11, out.Points)
	assert.Empty(t, out.Results)

	rec = do(t, h, http.MethodGet, "/api/user/history", reg.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []repo.SweepRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "binary", list[0].Kind)

	rec = do(t, h, http.MethodGet, "/api/user/history/1", reg.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var saved repo.SweepRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&saved))
	var points []strength.Result
	require.NoError(t, json.Unmarshal(saved.Points, &points))
	assert.Len(t, points, 11, "history keeps the full table")

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/user/history/99", reg.Token, "").Code)
}

func TestServer_Routes(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodPost, "/api/register", "", `{"login":"bob","email":"bob@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg))

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/api/user/tools/strength/calc", `{"elements":[{"name":"W","concentration":1}]}`, http.StatusOK},
		{http.MethodPost, "/api/user/tools/sweep/ternary", `{"elements":["Nb","Ta","W"],"omit_results":true}`, http.StatusOK},
		{http.MethodPost, "/api/user/tools/optimize", `{"elements":["Ti","Zr"]}`, http.StatusOK},
		{http.MethodPost, "/api/user/tools/batch/calc", `{"items":[{"elements":[{"name":"V","concentration":1}]}]}`, http.StatusOK},
		{http.MethodGet, "/api/user/tools/recommend?top=2", "", http.StatusOK},
		{http.MethodPost, "/api/user/tools/export/xlsx", `{"elements":["W","Mo"]}`, http.StatusOK},
		{http.MethodPost, "/api/user/tools/report/pdf", `{"elements":["W","Mo"]}`, http.StatusOK},
		{http.MethodPost, "/api/user/tools/sweep/binary", `{"elements":["W","Mo"],"step":0.3}`, http.StatusOK},
		{http.MethodPost, "/api/user/tools/sweep/binary", `{"elements":["W","Mo"],"step":-0.3}`, http.StatusBadRequest},
		{http.MethodPost, "/api/user/tools/sweep/binary", `{"elements":["W","Mo"],"step":2}`, http.StatusUnprocessableEntity},
		{http.MethodPost, "/api/user/tools/sweep/ternary", `{"elements":["Nb","Ta","W"],"step":0.0001}`, http.StatusUnprocessableEntity},
		{http.MethodGet, "/api/user/tools/sweep/binary", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rec := do(t, h, tc.method, tc.path, reg.Token, tc.body)
		assert.Equal(t, tc.want, rec.Code, "%s %s: %s", tc.method, tc.path, rec.Body.String())
	}

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodOptions, "/api/user/tools/optimize", "", "").Code)
}
