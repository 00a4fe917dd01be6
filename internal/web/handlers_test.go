package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowbin/csvmap/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return NewServer(cfg)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCheckMatchingHeader(t *testing.T) {
	s := newTestServer(t)

	body := "Name,Qty\napple,1\n"
	req := httptest.NewRequest(http.MethodPost, "/api/check?expected=Name%2CQty", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Match)
	assert.Empty(t, resp.Missing)
}

func TestCheckMismatchedHeader(t *testing.T) {
	s := newTestServer(t)

	body := "Name,Weight\napple,1\n"
	req := httptest.NewRequest(http.MethodPost, "/api/check?expected=Name%2CQty", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Match)
	assert.Contains(t, resp.Missing, "QTY")
}

func TestCheckRequiresExpectedParam(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader("Name\n"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInspect(t *testing.T) {
	s := newTestServer(t)

	body := "RowNumber,Name,Qty\n1,apple,1\n2,banana,2\n"
	req := httptest.NewRequest(http.MethodPost, "/api/inspect", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp InspectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"Name", "Qty"}, resp.Columns)
	assert.True(t, resp.RowNumbers)
	assert.Equal(t, 2, resp.Rows)
	require.Len(t, resp.Preview, 2)
	assert.Equal(t, "apple", resp.Preview[0]["Name"])
}

func TestInspectEmptyBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/inspect", strings.NewReader("  "))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertChangesSeparator(t *testing.T) {
	s := newTestServer(t)

	body := "Name,Qty\napple,1\nbanana,2\n"
	req := httptest.NewRequest(http.MethodPost, "/api/convert?separator=%3B", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Name;Qty\napple;1\nbanana;2\n", rec.Body.String())
}

func TestConvertEmitsEOF(t *testing.T) {
	s := newTestServer(t)

	body := "Name,Qty\napple,1\n"
	req := httptest.NewRequest(http.MethodPost, "/api/convert?emit_eof=true", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasSuffix(rec.Body.String(), "EOF\n"), "body %q", rec.Body.String())
}
