package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/daily-brief-service/internal/adapter/http"
	"github.com/couchcryptid/daily-brief-service/internal/catalog"
	"github.com/couchcryptid/daily-brief-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(checkers ...httpadapter.ReadinessChecker) *httpadapter.Server {
	logger := slog.New(slog.DiscardHandler)
	store := catalog.New(logger, catalog.Builtin())
	return httpadapter.NewServer(":0", domain.NewReportBuilder(store, logger), logger, checkers...)
}

func do(t *testing.T, srv *httpadapter.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthzReturns200(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}

func TestReadyzReturns200WhenAllReady(t *testing.T) {
	rec := do(t, newTestServer(&mockReadiness{}, &mockReadiness{}), http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode(t, rec)["status"])
}

func TestReadyzReturns503WhenAnyNotReady(t *testing.T) {
	srv := newTestServer(&mockReadiness{}, &mockReadiness{err: fmt.Errorf("reports pipeline has not processed any messages yet")})
	rec := do(t, srv, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "reports pipeline has not processed any messages yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestParseCommand(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/commands/parse", `{"text":"Košice\nslovensky\nemuska"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var cmd domain.ParsedCommand
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmd))
	assert.Equal(t, domain.WeatherCommand("Košice", domain.PersonalityEmuska, domain.LanguageSlovak), cmd)
}

func TestParseCommand_Delete(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/commands/parse", `{"text":"please unsubscribe me"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"kind":"delete"}`, rec.Body.String())
}

func TestParseCommand_BadBody(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/commands/parse", `{"text":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "invalid request body")
}

func TestPreviewReport(t *testing.T) {
	body := `{"location":"Prague","personality":"brutal","language":"en",
		"observation":{"temp_max":36,"temp_min":24,"precipitation_sum":0,"precipitation_probability":5,"wind_speed_max":10}}`
	rec := do(t, newTestServer(), http.MethodPost, "/v1/reports/preview", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "sunny_hot", resp["condition"])
	assert.True(t, strings.HasPrefix(resp["report"], "Today's weather for Prague:\n\n"))
	assert.Contains(t, resp["report"], "🌡️ Temperature: High 36°C / Low 24°C")
	assert.Contains(t, resp["report"], "👕 ")
}

func TestPreviewReport_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing location", `{"observation":{"temp_max":10}}`, "location"},
		{"missing observation", `{"location":"Brno"}`, "observation"},
		{"unknown personality", `{"location":"Brno","personality":"grumpy","observation":{}}`, "personality"},
		{"unsupported language", `{"location":"Brno","language":"de","observation":{}}`, "language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, "/v1/reports/preview", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["error"], tt.field)
		})
	}
}

func TestPreviewReport_UnknownField(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/reports/preview", `{"location":"Brno","observation":{},"mood":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRouteReturns404(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
