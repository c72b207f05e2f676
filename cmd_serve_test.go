// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/settings"
)

const calculateURL = "/calculate?altitude=1000&temperature=15&pressure=1013.25"

func serve(t *testing.T, s *server, req *http.Request) (*http.Response, string) {
	t.Helper()
	w := httptest.NewRecorder()
	s.router("/metrics").ServeHTTP(w, req)
	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServeCalculate(t *testing.T) {
	s := newServer(newTestApp(t))

	resp, body := serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get(cacheHeader))
	assert.Empty(t, resp.Header.Get(warningHeader))
	assert.True(t, strings.HasPrefix(body, "At 1000.00 Meters:\r\n"), "body: %s", body)

	resp, cached := serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	assert.Equal(t, "hit", resp.Header.Get(cacheHeader))
	assert.Equal(t, body, cached)

	resp, imperial := serve(t, s, httptest.NewRequest(http.MethodGet,
		"/calculate?altitude=3280.84&altitude_unit=Feet&temperature=59&temperature_unit=F&pressure=29.92&pressure_unit=inHg",
		nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get(cacheHeader))
	assert.Contains(t, imperial, "At 3280.84 Feet:\r\n")
	assert.Contains(t, imperial, " inHg (")
}

func TestServeCalculateRejected(t *testing.T) {
	s := newServer(newTestApp(t))
	tests := []struct {
		name      string
		url       string
		wantedErr string
	}{
		{"missing", "/calculate?altitude=1000&temperature=15", "MissingInput"},
		{"parse", "/calculate?altitude=high&temperature=15&pressure=1013.25", "ParseError (altitude)"},
		{"range", "/calculate?altitude=90000&temperature=15&pressure=1013.25", "RangeError (altitude)"},
		{"unit", calculateURL + "&altitude_unit=yards", "Unknown altitude unit 'yards'"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, body := serve(t, s, httptest.NewRequest(http.MethodGet, test.url, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body, test.wantedErr)
		})
	}
	assert.Equal(t, 0, s.app.engine.Stats().Entries)
}

func TestServeCalculateWarning(t *testing.T) {
	s := newServer(newTestApp(t))
	resp, _ := serve(t, s, httptest.NewRequest(http.MethodGet,
		"/calculate?altitude=0&temperature=15&pressure=700", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"sea-level pressure is outside the typical range (800 hPa to 1100 hPa)",
		resp.Header.Get(warningHeader))
}

func TestServeResetAndLast(t *testing.T) {
	s := newServer(newTestApp(t))

	resp, _ := serve(t, s, httptest.NewRequest(http.MethodGet, "/last", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body := serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	resp, last := serve(t, s, httptest.NewRequest(http.MethodGet, "/last", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body, last)

	resp, _ = serve(t, s, httptest.NewRequest(http.MethodPost, "/reset", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, s.app.engine.Stats().Entries)

	resp, _ = serve(t, s, httptest.NewRequest(http.MethodGet, "/last", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = serve(t, s, httptest.NewRequest(http.MethodGet, "/reset", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServePutSettings(t *testing.T) {
	s := newServer(newTestApp(t))
	serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	require.Equal(t, 1, s.app.engine.Stats().Entries)

	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader("gravity=9.81&pressure_unit=inHg"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, body := serve(t, s, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Gravity: 9.81 m/s²\n")
	assert.Contains(t, body, "Pressure unit: inHg\n")
	assert.Equal(t, 0, s.app.engine.Stats().Entries)

	stored, err := s.app.store.Load()
	require.NoError(t, err)
	assert.Equal(t, 9.81, stored.Gravity)

	resp, body = serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	assert.Equal(t, "miss", resp.Header.Get(cacheHeader))
	assert.Contains(t, body, " inHg (")

	req = httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader("gas_constant=0"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, body = serve(t, s, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Invalid value for Gas Constant")
}

func TestServePutSettingsUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), settings.FileName)
	require.NoError(t, os.Mkdir(path, 0o755))
	a, err := openApp(&options{settingsPath: path, cacheSize: 16})
	require.NoError(t, err)
	defer a.Close()
	s := newServer(a)

	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader("gravity=5"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := serve(t, s, req)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, body := serve(t, s, httptest.NewRequest(http.MethodGet, "/settings", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Gravity: 9.80665 m/s²\n")
	assert.Equal(t, isa.DefaultGravity, s.app.engine.Constants().Gravity)
}

func TestServeMetrics(t *testing.T) {
	s := newServer(newTestApp(t))
	serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	serve(t, s, httptest.NewRequest(http.MethodGet, calculateURL, nil))
	serve(t, s, httptest.NewRequest(http.MethodGet, "/calculate", nil))

	resp, body := serve(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "isa_cache_hits_total 1\n")
	assert.Contains(t, body, "isa_cache_misses_total 1\n")
	assert.Contains(t, body, `isa_rejections_total{kind="MissingInput"} 1`)
	assert.Contains(t, body, "isa_calculator_build_info")
}
