package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/csspalette/internal/config"
)

func newStylesheetServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupFetch(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()

	cfg = config.DefaultConfig()
	cfg.Source.Kind = "http"
	cfg.Source.BaseURL = baseURL
	cfg.Paths.VendorDir = filepath.Join(dir, "css")
	logger = slog.Default()
	fetchCmd.SetContext(context.Background())

	return cfg.Paths.VendorDir
}

func vendoredNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFetch_VendorsFromHTTP(t *testing.T) {
	srv := newStylesheetServer(t, map[string]string{
		"/src/_scss/variables.scss":                     variablesSCSS,
		"/src/_scss/components/syntax_highlighting.css": syntaxCSS,
	})
	vendorDir := setupFetch(t, srv.URL+"/src/_scss")

	require.NoError(t, runFetch(fetchCmd, nil))

	names := vendoredNames(t, vendorDir)
	require.Len(t, names, 2)
	assert.Regexp(t, `^syntax_highlighting\.[0-9a-f]{7}\.css$`, names[0])
	assert.Regexp(t, `^variables\.[0-9a-f]{7}\.scss$`, names[1])

	// Fetching unchanged files again leaves the same copies
	require.NoError(t, runFetch(fetchCmd, nil))
	assert.Equal(t, names, vendoredNames(t, vendorDir))

	// The vendored copies are enough to generate a palette
	p, err := buildPalette()
	require.NoError(t, err)
	assert.Equal(t, "#fffffa", p.Light.Background)
}

func TestFetch_MissingFileFails(t *testing.T) {
	srv := newStylesheetServer(t, map[string]string{
		"/src/_scss/variables.scss": variablesSCSS,
	})
	vendorDir := setupFetch(t, srv.URL+"/src/_scss")

	err := runFetch(fetchCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	// Files fetched before the failure stay vendored
	names := vendoredNames(t, vendorDir)
	require.Len(t, names, 1)
	assert.Regexp(t, `^variables\.`, names[0])
}

func TestFetch_UnknownSourceKind(t *testing.T) {
	setupFetch(t, "")
	cfg.Source.Kind = "ftp"

	err := runFetch(fetchCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source kind")
}
