package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/csspalette/internal/adapter/input"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		input string
		stem  string
		ext   string
	}{
		{"variables.scss", "variables", ".scss"},
		{"components/syntax_highlighting.css", "syntax_highlighting", ".css"},
		{"noext", "noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stem, ext := splitName(tt.input)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestVendor_WritesVersionedCopy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "css")
	v := NewVendorer(dir, nil)

	vf, changed, err := v.Vendor(&input.Asset{
		Path:    "components/syntax_highlighting.css",
		Version: "abc1234",
		Data:    []byte("--green: #0f0;"),
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, filepath.Join(dir, "syntax_highlighting.abc1234.css"), vf.Path)
	assert.Equal(t, int64(14), vf.Size)

	data, err := os.ReadFile(vf.Path)
	require.NoError(t, err)
	assert.Equal(t, "--green: #0f0;", string(data))
}

func TestVendor_SameVersionIsNoop(t *testing.T) {
	dir := t.TempDir()
	v := NewVendorer(dir, nil)
	asset := &input.Asset{Path: "variables.scss", Version: "abc1234", Data: []byte("a")}

	_, changed, err := v.Vendor(asset)
	require.NoError(t, err)
	assert.True(t, changed)

	// Same version with different bytes is not rewritten
	asset.Data = []byte("b")
	vf, changed, err := v.Vendor(asset)
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(vf.Path)
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestVendor_NewVersionReplacesOld(t *testing.T) {
	dir := t.TempDir()
	v := NewVendorer(dir, nil)

	_, _, err := v.Vendor(&input.Asset{Path: "variables.scss", Version: "1111111", Data: []byte("old")})
	require.NoError(t, err)
	// A different file with the same extension must survive
	_, _, err = v.Vendor(&input.Asset{Path: "other.scss", Version: "2222222", Data: []byte("other")})
	require.NoError(t, err)

	_, changed, err := v.Vendor(&input.Asset{Path: "variables.scss", Version: "3333333", Data: []byte("new")})
	require.NoError(t, err)
	assert.True(t, changed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"variables.3333333.scss", "other.2222222.scss"}, names)
}

func TestVendor_InvalidVersion(t *testing.T) {
	v := NewVendorer(t.TempDir(), nil)
	for _, version := range []string{"", "../x", "a.b"} {
		_, _, err := v.Vendor(&input.Asset{Path: "a.css", Version: version})
		assert.Error(t, err, version)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	v := NewVendorer(dir, nil)

	_, err := v.Find("variables.scss")
	assert.True(t, errors.Is(err, ErrNotVendored))

	_, _, err = v.Vendor(&input.Asset{Path: "variables.scss", Version: "abc1234", Data: []byte("--a: #fff;")})
	require.NoError(t, err)

	vf, err := v.Find("variables.scss")
	require.NoError(t, err)
	assert.Equal(t, "abc1234", vf.Version)
	assert.Equal(t, "variables.scss", vf.Source)
	assert.Equal(t, int64(10), vf.Size)

	vf, css, err := v.Read("variables.scss")
	require.NoError(t, err)
	assert.Equal(t, "abc1234", vf.Version)
	assert.Equal(t, "--a: #fff;", css)
}

func TestFind_IgnoresLookalikes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables.abc1234.scss"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables.dark.abc1234.scss"), []byte("y"), 0644))

	vf, err := NewVendorer(dir, nil).Find("variables.scss")
	require.NoError(t, err)
	assert.Equal(t, "abc1234", vf.Version)
}

func TestFind_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables.1111111.scss"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables.2222222.scss"), []byte("y"), 0644))

	_, err := NewVendorer(dir, nil).Find("variables.scss")
	assert.True(t, errors.Is(err, ErrAmbiguous))
}

type fakeAdapter struct {
	assets map[string]*input.Asset
}

func (f *fakeAdapter) Name() string { return "fake" }

func (f *fakeAdapter) Fetch(_ context.Context, path string) (*input.Asset, error) {
	if a, ok := f.assets[path]; ok {
		return a, nil
	}
	return nil, &input.AdapterError{Source: "fake", Message: "missing " + path}
}

func TestAll(t *testing.T) {
	adapter := &fakeAdapter{assets: map[string]*input.Asset{
		"variables.scss": {Path: "variables.scss", Version: "1111111", Data: []byte("a")},
		"syntax.css":     {Path: "syntax.css", Version: "2222222", Data: []byte("b")},
	}}
	v := NewVendorer(t.TempDir(), nil)

	results, err := All(context.Background(), adapter, v, []string{"variables.scss", "syntax.css"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.Equal(t, "2222222", results[1].Version)

	results, err = All(context.Background(), adapter, v, []string{"variables.scss", "syntax.css"})
	require.NoError(t, err)
	assert.False(t, results[0].Changed)
	assert.False(t, results[1].Changed)
}

func TestAll_StopsAtFirstFailure(t *testing.T) {
	adapter := &fakeAdapter{assets: map[string]*input.Asset{
		"a.css": {Path: "a.css", Version: "1111111", Data: []byte("a")},
	}}
	v := NewVendorer(t.TempDir(), nil)

	results, err := All(context.Background(), adapter, v, []string{"a.css", "b.css", "c.css"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch b.css")
	assert.Len(t, results, 1)

	_, err = v.Find("a.css")
	assert.NoError(t, err)
}

func TestAll_RejectsSharedBaseName(t *testing.T) {
	adapter := &fakeAdapter{assets: map[string]*input.Asset{
		"light/theme.css": {Path: "light/theme.css", Version: "aaaaaaa", Data: []byte("--bg: #fff;")},
		"dark/theme.css":  {Path: "dark/theme.css", Version: "aaaaaaa", Data: []byte("--bg: #000;")},
	}}
	dir := t.TempDir()
	v := NewVendorer(dir, nil)

	results, err := All(context.Background(), adapter, v, []string{"light/theme.css", "dark/theme.css"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same name")
	assert.Empty(t, results)

	// Nothing is vendored, so neither file can be read back as the other
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
