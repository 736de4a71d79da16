// Package fetch stores fetched stylesheets in the local vendor directory.
//
// A vendored copy of "components/syntax_highlighting.css" at version
// 3f9a1c2 lives at <dir>/syntax_highlighting.3f9a1c2.css. Only the latest
// version of each file is kept.
package fetch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/csspalette/internal/adapter/input"
)

var (
	// ErrNotVendored is returned when a source file has no vendored copy.
	ErrNotVendored = errors.New("not vendored")

	// ErrAmbiguous is returned when more than one vendored copy exists.
	ErrAmbiguous = errors.New("multiple vendored copies")
)

// VendoredFile is a local copy of a fetched stylesheet.
type VendoredFile struct {
	Source  string // Configured source path
	Path    string // Local path
	Version string
	Size    int64
}

// Vendorer manages the vendor directory.
type Vendorer struct {
	dir    string
	logger *slog.Logger
}

// NewVendorer creates a Vendorer for dir.
func NewVendorer(dir string, logger *slog.Logger) *Vendorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vendorer{dir: dir, logger: logger}
}

// Vendor stores asset unless that version is already present, removing any
// other versions of the same file. Reports whether anything was written.
func (v *Vendorer) Vendor(asset *input.Asset) (VendoredFile, bool, error) {
	if asset.Version == "" || strings.ContainsAny(asset.Version, `./\`) {
		return VendoredFile{}, false, fmt.Errorf("invalid version %q for %s", asset.Version, asset.Path)
	}

	stem, ext := splitName(asset.Path)
	target := filepath.Join(v.dir, stem+"."+asset.Version+ext)
	vf := VendoredFile{
		Source:  asset.Path,
		Path:    target,
		Version: asset.Version,
		Size:    int64(len(asset.Data)),
	}

	if _, err := os.Stat(target); err == nil {
		v.logger.Debug("already vendored", "file", asset.Path, "version", asset.Version)
		return vf, false, nil
	}

	if err := os.MkdirAll(v.dir, 0755); err != nil {
		return VendoredFile{}, false, fmt.Errorf("failed to create directory %s: %w", v.dir, err)
	}

	old, err := v.copies(asset.Path)
	if err != nil {
		return VendoredFile{}, false, err
	}
	for _, path := range old {
		if err := os.Remove(path); err != nil {
			return VendoredFile{}, false, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		v.logger.Debug("removed old vendored copy", "path", path)
	}

	if err := os.WriteFile(target, asset.Data, 0644); err != nil {
		return VendoredFile{}, false, fmt.Errorf("failed to write %s: %w", target, err)
	}
	v.logger.Info("vendored", "file", asset.Path, "version", asset.Version, "path", target)

	return vf, true, nil
}

// Find returns the single vendored copy of the source file.
func (v *Vendorer) Find(source string) (VendoredFile, error) {
	paths, err := v.copies(source)
	if err != nil {
		return VendoredFile{}, err
	}

	switch len(paths) {
	case 0:
		return VendoredFile{}, fmt.Errorf("%s in %s: %w", source, v.dir, ErrNotVendored)
	case 1:
	default:
		return VendoredFile{}, fmt.Errorf("%s: %w: %s", source, ErrAmbiguous, strings.Join(paths, ", "))
	}

	info, err := os.Stat(paths[0])
	if err != nil {
		return VendoredFile{}, err
	}

	stem, ext := splitName(source)
	version := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(paths[0]), stem+"."), ext)

	return VendoredFile{
		Source:  source,
		Path:    paths[0],
		Version: version,
		Size:    info.Size(),
	}, nil
}

// Read returns the contents of the single vendored copy of source.
func (v *Vendorer) Read(source string) (VendoredFile, string, error) {
	vf, err := v.Find(source)
	if err != nil {
		return VendoredFile{}, "", err
	}
	data, err := os.ReadFile(vf.Path)
	if err != nil {
		return VendoredFile{}, "", err
	}
	return vf, string(data), nil
}

// copies lists every vendored version of source, sorted by name.
func (v *Vendorer) copies(source string) ([]string, error) {
	stem, ext := splitName(source)
	pattern := filepath.Join(v.dir, globEscape(stem)+".*"+globEscape(ext))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	// "a.*.css" also matches "a.b.c.css"; keep only single-segment versions.
	var paths []string
	for _, m := range matches {
		version := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), stem+"."), ext)
		if version != "" && !strings.Contains(version, ".") {
			paths = append(paths, m)
		}
	}
	return paths, nil
}

// splitName turns "components/syntax_highlighting.css" into
// ("syntax_highlighting", ".css").
func splitName(source string) (string, string) {
	base := filepath.Base(filepath.FromSlash(source))
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func globEscape(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return r.Replace(s)
}
