package theme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmylchreest/csspalette/internal/config"
	"github.com/jmylchreest/csspalette/internal/palette"
)

// Meta is the editable theme metadata written into TextMate themes.
type Meta struct {
	Name          string
	Author        string
	SemanticClass string
	PaletteID     string
}

// Document is a rendered theme file.
type Document struct {
	FileName string
	Variant  string // light, dark, or empty when the file holds both
	Data     []byte
}

// MetaFor returns the metadata for one variant of the configured theme.
func MetaFor(cfg *config.Config, p *palette.Palette, variant string) Meta {
	label := "Light"
	if variant == config.VariantDark {
		label = "Dark"
	}
	return Meta{
		Name:          fmt.Sprintf("%s (%s)", cfg.Theme.Name, label),
		Author:        cfg.Theme.Author,
		SemanticClass: cfg.SemanticClass(variant),
		PaletteID:     p.ID,
	}
}

// Render produces every theme file for the palette, in a fixed order.
func Render(cfg *config.Config, p *palette.Palette) ([]Document, error) {
	var docs []Document

	for _, variant := range []string{config.VariantLight, config.VariantDark} {
		base, err := p.Variant(variant)
		if err != nil {
			return nil, err
		}
		data, err := RenderTextMate(palette.Enrich(*base), MetaFor(cfg, p, variant))
		if err != nil {
			return nil, fmt.Errorf("render %s TextMate theme: %w", variant, err)
		}
		docs = append(docs, Document{
			FileName: "TextMate_" + variant + ".tmTheme",
			Variant:  variant,
			Data:     data,
		})
	}

	data, err := RenderITerm(p)
	if err != nil {
		return nil, fmt.Errorf("render iTerm2 preset: %w", err)
	}
	docs = append(docs, Document{
		FileName: cfg.Theme.Name + ".itermcolors",
		Data:     data,
	})

	return docs, nil
}

// Writer writes rendered themes into an output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteAll writes the documents in order and returns their paths.
// Documents written before a failure are left in place.
func (w *Writer) WriteAll(docs []Document) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", w.dir, err)
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		path := filepath.Join(w.dir, doc.FileName)
		if err := os.WriteFile(path, doc.Data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		w.logger.Info("wrote theme", "path", path, "bytes", len(doc.Data))
		paths = append(paths, path)
	}
	return paths, nil
}
