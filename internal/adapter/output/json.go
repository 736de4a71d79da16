package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/csspalette/internal/css"
	"github.com/jmylchreest/csspalette/internal/palette"
)

// JSONFormatter formats palettes as JSON, in the same shape as palette.json.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the palette, or a single variant when one is selected.
func (f *JSONFormatter) Format(w io.Writer, p *palette.Palette) error {
	v, err := selectVariant(p, f.opts.Variant)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatTokens writes tokens as a JSON array.
func (f *JSONFormatter) FormatTokens(w io.Writer, tokens []css.Token) error {
	if tokens == nil {
		tokens = []css.Token{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}

// selectVariant returns the whole palette, or the named variant.
func selectVariant(p *palette.Palette, variant string) (any, error) {
	if variant == "" {
		return p, nil
	}
	return p.Variant(variant)
}
