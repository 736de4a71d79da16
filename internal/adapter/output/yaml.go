package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/csspalette/internal/css"
	"github.com/jmylchreest/csspalette/internal/palette"
)

// YAMLFormatter formats palettes as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes the palette, or a single variant when one is selected.
func (f *YAMLFormatter) Format(w io.Writer, p *palette.Palette) error {
	v, err := selectVariant(p, f.opts.Variant)
	if err != nil {
		return err
	}
	return encodeYAML(w, v)
}

// FormatTokens writes tokens as a YAML sequence.
func (f *YAMLFormatter) FormatTokens(w io.Writer, tokens []css.Token) error {
	if tokens == nil {
		tokens = []css.Token{}
	}
	return encodeYAML(w, tokens)
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
