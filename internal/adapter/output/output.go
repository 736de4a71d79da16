// Package output provides output formatters for palettes and colour tokens.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/csspalette/internal/css"
	"github.com/jmylchreest/csspalette/internal/palette"
)

// Formatter formats palettes for output.
type Formatter interface {
	// Format writes the palette to the writer.
	Format(w io.Writer, p *palette.Palette) error
	// FormatTokens writes the colour custom properties of a stylesheet.
	FormatTokens(w io.Writer, tokens []css.Token) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// NewFormatter creates a formatter for the specified format type.
// An empty format means plain.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown output format %q (want plain, json or yaml)", format)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom per-slot template for plain format
	Variant  string // Only show this variant (empty = both)
	Swatches bool   // Render a colour block next to each value
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Swatches: true,
	}
}
