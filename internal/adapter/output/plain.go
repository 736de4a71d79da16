package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/csspalette/internal/css"
	"github.com/jmylchreest/csspalette/internal/palette"
)

// PlainFormatter formats palettes as an aligned table with optional swatches.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// slotData is the value passed to custom templates, once per slot.
type slotData struct {
	Slot  string
	Light string
	Dark  string
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes the palette id followed by one line per slot.
func (f *PlainFormatter) Format(w io.Writer, p *palette.Palette) error {
	if f.opts.Variant != "" {
		if _, err := p.Variant(f.opts.Variant); err != nil {
			return err
		}
	}

	sw := f.swatcher(w)
	var sb strings.Builder

	if f.template == nil {
		sb.WriteString(fmt.Sprintf("palette %s\n\n", p.ID))
	}

	for _, slot := range palette.Slots {
		light, _ := p.Light.Get(slot)
		dark, _ := p.Dark.Get(slot)

		if f.template != nil {
			if err := f.template.Execute(&sb, slotData{Slot: slot, Light: light, Dark: dark}); err != nil {
				return err
			}
			sb.WriteString("\n")
			continue
		}

		switch f.opts.Variant {
		case "light":
			sb.WriteString(fmt.Sprintf("%-12s %s%s\n", slot, sw(light), light))
		case "dark":
			sb.WriteString(fmt.Sprintf("%-12s %s%s\n", slot, sw(dark), dark))
		default:
			sb.WriteString(fmt.Sprintf("%-12s %s%-10s %s%s\n", slot, sw(light), light, sw(dark), dark))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTokens writes one "value name" line per token.
func (f *PlainFormatter) FormatTokens(w io.Writer, tokens []css.Token) error {
	sw := f.swatcher(w)
	for _, t := range tokens {
		if _, err := fmt.Fprintf(w, "%s%-10s %s\n", sw(t.Value), t.Value, t.Name); err != nil {
			return err
		}
	}
	return nil
}

// swatcher returns a function rendering a colour block for a value.
// Colour output follows the capabilities of w, so non-terminal writers
// get plain spaces.
func (f *PlainFormatter) swatcher(w io.Writer) func(string) string {
	if !f.opts.Swatches {
		return func(string) string { return "" }
	}
	r := lipgloss.NewRenderer(w)
	return func(value string) string {
		return swatch(r, value)
	}
}

func swatch(r *lipgloss.Renderer, value string) string {
	c, err := css.ParseColour(value)
	if err != nil {
		return "   "
	}
	// Terminals have no alpha; show the opaque colour
	return r.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ") + " "
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"rgb": func(value string) string {
			c, err := css.ParseColour(value)
			if err != nil {
				return value
			}
			r, g, b := c.RGB255()
			return fmt.Sprintf("%d %d %d", r, g, b)
		},
		"opacity": func(value string) float64 {
			c, err := css.ParseColour(value)
			if err != nil {
				return 0
			}
			return c.Opacity()
		},
	}
}
