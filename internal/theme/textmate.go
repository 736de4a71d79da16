package theme

import (
	"howett.net/plist"

	"github.com/jmylchreest/csspalette/internal/palette"
)

// TextMateTheme is the document structure of a .tmTheme file.
type TextMateTheme struct {
	Name          string            `plist:"name"`
	Author        string            `plist:"author,omitempty"`
	SemanticClass string            `plist:"semanticClass,omitempty"`
	Comment       string            `plist:"comment,omitempty"`
	Settings      []TextMateSetting `plist:"settings"`
}

// TextMateSetting is one entry of the settings array. The first entry has
// no scope and holds the editor-wide colours.
type TextMateSetting struct {
	Name     string            `plist:"name,omitempty"`
	Scope    string            `plist:"scope,omitempty"`
	Settings map[string]string `plist:"settings"`
}

// baseScopes get the default foreground and background.
var baseScopes = []struct {
	name  string
	scope string
}{
	{"Text base", "text"},
	{"Source base", "source - source source"},
	{"Embedded source (text)", "text meta.embedded"},
	{"Embedded source (source)", "source meta.embedded"},
}

// NewTextMateTheme builds the theme document for one variant.
func NewTextMateTheme(c palette.Colours, meta Meta) TextMateTheme {
	settings := []TextMateSetting{{
		Settings: map[string]string{
			"foreground":    c.Text,
			"background":    c.Background,
			"caret":         c.Text,
			"invisibles":    c.Punctuation,
			"selection":     c.Highlight,
			"lineHighlight": c.Highlight,
		},
	}}

	for _, b := range baseScopes {
		settings = append(settings, TextMateSetting{
			Name:  b.name,
			Scope: b.scope,
			Settings: map[string]string{
				"foreground": c.Text,
				"background": c.Background,
			},
		})
	}

	scopes := []struct {
		scope  string
		colour string
	}{
		{"comment", c.Comment},
		{"source comment.block", c.Comment},
		{"constant", c.Literal},
		{"entity.name", c.Name},
		{"variable", c.Name},
		{"meta.class.ruby", c.Name},
		{"keyword.control.class.ruby", c.Text},
		{"meta.identifier.python", c.Name},
		{"markup.heading.1.markdown", c.Name},
		{"markup.heading.2.markdown", c.Name},
		{"markup.heading.3.markdown", c.Name},
		{"markup.heading.4.markdown", c.Name},
		{"markup.heading.5.markdown", c.Name},
		{"markup.heading.6.markdown", c.Name},
		{"string", c.String},
		{"string constant.character.escape", c.String},
		{"string.interpolated", c.String},
		{"string.literal", c.String},
		{"string.interpolated constant.character.escape", c.String},
	}
	for _, s := range scopes {
		settings = append(settings, TextMateSetting{
			Name:     s.scope,
			Scope:    s.scope,
			Settings: map[string]string{"foreground": s.colour},
		})
	}

	return TextMateTheme{
		Name:          meta.Name,
		Author:        meta.Author,
		SemanticClass: meta.SemanticClass,
		Comment:       "Generated from palette " + meta.PaletteID,
		Settings:      settings,
	}
}

// RenderTextMate renders one variant as an old-style (OpenStep) plist,
// the form shown by TextMate's bundle editor.
func RenderTextMate(c palette.Colours, meta Meta) ([]byte, error) {
	data, err := plist.MarshalIndent(NewTextMateTheme(c, meta), plist.OpenStepFormat, "\t")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
