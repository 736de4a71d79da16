// Package palette builds the light and dark colour palettes from vendored
// stylesheets.
package palette

import (
	"fmt"
)

// Slot names, as used in configuration and palette.json.
const (
	SlotBackground = "background"
	SlotText       = "text"
	SlotAccentGrey = "accent_grey"
	SlotRed        = "red"
	SlotGreen      = "green"
	SlotBlue       = "blue"
	SlotMagenta    = "magenta"
	SlotYellow     = "yellow"
	SlotCyan       = "cyan"
	SlotHighlight  = "highlight"
)

// Slots lists every base slot in palette.json order.
var Slots = []string{
	SlotBackground, SlotText, SlotAccentGrey, SlotRed, SlotGreen,
	SlotBlue, SlotMagenta, SlotYellow, SlotCyan, SlotHighlight,
}

// BaseColours is one variant of the palette, as read from the stylesheets.
// Values are normalised #rrggbb or #rrggbbaa strings.
type BaseColours struct {
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
	AccentGrey string `json:"accent_grey" yaml:"accent_grey"`
	Red        string `json:"red" yaml:"red"`
	Green      string `json:"green" yaml:"green"`
	Blue       string `json:"blue" yaml:"blue"`
	Magenta    string `json:"magenta" yaml:"magenta"`
	Yellow     string `json:"yellow" yaml:"yellow"`
	Cyan       string `json:"cyan" yaml:"cyan"`
	Highlight  string `json:"highlight" yaml:"highlight"`
}

// Palette holds both variants and an id identifying the stylesheet
// versions they came from.
type Palette struct {
	ID    string      `json:"id" yaml:"id"`
	Light BaseColours `json:"light" yaml:"light"`
	Dark  BaseColours `json:"dark" yaml:"dark"`
}

// Colours is a variant enriched with the semantic roles used by themes.
type Colours struct {
	BaseColours

	Comment     string
	Literal     string
	String      string
	Name        string
	Punctuation string
}

// Enrich maps the base colours onto semantic roles.
func Enrich(c BaseColours) Colours {
	return Colours{
		BaseColours: c,
		Comment:     c.Red,
		Literal:     c.Magenta,
		String:      c.Green,
		Name:        c.Blue,
		Punctuation: c.AccentGrey,
	}
}

// Get returns the colour in slot.
func (c *BaseColours) Get(slot string) (string, error) {
	p, err := c.field(slot)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Set stores value in slot.
func (c *BaseColours) Set(slot, value string) error {
	p, err := c.field(slot)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Missing returns the slots that have no colour.
func (c *BaseColours) Missing() []string {
	var missing []string
	for _, slot := range Slots {
		if v, _ := c.Get(slot); v == "" {
			missing = append(missing, slot)
		}
	}
	return missing
}

func (c *BaseColours) field(slot string) (*string, error) {
	switch slot {
	case SlotBackground:
		return &c.Background, nil
	case SlotText:
		return &c.Text, nil
	case SlotAccentGrey:
		return &c.AccentGrey, nil
	case SlotRed:
		return &c.Red, nil
	case SlotGreen:
		return &c.Green, nil
	case SlotBlue:
		return &c.Blue, nil
	case SlotMagenta:
		return &c.Magenta, nil
	case SlotYellow:
		return &c.Yellow, nil
	case SlotCyan:
		return &c.Cyan, nil
	case SlotHighlight:
		return &c.Highlight, nil
	default:
		return nil, fmt.Errorf("unknown palette slot %q", slot)
	}
}

// Variant returns the colours for "light" or "dark".
func (p *Palette) Variant(name string) (*BaseColours, error) {
	switch name {
	case "light":
		return &p.Light, nil
	case "dark":
		return &p.Dark, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", name)
	}
}
