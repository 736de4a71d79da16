package theme

import (
	"fmt"

	"howett.net/plist"

	"github.com/jmylchreest/csspalette/internal/css"
	"github.com/jmylchreest/csspalette/internal/palette"
)

// ITermColour is a colour entry of an .itermcolors preset.
type ITermColour struct {
	Red        float64 `plist:"Red Component"`
	Green      float64 `plist:"Green Component"`
	Blue       float64 `plist:"Blue Component"`
	Alpha      float64 `plist:"Alpha Component"`
	ColorSpace string  `plist:"Color Space"`
}

// ITermPreset maps iTerm2 colour keys, e.g. "Ansi 1 Color (Dark)", to colours.
type ITermPreset map[string]ITermColour

// NewITermColour converts a palette colour. Components are byte/255 so
// the hex value can be recovered exactly.
func NewITermColour(hex string) (ITermColour, error) {
	c, err := css.ParseColour(hex)
	if err != nil {
		return ITermColour{}, err
	}
	return ITermColour{
		Red:        c.R,
		Green:      c.G,
		Blue:       c.B,
		Alpha:      c.Opacity(),
		ColorSpace: "sRGB",
	}, nil
}

// Hex converts the colour back to #rrggbb, or #rrggbbaa when translucent.
func (c ITermColour) Hex() string {
	col := css.Colour{}
	col.R, col.G, col.B = c.Red, c.Green, c.Blue
	if c.Alpha < 1 {
		col.Alpha = uint8(c.Alpha*255 + 0.5)
		col.HasAlpha = true
	}
	return col.String()
}

// itermKeys maps iTerm2 colour names to the palette colour they use.
func itermKeys(c palette.Colours) [][2]string {
	return [][2]string{
		{"Background Color", c.Background},
		{"Foreground Color", c.Text},
		{"Link Color", c.Blue},
		{"Bold Color", c.Text},
		{"Cursor Color", c.Text},
		{"Cursor Text Color", c.Background},
		{"Cursor Guide Color", c.Highlight},
		{"Selection Color", c.Highlight},
		{"Selected Text Color", c.Text},
		{"Badge Color", c.Red},
		{"Match Background Color", c.Yellow},
		{"Ansi 0 Color", c.Text},
		{"Ansi 1 Color", c.Red},
		{"Ansi 2 Color", c.Green},
		{"Ansi 3 Color", c.Yellow},
		{"Ansi 4 Color", c.Blue},
		{"Ansi 5 Color", c.Magenta},
		{"Ansi 6 Color", c.Cyan},
		{"Ansi 7 Color", c.Background},
		{"Ansi 8 Color", c.Punctuation},
		{"Ansi 9 Color", c.Red},
		{"Ansi 10 Color", c.Green},
		{"Ansi 11 Color", c.Yellow},
		{"Ansi 12 Color", c.Blue},
		{"Ansi 13 Color", c.Magenta},
		{"Ansi 14 Color", c.Cyan},
		{"Ansi 15 Color", c.Background},
	}
}

// NewITermPreset builds a preset holding separate light and dark colours.
func NewITermPreset(p *palette.Palette) (ITermPreset, error) {
	preset := make(ITermPreset)

	variants := []struct {
		suffix  string
		colours palette.Colours
	}{
		{"Light", palette.Enrich(p.Light)},
		{"Dark", palette.Enrich(p.Dark)},
	}

	for _, v := range variants {
		for _, kv := range itermKeys(v.colours) {
			colour, err := NewITermColour(kv[1])
			if err != nil {
				return nil, fmt.Errorf("%s (%s): %w", kv[0], v.suffix, err)
			}
			preset[fmt.Sprintf("%s (%s)", kv[0], v.suffix)] = colour
		}
	}

	return preset, nil
}

// RenderITerm renders the palette as a binary .itermcolors plist.
func RenderITerm(p *palette.Palette) ([]byte, error) {
	preset, err := NewITermPreset(p)
	if err != nil {
		return nil, err
	}
	return plist.Marshal(preset, plist.BinaryFormat)
}
