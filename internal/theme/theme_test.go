package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"github.com/jmylchreest/csspalette/internal/config"
	"github.com/jmylchreest/csspalette/internal/palette"
)

func testPalette() *palette.Palette {
	return &palette.Palette{
		ID: "1a2b3c4-5d6e7f8",
		Light: palette.BaseColours{
			Background: "#fffffa",
			Text:       "#000000",
			AccentGrey: "#999999",
			Red:        "#d01c11",
			Green:      "#0b7a08",
			Blue:       "#0046d6",
			Magenta:    "#a626a4",
			Yellow:     "#986801",
			Cyan:       "#0184bc",
			Highlight:  "#fffc42",
		},
		Dark: palette.BaseColours{
			Background: "#0d0d0d",
			Text:       "#ffffff",
			AccentGrey: "#777777",
			Red:        "#ff4a4a",
			Green:      "#6ac95a",
			Blue:       "#4d8cff",
			Magenta:    "#ff79c6",
			Yellow:     "#f1fa8c",
			Cyan:       "#8be9fd",
			Highlight:  "#fffc4244",
		},
	}
}

func paletteValues(c palette.BaseColours) []string {
	var values []string
	for _, slot := range palette.Slots {
		v, _ := c.Get(slot)
		values = append(values, v)
	}
	return values
}

func TestRenderTextMate_RoundTrip(t *testing.T) {
	p := testPalette()
	meta := MetaFor(config.DefaultConfig(), p, config.VariantDark)

	data, err := RenderTextMate(palette.Enrich(p.Dark), meta)
	require.NoError(t, err)

	var doc TextMateTheme
	format, err := plist.Unmarshal(data, &doc)
	require.NoError(t, err)
	assert.Equal(t, plist.OpenStepFormat, format)

	assert.Equal(t, "alexwlchan (Dark)", doc.Name)
	assert.Equal(t, "Alex Chan", doc.Author)
	assert.Equal(t, "theme.alexwlchan.dark", doc.SemanticClass)
	assert.Equal(t, "Generated from palette 1a2b3c4-5d6e7f8", doc.Comment)

	require.NotEmpty(t, doc.Settings)
	global := doc.Settings[0]
	assert.Empty(t, global.Scope)
	assert.Equal(t, "#0d0d0d", global.Settings["background"])
	assert.Equal(t, "#ffffff", global.Settings["foreground"])
	assert.Equal(t, "#fffc4244", global.Settings["selection"])
	assert.Equal(t, "#777777", global.Settings["invisibles"])

	scopes := make(map[string]string)
	for _, s := range doc.Settings[1:] {
		scopes[s.Scope] = s.Settings["foreground"]
	}
	assert.Equal(t, "#ff4a4a", scopes["comment"])
	assert.Equal(t, "#ff79c6", scopes["constant"])
	assert.Equal(t, "#4d8cff", scopes["entity.name"])
	assert.Equal(t, "#6ac95a", scopes["string"])
	assert.Equal(t, "#ffffff", scopes["source - source source"])

	// Every colour in the theme comes from the palette
	allowed := paletteValues(p.Dark)
	for _, s := range doc.Settings {
		for key, v := range s.Settings {
			assert.Contains(t, allowed, v, "%s %s", s.Scope, key)
		}
	}
}

func TestRenderTextMate_EmptyMetadataOmitted(t *testing.T) {
	data, err := RenderTextMate(palette.Enrich(testPalette().Light), Meta{Name: "plain"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "author")
	assert.NotContains(t, string(data), "semanticClass")
}

func TestRenderITerm_RoundTrip(t *testing.T) {
	p := testPalette()

	data, err := RenderITerm(p)
	require.NoError(t, err)

	var preset ITermPreset
	format, err := plist.Unmarshal(data, &preset)
	require.NoError(t, err)
	assert.Equal(t, plist.BinaryFormat, format)

	assert.Len(t, preset, 2*27)

	bg := preset["Background Color (Dark)"]
	assert.Equal(t, "#0d0d0d", bg.Hex())
	assert.Equal(t, "sRGB", bg.ColorSpace)
	assert.Equal(t, 1.0, bg.Alpha)
	assert.InDelta(t, float64(0x0d)/255, bg.Red, 1e-12)

	assert.Equal(t, "#fffffa", preset["Background Color (Light)"].Hex())
	assert.Equal(t, "#d01c11", preset["Ansi 1 Color (Light)"].Hex())
	assert.Equal(t, "#8be9fd", preset["Ansi 6 Color (Dark)"].Hex())
	assert.Equal(t, "#777777", preset["Ansi 8 Color (Dark)"].Hex())

	// Alpha survives the round trip
	sel := preset["Selection Color (Dark)"]
	assert.InDelta(t, float64(0x44)/255, sel.Alpha, 1e-12)
	assert.Equal(t, "#fffc4244", sel.Hex())

	light := paletteValues(p.Light)
	dark := paletteValues(p.Dark)
	for key, c := range preset {
		if strings.HasSuffix(key, "(Dark)") {
			assert.Contains(t, dark, c.Hex(), key)
		} else {
			assert.Contains(t, light, c.Hex(), key)
		}
	}
}

func TestNewITermColour(t *testing.T) {
	c, err := NewITermColour("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Red)
	assert.InDelta(t, 128.0/255, c.Green, 1e-12)
	assert.Equal(t, 0.0, c.Blue)
	assert.Equal(t, 1.0, c.Alpha)

	_, err = NewITermColour("orange")
	assert.Error(t, err)
}

func TestRender_IsDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()

	first, err := Render(cfg, testPalette())
	require.NoError(t, err)
	second, err := Render(cfg, testPalette())
	require.NoError(t, err)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].FileName, second[i].FileName)
		assert.Equal(t, first[i].Data, second[i].Data, first[i].FileName)
	}
}

func TestRender_FileNames(t *testing.T) {
	docs, err := Render(config.DefaultConfig(), testPalette())
	require.NoError(t, err)

	var names []string
	for _, d := range docs {
		names = append(names, d.FileName)
	}
	assert.Equal(t, []string{
		"TextMate_light.tmTheme",
		"TextMate_dark.tmTheme",
		"alexwlchan.itermcolors",
	}, names)
	assert.Equal(t, "light", docs[0].Variant)
	assert.Empty(t, docs[2].Variant)
}

func TestRender_InvalidColour(t *testing.T) {
	p := testPalette()
	p.Dark.Cyan = "cyan"

	_, err := Render(config.DefaultConfig(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ansi 6 Color (Dark)")
}

func TestWriter_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	docs := []Document{
		{FileName: "a.tmTheme", Data: []byte("a")},
		{FileName: "b.itermcolors", Data: []byte("b")},
	}

	paths, err := NewWriter(dir, nil).WriteAll(docs)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.tmTheme"), filepath.Join(dir, "b.itermcolors")}, paths)

	for i, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, docs[i].Data, data)
	}
}

func TestWriter_KeepsEarlierFilesOnFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the second file should go makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.itermcolors"), 0755))

	paths, err := NewWriter(dir, nil).WriteAll([]Document{
		{FileName: "a.tmTheme", Data: []byte("a")},
		{FileName: "b.itermcolors", Data: []byte("b")},
	})
	require.Error(t, err)
	assert.Len(t, paths, 1)

	_, err = os.Stat(filepath.Join(dir, "a.tmTheme"))
	assert.NoError(t, err)
}
