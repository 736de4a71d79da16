package palette

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/csspalette/internal/config"
	"github.com/jmylchreest/csspalette/internal/css"
)

// File is the text of one vendored stylesheet.
type File struct {
	Source  string // Configured source path, e.g. "variables.scss"
	Version string
	CSS     string
}

// OverrideError reports an override whose expected colour no longer
// matches the stylesheet.
type OverrideError struct {
	Variant string
	Slot    string
	Expect  string
	Got     string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("unrecognised %s %s colour %s (override expects %s)", e.Variant, e.Slot, e.Got, e.Expect)
}

// Build extracts a palette from the vendored files using the configured
// slot mapping, then applies the configured overrides.
// The palette id is the file versions joined with "-", in file order.
func Build(files []File, cfg *config.Config) (*Palette, error) {
	byName := make(map[string]*File, len(files))
	versions := make([]string, 0, len(files))
	for i := range files {
		byName[files[i].Source] = &files[i]
		versions = append(versions, files[i].Version)
	}

	p := &Palette{ID: strings.Join(versions, "-")}
	darkBlocks := make(map[string]string)

	for _, slot := range cfg.Slots {
		f, ok := byName[slot.File]
		if !ok {
			return nil, fmt.Errorf("slot %s: no vendored copy of %s", slot.Slot, slot.File)
		}

		light, err := css.Variable(f.CSS, slot.Light)
		if err != nil {
			return nil, fmt.Errorf("light %s from %s: %w", slot.Slot, slot.File, err)
		}
		if err := p.Light.Set(slot.Slot, light); err != nil {
			return nil, err
		}

		darkSrc := f.CSS
		if slot.DarkInMedia {
			block, ok := darkBlocks[slot.File]
			if !ok {
				block, err = css.MediaBlock(f.CSS, cfg.Theme.DarkMediaQuery)
				if err != nil {
					return nil, fmt.Errorf("dark %s from %s: %w", slot.Slot, slot.File, err)
				}
				darkBlocks[slot.File] = block
			}
			darkSrc = block
		}

		dark, err := css.Variable(darkSrc, slot.Dark)
		if err != nil {
			return nil, fmt.Errorf("dark %s from %s: %w", slot.Slot, slot.File, err)
		}
		if err := p.Dark.Set(slot.Slot, dark); err != nil {
			return nil, err
		}
	}

	if err := ApplyOverrides(p, cfg.Overrides); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// ApplyOverrides replaces slot colours. Each override only applies when the
// current colour equals its expected value; anything else is an error, so
// upstream changes are noticed rather than silently masked.
func ApplyOverrides(p *Palette, overrides []config.OverrideConfig) error {
	for _, o := range overrides {
		colours, err := p.Variant(o.Variant)
		if err != nil {
			return err
		}

		expect, err := css.ParseColour(o.Expect)
		if err != nil {
			return fmt.Errorf("override %s %s: expect: %w", o.Variant, o.Slot, err)
		}
		value, err := css.ParseColour(o.Value)
		if err != nil {
			return fmt.Errorf("override %s %s: value: %w", o.Variant, o.Slot, err)
		}

		got, err := colours.Get(o.Slot)
		if err != nil {
			return err
		}
		if got != expect.String() {
			return &OverrideError{Variant: o.Variant, Slot: o.Slot, Expect: expect.String(), Got: got}
		}

		if err := colours.Set(o.Slot, value.String()); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that every slot of both variants holds a valid colour.
func (p *Palette) Validate() error {
	for _, variant := range []string{config.VariantLight, config.VariantDark} {
		colours, _ := p.Variant(variant)
		if missing := colours.Missing(); len(missing) > 0 {
			return fmt.Errorf("%s palette has no colour for %s", variant, strings.Join(missing, ", "))
		}
		for _, slot := range Slots {
			v, _ := colours.Get(slot)
			if _, err := css.ParseColour(v); err != nil {
				return fmt.Errorf("%s %s: %w", variant, slot, err)
			}
		}
	}
	return nil
}
