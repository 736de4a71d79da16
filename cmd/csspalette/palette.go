package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/csspalette/internal/adapter/output"
	"github.com/jmylchreest/csspalette/internal/css"
	"github.com/jmylchreest/csspalette/internal/palette"
)

var paletteOpts struct {
	format   string
	variant  string
	template string
	tokens   string
	saved    bool
	noColour bool
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the palette extracted from the vendored stylesheets",
	Long: `Show the light and dark palettes without writing any files.

Examples:
  # Show both variants with colour swatches
  csspalette palette

  # Dark variant as JSON
  csspalette palette --variant dark --format json

  # Show the palette.json written by the last generate
  csspalette palette --saved

  # List every colour custom property in a stylesheet
  csspalette palette --tokens css/syntax_highlighting.3f9a1c2.css

  # Custom template, run once per slot
  csspalette palette --template '{{.Slot}}: {{rgb .Dark}}'`,
	Args: cobra.NoArgs,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().StringVarP(&paletteOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	paletteCmd.Flags().StringVar(&paletteOpts.variant, "variant", "",
		"Only show one variant (light, dark)")
	paletteCmd.Flags().StringVar(&paletteOpts.template, "template", "",
		"Custom Go template for plain output, run once per slot")
	paletteCmd.Flags().StringVar(&paletteOpts.tokens, "tokens", "",
		"List the colour custom properties of a stylesheet instead")
	paletteCmd.Flags().BoolVar(&paletteOpts.saved, "saved", false,
		"Show the saved palette.json instead of extracting")
	paletteCmd.Flags().BoolVar(&paletteOpts.noColour, "no-color", false,
		"Do not render colour swatches")
}

func runPalette(cmd *cobra.Command, args []string) error {
	opts := output.DefaultFormatterOptions()
	opts.Variant = paletteOpts.variant
	opts.Template = paletteOpts.template
	opts.Swatches = !paletteOpts.noColour

	formatter, err := output.NewFormatter(output.FormatType(paletteOpts.format), opts)
	if err != nil {
		return err
	}

	if paletteOpts.tokens != "" {
		data, err := os.ReadFile(paletteOpts.tokens)
		if err != nil {
			return err
		}
		return formatter.FormatTokens(os.Stdout, css.Tokens(string(data)))
	}

	var p *palette.Palette
	if paletteOpts.saved {
		p, err = palette.Load(cfg.Paths.PaletteFile)
	} else {
		p, err = buildPalette()
	}
	if err != nil {
		return fmt.Errorf("failed to load palette: %w", err)
	}

	return formatter.Format(os.Stdout, p)
}
