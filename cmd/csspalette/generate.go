package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/csspalette/internal/fetch"
	"github.com/jmylchreest/csspalette/internal/palette"
	"github.com/jmylchreest/csspalette/internal/theme"
)

var generateOpts struct {
	skipPaletteJSON bool
	outputDir       string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate theme files from the vendored stylesheets",
	Long: `Extract the light and dark palettes from the vendored stylesheets and
write the theme files.

Outputs:
  palette.json              the extracted palette
  out/TextMate_light.tmTheme
  out/TextMate_dark.tmTheme
  out/<name>.itermcolors    both variants in one iTerm2 preset

Generating twice from the same vendored files produces identical output.
Run "csspalette fetch" first.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&generateOpts.skipPaletteJSON, "skip-palette-json", false,
		"Do not write palette.json")
	generateCmd.Flags().StringVarP(&generateOpts.outputDir, "output", "o", "",
		"Directory for theme files (default: paths.output_dir from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := buildPalette()
	if err != nil {
		return err
	}

	if !generateOpts.skipPaletteJSON {
		if err := palette.Save(cfg.Paths.PaletteFile, p); err != nil {
			return fmt.Errorf("failed to save palette: %w", err)
		}
		fmt.Printf("wrote %s (palette %s)\n", cfg.Paths.PaletteFile, p.ID)
	}

	docs, err := theme.Render(cfg, p)
	if err != nil {
		return err
	}

	outputDir := cfg.Paths.OutputDir
	if generateOpts.outputDir != "" {
		outputDir = generateOpts.outputDir
	}

	paths, err := theme.NewWriter(outputDir, logger).WriteAll(docs)
	for _, path := range paths {
		fmt.Printf("wrote %s\n", path)
	}
	if err != nil {
		return err
	}

	fmt.Println("Import the themes into TextMate and iTerm2 to use them.")
	return nil
}

// buildPalette extracts the palette from the vendored copy of every
// configured source file.
func buildPalette() (*palette.Palette, error) {
	vendorer := fetch.NewVendorer(cfg.Paths.VendorDir, logger)

	files := make([]palette.File, 0, len(cfg.Source.Files))
	for _, source := range cfg.Source.Files {
		vf, src, err := vendorer.Read(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w (run \"csspalette fetch\" first)", source, err)
		}
		logger.Debug("read vendored file", "source", source, "path", vf.Path, "version", vf.Version)
		files = append(files, palette.File{Source: source, Version: vf.Version, CSS: src})
	}

	return palette.Build(files, cfg)
}
