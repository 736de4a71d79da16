// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultSourceKind     = "git"
	DefaultRepo           = "~/repos/alexwlchan.net"
	DefaultRepoDir        = "src/_scss"
	DefaultVendorDir      = "css"
	DefaultPaletteFile    = "palette.json"
	DefaultOutputDir      = "out"
	DefaultThemeName      = "alexwlchan"
	DefaultDarkMediaQuery = "(prefers-color-scheme: dark)"
	DefaultFetchTimeout   = Duration(30 * time.Second)
)

// Variant names.
const (
	VariantLight = "light"
	VariantDark  = "dark"
)

// Config represents the csspalette configuration.
type Config struct {
	Source    SourceConfig     `toml:"source"`
	Paths     PathsConfig      `toml:"paths"`
	Theme     ThemeConfig      `toml:"theme"`
	Slots     []SlotConfig     `toml:"slots"`
	Overrides []OverrideConfig `toml:"overrides"`
}

// SourceConfig describes where the CSS files are fetched from.
type SourceConfig struct {
	Kind    string   `toml:"kind"`     // git, http
	Repo    string   `toml:"repo"`     // Local checkout (git)
	Dir     string   `toml:"dir"`      // Directory inside the repo holding the stylesheets
	BaseURL string   `toml:"base_url"` // Raw file base URL (http)
	Files   []string `toml:"files"`    // Paths relative to Dir / BaseURL
	Timeout Duration `toml:"timeout"`  // e.g. "30s"
}

// PathsConfig holds local file locations, relative to the working directory.
type PathsConfig struct {
	VendorDir   string `toml:"vendor_dir"`
	PaletteFile string `toml:"palette_file"`
	OutputDir   string `toml:"output_dir"`
}

// ThemeConfig holds the metadata written into generated themes.
type ThemeConfig struct {
	Name           string `toml:"name"`
	Author         string `toml:"author"`
	SemanticClass  string `toml:"semantic_class"` // Prefix; the variant is appended
	DarkMediaQuery string `toml:"dark_media_query"`
}

// SlotConfig maps a palette slot to the CSS variables it is read from.
type SlotConfig struct {
	Slot        string `toml:"slot"`
	File        string `toml:"file"` // One of Source.Files
	Light       string `toml:"light"`
	Dark        string `toml:"dark"`
	DarkInMedia bool   `toml:"dark_in_media"` // Read Dark from the dark media block
}

// OverrideConfig replaces an extracted colour, but only if it still has the
// expected value.
type OverrideConfig struct {
	Variant string `toml:"variant"`
	Slot    string `toml:"slot"`
	Expect  string `toml:"expect"`
	Value   string `toml:"value"`
}

const (
	variablesFile = "variables.scss"
	syntaxFile    = "components/syntax_highlighting.css"
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:    DefaultSourceKind,
			Repo:    DefaultRepo,
			Dir:     DefaultRepoDir,
			Files:   []string{variablesFile, syntaxFile},
			Timeout: DefaultFetchTimeout,
		},
		Paths: PathsConfig{
			VendorDir:   DefaultVendorDir,
			PaletteFile: DefaultPaletteFile,
			OutputDir:   DefaultOutputDir,
		},
		Theme: ThemeConfig{
			Name:           DefaultThemeName,
			Author:         "Alex Chan",
			SemanticClass:  "theme." + DefaultThemeName,
			DarkMediaQuery: DefaultDarkMediaQuery,
		},
		Slots:     DefaultSlots(),
		Overrides: DefaultOverrides(),
	}
}

// DefaultSlots returns the slot mapping for the alexwlchan.net stylesheets.
func DefaultSlots() []SlotConfig {
	return []SlotConfig{
		{Slot: "background", File: variablesFile, Light: "--background-color-light", Dark: "--background-color-dark"},
		{Slot: "text", File: variablesFile, Light: "--body-text-light", Dark: "--body-text-dark"},
		{Slot: "accent_grey", File: variablesFile, Light: "--accent-grey-light", Dark: "--accent-grey-dark"},
		{Slot: "red", File: variablesFile, Light: "--default-primary-color-light", Dark: "--default-primary-color-dark"},
		{Slot: "green", File: syntaxFile, Light: "--green", Dark: "--green", DarkInMedia: true},
		{Slot: "blue", File: syntaxFile, Light: "--blue", Dark: "--blue", DarkInMedia: true},
		{Slot: "magenta", File: syntaxFile, Light: "--magenta", Dark: "--magenta", DarkInMedia: true},
		{Slot: "yellow", File: syntaxFile, Light: "--yellow", Dark: "--yellow", DarkInMedia: true},
		{Slot: "cyan", File: syntaxFile, Light: "--cyan", Dark: "--cyan", DarkInMedia: true},
		{Slot: "highlight", File: syntaxFile, Light: "--highlight", Dark: "--highlight", DarkInMedia: true},
	}
}

// DefaultOverrides mutes the dark <mark> highlight, which is too strong for
// an editor selection.
func DefaultOverrides() []OverrideConfig {
	return []OverrideConfig{
		{Variant: VariantDark, Slot: "highlight", Expect: "#fffc42cc", Value: "#fffc4244"},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "csspalette", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	// Lists replace the defaults rather than merging with them.
	cfg.Source.Files = nil
	cfg.Slots = nil
	cfg.Overrides = nil

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	if len(cfg.Source.Files) == 0 {
		cfg.Source.Files = defaults.Source.Files
	}
	if len(cfg.Slots) == 0 {
		cfg.Slots = defaults.Slots
	}
	if cfg.Overrides == nil {
		cfg.Overrides = defaults.Overrides
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that slot mappings and overrides refer to known files
// and variants.
func (c *Config) Validate() error {
	files := make(map[string]bool, len(c.Source.Files))
	// Vendored copies are named after the base name only
	bases := make(map[string]string, len(c.Source.Files))
	for _, f := range c.Source.Files {
		base := filepath.Base(filepath.FromSlash(f))
		if other, ok := bases[base]; ok {
			return fmt.Errorf("source files %q and %q share the name %q", other, f, base)
		}
		bases[base] = f
		files[f] = true
	}

	seen := make(map[string]bool, len(c.Slots))
	for _, s := range c.Slots {
		if s.Slot == "" {
			return errors.New("slot without a name")
		}
		if seen[s.Slot] {
			return fmt.Errorf("slot %q mapped twice", s.Slot)
		}
		seen[s.Slot] = true
		if !files[s.File] {
			return fmt.Errorf("slot %q reads %q, which is not a source file", s.Slot, s.File)
		}
		if s.Light == "" || s.Dark == "" {
			return fmt.Errorf("slot %q needs both light and dark variables", s.Slot)
		}
	}

	if c.Source.Timeout < 0 {
		return fmt.Errorf("invalid source timeout %s", c.Source.Timeout.Duration())
	}

	for _, o := range c.Overrides {
		if o.Variant != VariantLight && o.Variant != VariantDark {
			return fmt.Errorf("override for %q has unknown variant %q", o.Slot, o.Variant)
		}
		if !seen[o.Slot] {
			return fmt.Errorf("override for unknown slot %q", o.Slot)
		}
	}

	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// RepoPath returns the source repository with a leading ~ expanded.
func (s SourceConfig) RepoPath() string {
	return ExpandHome(s.Repo)
}

// FetchTimeout returns the fetch timeout, falling back to the default.
func (c *Config) FetchTimeout() time.Duration {
	if c.Source.Timeout > 0 {
		return c.Source.Timeout.Duration()
	}
	return DefaultFetchTimeout.Duration()
}

// SemanticClass returns the semanticClass for a theme variant.
func (c *Config) SemanticClass(variant string) string {
	if c.Theme.SemanticClass == "" {
		return ""
	}
	return c.Theme.SemanticClass + "." + variant
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
