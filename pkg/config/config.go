package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/deckindex/pkg/descriptor"
)

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = "deckindex.yaml"

type Config struct {
	// Layout
	PresentationsDir string `yaml:"presentations_dir"`
	OutputFile       string `yaml:"output_file"`
	TemplateFile     string `yaml:"template_file"`

	// Descriptor and links
	Descriptor       string `yaml:"descriptor"`
	EntryPage        string `yaml:"entry_page"`
	DefaultThumbnail string `yaml:"default_thumbnail"`
	LinkPrefix       string `yaml:"link_prefix"`

	// Rendering
	Placeholder       string `yaml:"placeholder"`
	FallbackImage     string `yaml:"fallback_image"`
	SlidesPlaceholder string `yaml:"slides_placeholder"`
	EscapeHTML        bool   `yaml:"escape_html"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		PresentationsDir:  "presentations",
		OutputFile:        "index.html",
		TemplateFile:      filepath.Join("templates", "index-template.html"),
		Descriptor:        descriptor.DefaultName,
		EntryPage:         "index.html",
		DefaultThumbnail:  "thumbnail.png",
		LinkPrefix:        "presentations",
		Placeholder:       "{{PRESENTATIONS}}",
		FallbackImage:     "https://via.placeholder.com/800x600?text=PPT",
		SlidesPlaceholder: "?",
		EscapeHTML:        false,
		WatchDebounceMS:   500,
		ColorTheme:        "auto",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills in values a config file left empty
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.PresentationsDir == "" {
		c.PresentationsDir = def.PresentationsDir
	}
	if c.OutputFile == "" {
		c.OutputFile = def.OutputFile
	}
	if c.TemplateFile == "" {
		c.TemplateFile = def.TemplateFile
	}
	if c.Descriptor == "" {
		c.Descriptor = def.Descriptor
	}
	if c.EntryPage == "" {
		c.EntryPage = def.EntryPage
	}
	if c.DefaultThumbnail == "" {
		c.DefaultThumbnail = def.DefaultThumbnail
	}
	if c.Placeholder == "" {
		c.Placeholder = def.Placeholder
	}
	if c.SlidesPlaceholder == "" {
		c.SlidesPlaceholder = def.SlidesPlaceholder
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = def.WatchDebounceMS
	}
	if !isValidTheme(c.ColorTheme) {
		c.ColorTheme = def.ColorTheme
	}
	// LinkPrefix and FallbackImage may be deliberately empty
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValidTheme(theme string) bool {
	switch theme {
	case "auto", "dark", "light":
		return true
	}
	return false
}
