// Package config handles loading configuration from .mdx2txt.yaml or
// .mdx2txt.toml files and from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nirzaf/mdx2txt/internal/output"
	"github.com/nirzaf/mdx2txt/internal/render"
	"github.com/nirzaf/mdx2txt/internal/scanner"
)

// Config file names, in lookup order.
const (
	DefaultConfigFileName = ".mdx2txt.yaml"
	AltYAMLConfigFileName = ".mdx2txt.yml"
	TOMLConfigFileName    = ".mdx2txt.toml"
)

// Environment variables read by ApplyEnv.
const (
	EnvSource    = "MDX2TXT_SOURCE"
	EnvTarget    = "MDX2TXT_TARGET"
	EnvExtension = "MDX2TXT_EXT"
)

// DefaultDotEnvFile is the dotenv file loaded from the working directory.
const DefaultDotEnvFile = ".env"

// ErrInvalidExtension is returned for an unusable source suffix.
var ErrInvalidExtension = errors.New("invalid extension")

// fileNames lists the config file names searched in each directory.
var fileNames = []string{DefaultConfigFileName, AltYAMLConfigFileName, TOMLConfigFileName}

// Config represents the complete configuration structure.
type Config struct {
	// Source is the directory holding the MDX files.
	Source string `yaml:"source" toml:"source"`

	// Target is the directory that receives the text files.
	Target string `yaml:"target" toml:"target"`

	// Extension is the case-sensitive suffix of files to convert.
	// Example: ".mdx"
	Extension string `yaml:"extension" toml:"extension"`

	// Include and Exclude are glob patterns matched against file names.
	// Example: "draft-*"
	Include []string `yaml:"include" toml:"include"`
	Exclude []string `yaml:"exclude" toml:"exclude"`

	StripFrontMatter bool `yaml:"strip_frontmatter" toml:"strip_frontmatter"`
	DecodeEntities   bool `yaml:"decode_entities" toml:"decode_entities"`

	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
	Output   OutputConfig   `yaml:"output" toml:"output"`

	// path is the file this config was read from, empty if none.
	path string
}

// MarkdownConfig configures the Markdown engine.
type MarkdownConfig struct {
	// Extensions are goldmark extension names, e.g. "table", "strikethrough".
	Extensions []string `yaml:"extensions" toml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps" toml:"hard_wraps"`
}

// OutputConfig configures reporting.
type OutputConfig struct {
	// Format is the report format written to stdout.
	Format      string `yaml:"format" toml:"format"`
	ShowStats   bool   `yaml:"show_stats" toml:"show_stats"`
	FailOnError bool   `yaml:"fail_on_error" toml:"fail_on_error"`
}

// Load reads configuration from the first config file found in the current
// directory. Returns an empty config if none exists.
func Load() (*Config, error) {
	for _, name := range fileNames {
		if _, err := os.Stat(name); err == nil {
			return LoadFrom(name)
		}
	}
	return &Config{}, nil
}

// LoadFrom reads configuration from a specific path. The format is chosen by
// extension: ".toml" is TOML, anything else is YAML.
// Returns an empty config if the file doesn't exist (not an error).
// Returns an error only if the file exists but cannot be parsed.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		// File not found is not an error - just return empty config
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.path = path
	return cfg, nil
}

// FindAndLoad searches for a config file starting from the given directory
// and walking up to parent directories until it finds one or reaches root.
// This allows project-specific configs to be found from subdirectories.
func FindAndLoad(startDir string) (*Config, error) {
	dir := startDir

	for {
		for _, name := range fileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return LoadFrom(configPath)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return &Config{}, nil
		}
		dir = parent
	}
}

// LoadDotEnv loads variables from a dotenv file without overriding ones that
// are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides Source, Target and Extension with non-empty values
// returned by lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSource); ok && v != "" {
		c.Source = v
	}
	if v, ok := lookup(EnvTarget); ok && v != "" {
		c.Target = v
	}
	if v, ok := lookup(EnvExtension); ok && v != "" {
		c.Extension = v
	}
}

// Path returns the file the config was loaded from, or "" if none.
func (c *Config) Path() string {
	return c.path
}

// IsEmpty returns true if nothing is configured.
func (c *Config) IsEmpty() bool {
	return c.Source == "" &&
		c.Target == "" &&
		c.Extension == "" &&
		len(c.Include) == 0 &&
		len(c.Exclude) == 0 &&
		!c.StripFrontMatter &&
		!c.DecodeEntities &&
		len(c.Markdown.Extensions) == 0 &&
		!c.Markdown.HardWraps &&
		c.Output == OutputConfig{}
}

// Validate checks values that would otherwise fail later in the run.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Extension != "" && (strings.TrimSpace(c.Extension) != c.Extension ||
		strings.ContainsAny(c.Extension, `/\`)) {
		errs = append(errs, fmt.Errorf("%w %q: must not contain spaces or path separators",
			ErrInvalidExtension, c.Extension))
	}

	if _, err := scanner.CompilePatterns(c.Include); err != nil {
		errs = append(errs, fmt.Errorf("include: %w", err))
	}
	if _, err := scanner.CompilePatterns(c.Exclude); err != nil {
		errs = append(errs, fmt.Errorf("exclude: %w", err))
	}

	if err := render.ValidateExtensions(c.Markdown.Extensions); err != nil {
		errs = append(errs, fmt.Errorf("markdown: %w", err))
	}

	if c.Output.Format != "" && !output.IsValidFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output: invalid format %q; valid formats: %s",
			c.Output.Format, strings.Join(output.ValidFormats(), ", ")))
	}

	return errors.Join(errs...)
}
