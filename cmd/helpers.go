package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nirzaf/mdx2txt/internal/config"
	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/logger"
	"github.com/nirzaf/mdx2txt/internal/render"
)

// Built-in defaults, used when neither flags, environment nor config set a value.
const (
	DefaultSource = "."
	DefaultTarget = "txt"
)

// conversionFlags holds the flags shared by every command that converts files.
type conversionFlags struct {
	Extension        string
	Include          []string
	Exclude          []string
	StripFrontMatter bool
	DecodeEntities   bool
	MarkdownExts     []string
	HardWraps        bool

	ConfigFile string
	NoConfig   bool

	Verbose bool
	Quiet   bool
	LogFile string
}

// convFlags is bound by addConversionFlags. Only one command runs per process.
var convFlags conversionFlags

// addConversionFlags registers the shared conversion flags on cmd.
func addConversionFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVar(&convFlags.Extension, "ext", "",
		"Case-sensitive suffix of files to convert (default \".mdx\")")
	f.StringSliceVar(&convFlags.Include, "include", nil,
		"Glob patterns; only matching file names are converted (can be repeated)")
	f.StringSliceVar(&convFlags.Exclude, "exclude", nil,
		"Glob patterns; matching file names are skipped (can be repeated)")
	f.BoolVar(&convFlags.StripFrontMatter, "strip-frontmatter", false,
		"Remove a leading YAML/TOML/JSON front matter block before rendering")
	f.BoolVar(&convFlags.DecodeEntities, "decode-entities", false,
		"Decode HTML entities (&amp; -> &) in the output text")
	f.StringSliceVar(&convFlags.MarkdownExts, "markdown-ext", nil,
		"Goldmark extensions to enable (comma-separated): "+strings.Join(render.ExtensionNames(), ", "))
	f.BoolVar(&convFlags.HardWraps, "hard-wraps", false,
		"Render soft line breaks as <br>")

	f.StringVar(&convFlags.ConfigFile, "config", "",
		"Config file to use instead of searching for .mdx2txt.yaml/.mdx2txt.toml")
	f.BoolVar(&convFlags.NoConfig, "no-config", false,
		"Skip loading the config file")

	f.BoolVarP(&convFlags.Verbose, "verbose", "v", false, "Log per-file diagnostics to stderr")
	f.BoolVarP(&convFlags.Quiet, "quiet", "q", false, "Only log errors")
	f.StringVar(&convFlags.LogFile, "log-file", "", "Append diagnostics to this file instead of stderr")

	cmd.MarkFlagsMutuallyExclusive("config", "no-config")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// LoadedConfig wraps a loaded configuration and provides helper methods
// for getting effective values that respect CLI overrides.
type LoadedConfig struct {
	cfg *config.Config
}

// LoadConfig loads the configuration file unless noConfig is true, then
// applies environment overrides from lookupEnv.
// An explicit path must exist. Without one, the file is searched for from the
// working directory upwards.
// Returns an error if the config file exists but is invalid.
func LoadConfig(path string, noConfig bool, lookupEnv func(string) (string, bool)) (*LoadedConfig, error) {
	cfg, err := loadConfigFile(path, noConfig)
	if err != nil {
		return nil, err
	}

	if lookupEnv != nil {
		cfg.ApplyEnv(lookupEnv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &LoadedConfig{cfg: cfg}, nil
}

func loadConfigFile(path string, noConfig bool) (*config.Config, error) {
	if noConfig {
		return &config.Config{}, nil
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg, err := config.FindAndLoad(wd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Config returns the underlying config for direct access.
func (lc *LoadedConfig) Config() *config.Config {
	return lc.cfg
}

// Path returns the config file in use, or "" if none.
func (lc *LoadedConfig) Path() string {
	return lc.cfg.Path()
}

// GetSource returns the effective source directory.
// The first positional argument overrides env and config.
func (lc *LoadedConfig) GetSource(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if lc.cfg.Source != "" {
		return lc.cfg.Source
	}
	return DefaultSource
}

// GetTarget returns the effective target directory.
// The second positional argument overrides env and config.
func (lc *LoadedConfig) GetTarget(args []string) string {
	if len(args) > 1 && args[1] != "" {
		return args[1]
	}
	if lc.cfg.Target != "" {
		return lc.cfg.Target
	}
	return DefaultTarget
}

// GetExtension returns the effective source suffix.
// CLI overrides env and config if set.
func (lc *LoadedConfig) GetExtension(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if lc.cfg.Extension != "" {
		return lc.cfg.Extension
	}
	return converter.DefaultExtension
}

// GetInclude returns config include patterns followed by CLI ones.
// CLI patterns are merged additively.
func (lc *LoadedConfig) GetInclude(cliValue []string) []string {
	return mergePatterns(lc.cfg.Include, cliValue)
}

// GetExclude returns config exclude patterns followed by CLI ones.
// CLI patterns are merged additively.
func (lc *LoadedConfig) GetExclude(cliValue []string) []string {
	return mergePatterns(lc.cfg.Exclude, cliValue)
}

func mergePatterns(fromConfig, fromCLI []string) []string {
	if len(fromConfig) == 0 && len(fromCLI) == 0 {
		return nil
	}
	merged := make([]string, 0, len(fromConfig)+len(fromCLI))
	merged = append(merged, fromConfig...)
	return append(merged, fromCLI...)
}

// GetStripFrontMatter returns the effective front-matter setting.
// CLI true overrides config.
func (lc *LoadedConfig) GetStripFrontMatter(cliValue bool) bool {
	if cliValue {
		return true
	}
	return lc.cfg.StripFrontMatter
}

// GetDecodeEntities returns the effective entity-decoding setting.
// CLI true overrides config.
func (lc *LoadedConfig) GetDecodeEntities(cliValue bool) bool {
	if cliValue {
		return true
	}
	return lc.cfg.DecodeEntities
}

// GetMarkdownExtensions returns the effective goldmark extensions.
// CLI overrides config if set.
func (lc *LoadedConfig) GetMarkdownExtensions(cliValue []string) []string {
	if len(cliValue) > 0 {
		return cliValue
	}
	return lc.cfg.Markdown.Extensions
}

// GetHardWraps returns the effective hard-wraps setting.
// CLI true overrides config.
func (lc *LoadedConfig) GetHardWraps(cliValue bool) bool {
	if cliValue {
		return true
	}
	return lc.cfg.Markdown.HardWraps
}

// GetOutputFormat returns the effective output format.
// CLI overrides config if set.
func (lc *LoadedConfig) GetOutputFormat(cliValue string) string {
	if cliValue != "" {
		return cliValue // CLI explicitly set
	}
	return lc.cfg.Output.Format
}

// GetShowStats returns the effective showStats setting.
// CLI true overrides config.
func (lc *LoadedConfig) GetShowStats(cliValue bool) bool {
	if cliValue {
		return true
	}
	return lc.cfg.Output.ShowStats
}

// GetFailOnError returns the effective fail-on-error setting.
// CLI true overrides config.
func (lc *LoadedConfig) GetFailOnError(cliValue bool) bool {
	if cliValue {
		return true
	}
	return lc.cfg.Output.FailOnError
}

// BuildConverterOptions creates converter.Options from config and CLI values.
func (lc *LoadedConfig) BuildConverterOptions(f conversionFlags, log *logger.Logger) converter.Options {
	return converter.DefaultOptions().
		WithExtension(lc.GetExtension(f.Extension)).
		WithInclude(lc.GetInclude(f.Include)).
		WithExclude(lc.GetExclude(f.Exclude)).
		WithStripFrontMatter(lc.GetStripFrontMatter(f.StripFrontMatter)).
		WithDecodeEntities(lc.GetDecodeEntities(f.DecodeEntities)).
		WithMarkdown(render.Options{
			Extensions: lc.GetMarkdownExtensions(f.MarkdownExts),
			HardWraps:  lc.GetHardWraps(f.HardWraps),
		}).
		WithLogger(log)
}

// newLogger builds the diagnostics logger for f: stderr by default, or the
// file named by --log-file. The returned cleanup func is never nil.
func newLogger(f conversionFlags) (*logger.Logger, func(), error) {
	level := logger.LevelFor(f.Verbose, f.Quiet)
	if f.LogFile == "" {
		return logger.NewWithLevel(os.Stderr, level), func() {}, nil
	}
	return logger.NewFileLogger(f.LogFile, level)
}

// setupConversion resolves config, logging and the converter for a command.
// The caller must call the returned cleanup func.
func setupConversion() (*LoadedConfig, *converter.Converter, func(), error) {
	if err := config.LoadDotEnv(config.DefaultDotEnvFile); err != nil {
		return nil, nil, nil, err
	}

	lc, err := LoadConfig(convFlags.ConfigFile, convFlags.NoConfig, os.LookupEnv)
	if err != nil {
		return nil, nil, nil, err
	}

	log, cleanup, err := newLogger(convFlags)
	if err != nil {
		return nil, nil, nil, err
	}
	log.ConfigLoaded(lc.Path())

	conv, err := converter.New(lc.BuildConverterOptions(convFlags, log))
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("invalid options: %w", err)
	}

	return lc, conv, cleanup, nil
}
