package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirzaf/mdx2txt/internal/config"
	"github.com/nirzaf/mdx2txt/internal/converter"
)

func noEnv(string) (string, bool) { return "", false }

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("NoConfig", func(t *testing.T) {
		t.Parallel()
		lc, err := LoadConfig("", true, noEnv)
		require.NoError(t, err)
		assert.Empty(t, lc.Path())
		assert.True(t, lc.Config().IsEmpty())
	})

	t.Run("ExplicitYAML", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, ".mdx2txt.yaml", "source: posts\ntarget: out\nexclude: [\"draft-*\"]\n")

		lc, err := LoadConfig(path, false, noEnv)
		require.NoError(t, err)
		assert.Equal(t, path, lc.Path())
		assert.Equal(t, "posts", lc.GetSource(nil))
		assert.Equal(t, "out", lc.GetTarget(nil))
		assert.Equal(t, []string{"draft-*"}, lc.GetExclude(nil))
	})

	t.Run("ExplicitTOML", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "settings.toml", "source = \"posts\"\n[markdown]\nextensions = [\"table\"]\n")

		lc, err := LoadConfig(path, false, noEnv)
		require.NoError(t, err)
		assert.Equal(t, "posts", lc.GetSource(nil))
		assert.Equal(t, []string{"table"}, lc.GetMarkdownExtensions(nil))
	})

	t.Run("ExplicitMissing", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})

	t.Run("InvalidSyntax", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, ".mdx2txt.yaml", "source: [unclosed\n")
		_, err := LoadConfig(path, false, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})

	t.Run("InvalidValues", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, ".mdx2txt.yaml", "output:\n  format: csv\nmarkdown:\n  extensions: [nope]\n")
		_, err := LoadConfig(path, false, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
		assert.Contains(t, err.Error(), "csv")
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, ".mdx2txt.yaml", "source: posts\ntarget: out\nextension: .md\n")

		lc, err := LoadConfig(path, false, envFrom(map[string]string{
			config.EnvSource:    "env-posts",
			config.EnvExtension: ".markdown",
		}))
		require.NoError(t, err)
		assert.Equal(t, "env-posts", lc.GetSource(nil))
		assert.Equal(t, "out", lc.GetTarget(nil))
		assert.Equal(t, ".markdown", lc.GetExtension(""))
	})

	t.Run("InvalidEnvExtension", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("", true, envFrom(map[string]string{config.EnvExtension: "a/b"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidExtension)
	})

	t.Run("NilLookup", func(t *testing.T) {
		t.Parallel()
		lc, err := LoadConfig("", true, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultSource, lc.GetSource(nil))
	})
}

func TestLoadedConfig_Precedence(t *testing.T) {
	t.Parallel()

	empty, err := LoadConfig("", true, noEnv)
	require.NoError(t, err)

	path := writeConfig(t, ".mdx2txt.yaml", `source: posts
target: out
extension: .md
include: ["*.md"]
exclude: ["draft-*"]
strip_frontmatter: true
decode_entities: true
markdown:
  extensions: [table]
  hard_wraps: true
output:
  format: json
  show_stats: true
  fail_on_error: true
`)
	full, err := LoadConfig(path, false, noEnv)
	require.NoError(t, err)

	t.Run("Source", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ".", empty.GetSource(nil))
		assert.Equal(t, "posts", full.GetSource(nil))
		assert.Equal(t, "cli", full.GetSource([]string{"cli"}))
		assert.Equal(t, "posts", full.GetSource([]string{""}))
	})

	t.Run("Target", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "txt", empty.GetTarget(nil))
		assert.Equal(t, "out", full.GetTarget([]string{"cli"}))
		assert.Equal(t, "cli-out", full.GetTarget([]string{"cli", "cli-out"}))
	})

	t.Run("Extension", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, converter.DefaultExtension, empty.GetExtension(""))
		assert.Equal(t, ".md", full.GetExtension(""))
		assert.Equal(t, ".mdx", full.GetExtension(".mdx"))
	})

	t.Run("PatternsAreAdditive", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, empty.GetInclude(nil))
		assert.Equal(t, []string{"*.md", "a*"}, full.GetInclude([]string{"a*"}))
		assert.Equal(t, []string{"draft-*", "old-*"}, full.GetExclude([]string{"old-*"}))
		assert.Equal(t, []string{"old-*"}, empty.GetExclude([]string{"old-*"}))
	})

	t.Run("Booleans", func(t *testing.T) {
		t.Parallel()
		assert.False(t, empty.GetStripFrontMatter(false))
		assert.True(t, empty.GetStripFrontMatter(true))
		assert.True(t, full.GetStripFrontMatter(false))
		assert.True(t, full.GetDecodeEntities(false))
		assert.True(t, full.GetHardWraps(false))
		assert.True(t, full.GetShowStats(false))
		assert.True(t, full.GetFailOnError(false))
		assert.False(t, empty.GetFailOnError(false))
	})

	t.Run("MarkdownExtensions", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"table"}, full.GetMarkdownExtensions(nil))
		assert.Equal(t, []string{"gfm"}, full.GetMarkdownExtensions([]string{"gfm"}))
	})

	t.Run("OutputFormat", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, empty.GetOutputFormat(""))
		assert.Equal(t, "json", full.GetOutputFormat(""))
		assert.Equal(t, "yaml", full.GetOutputFormat("yaml"))
	})
}

func TestBuildConverterOptions(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, ".mdx2txt.yaml", "exclude: [\"draft-*\"]\nmarkdown:\n  extensions: [table]\n")
	lc, err := LoadConfig(path, false, noEnv)
	require.NoError(t, err)

	opts := lc.BuildConverterOptions(conversionFlags{
		Extension:        ".md",
		Exclude:          []string{"old-*"},
		StripFrontMatter: true,
		HardWraps:        true,
	}, nil)

	assert.Equal(t, ".md", opts.Extension)
	assert.Equal(t, []string{"draft-*", "old-*"}, opts.Exclude)
	assert.Empty(t, opts.Include)
	assert.True(t, opts.StripFrontMatter)
	assert.False(t, opts.DecodeEntities)
	assert.Equal(t, []string{"table"}, opts.Markdown.Extensions)
	assert.True(t, opts.Markdown.HardWraps)
	assert.Equal(t, converter.DefaultFileMode, opts.FileMode)

	_, err = converter.New(opts)
	require.NoError(t, err)
}

func TestMergePatterns(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mergePatterns(nil, nil))
	assert.Equal(t, []string{"a"}, mergePatterns([]string{"a"}, nil))
	assert.Equal(t, []string{"b"}, mergePatterns(nil, []string{"b"}))
	assert.Equal(t, []string{"a", "b"}, mergePatterns([]string{"a"}, []string{"b"}))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("Stderr", func(t *testing.T) {
		t.Parallel()
		log, cleanup, err := newLogger(conversionFlags{Verbose: true})
		require.NoError(t, err)
		require.NotNil(t, log)
		require.NotNil(t, cleanup)
		cleanup()
	})

	t.Run("File", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "mdx2txt.log")
		log, cleanup, err := newLogger(conversionFlags{LogFile: path})
		require.NoError(t, err)
		log.ConfigLoaded("")
		cleanup()
		assert.FileExists(t, path)
	})

	t.Run("FileInMissingDir", func(t *testing.T) {
		t.Parallel()
		_, _, err := newLogger(conversionFlags{LogFile: filepath.Join(t.TempDir(), "missing", "x.log")})
		require.Error(t, err)
	})
}

func TestValidateConvertFlags(t *testing.T) {
	// Mutates package-level flag variables.
	defer func() { outputFormat, outputFile = "", "" }()

	tests := []struct {
		name    string
		format  string
		file    string
		wantErr string
	}{
		{name: "None"},
		{name: "FormatOnly", format: "json"},
		{name: "FormatCaseInsensitive", format: "JUnit"},
		{name: "FileOnly", file: "report.json"},
		{name: "Both", format: "json", file: "report.json", wantErr: "mutually exclusive"},
		{name: "UnknownFormat", format: "csv", wantErr: "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFormat, outputFile = tt.format, tt.file
			err := validateConvertFlags()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()

	assert.Contains(t, summaryLine(converter.Summary{}, 0), "No matching files found.")

	line := summaryLine(converter.Summary{Total: 3, Converted: 2, Failed: 1}, 3)
	assert.Contains(t, line, "2 converted")
	assert.Contains(t, line, "1 failed")
	assert.Contains(t, line, "3 files")

	assert.Contains(t, summaryLine(converter.Summary{Total: 1, Converted: 1}, 1), "1 file)")
}
