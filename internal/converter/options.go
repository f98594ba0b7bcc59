package converter

import (
	"os"

	"github.com/nirzaf/mdx2txt/internal/logger"
	"github.com/nirzaf/mdx2txt/internal/render"
	"github.com/nirzaf/mdx2txt/internal/scanner"
)

// Default values for converter options.
const (
	// DefaultExtension is the source file suffix that selects files.
	DefaultExtension = scanner.DefaultSuffix

	// TargetExtension replaces the source extension on output files.
	TargetExtension = ".txt"

	// DefaultFileMode is the permission used for written text files.
	DefaultFileMode os.FileMode = 0o644

	// DefaultDirMode is the permission used when creating the target directory.
	DefaultDirMode os.FileMode = 0o755
)

// Options configures a Converter.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *logger.Logger

	// Extension is the case-sensitive suffix of files to convert.
	Extension string

	// Include and Exclude are glob patterns matched against file names.
	Include []string
	Exclude []string

	// Markdown configures the goldmark engine.
	Markdown render.Options

	// StripFrontMatter removes a leading front-matter block before rendering.
	StripFrontMatter bool

	// DecodeEntities unescapes HTML entities left after tag stripping.
	// Off by default so output matches the plain regex strip.
	DecodeEntities bool

	// FileMode is the permission of written files.
	FileMode os.FileMode
}

// DefaultOptions returns the options that reproduce the plain conversion:
// ".mdx" files, CommonMark, no front-matter handling, no entity decoding.
func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
		FileMode:  DefaultFileMode,
	}
}

// WithExtension sets the source suffix.
func (o Options) WithExtension(ext string) Options {
	if ext != "" {
		o.Extension = ext
	}
	return o
}

// WithInclude sets the include patterns.
func (o Options) WithInclude(patterns []string) Options {
	o.Include = patterns
	return o
}

// WithExclude sets the exclude patterns.
func (o Options) WithExclude(patterns []string) Options {
	o.Exclude = patterns
	return o
}

// WithMarkdown sets the Markdown engine options.
func (o Options) WithMarkdown(m render.Options) Options {
	o.Markdown = m
	return o
}

// WithStripFrontMatter enables or disables front-matter removal.
func (o Options) WithStripFrontMatter(v bool) Options {
	o.StripFrontMatter = v
	return o
}

// WithDecodeEntities enables or disables entity decoding.
func (o Options) WithDecodeEntities(v bool) Options {
	o.DecodeEntities = v
	return o
}

// WithLogger sets the diagnostics logger.
func (o Options) WithLogger(l *logger.Logger) Options {
	if l != nil {
		o.Logger = l
	}
	return o
}
