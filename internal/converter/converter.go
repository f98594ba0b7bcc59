// Package converter turns a directory of MDX files into plain-text files.
//
// Each file goes through the same pipeline: read, render Markdown to HTML,
// strip tags, write "<name>.txt" into the target directory. Files are
// processed one at a time and a failure in one file never stops the batch.
package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nirzaf/mdx2txt/internal/logger"
	"github.com/nirzaf/mdx2txt/internal/render"
	"github.com/nirzaf/mdx2txt/internal/scanner"
	"github.com/nirzaf/mdx2txt/internal/strip"
)

// ErrInvalidEncoding is returned for source content that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// Converter runs the conversion pipeline.
type Converter struct {
	log      *logger.Logger
	renderer *render.Renderer
	opts     Options
}

// New creates a Converter. It fails if a Markdown extension name or a glob
// pattern in opts is invalid.
func New(opts Options) (*Converter, error) {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultFileMode
	}

	if err := render.ValidateExtensions(opts.Markdown.Extensions); err != nil {
		return nil, err
	}
	if _, err := scanner.CompilePatterns(opts.Include); err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	if _, err := scanner.CompilePatterns(opts.Exclude); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Converter{
		opts:     opts,
		renderer: render.New(opts.Markdown),
		log:      log,
	}, nil
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

// TargetName returns name with its last extension replaced by ".txt".
// Leading dots do not start an extension, so ".mdx" becomes ".mdx.txt".
func TargetName(name string) string {
	base := name
	leading := len(name) - len(strings.TrimLeft(name, "."))
	if i := strings.LastIndexByte(name[leading:], '.'); i >= 0 {
		base = name[:leading+i]
	}
	return base + TargetExtension
}

// Files lists the source files that a batch over sourceDir would convert.
// Entries dropped by include or exclude patterns are logged at debug level.
func (c *Converter) Files(sourceDir string) ([]string, error) {
	files, err := scanner.ListFilesWithOptions(scanner.ScanOptions{
		Root:    sourceDir,
		Suffix:  c.opts.Extension,
		Include: c.opts.Include,
		Exclude: c.opts.Exclude,
	})
	if err != nil || (len(c.opts.Include) == 0 && len(c.opts.Exclude) == 0) {
		return files, err
	}

	all, err := scanner.ListFiles(sourceDir, c.opts.Extension)
	if err != nil {
		return files, nil //nolint:nilerr // the filtered listing already succeeded
	}
	kept := make(map[string]bool, len(files))
	for _, f := range files {
		kept[f] = true
	}
	for _, f := range all {
		if !kept[f] {
			c.log.Skipped(filepath.Base(f), "matched include/exclude patterns")
		}
	}
	return files, nil
}

// PrepareTarget creates targetDir and any missing parents.
// It is a no-op when the directory already exists.
func (*Converter) PrepareTarget(targetDir string) error {
	if err := os.MkdirAll(targetDir, DefaultDirMode); err != nil {
		return fmt.Errorf("creating target directory: %w", err)
	}
	return nil
}

// Text converts Markdown content to plain text without touching the disk.
func (c *Converter) Text(content []byte) (string, error) {
	if off := invalidUTF8Offset(content); off >= 0 {
		return "", fmt.Errorf("%w at byte offset %d", ErrInvalidEncoding, off)
	}

	source := content
	if c.opts.StripFrontMatter {
		body, err := render.StripFrontMatter(content)
		if err != nil {
			return "", err
		}
		source = body
	}

	html, err := c.renderer.Render(source)
	if err != nil {
		return "", err
	}

	return strip.Text(html, c.opts.DecodeEntities), nil
}

// ConvertFile converts a single source file into targetDir.
// The returned Result carries any error; nothing is written when reading
// or converting fails.
func (c *Converter) ConvertFile(sourcePath, targetDir string) Result {
	start := time.Now()
	name := filepath.Base(sourcePath)
	target := TargetName(name)

	res := Result{
		Source:     name,
		SourcePath: sourcePath,
		Target:     target,
		TargetPath: filepath.Join(targetDir, target),
	}

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return c.fail(res, err)
	}
	res.BytesRead = len(content)

	text, err := c.Text(content)
	if err != nil {
		return c.fail(res, err)
	}

	if err := os.WriteFile(res.TargetPath, []byte(text), c.opts.FileMode); err != nil {
		return c.fail(res, err)
	}

	res.Text = text
	res.BytesWritten = len(text)
	c.log.FileConverted(res.Source, res.Target, res.BytesRead, res.BytesWritten, time.Since(start))

	return res
}

func (c *Converter) fail(res Result, err error) Result {
	res.Err = err
	c.log.FileFailed(res.Source, res.Target, err)
	return res
}

// ConvertAll converts every selected file directly under sourceDir into
// targetDir, creating targetDir first. onResult, if non-nil, is called after
// each file.
//
// Per-file failures are reported in the results and never stop the batch.
// An error is returned only when targetDir cannot be created, sourceDir
// cannot be listed, or ctx is cancelled.
func (c *Converter) ConvertAll(
	ctx context.Context, sourceDir, targetDir string, onResult func(Result),
) ([]Result, error) {
	if err := c.PrepareTarget(targetDir); err != nil {
		return nil, err
	}

	files, err := c.Files(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	c.log.BatchStarted(sourceDir, targetDir, c.opts.Extension)
	return c.ConvertFiles(ctx, files, targetDir, onResult)
}

// ConvertFiles converts the given source paths in order into targetDir,
// which must already exist. Cancellation is checked between files and the
// results gathered so far are returned with ctx's error.
func (c *Converter) ConvertFiles(
	ctx context.Context, files []string, targetDir string, onResult func(Result),
) ([]Result, error) {
	start := time.Now()

	results := make([]Result, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r := c.ConvertFile(f, targetDir)
		results = append(results, r)
		if onResult != nil {
			onResult(r)
		}
	}

	s := Summarize(results)
	c.log.BatchCompleted(s.Converted, s.Failed, time.Since(start))

	return results, nil
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence in b, or -1 if b is valid.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
