// Package scanner lists the source files of a conversion run.
//
// Only the entries directly inside the source directory are considered;
// subdirectories are never descended into.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultSuffix is the file name suffix selected when none is configured.
const DefaultSuffix = ".mdx"

// ListFiles returns the paths of the entries directly under dir whose name
// ends with suffix. The comparison is case-sensitive, so "post.MDX" does not
// match ".mdx". Results are sorted by name.
//
// Entries are filtered by name only: a directory called "x.mdx" is returned
// and fails later when read, the same way any unreadable file does.
func ListFiles(dir, suffix string) ([]string, error) {
	if suffix == "" {
		return nil, nil
	}

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	return files, nil
}

// ScanOptions holds options for listing files with filtering.
type ScanOptions struct {
	// Root is the source directory.
	Root string

	// Suffix is the case-sensitive name suffix to select (e.g. ".mdx").
	Suffix string

	// Include patterns (glob) - if set, only matching names are kept.
	Include []string

	// Exclude patterns (glob) - matching names are dropped.
	Exclude []string
}

// ListFilesWithOptions lists files with include/exclude filtering.
// Patterns are matched against the entry name, not the full path.
func ListFilesWithOptions(opts ScanOptions) ([]string, error) {
	files, err := ListFiles(opts.Root, opts.Suffix)
	if err != nil {
		return nil, err
	}

	if len(opts.Include) > 0 {
		files, err = filterByGlobPatterns(files, opts.Include, true)
		if err != nil {
			return nil, err
		}
	}

	if len(opts.Exclude) > 0 {
		files, err = filterByGlobPatterns(files, opts.Exclude, false)
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// CompilePatterns compiles glob patterns, reporting the first invalid one.
func CompilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// filterByGlobPatterns filters files by glob patterns.
// If include=true, keeps only files matching any pattern.
// If include=false, removes files matching any pattern.
func filterByGlobPatterns(files, patterns []string, include bool) ([]string, error) {
	compiled, err := CompilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(files))
	for _, f := range files {
		matches := MatchesAny(filepath.Base(f), compiled)
		if matches == include {
			result = append(result, f)
		}
	}

	return result, nil
}

// MatchesAny checks if name matches any of the compiled glob patterns.
func MatchesAny(name string, patterns []glob.Glob) bool {
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
