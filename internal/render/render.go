// Package render turns Markdown into HTML using goldmark.
//
// The default engine is plain CommonMark with raw HTML passed through, which
// keeps embedded MDX components in the output so the tag stripper can remove
// them afterwards.
package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures the Markdown engine.
type Options struct {
	// Extensions are goldmark extension names (see ExtensionNames).
	// Empty means CommonMark only.
	Extensions []string

	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
}

// extensionRegistry maps configuration names to goldmark extenders.
var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// ExtensionNames returns the supported extension names, sorted.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateExtensions reports the first name that is not a known extension.
func ValidateExtensions(names []string) error {
	for _, name := range names {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := extensionRegistry[key]; !ok {
			return fmt.Errorf("unknown markdown extension %q (supported: %s)",
				name, strings.Join(ExtensionNames(), ", "))
		}
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// collectExtensions resolves names to extenders, skipping blanks and repeats.
func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// Renderer converts Markdown to HTML. It holds no per-call state and can be
// reused for every file in a batch.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer for the given options.
func New(opts Options) *Renderer {
	rendererOptions := []renderer.Option{
		html.WithUnsafe(),
	}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return &Renderer{md: goldmark.New(engineOptions...)}
}

// Render returns the HTML for source with surrounding whitespace trimmed.
func (r *Renderer) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(source) + len(source)/4)

	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
