package output

import (
	"fmt"
	"strings"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/helpers"
)

// MarkdownFormatter formats reports as Markdown.
type MarkdownFormatter struct{}

// Format implements Formatter.
func (*MarkdownFormatter) Format(report *Report) ([]byte, error) {
	// Pre-grow builder: estimate ~120 bytes per result + ~500 bytes header
	var b strings.Builder
	b.Grow(len(report.Results)*120 + 500)

	// Header
	b.WriteString("# MDX Conversion Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Source:** `%s`  \n", report.SourceDir)
	fmt.Fprintf(&b, "**Target:** `%s`  \n", report.TargetDir)
	fmt.Fprintf(&b, "**Files:** %d\n\n", len(report.Files))

	// Summary table
	b.WriteString("## Summary\n\n")
	b.WriteString("| Status | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Converted | %d |\n", report.Summary.Converted)
	fmt.Fprintf(&b, "| Failed | %d |\n", report.Summary.Failed)
	b.WriteString("\n")

	failed := converter.FilterFailed(report.Results)
	if len(failed) > 0 {
		fmt.Fprintf(&b, "## Failed (%d)\n\n", len(failed))
		b.WriteString("| File | Error |\n")
		b.WriteString("|------|-------|\n")
		for _, r := range failed {
			fmt.Fprintf(&b, "| %s | %s |\n",
				escapeMarkdown(r.Source),
				escapeMarkdown(helpers.TruncateText(r.ErrorString(), 80)))
		}
		b.WriteString("\n")
	}

	converted := converter.FilterConverted(report.Results)
	if len(converted) > 0 {
		fmt.Fprintf(&b, "## Converted (%d)\n\n", len(converted))
		b.WriteString("| File | Output | Read | Written |\n")
		b.WriteString("|------|--------|------|---------|\n")
		for _, r := range converted {
			fmt.Fprintf(&b, "| %s | %s | %d | %d |\n",
				escapeMarkdown(r.Source), escapeMarkdown(r.Target), r.BytesRead, r.BytesWritten)
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// escapeMarkdown escapes special markdown characters in a string.
func escapeMarkdown(s string) string {
	// Escape pipe characters which break tables
	s = strings.ReplaceAll(s, "|", "\\|")
	// Escape backticks
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}
