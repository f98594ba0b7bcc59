package ui

import (
	"fmt"
	"strings"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/helpers"
	"github.com/nirzaf/mdx2txt/internal/stats"
)

// previewLines is how much converted text the detail panel shows.
const previewLines = 6

// ResultItem wraps a converter.Result to implement list.Item interface.
type ResultItem struct {
	Result converter.Result
}

// FilterValue returns the string used for filtering.
// Implements list.Item interface.
func (i ResultItem) FilterValue() string {
	return i.Result.Source
}

// Title returns the main display text for the item.
// Implements list.DefaultItem interface.
func (i ResultItem) Title() string {
	if i.Result.OK() {
		return "✓ " + i.Result.Source
	}
	return "✗ " + i.Result.Source
}

// Description returns secondary text for the item.
// Implements list.DefaultItem interface.
func (i ResultItem) Description() string {
	r := i.Result
	if !r.OK() {
		return "Error: " + helpers.TruncateText(r.ErrorString(), 60)
	}
	return fmt.Sprintf("→ %s | %s → %s", r.Target,
		stats.FormatBytes(uint64(r.BytesRead)), stats.FormatBytes(uint64(r.BytesWritten)))
}

// DetailView returns an expanded detail view for the selected item.
func (i ResultItem) DetailView() string {
	r := i.Result
	var b strings.Builder

	b.WriteString("┌─ Details ─────────────────────────────────────────────────────────────\n")

	fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Status:"), StatusBadge(r.OK()))
	fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Source:"), helpers.TruncatePath(r.SourcePath, 60))
	fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Target:"), helpers.TruncatePath(r.TargetPath, 60))

	if !r.OK() {
		fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Error:"), r.ErrorString())
	} else {
		fmt.Fprintf(&b, "│ %s  %s → %s\n", DetailLabelStyle.Render("Size:"),
			stats.FormatBytes(uint64(r.BytesRead)), stats.FormatBytes(uint64(r.BytesWritten)))

		b.WriteString("│\n")
		preview, more := helpers.FirstLines(r.Text, previewLines)
		if strings.TrimSpace(preview) == "" {
			fmt.Fprintf(&b, "│ %s\n", MutedStyle.Render("(empty output)"))
		} else {
			for line := range strings.SplitSeq(preview, "\n") {
				fmt.Fprintf(&b, "│ %s\n", PreviewStyle.Render(helpers.TruncateText(line, 70)))
			}
		}
		if more {
			fmt.Fprintf(&b, "│ %s\n", MutedStyle.Render("…"))
		}
	}

	b.WriteString("└────────────────────────────────────────────────────────────────────────\n")

	return b.String()
}

// ResultsToItems converts a slice of converter.Result to ResultItems.
func ResultsToItems(results []converter.Result) []ResultItem {
	items := make([]ResultItem, len(results))
	for i, r := range results {
		items[i] = ResultItem{Result: r}
	}
	return items
}
