package cmd

import (
	"fmt"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/helpers"
	"github.com/nirzaf/mdx2txt/internal/ui"
)

// printResult prints the console line for one converted or failed file.
func printResult(r converter.Result) {
	fmt.Println(r.Message())
}

// printSummary prints the batch totals after the per-file lines.
func printSummary(s converter.Summary, attempted int) {
	fmt.Println()
	fmt.Println(summaryLine(s, attempted))
}

// summaryLine formats the batch totals, styled for the terminal.
func summaryLine(s converter.Summary, attempted int) string {
	if attempted == 0 {
		return ui.MutedStyle.Render("No matching files found.")
	}

	converted := ui.SuccessStyle.Render(fmt.Sprintf("%d converted", s.Converted))
	failed := fmt.Sprintf("%d failed", s.Failed)
	if s.HasFailures() {
		failed = ui.ErrorStyle.Render(failed)
	} else {
		failed = ui.MutedStyle.Render(failed)
	}

	return fmt.Sprintf("Summary: %s | %s (%s)",
		converted, failed, helpers.Pluralize(attempted, "file"))
}
