package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/output"
)

// buildReport creates an output.Report for the finished batch, attaching
// performance statistics when they were requested.
func (r *convertRun) buildReport(results []converter.Result) *output.Report {
	report := output.NewReport(r.source, r.target, r.extension, results)
	if r.showStats {
		report.Stats = r.perf.ToJSON()
	}
	return report
}

// handleStructuredOutput writes the report to stdout in r.format.
func (r *convertRun) handleStructuredOutput(results []converter.Result) {
	data, err := output.FormatReport(r.buildReport(results), output.Format(strings.ToLower(r.format)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}

	fmt.Print(string(data))
}

// handleFileOutput writes the report to outputFile and prints the summary.
func (r *convertRun) handleFileOutput(results []converter.Result) {
	if err := output.WriteToFile(r.buildReport(results), outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}

	printSummary(converter.Summarize(results), len(results))
	fmt.Printf("Report written to %s\n", outputFile)
	if r.showStats {
		fmt.Print(r.perf.String())
	}
}
