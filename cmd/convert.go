package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/output"
	"github.com/nirzaf/mdx2txt/internal/stats"
)

// Flag variables for the convert command.
var (
	outputFormat string
	outputFile   string
	showStats    bool
	failOnError  bool
)

// convertCmd represents the convert command.
var convertCmd = &cobra.Command{
	Use:   "convert [source] [target]",
	Short: "Convert every MDX file in a directory to plain text",
	Long: `Convert every file directly inside the source directory whose name ends
with the extension (default .mdx) into a .txt file in the target directory.

Each file is rendered as Markdown, its HTML tags are stripped, and the text is
written to <name>.txt, overwriting any existing file. Subdirectories are not
descended into. A file that fails is reported and the batch continues.

Source defaults to ".", target to "txt". Both can also come from
MDX2TXT_SOURCE / MDX2TXT_TARGET (a .env file is read) or from the config file.

Exit codes:
  0 - The batch ran (even if some files failed)
  1 - Invalid flags or config, unreadable source, uncreatable target,
      interrupted, or --fail-on-error with at least one failed file

Examples:
  mdx2txt convert                          # ./*.mdx -> ./txt
  mdx2txt convert data/posts blogs_txt     # explicit directories
  mdx2txt convert --ext=.md                # convert .md files instead
  mdx2txt convert --exclude="draft-*"      # skip drafts
  mdx2txt convert --strip-frontmatter      # drop YAML/TOML front matter
  mdx2txt convert --markdown-ext=table,strikethrough
  mdx2txt convert --format=json            # JSON report to stdout
  mdx2txt convert --output=report.junit.xml  # JUnit XML for CI/CD
  mdx2txt convert --stats                  # Show performance statistics

Note: --format and --output are mutually exclusive.

Config file (.mdx2txt.yaml):
  source: data/posts
  target: blogs_txt
  exclude: ["draft-*"]
  markdown:
    extensions: [table]`,
	Args: cobra.MaximumNArgs(2),
	Run:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output options
	convertCmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Report format for stdout: "+strings.Join(output.ValidFormats(), ", "))
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write report to file (format inferred from extension: .json, .yaml, .toml, .xml, .junit.xml, .md)")
	convertCmd.Flags().BoolVar(&showStats, "stats", false,
		"Show detailed performance statistics")
	convertCmd.Flags().BoolVar(&failOnError, "fail-on-error", false,
		"Exit 1 if any file failed to convert")

	addConversionFlags(convertCmd)
}

// runConvert is the main entry point for the convert command.
func runConvert(cmd *cobra.Command, args []string) {
	exitOnError(validateConvertFlags(), "Invalid flags")

	lc, conv, cleanup, err := setupConversion()
	exitOnError(err, "Error")
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := convertRun{
		source:    lc.GetSource(args),
		target:    lc.GetTarget(args),
		extension: conv.Options().Extension,
		format:    lc.GetOutputFormat(outputFormat),
		showStats: lc.GetShowStats(showStats),
		perf:      stats.New(),
	}
	// An explicit --output wins over a format from the config file.
	if outputFile != "" {
		run.format = ""
	}

	// Phase 1: List files
	files := run.listFiles(conv)

	// Phase 2: Convert them
	results, err := run.convertFiles(ctx, conv, files)

	// Phase 3: Output results
	run.routeOutput(results)

	if err != nil {
		exitOnError(err, "Interrupted")
	}
	if lc.GetFailOnError(failOnError) && converter.Summarize(results).HasFailures() {
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}

// convertRun carries the resolved settings of one convert invocation.
type convertRun struct {
	source    string
	target    string
	extension string
	format    string
	showStats bool
	perf      *stats.Stats
}

// structured reports whether the report replaces the per-file lines on stdout.
func (r *convertRun) structured() bool {
	return r.format != ""
}

// listFiles creates the target directory and lists the source files.
func (r *convertRun) listFiles(conv *converter.Converter) []string {
	r.perf.StartScan()

	exitOnError(conv.PrepareTarget(r.target), "Error")

	files, err := conv.Files(r.source)
	if err != nil {
		exitOnError(fmt.Errorf("reading source directory: %w", err), "Error")
	}
	r.perf.EndScan(len(files))

	return files
}

// convertFiles converts files, printing each result line unless a structured
// report goes to stdout. The error is non-nil only if ctx was cancelled.
func (r *convertRun) convertFiles(
	ctx context.Context, conv *converter.Converter, files []string,
) ([]converter.Result, error) {
	r.perf.StartConvert()

	var onResult func(converter.Result)
	if !r.structured() {
		onResult = printResult
	}

	results, err := conv.ConvertFiles(ctx, files, r.target, onResult)

	s := converter.Summarize(results)
	r.perf.EndConvert(s.Converted, s.Failed, s.BytesRead, s.BytesWritten)

	return results, err
}

// routeOutput handles output based on format flags.
func (r *convertRun) routeOutput(results []converter.Result) {
	switch {
	case r.structured():
		r.handleStructuredOutput(results)
	case outputFile != "":
		r.handleFileOutput(results)
	default:
		printSummary(converter.Summarize(results), len(results))
		if r.showStats {
			fmt.Print(r.perf.String())
		}
	}
}

// validateConvertFlags checks for invalid flag combinations.
func validateConvertFlags() error {
	// Validate mutually exclusive flags
	if outputFormat != "" && outputFile != "" {
		return errors.New("--format and --output are mutually exclusive; " +
			"use --format for stdout output, or --output for file output")
	}

	// Validate format if specified
	if outputFormat != "" && !output.IsValidFormat(outputFormat) {
		return fmt.Errorf("invalid format %q; valid formats: %s",
			outputFormat, strings.Join(output.ValidFormats(), ", "))
	}

	return nil
}

// exitOnError prints an error message and exits if err is not nil.
func exitOnError(err error, message string) {
	if err != nil {
		if message != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}
