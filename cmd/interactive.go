package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/ui"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive [source] [target]",
	Short: "Convert MDX files and browse the results in a terminal UI",
	Long: `Run the same conversion as 'convert' inside an interactive terminal UI.

Files are converted one by one with live progress. When the batch is done,
browse the results, filter by status and preview the extracted text.

Controls:
  ↑/↓ or j/k    Navigate through results
  f             Cycle filter (all / failed / converted)
  d             Toggle the detail pane
  /             Search by file name
  ?             Toggle help
  q             Quit (stops the batch after the current file)`,
	Args: cobra.MaximumNArgs(2),
	Run:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	addConversionFlags(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) {
	lc, conv, cleanup, err := setupConversion()
	exitOnError(err, "Error")
	defer cleanup()

	m := ui.New(cmd.Context(), conv, lc.GetSource(args), lc.GetTarget(args))

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running interactive mode: %v\n", err)
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}

	fm, ok := final.(ui.Model)
	if !ok {
		return
	}
	if results := fm.Results(); len(results) > 0 {
		printSummary(converter.Summarize(results), len(results))
	}
	exitOnError(fm.Err(), "Error")
}
