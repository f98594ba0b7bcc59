package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set by main.go via SetVersion.
var version = "dev"

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "mdx2txt",
	Short:   "Convert a directory of MDX files to plain text",
	Version: version,
	Long: `mdx2txt renders every .mdx file in a directory as Markdown, strips the
resulting HTML tags, and writes one .txt file per source into a target
directory.

Use 'convert' for scripts and CI, or 'interactive' for a terminal UI.

Examples:
  mdx2txt convert                      # ./*.mdx -> ./txt
  mdx2txt convert data/posts blogs_txt # explicit source and target
  mdx2txt convert --format=json        # JSON report on stdout
  mdx2txt interactive data/posts       # browse results in a TUI`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}
