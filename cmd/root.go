// Package cmd implements the CLI commands for mdforge using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdforge",
	Short: "mdforge — convert HTML documentation trees into Markdown",
	Long: `mdforge converts a directory tree of HTML documentation into a mirrored
tree of Markdown documents, deduplicating images by content into a single
static namespace and rewriting every internal reference to its canonical
absolute path.

Usage:
  mdforge convert --input ./html --output ./md --project myproject`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
