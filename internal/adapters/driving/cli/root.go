// Package cli provides the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/blogoto/blogoto/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "blogoto",
	Short: "Publish Google Docs as blog posts",
	Long: `blogoto watches a Google Drive folder and publishes every Google Doc
in it as a blog post. Documents are exported as HTML, sanitised, and
served over a small JSON API.

Run 'blogoto serve', then visit /auth to connect a Google account.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
