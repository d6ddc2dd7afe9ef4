package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quackmeta",
	Short: "Extract structured metadata from documents with an LLM",
	Long: `Quackmeta sends a document to an LLM with a structured prompt and
validates the response against a fixed metadata schema, repairing and
retrying malformed responses up to a bounded number of attempts.

The result is a metadata record (title, summary, tone, language, domain,
rarity, author profile) written next to a printed metadata card.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quackmeta %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
}
