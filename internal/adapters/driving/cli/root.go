// Package cli provides the cobra command tree for the kognita binary.
// Commands talk to the core services through the driving ports only;
// wiring happens in main via Initialise.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
	"github.com/kognita-labs/kognita-cli/internal/logger"
)

// version is injected at build time via Initialise.
var version = "dev"

// Services injected by main. Commands check for nil so the binary can
// still print help and version without configuration.
var (
	searchService    driving.KnowledgeSearch
	syncService      driving.KnowledgeSync
	directoryService driving.SpaceDirectory
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "kognita",
	Short: "Wiki knowledge base search and sync",
	Long: `Kognita ingests wiki content into a vector index and answers
questions against it with hybrid keyword and semantic retrieval.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// Initialise injects the core services the commands depend on.
// Must be called before Execute.
func Initialise(search driving.KnowledgeSearch, sync driving.KnowledgeSync, directory driving.SpaceDirectory) {
	searchService = search
	syncService = sync
	directoryService = directory
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
