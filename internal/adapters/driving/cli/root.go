// Package cli implements the mindfeed command-line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Sph3inz/MindFeed/internal/logger"
)

// version is set from main at build time.
var version = "dev"

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mindfeed",
	Short: "Retrieval-augmented question answering over personal notes",
	Long: `MindFeed answers questions grounded in your personal notes.

Notes are embedded with a local or hosted embedding model, stored
durably (SQLite or Firestore), and retrieved by cosine similarity to
feed a conversational answer model. The serve command speaks a
line-oriented JSON protocol on stdin/stdout for host applications;
the other commands are one-shot wrappers around the same service.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Env files configure API keys in development.
		_ = godotenv.Load()
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.mindfeed/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
