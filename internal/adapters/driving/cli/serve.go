package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Sph3inz/MindFeed/internal/adapters/driving/stdio"
	"github.com/Sph3inz/MindFeed/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON command protocol on stdin/stdout",
	Long: `Runs the persistent service loop: one JSON command array per stdin
line, one JSON response per stdout line. Intended to be spawned by a
host application; stdout carries only protocol lines.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Warn("serve reads commands from stdin; it is usually spawned by a host application, not a terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		// Startup failures are reported on the protocol stream so the
		// host sees why the ready line never came.
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return err
	}
	defer a.close()

	// Persona edits apply to the next query without a restart.
	go func() {
		if err := a.prompts.Watch(ctx); err != nil {
			logger.Warn("Prompt watching disabled: %v", err)
		}
	}()

	return stdio.NewServer(a.service, os.Stdin, os.Stdout).Run(ctx)
}
