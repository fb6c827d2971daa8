package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

var insertCmd = &cobra.Command{
	Use:   "insert [notes.json]",
	Short: "Add notes to the corpus",
	Long: `Adds notes from a JSON file (or stdin when the argument is "-") to
the existing corpus. The file holds an array of {title, content, id?}
objects; notes without an id get a generated one.`,
	Args: cobra.ExactArgs(1),
	RunE: runInsert,
}

var syncCmd = &cobra.Command{
	Use:   "sync [notes.json]",
	Short: "Replace the corpus with the given notes",
	Long: `Clears the corpus and adds the notes from a JSON file (or stdin when
the argument is "-"). The previous corpus is gone afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document from the corpus by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(deleteCmd)
}

// readNotes loads the note array from a file, or stdin for "-".
func readNotes(path string) ([]domain.Note, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}

	var notes []domain.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("parse notes: %w", err)
	}
	return notes, nil
}

func runInsert(cmd *cobra.Command, args []string) error {
	notes, err := readNotes(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.service.AddNotes(ctx, notes)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	cmd.Printf("Added %d documents (%d embedded)\n", result.DocumentCount, result.CachedCount)
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	notes, err := readNotes(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.service.ClearDocuments(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	result, err := a.service.AddNotes(ctx, notes)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	cmd.Printf("Synced %d documents (%d embedded)\n", result.DocumentCount, result.CachedCount)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.service.DeleteDocument(ctx, args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
