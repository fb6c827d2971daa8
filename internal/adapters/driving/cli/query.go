package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Sph3inz/MindFeed/internal/core/domain"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question grounded in your notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the raw result as JSON")
	rootCmd.AddCommand(queryCmd)
}

var (
	answerStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	snippetStyle = lipgloss.NewStyle().Faint(true)
	timingStyle  = lipgloss.NewStyle().Faint(true)
)

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.service.Query(ctx, args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputQuery(cmd, result)
}

func outputQuery(cmd *cobra.Command, result *domain.QueryResult) error {
	cmd.Println(answerStyle.Render(result.Answer))

	if len(result.RelevantDocuments) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, doc := range result.RelevantDocuments {
			cmd.Printf("  [%d] %s %s\n", i+1,
				titleStyle.Render(doc.Title),
				scoreStyle.Render(fmt.Sprintf("(%.2f%%)", doc.Similarity)))
			cmd.Printf("      %s\n", snippetStyle.Render(doc.Content))
		}
	}

	if total, ok := result.Timing[domain.StageTotal]; ok {
		cmd.Println()
		cmd.Println(timingStyle.Render(fmt.Sprintf("answered in %.0fms", total)))
	}
	return nil
}
