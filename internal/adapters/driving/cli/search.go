package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
)

var (
	searchSpace string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Searches the wiki knowledge base with hybrid retrieval.
A wiki text search seeds fresh content into the vector index, then a
semantic similarity query ranks the results. When nothing is vector
confirmed yet, raw wiki matches are returned at medium relevance.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSpace, "space", "s", "", "restrict the search to one space key")
	searchCmd.Flags().IntVarP(&searchTopK, "limit", "n", 0, "maximum number of results (default 5)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	opts := driving.SearchOptions{
		SpaceKey: searchSpace,
		TopK:     searchTopK,
	}

	resp, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results for %q:\n", resp.Query)
	cmd.Println()
	for i, r := range resp.Results {
		title := r.Title
		if title == "" {
			title = r.ID
		}

		cmd.Printf("  [%d] %s (%.2f, %s)\n", i+1, title, r.Score, r.Relevance)
		if r.SpaceKey != "" {
			cmd.Printf("      Space: %s\n", r.SpaceKey)
		}
		if r.URL != "" {
			cmd.Printf("      %s\n", r.URL)
		}
		if r.Preview != "" {
			cmd.Printf("      %s\n", r.Preview)
		}
		cmd.Println()
	}

	return nil
}
