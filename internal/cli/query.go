package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sermonsearch/internal/domain"
)

var (
	queryText       string
	queryPool       string
	queryNResults   int
	queryCandidates int
	queryJSON       bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the indexed corpus",
	Long: `Answer a question from the indexed sermon corpus. Candidates are pulled
from the vector database, reranked with the cross-encoder, and pinned
overrides applied.

Examples:
  sermonsearch query -q "what does the bible say about forgiveness"
  sermonsearch query -q "anxiety" --pool sermons -n 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().StringVarP(&queryPool, "pool", "p", "all", "pool to search: sermons, illustrations, website, all")
	queryCmd.Flags().IntVarP(&queryNResults, "n-results", "n", 0, "results per pool (default from config)")
	queryCmd.Flags().IntVar(&queryCandidates, "n-candidates", 0, "candidates per pool before reranking (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	searcher, _, err := newSearcher(GetConfig(), GetRootDir())
	if err != nil {
		return err
	}

	resp, err := searcher.Search(domain.SearchRequest{
		Query:       queryText,
		Pool:        domain.Pool(queryPool),
		NResults:    queryNResults,
		NCandidates: queryCandidates,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s (%dms", len(resp.Results), resp.Query, resp.TimingMs)
	if resp.PinnedCount > 0 {
		fmt.Printf(", %d pinned", resp.PinnedCount)
	}
	fmt.Println(")")
	fmt.Println()

	for i, r := range resp.Results {
		fmt.Printf("%d. [%s] %s (score %.3f)\n", i+1, r.Pool, r.Title, r.Score)
		if r.StartTime != "" {
			fmt.Printf("   at %s  %s\n", r.StartTime, r.TimestampedURL)
		} else if r.URL != "" {
			fmt.Printf("   %s\n", r.URL)
		}
		if r.Snippet != "" {
			fmt.Printf("   %s\n", r.Snippet)
		}
		fmt.Println()
	}
	return nil
}
