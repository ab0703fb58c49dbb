package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sermonsearch/config"
	"sermonsearch/internal/adapter/store"
	"sermonsearch/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Print totals from the local catalog and, when the vector database is
reachable, per-pool chunk counts.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	catalogPath := config.CatalogPath(rootDir)
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return fmt.Errorf("no catalog found. Run 'sermonsearch index' first")
	}
	catalog, err := store.NewBoltStore(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	stats, err := catalog.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Documents: %d\n", stats.TotalDocs)
	fmt.Printf("Chunks:    %d\n", stats.TotalChunks)
	fmt.Printf("Words:     %d\n", stats.TotalWords)

	vectors, err := newVectorStore(cfg)
	if err != nil {
		return err
	}
	fmt.Println("\nVector database pools:")
	for _, pool := range domain.PoolOrder {
		collection := cfg.CollectionFor(string(pool))
		n, err := vectors.Count(collection)
		if err != nil {
			fmt.Printf("  %-14s unreachable (%v)\n", pool+":", err)
			continue
		}
		fmt.Printf("  %-14s %d chunks (%s)\n", pool+":", n, collection)
	}
	return nil
}
