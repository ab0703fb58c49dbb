package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"sermonsearch/config"
	"sermonsearch/internal/adapter/boundary"
	"sermonsearch/internal/adapter/chunker"
	"sermonsearch/internal/adapter/embedding"
	"sermonsearch/internal/adapter/fs"
	"sermonsearch/internal/adapter/store"
	"sermonsearch/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [directory]",
	Short: "Index sermon transcripts",
	Long: `Parse transcript files under the given directory (defaults to the root
directory), trim each to its teaching span, chunk, embed, and commit to the
vector database. Documents already committed are skipped, so an interrupted
run can simply be restarted.

Examples:
  sermonsearch index ./transcripts
  sermonsearch index            # index the root directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	target := rootDir
	if len(args) > 0 {
		target = args[0]
	}

	if err := config.EnsureDataDir(rootDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	catalog, err := store.NewBoltStore(config.CatalogPath(rootDir))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	detector, err := boundary.NewDetector(cfg.Boundary)
	if err != nil {
		return fmt.Errorf("invalid boundary patterns: %w", err)
	}
	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	vectors, err := newVectorStore(cfg)
	if err != nil {
		return err
	}

	indexer := usecase.NewIndexer(
		fs.NewWalker(cfg.Source),
		detector,
		chunker.NewWordChunker(cfg.Chunk.MinWords, cfg.Chunk.MaxWords, cfg.Chunk.OverlapWords),
		embedder,
		vectors,
		catalog,
		cfg,
		nil,
	)

	var bar *progressbar.ProgressBar
	indexer.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	started := time.Now()
	result, err := indexer.Index(target)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("Indexed %d documents (%d chunks) from %d files in %s\n",
		result.DocsIndexed, result.ChunksCreated, result.FilesProcessed,
		time.Since(started).Round(time.Millisecond))
	if result.DocsSkipped > 0 {
		fmt.Printf("Skipped %d documents (already indexed or too short)\n", result.DocsSkipped)
	}
	for _, e := range result.Errors {
		fmt.Printf("Warning: %s\n", e)
	}
	return nil
}
