package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sermonsearch/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "sermonsearch",
	Short: "Sermon transcript search - index sermon videos and answer questions about them",
	Long: `sermonsearch ingests sermon transcripts (YouTube caption exports or
timestamped batch files), trims them to the teaching span, and indexes them
into a vector database. Queries are answered with hybrid retrieval and
cross-encoder reranking across sermon, illustration, and website pools.

Example usage:
  sermonsearch index ./transcripts    # Index a transcript directory
  sermonsearch query -q "forgiveness" # Search the indexed corpus
  sermonsearch serve                  # Run the HTTP search API
  sermonsearch stats                  # Show corpus statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sermonsearch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
