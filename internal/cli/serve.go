package cli

import (
	"github.com/spf13/cobra"
	"sermonsearch/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search API",
	Long: `Serve POST /search and GET /health.

Examples:
  sermonsearch serve
  sermonsearch serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	searcher, vectors, err := newSearcher(cfg, GetRootDir())
	if err != nil {
		return err
	}

	server := api.NewServer(searcher, vectors, cfg, nil)
	return server.ListenAndServe(serveAddr)
}
