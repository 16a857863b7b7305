package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avullo/ensembl-xref/internal/api"
	"github.com/avullo/ensembl-xref/internal/database"
	"github.com/avullo/ensembl-xref/internal/search"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the loaded xref store over HTTP",
	Long: `Start the HTTP API: accession lookup, full-text search (when an
index has been built) and store statistics.`,
	Example: `  xref server --config xref.yaml
  xref server --port 9090 --no-search`,
	RunE: runServer,
}

var (
	serverHost     string
	serverPort     int
	serverNoSearch bool
	serverCORS     bool
)

func init() {
	serverCmd.Flags().StringVar(&serverHost, "host", "", "Host to bind to (overrides config)")
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Port to listen on (overrides config)")
	serverCmd.Flags().BoolVar(&serverNoSearch, "no-search", false, "Serve without the search index")
	serverCmd.Flags().BoolVar(&serverCORS, "cors", false, "Enable CORS headers")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	var idx *search.Index
	if cfg.Search.Enabled && !serverNoSearch {
		idx, err = search.Open(cfg.Search.IndexPath)
		if err != nil {
			return err
		}
		defer idx.Close()
	}

	s := api.NewServer(api.Config{
		Host:  cfg.Server.Host,
		Port:  cfg.Server.Port,
		DB:    db,
		Index: idx,
		CORS:  serverCORS,
	})

	// Shut down cleanly on SIGINT/SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			printError("shutdown: %v", err)
		}
	}()

	printInfo("serving on %s:%d", cfg.Server.Host, cfg.Server.Port)
	return s.Start()
}
