package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/avullo/ensembl-xref/internal/database"
	"github.com/avullo/ensembl-xref/internal/pipeline"
	"github.com/avullo/ensembl-xref/internal/search"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run the pipeline: parse every configured source into the store",
	Long: `Process each source in the configuration in order: resolve its
files, run its parser and commit the results. A parse error aborts the
run and rolls back the failing source.

With --index, a full-text search index is (re)built from the store after
a successful load.`,
	Example: `  xref load --config xref.yaml
  xref load --config xref.yaml --index`,
	RunE: runLoad,
}

var loadBuildIndex bool

func init() {
	loadCmd.Flags().BoolVar(&loadBuildIndex, "index", false, "Rebuild the search index after loading")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	reports, err := pipeline.New(cfg, db).Run(cmd.Context())
	for _, r := range reports {
		printInfo("%-20s %8d seen %8d loaded %8d skipped  (%v)",
			r.Source, r.Stats.Seen, r.Stats.Loaded, r.Stats.Skipped, r.Duration.Round(time.Millisecond))
	}
	if err != nil {
		return err
	}

	if loadBuildIndex && cfg.Search.Enabled {
		idx, err := search.Open(cfg.Search.IndexPath)
		if err != nil {
			return err
		}
		defer idx.Close()
		n, err := idx.Build(db)
		if err != nil {
			return err
		}
		printSuccess("indexed %d xrefs", n)
	}

	printSuccess("load complete: %d source(s)", len(reports))
	return nil
}
