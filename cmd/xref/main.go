package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	cfgPath string
	noColor bool
	quiet   bool
	verbose bool
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "xref",
	Short: "Ensembl xref loading pipeline",
	Long: `xref ingests cross-reference source files (UniProt-KB flat files,
Xenbase, Reactome and MGI TSV dumps) for one species and loads them into
a relational xref store.

The UniProt extractor streams records one at a time, filters them by
species before doing any expensive decoding, and emits structured
entries the loader persists.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Stream structured UniProt entries as JSON lines
  xref extract --species-id 9606 uniprot_sprot.dat.gz

  # Download source files and load everything in the configuration
  xref download --config xref.yaml
  xref load --config xref.yaml

  # Serve the loaded store
  xref server --config xref.yaml --port 8080`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(serverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
