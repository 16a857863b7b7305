package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avullo/ensembl-xref/internal/uniprot"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file> [files...]",
	Short: "Stream structured UniProt entries as JSON lines",
	Long: `Run the UniProt-KB extractor over a flat file and print each
species-matched record as one JSON object per line. Entry and skip
counts go to stderr.

Compressed inputs (.gz, .Z, .bz2, .xz) are decompressed transparently,
and a configured path is retried with ".gz" appended or stripped when
the exact file is absent.`,
	Example: `  xref extract --species-id 9606 uniprot_sprot.dat.gz
  xref extract --species-id 10090 --keep-unreviewed uniprot_trembl.dat`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var (
	extractSpeciesID      int
	extractSpeciesName    string
	extractKeepUnreviewed bool
)

func init() {
	extractCmd.Flags().IntVar(&extractSpeciesID, "species-id", 9606, "Taxonomy id to keep")
	extractCmd.Flags().StringVar(&extractSpeciesName, "species-name", "", "Species name (informational)")
	extractCmd.Flags().BoolVar(&extractKeepUnreviewed, "keep-unreviewed", false,
		"Keep records whose first accession reads 'unreviewed'")
}

func runExtract(cmd *cobra.Command, args []string) error {
	x, err := uniprot.New(uniprot.Options{
		FileNames:         args,
		MandatoryPrefixes: uniprot.DefaultMandatoryPrefixes(),
		OptionalPrefixes:  uniprot.DefaultOptionalPrefixes(),
		SpeciesID:         extractSpeciesID,
		SpeciesName:       extractSpeciesName,
		KeepUnreviewed:    extractKeepUnreviewed,
	})
	if err != nil {
		return err
	}
	defer x.Close()

	printVerbose("reading %s", x.Path())

	enc := json.NewEncoder(os.Stdout)
	var entries, skipped int
	for {
		res, err := x.GetNextRecord()
		if err != nil {
			return err
		}
		switch res.Kind {
		case uniprot.ResultEndOfInput:
			if !quiet {
				fmt.Fprintf(os.Stderr, "✓ %d entries, %d skipped\n", entries, skipped)
			}
			return nil
		case uniprot.ResultSkip:
			skipped++
		case uniprot.ResultEntry:
			entries++
			if err := enc.Encode(res.Entry); err != nil {
				return err
			}
		}
	}
}
