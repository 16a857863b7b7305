package parsers

import (
	"context"

	"github.com/avullo/ensembl-xref/internal/database"
	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

func init() {
	Register("reactome", func() Parser { return &ReactomeParser{} })
}

// ReactomeParser ingests the Reactome direct-mapping TSV: Ensembl stable
// id, Reactome pathway id, URL, event name, evidence code and species
// name. Rows for other species are skipped.
type ReactomeParser struct{}

// Name returns the registry key.
func (p *ReactomeParser) Name() string { return "reactome" }

// Run loads the pathway xref of every row matching the configured
// species and records the Ensembl stable id as a synonym so the pathway
// can be found from either side.
func (p *ReactomeParser) Run(ctx context.Context, src Source, loader Loader) (Stats, error) {
	const op xerrors.Op = "parsers.reactome.Run"

	var stats Stats
	err := eachTSVRow(ctx, op, src.Files, func(row tsvRow) error {
		stats.Seen++
		stableID, pathwayID := row.field(0), row.field(1)
		if stableID == "" || pathwayID == "" {
			stats.Skipped++
			return nil
		}
		if !speciesNameMatches(row.field(5), src.SpeciesName) {
			stats.Skipped++
			return nil
		}
		id, err := loader.AddXref(pathwayID, row.field(3), row.field(3), database.InfoTypeDirect)
		if err != nil {
			return err
		}
		if err := loader.AddSynonym(id, stableID); err != nil {
			return err
		}
		stats.Loaded++
		return nil
	})
	return stats, err
}
