package parsers

import (
	"context"

	"github.com/avullo/ensembl-xref/internal/database"
	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

func init() {
	Register("xenbase", func() Parser { return &XenbaseParser{} })
}

// XenbaseParser ingests the Xenbase gene-page TSV: gene-page accession,
// gene symbol and gene name in the first three columns.
type XenbaseParser struct{}

// Name returns the registry key.
func (p *XenbaseParser) Name() string { return "xenbase" }

// Run loads every row carrying an accession.
func (p *XenbaseParser) Run(ctx context.Context, src Source, loader Loader) (Stats, error) {
	const op xerrors.Op = "parsers.xenbase.Run"

	var stats Stats
	err := eachTSVRow(ctx, op, src.Files, func(row tsvRow) error {
		stats.Seen++
		accession := row.field(0)
		if accession == "" {
			stats.Skipped++
			return nil
		}
		if _, err := loader.AddXref(accession, row.field(1), row.field(2), database.InfoTypeDirect); err != nil {
			return err
		}
		stats.Loaded++
		return nil
	})
	return stats, err
}
