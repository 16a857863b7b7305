package parsers

import (
	"context"
	"strings"

	"github.com/avullo/ensembl-xref/internal/database"
	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

func init() {
	Register("mgi", func() Parser { return &MGIParser{} })
}

// MGIParser ingests the MGI marker description TSV: MGI accession,
// marker symbol and marker name in the first three columns.
type MGIParser struct{}

// Name returns the registry key.
func (p *MGIParser) Name() string { return "mgi" }

// Run loads every MGI marker row.
func (p *MGIParser) Run(ctx context.Context, src Source, loader Loader) (Stats, error) {
	const op xerrors.Op = "parsers.mgi.Run"

	var stats Stats
	err := eachTSVRow(ctx, op, src.Files, func(row tsvRow) error {
		stats.Seen++
		accession := row.field(0)
		if !strings.HasPrefix(accession, "MGI:") {
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
