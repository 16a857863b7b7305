package parsers

import (
	"context"
	"strings"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
	"github.com/avullo/ensembl-xref/internal/reader"
)

// tsvRow is one tab-separated line with comment and blank lines already
// filtered out.
type tsvRow struct {
	fields []string
}

func (r tsvRow) field(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// eachTSVRow streams the rows of every configured file through fn. An
// error from fn stops the walk.
func eachTSVRow(ctx context.Context, op xerrors.Op, files []string, fn func(tsvRow) error) error {
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return xerrors.Wrap(op, err)
		}
		r, err := reader.Open(path)
		if err != nil {
			return err
		}
		err = func() error {
			defer r.Close()
			for r.Scan() {
				line := r.Text()
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				if err := fn(tsvRow{fields: strings.Split(line, "\t")}); err != nil {
					return err
				}
			}
			return r.Err()
		}()
		if err != nil {
			return err
		}
	}
	return nil
}

// speciesNameMatches compares a provider's species column ("Homo
// sapiens") against the configured species name ("homo_sapiens").
func speciesNameMatches(column, configured string) bool {
	normalise := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	}
	return normalise(column) == normalise(configured)
}
