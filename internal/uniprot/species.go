package uniprot

import (
	"strconv"
	"strings"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// taxonomyDatabases maps OX qualifiers to converters producing the
// canonical (Ensembl) taxonomy id. A nil converter marks a database that
// is recognised but not mapped; its entries are skipped. Process-wide
// immutable.
var taxonomyDatabases = map[string]func(code string) (int, error){
	"NCBI_TaxID": parseNCBITaxID,
	"TaxID":      nil, // legacy spelling seen in old TrEMBL dumps
}

// NCBI taxonomy ids map identity-wise onto Ensembl taxonomy ids.
func parseNCBITaxID(code string) (int, error) {
	id, err := strconv.Atoi(code)
	if err != nil {
		return 0, xerrors.MalformedField(decodeOp, "OX", code)
	}
	return id, nil
}

// decodeTaxonomy decodes OX lines into the ordered list of canonical
// taxonomy ids. Entries have the form QUALIFIER=CODE separated by
// semicolons; evidence-code blocks between entries are tolerated. An
// unknown qualifier is an UnknownTaxonDB error, a qualifier with no code
// a MalformedField; recognised-but-unmapped databases contribute nothing.
func decodeTaxonomy(lines []string) ([]int, error) {
	joined := evidenceBlockRe.ReplaceAllString(strings.Join(lines, " "), "")

	var ids []int
	for _, entry := range strings.Split(joined, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		qualifier, code, found := strings.Cut(entry, "=")
		qualifier = strings.TrimSpace(qualifier)
		convert, known := taxonomyDatabases[qualifier]
		if !known {
			return nil, xerrors.UnknownTaxonDB(decodeOp, qualifier)
		}
		if convert == nil {
			continue
		}
		code = strings.TrimSpace(code)
		if !found || code == "" {
			return nil, xerrors.MalformedField(decodeOp, "OX", entry)
		}
		id, err := convert(code)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// matchesSpecies reports whether any decoded taxonomy id equals the
// configured species id. Ids are scanned in input order, so the first
// matching entry decides.
func matchesSpecies(ids []int, speciesID int) bool {
	for _, id := range ids {
		if id == speciesID {
			return true
		}
	}
	return false
}
