package database

import (
	"database/sql"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// GetXrefs returns every xref row carrying the given accession, most
// recently inserted row (highest xref id) first.
func (db *DB) GetXrefs(accession string) ([]Xref, error) {
	const op xerrors.Op = "database.GetXrefs"

	rows, err := db.Query(`
		SELECT x.xref_id, x.accession, COALESCE(x.label, ''), COALESCE(x.description, ''),
		       x.source_id, s.name, x.species_id, x.info_type
		FROM xref x JOIN source s ON s.source_id = x.source_id
		WHERE x.accession = ?
		ORDER BY x.xref_id DESC`, accession)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	defer rows.Close()

	var out []Xref
	for rows.Next() {
		var x Xref
		if err := rows.Scan(&x.ID, &x.Accession, &x.Label, &x.Description,
			&x.SourceID, &x.SourceName, &x.SpeciesID, &x.InfoType); err != nil {
			return nil, xerrors.E(op, xerrors.KindDatabase, err)
		}
		out = append(out, x)
	}
	return out, xerrors.Wrap(op, rows.Err())
}

// GetSynonyms returns the synonyms recorded for an xref.
func (db *DB) GetSynonyms(xrefID int64) ([]string, error) {
	const op xerrors.Op = "database.GetSynonyms"

	rows, err := db.Query(`SELECT synonym FROM synonym WHERE xref_id = ? ORDER BY synonym`, xrefID)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, xerrors.E(op, xerrors.KindDatabase, err)
		}
		out = append(out, s)
	}
	return out, xerrors.Wrap(op, rows.Err())
}

// GetPrimaryXref returns the sequence payload for an xref, or nil if the
// xref has none.
func (db *DB) GetPrimaryXref(xrefID int64) (*PrimaryXref, error) {
	const op xerrors.Op = "database.GetPrimaryXref"

	var p PrimaryXref
	err := db.QueryRow(`SELECT xref_id, sequence, sequence_type, COALESCE(status, '')
		FROM primary_xref WHERE xref_id = ?`, xrefID).
		Scan(&p.XrefID, &p.Sequence, &p.SequenceType, &p.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	return &p, nil
}

// GetDependents returns the xrefs hanging off a master xref.
func (db *DB) GetDependents(masterID int64) ([]Xref, error) {
	const op xerrors.Op = "database.GetDependents"

	rows, err := db.Query(`
		SELECT x.xref_id, x.accession, COALESCE(x.label, ''), COALESCE(x.description, ''),
		       x.source_id, s.name, x.species_id, x.info_type
		FROM dependent_xref d
		JOIN xref x ON x.xref_id = d.dependent_xref_id
		JOIN source s ON s.source_id = x.source_id
		WHERE d.master_xref_id = ?
		ORDER BY x.xref_id`, masterID)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	defer rows.Close()

	var out []Xref
	for rows.Next() {
		var x Xref
		if err := rows.Scan(&x.ID, &x.Accession, &x.Label, &x.Description,
			&x.SourceID, &x.SourceName, &x.SpeciesID, &x.InfoType); err != nil {
			return nil, xerrors.E(op, xerrors.KindDatabase, err)
		}
		out = append(out, x)
	}
	return out, xerrors.Wrap(op, rows.Err())
}

// ForEachXref streams every xref row through fn in id order. An error
// from fn stops the walk.
func (db *DB) ForEachXref(fn func(Xref) error) error {
	const op xerrors.Op = "database.ForEachXref"

	rows, err := db.Query(`
		SELECT x.xref_id, x.accession, COALESCE(x.label, ''), COALESCE(x.description, ''),
		       x.source_id, s.name, x.species_id, x.info_type
		FROM xref x JOIN source s ON s.source_id = x.source_id
		ORDER BY x.xref_id`)
	if err != nil {
		return xerrors.E(op, xerrors.KindDatabase, err)
	}
	defer rows.Close()

	for rows.Next() {
		var x Xref
		if err := rows.Scan(&x.ID, &x.Accession, &x.Label, &x.Description,
			&x.SourceID, &x.SourceName, &x.SpeciesID, &x.InfoType); err != nil {
			return xerrors.E(op, xerrors.KindDatabase, err)
		}
		if err := fn(x); err != nil {
			return err
		}
	}
	return xerrors.Wrap(op, rows.Err())
}

// GetStats summarises the store.
func (db *DB) GetStats() (*Stats, error) {
	const op xerrors.Op = "database.GetStats"

	stats := &Stats{BySource: map[string]int64{}}
	counts := map[string]*int64{
		"SELECT COUNT(*) FROM xref":           &stats.Xrefs,
		"SELECT COUNT(*) FROM primary_xref":   &stats.PrimaryXrefs,
		"SELECT COUNT(*) FROM dependent_xref": &stats.DependentXrefs,
		"SELECT COUNT(*) FROM synonym":        &stats.Synonyms,
	}
	for query, dst := range counts {
		if err := db.QueryRow(query).Scan(dst); err != nil {
			return nil, xerrors.E(op, xerrors.KindDatabase, err)
		}
	}

	rows, err := db.Query(`
		SELECT s.name, COUNT(x.xref_id)
		FROM source s LEFT JOIN xref x ON x.source_id = s.source_id
		GROUP BY s.name`)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, xerrors.E(op, xerrors.KindDatabase, err)
		}
		stats.BySource[name] = n
	}
	return stats, xerrors.Wrap(op, rows.Err())
}
