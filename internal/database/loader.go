package database

import (
	"database/sql"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// Loader writes one source's worth of xrefs inside a single transaction.
// Inserts are idempotent: re-loading a file upserts rather than
// duplicating rows.
type Loader struct {
	db        *DB
	tx        *sql.Tx
	sourceID  int64
	speciesID int
	stats     LoadStats
}

// LoadStats counts what a Loader wrote.
type LoadStats struct {
	Xrefs          int64
	PrimaryXrefs   int64
	DependentXrefs int64
	Synonyms       int64
}

// BeginLoad opens a transaction for the named source, creating the source
// row if needed.
func (db *DB) BeginLoad(sourceName string, priority, speciesID int) (*Loader, error) {
	const op xerrors.Op = "database.BeginLoad"

	sourceID, err := db.EnsureSource(sourceName, priority)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindDatabase, err)
	}
	return &Loader{db: db, tx: tx, sourceID: sourceID, speciesID: speciesID}, nil
}

// EnsureSource returns the id of the named source, creating it if absent.
func (db *DB) EnsureSource(name string, priority int) (int64, error) {
	_, err := db.Exec(`INSERT INTO source (name, priority) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET priority = excluded.priority`, name, priority)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.QueryRow(`SELECT source_id FROM source WHERE name = ?`, name).Scan(&id)
	return id, err
}

// AddXref upserts one xref row and returns its id.
func (l *Loader) AddXref(accession, label, description, infoType string) (int64, error) {
	const op xerrors.Op = "database.AddXref"

	if infoType == "" {
		infoType = InfoTypeDirect
	}
	_, err := l.tx.Exec(`INSERT INTO xref (accession, label, description, source_id, species_id, info_type)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(accession, source_id, species_id) DO UPDATE SET
			label = excluded.label,
			description = excluded.description,
			info_type = excluded.info_type`,
		accession, label, description, l.sourceID, l.speciesID, infoType)
	if err != nil {
		return 0, xerrors.E(op, xerrors.KindDatabase, accession, err)
	}
	var id int64
	err = l.tx.QueryRow(`SELECT xref_id FROM xref WHERE accession = ? AND source_id = ? AND species_id = ?`,
		accession, l.sourceID, l.speciesID).Scan(&id)
	if err != nil {
		return 0, xerrors.E(op, xerrors.KindDatabase, accession, err)
	}
	l.stats.Xrefs++
	return id, nil
}

// AddPrimaryXref attaches a sequence payload to an xref.
func (l *Loader) AddPrimaryXref(xrefID int64, sequence, sequenceType, status string) error {
	const op xerrors.Op = "database.AddPrimaryXref"

	_, err := l.tx.Exec(`INSERT INTO primary_xref (xref_id, sequence, sequence_type, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(xref_id) DO UPDATE SET
			sequence = excluded.sequence,
			sequence_type = excluded.sequence_type,
			status = excluded.status`,
		xrefID, sequence, sequenceType, status)
	if err != nil {
		return xerrors.E(op, xerrors.KindDatabase, err)
	}
	l.stats.PrimaryXrefs++
	return nil
}

// AddDependentXref links a dependent xref to its master.
func (l *Loader) AddDependentXref(masterID, dependentID int64, linkage string) error {
	const op xerrors.Op = "database.AddDependentXref"

	_, err := l.tx.Exec(`INSERT OR IGNORE INTO dependent_xref
		(master_xref_id, dependent_xref_id, linkage_annotation) VALUES (?, ?, ?)`,
		masterID, dependentID, linkage)
	if err != nil {
		return xerrors.E(op, xerrors.KindDatabase, err)
	}
	l.stats.DependentXrefs++
	return nil
}

// AddSynonym records an alternative label for an xref.
func (l *Loader) AddSynonym(xrefID int64, synonym string) error {
	const op xerrors.Op = "database.AddSynonym"

	_, err := l.tx.Exec(`INSERT OR IGNORE INTO synonym (xref_id, synonym) VALUES (?, ?)`,
		xrefID, synonym)
	if err != nil {
		return xerrors.E(op, xerrors.KindDatabase, err)
	}
	l.stats.Synonyms++
	return nil
}

// Stats returns what has been written so far.
func (l *Loader) Stats() LoadStats {
	return l.stats
}

// Commit finishes the load.
func (l *Loader) Commit() error {
	return xerrors.Wrap("database.Commit", l.tx.Commit())
}

// Rollback abandons the load. Safe to call after Commit.
func (l *Loader) Rollback() error {
	err := l.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return xerrors.Wrap("database.Rollback", err)
}
