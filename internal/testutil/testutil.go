// Package testutil provides shared fixtures for pipeline-level tests: a
// canned UniProt-KB record, TSV snippets and a disposable xref store.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avullo/ensembl-xref/internal/database"
)

// UniProtHumanEntry is a minimal reviewed human record followed by a
// mouse record, so species filtering is observable.
const UniProtHumanEntry = `ID   TEST_HUMAN              Reviewed;         100 AA.
AC   P12345; Q67890;
DE   RecName: Full=Test protein;
GN   Name=TP1; Synonyms=alias1, alias2;
DR   Ensembl; ENST00000001; ENSP00000001. [P12345-2].
OX   NCBI_TaxID=9606;
PE   1: Evidence at protein level;
SQ   SEQUENCE   5 AA;  500 MW;  XXXX CRC64;
     MAKER
//
ID   OTHER_MOUSE             Reviewed;         100 AA.
AC   M11111;
OX   NCBI_TaxID=10090;
SQ   SEQUENCE   5 AA;  500 MW;  XXXX CRC64;
     MAKER
//
`

// ReactomeTSV is two direct-mapping rows, one per species.
const ReactomeTSV = "ENSG00000001\tR-HSA-1\thttps://reactome.org/content/detail/R-HSA-1\tSignal Transduction\tTAS\tHomo sapiens\n" +
	"ENSMUSG0001\tR-MMU-1\thttps://reactome.org/content/detail/R-MMU-1\tSignal Transduction\tTAS\tMus musculus\n"

// WriteFile drops content under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// NewDB opens a disposable xref store, closed with the test.
func NewDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "xref.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// LoadSample commits one xref with a synonym and a dependent, for query
// and API tests.
func LoadSample(t *testing.T, db *database.DB) int64 {
	t.Helper()
	l, err := db.BeginLoad("UniProtSwissProt", 1, 9606)
	if err != nil {
		t.Fatalf("BeginLoad: %v", err)
	}
	masterID, err := l.AddXref("P12345", "TP1", "Test protein", database.InfoTypeSequence)
	if err != nil {
		t.Fatalf("AddXref: %v", err)
	}
	if err := l.AddPrimaryXref(masterID, "MAKER", "peptide", "Reviewed"); err != nil {
		t.Fatalf("AddPrimaryXref: %v", err)
	}
	if err := l.AddSynonym(masterID, "Q67890"); err != nil {
		t.Fatalf("AddSynonym: %v", err)
	}
	depID, err := l.AddXref("ENST00000001", "", "", database.InfoTypeDependent)
	if err != nil {
		t.Fatalf("AddXref dependent: %v", err)
	}
	if err := l.AddDependentXref(masterID, depID, "Ensembl"); err != nil {
		t.Fatalf("AddDependentXref: %v", err)
	}
	if err := l.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return masterID
}
