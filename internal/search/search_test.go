package search

import (
	"path/filepath"
	"testing"

	"github.com/avullo/ensembl-xref/internal/database"
	"github.com/avullo/ensembl-xref/internal/testutil"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "xref.blv"))
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndexAndSearch(t *testing.T) {
	idx := openTestIndex(t)

	err := idx.IndexXref(database.Xref{
		ID:          1,
		Accession:   "P12345",
		Label:       "TP1",
		Description: "Test protein",
		SourceName:  "UniProtSwissProt",
	}, []string{"Q67890", "alias1"})
	if err != nil {
		t.Fatalf("IndexXref: %v", err)
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"protein", true},
		{"alias1", true},
		{"P12345", true},
		{"zebrafish", false},
	}
	for _, tt := range tests {
		hits, err := idx.Search(tt.query, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		found := len(hits) > 0
		if found != tt.want {
			t.Errorf("Search(%q) found=%v, want %v", tt.query, found, tt.want)
		}
		if found && hits[0].Accession != "P12345" {
			t.Errorf("Search(%q) accession = %q", tt.query, hits[0].Accession)
		}
	}
}

func TestBuildFromStore(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.LoadSample(t, db)

	idx := openTestIndex(t)
	count, err := idx.Build(db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if count != 2 {
		t.Errorf("indexed %d documents, want 2", count)
	}

	docs, err := idx.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if docs != 2 {
		t.Errorf("doc count = %d, want 2", docs)
	}

	// The synonym recorded in the store is searchable.
	hits, err := idx.Search("Q67890", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Accession != "P12345" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestOpenExistingIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xref.blv")
	idx, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := idx.IndexXref(database.Xref{ID: 1, Accession: "P12345"}, nil); err != nil {
		t.Fatalf("IndexXref: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	docs, err := reopened.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if docs != 1 {
		t.Errorf("doc count after reopen = %d, want 1", docs)
	}
}
