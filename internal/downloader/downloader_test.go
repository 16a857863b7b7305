package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchDownloadsFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ID   TEST_HUMAN\n//\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := New(dir)

	path, err := d.Fetch(context.Background(), server.URL+"/uniprot_sprot.dat")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if filepath.Base(path) != "uniprot_sprot.dat" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "ID   TEST_HUMAN\n//\n" {
		t.Errorf("content = %q", data)
	}
}

func TestFetchSkipsExistingFile(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("remote"))
	}))
	defer server.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "cached.dat")
	if err := os.WriteFile(existing, []byte("local"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	d := New(dir)
	path, err := d.Fetch(context.Background(), server.URL+"/cached.dat")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if path != existing {
		t.Errorf("path = %q, want existing file", path)
	}
	if hits != 0 {
		t.Errorf("server hit %d times, want 0", hits)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "local" {
		t.Errorf("existing file overwritten: %q", data)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := New(t.TempDir())
	if _, err := d.Fetch(context.Background(), server.URL+"/missing.dat"); err == nil {
		t.Error("expected error for HTTP 404")
	}
}

func TestFetchAllStopsOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.dat" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := New(t.TempDir())
	paths, err := d.FetchAll(context.Background(), []string{
		server.URL + "/good.dat",
		server.URL + "/bad.dat",
		server.URL + "/never.dat",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(paths) != 1 {
		t.Errorf("paths = %q, want only the first", paths)
	}
}

func TestResolveGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tsv", "b.tsv"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	out, err := ResolveGlobs([]string{filepath.Join(dir, "*.tsv"), filepath.Join(dir, "absent.dat")})
	if err != nil {
		t.Fatalf("ResolveGlobs: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("out = %q, want two matches plus the literal", out)
	}
	if out[2] != filepath.Join(dir, "absent.dat") {
		t.Errorf("unmatched pattern should pass through, got %q", out[2])
	}
}
