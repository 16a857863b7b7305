// Package downloader acquires xref source files: remote dumps are fetched
// into the data directory, configured paths are expanded against what is
// already on disk.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// Downloader fetches source files over HTTP(S) into a data directory.
type Downloader struct {
	dataDir string
	client  *http.Client
}

// New returns a downloader writing into dataDir.
func New(dataDir string) *Downloader {
	return &Downloader{
		dataDir: dataDir,
		client: &http.Client{
			Timeout: 0, // dumps are large; rely on context cancellation
			Transport: &http.Transport{
				MaxIdleConns:       10,
				IdleConnTimeout:    30 * time.Second,
				DisableCompression: true, // archives are already compressed
			},
		},
	}
}

// Fetch downloads one URL into the data directory and returns the local
// path. An already-present file is kept; re-running a download never
// re-transfers what is on disk.
func (d *Downloader) Fetch(ctx context.Context, url string) (string, error) {
	const op xerrors.Op = "downloader.Fetch"

	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return "", xerrors.E(op, xerrors.KindConfig, "cannot derive file name from "+url)
	}
	dest := filepath.Join(d.dataDir, name)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	if err := os.MkdirAll(d.dataDir, 0o755); err != nil {
		return "", xerrors.E(op, xerrors.KindIO, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", xerrors.E(op, xerrors.KindIO, url, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", xerrors.E(op, xerrors.KindIO, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", xerrors.E(op, xerrors.KindIO, fmt.Sprintf("%s: HTTP %s", url, resp.Status))
	}

	// Write through a temp name so a failed transfer never looks like a
	// complete file.
	tmp, err := os.CreateTemp(d.dataDir, name+".part*")
	if err != nil {
		return "", xerrors.E(op, xerrors.KindIO, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", xerrors.E(op, xerrors.KindIO, url, err)
	}
	if err := tmp.Close(); err != nil {
		return "", xerrors.E(op, xerrors.KindIO, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", xerrors.E(op, xerrors.KindIO, err)
	}
	return dest, nil
}

// FetchAll downloads every URL, returning the local paths in order.
func (d *Downloader) FetchAll(ctx context.Context, urls []string) ([]string, error) {
	paths := make([]string, 0, len(urls))
	for _, url := range urls {
		p, err := d.Fetch(ctx, url)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ResolveGlobs expands configured file patterns against the filesystem.
// A pattern with no match is kept literally: the line reader's own
// fallback (appending or stripping compression suffixes) may still find
// the file.
func ResolveGlobs(patterns []string) ([]string, error) {
	const op xerrors.Op = "downloader.ResolveGlobs"

	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, xerrors.E(op, xerrors.KindConfig, pattern, err)
		}
		if len(matches) == 0 {
			out = append(out, pattern)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}
