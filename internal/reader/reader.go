// Package reader provides line-oriented access to xref source files with
// transparent decompression. Source dumps arrive in whatever form the
// provider publishes (.gz, .Z, .bz2, .xz or plain text), and listings in
// the species configuration frequently name the uncompressed file while
// the mirror holds a compressed one, so opening falls back across
// candidate paths before giving up.
package reader

import (
	"bufio"
	"compress/bzip2"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// scanBufferSize bounds a single input line. UniProt-KB lines are short,
// but other sources carry multi-kilobyte description columns.
const scanBufferSize = 1024 * 1024

// LineReader yields lines from a possibly-compressed source file.
type LineReader struct {
	path    string // path actually opened after fallback
	file    *os.File
	decomp  io.Closer // decompression layer needing Close, if any
	scanner *bufio.Scanner
	line    string
	err     error
	closed  bool
}

// Open resolves path against the fallback candidates and wraps the first
// one that opens in a decompressing line reader. Candidates are tried in
// order: the path as given, the path with ".gz" appended, and the path
// with a trailing ".gz" or ".Z" stripped. Returns a KindNoInput error if
// none opens.
func Open(path string) (*LineReader, error) {
	const op xerrors.Op = "reader.Open"

	var lastErr error
	for _, candidate := range candidates(path) {
		f, err := os.Open(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		r := &LineReader{path: candidate, file: f}
		if err := r.initStream(); err != nil {
			f.Close()
			return nil, xerrors.NoInput(op, candidate, err)
		}
		return r, nil
	}
	return nil, xerrors.NoInput(op, path, lastErr)
}

// candidates returns the fallback paths for a configured file name,
// original first.
func candidates(path string) []string {
	out := []string{path, path + ".gz"}
	for _, ext := range []string{".gz", ".Z"} {
		if strings.HasSuffix(path, ext) {
			out = append(out, strings.TrimSuffix(path, ext))
		}
	}
	return out
}

// initStream selects the decompression layer from the resolved file name
// and sets up line scanning.
func (r *LineReader) initStream() error {
	var src io.Reader = r.file

	switch {
	case strings.HasSuffix(r.path, ".gz"):
		zr, err := pgzip.NewReader(r.file)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		src, r.decomp = zr, zr
	case strings.HasSuffix(r.path, ".bz2"):
		src = bzip2.NewReader(r.file)
	case strings.HasSuffix(r.path, ".xz"):
		zr, err := xz.NewReader(r.file)
		if err != nil {
			return fmt.Errorf("xz: %w", err)
		}
		src = zr
	case strings.HasSuffix(r.path, ".Z"):
		zr, err := newCompressReader(r.file)
		if err != nil {
			return err
		}
		src, r.decomp = zr, zr
	}

	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, 64*1024), scanBufferSize)
	return nil
}

// newCompressReader decodes the Unix compress(1) container. Only plain
// LZW streams are handled; block mode (the CLEAR-code variant) is not.
func newCompressReader(f io.Reader) (io.ReadCloser, error) {
	var hdr [3]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return nil, fmt.Errorf("compress header: %w", err)
	}
	if hdr[0] != 0x1f || hdr[1] != 0x9d {
		return nil, fmt.Errorf("compress header: bad magic %02x%02x", hdr[0], hdr[1])
	}
	if hdr[2]&0x80 != 0 {
		return nil, fmt.Errorf("compress: block mode not supported")
	}
	return lzw.NewReader(f, lzw.MSB, 8), nil
}

// Path returns the path actually opened after fallback resolution.
func (r *LineReader) Path() string {
	return r.path
}

// Scan advances to the next line. It returns false at end of stream or on
// error; Err distinguishes the two.
func (r *LineReader) Scan() bool {
	if r.err != nil || r.closed {
		return false
	}
	if !r.scanner.Scan() {
		r.err = r.scanner.Err()
		return false
	}
	r.line = strings.TrimSuffix(r.scanner.Text(), "\r")
	return true
}

// Text returns the current line with the terminating newline (and any
// carriage return) stripped. Trailing whitespace is otherwise preserved.
func (r *LineReader) Text() string {
	return r.line
}

// Err returns the first error hit while scanning, nil at clean EOF.
func (r *LineReader) Err() error {
	return xerrors.Wrap("reader.Scan", r.err)
}

// Close releases the decompression layer and the underlying file. It is
// safe to call more than once.
func (r *LineReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var first error
	if r.decomp != nil {
		if err := r.decomp.Close(); err != nil {
			first = err
		}
	}
	if err := r.file.Close(); err != nil && first == nil {
		first = err
	}
	return xerrors.Wrap("reader.Close", first)
}
