package uniprot

import (
	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// terminator ends a record. Column-aligned input guarantees it occupies
// the prefix columns.
const terminator = "//"

// headerWidth is the number of columns occupied by the two-character
// prefix and the three blanks that follow it. Content starts at column 5;
// for sequence payload lines the prefix columns hold two blanks.
const headerWidth = 5

// RawRecord maps a two-character line prefix to the content of its lines,
// in input order, header columns stripped. Every key present maps to a
// non-empty slice.
type RawRecord map[string][]string

// lineSource is the subset of reader.LineReader the assembler pulls from.
type lineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// assembler groups lines into records. It never parses field content;
// it only splits and groups.
type assembler struct {
	src      lineSource
	interest map[string]bool // prefixes worth keeping
}

func newAssembler(src lineSource, interest map[string]bool) *assembler {
	return &assembler{src: src, interest: interest}
}

// next returns the next complete record, in input order. done is true at
// clean end of stream. A record seen between consecutive terminators is
// returned empty; the caller detects it. Buffered fields at end of stream
// without a terminator are an IncompleteRecord error.
func (a *assembler) next() (rec RawRecord, done bool, err error) {
	const op xerrors.Op = "uniprot.next"

	rec = make(RawRecord)
	for a.src.Scan() {
		line := a.src.Text()
		if len(line) < 2 {
			continue
		}
		prefix := line[:2]
		if prefix == terminator {
			return rec, false, nil
		}
		if !a.interest[prefix] {
			continue
		}
		content := ""
		if len(line) > headerWidth {
			content = line[headerWidth:]
		}
		rec[prefix] = append(rec[prefix], content)
	}
	if err := a.src.Err(); err != nil {
		return nil, false, err
	}
	if len(rec) > 0 {
		return nil, false, xerrors.IncompleteRecord(op)
	}
	return nil, true, nil
}
