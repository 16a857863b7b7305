// Package errors provides structured error handling for the xref pipeline.
// Errors carry an operation name, a category, and whatever field-level
// context (line prefix, taxonomy qualifier, offending substring) is needed
// to locate a bad record in a multi-megabyte input file.
package errors

import (
	"errors"
	"strings"
)

// Op represents an operation name for error context.
type Op string

// Kind represents the category of error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindIO
	KindConfig
	KindDatabase
	KindParse

	// Extractor-specific kinds.
	KindNoInput          // no readable input file after all fallback candidates
	KindIncompleteRecord // end of stream with buffered fields but no terminator
	KindMissingField     // a mandatory line prefix was absent from a record
	KindMalformedField   // field content did not match its grammar
	KindUnknownTaxonDB   // taxonomy qualifier not in the static table
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	case KindDatabase:
		return "database"
	case KindParse:
		return "parse"
	case KindNoInput:
		return "no input"
	case KindIncompleteRecord:
		return "incomplete record"
	case KindMissingField:
		return "missing field"
	case KindMalformedField:
		return "malformed field"
	case KindUnknownTaxonDB:
		return "unknown taxonomy database"
	default:
		return "unknown"
	}
}

// Error represents an application error with context.
type Error struct {
	Op     Op     // Operation that failed
	Kind   Kind   // Category of error
	Prefix string // Two-character line prefix, when field-related
	Msg    string // Additional context message
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Prefix != "" {
		b.WriteString(" [")
		b.WriteString(e.Prefix)
		b.WriteString("]")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error with the given arguments.
// Arguments can be: Op, Kind, error, string (message).
func E(args ...interface{}) *Error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case string:
			e.Msg = a
		}
	}
	return e
}

// NoInput reports that none of the candidate paths yielded a readable stream.
func NoInput(op Op, path string, err error) *Error {
	return &Error{Op: op, Kind: KindNoInput, Msg: path, Err: err}
}

// IncompleteRecord reports end-of-stream with fields buffered but no "//".
func IncompleteRecord(op Op) *Error {
	return &Error{Op: op, Kind: KindIncompleteRecord}
}

// MissingField reports that a mandatory prefix was absent from a record.
func MissingField(op Op, prefix string) *Error {
	return &Error{Op: op, Kind: KindMissingField, Prefix: prefix}
}

// MalformedField reports field content that did not match its grammar.
// The detail should quote enough of the offending line to locate it.
func MalformedField(op Op, prefix, detail string) *Error {
	return &Error{Op: op, Kind: KindMalformedField, Prefix: prefix, Msg: detail}
}

// UnknownTaxonDB reports an OX entry naming a taxonomy database that is
// not in the static qualifier table.
func UnknownTaxonDB(op Op, qualifier string) *Error {
	return &Error{Op: op, Kind: KindUnknownTaxonDB, Prefix: "OX", Msg: qualifier}
}

// Wrap wraps an error with an operation name for context.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapMsg wraps an error with an operation name and message.
func WrapMsg(op Op, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Msg: msg, Err: err}
}

// IsKind checks if an error (or anything it wraps) is of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the kind of the first categorised error in the chain,
// or KindUnknown.
func GetKind(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind != KindUnknown {
			return e.Kind
		}
		err = errors.Unwrap(err)
	}
	return KindUnknown
}
