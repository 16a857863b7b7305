// Package uniprot implements a streaming parser for the UniProt-KB text
// exchange format. One record is held in memory at a time; records are
// filtered by species before the expensive field decoders run, and each
// surviving record is emitted as a structured Entry for the downstream
// xref loader.
package uniprot

import (
	"strings"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
	"github.com/avullo/ensembl-xref/internal/reader"
)

// Field prefixes understood by the decoders. PrefixSequence is the
// two-blank prefix of sequence payload lines.
const (
	PrefixID       = "ID"
	PrefixAC       = "AC"
	PrefixDE       = "DE"
	PrefixDR       = "DR"
	PrefixGN       = "GN"
	PrefixOX       = "OX"
	PrefixPE       = "PE"
	PrefixRG       = "RG"
	PrefixSQ       = "SQ"
	PrefixSequence = "  "
)

// DefaultMandatoryPrefixes returns the production set of prefixes every
// record must carry.
func DefaultMandatoryPrefixes() []string {
	return []string{PrefixID, PrefixAC, PrefixOX, PrefixSQ, PrefixSequence}
}

// DefaultOptionalPrefixes returns the production set of prefixes whose
// absence is tolerated.
func DefaultOptionalPrefixes() []string {
	return []string{PrefixDE, PrefixDR, PrefixGN, PrefixPE, PrefixRG}
}

// Options configures an Extractor.
type Options struct {
	FileNames         []string // only the first is consumed
	MandatoryPrefixes []string // prefixes that must be present in every record
	OptionalPrefixes  []string // prefixes whose absence is tolerated
	SpeciesID         int
	SpeciesName       string // carried through; not used for filtering
	KeepUnreviewed    bool   // disable the unreviewed-first-accession skip
}

// Extractor pulls structured entries out of one UniProt-KB flat file.
// It is single-threaded; an instance owns its stream exclusively.
type Extractor struct {
	opts      Options
	mandatory []string
	src       *reader.LineReader
	asm       *assembler
	closed    bool
}

// unreviewedAccession marks TrEMBL-era placeholder records whose first
// accession literally reads "unreviewed".
const unreviewedAccession = "unreviewed"

// New opens the first configured file (with the reader's compression and
// path fallback) and returns a ready extractor. A prefix listed as both
// mandatory and optional is treated as mandatory.
func New(opts Options) (*Extractor, error) {
	const op xerrors.Op = "uniprot.New"

	if len(opts.FileNames) == 0 {
		return nil, xerrors.E(op, xerrors.KindConfig, "no file names")
	}

	interest := map[string]bool{}
	for _, p := range opts.MandatoryPrefixes {
		interest[p] = true
	}
	for _, p := range opts.OptionalPrefixes {
		interest[p] = true
	}

	src, err := reader.Open(opts.FileNames[0])
	if err != nil {
		return nil, err
	}

	ordered := make([]string, 0, len(opts.MandatoryPrefixes))
	seen := map[string]bool{}
	for _, p := range opts.MandatoryPrefixes {
		if !seen[p] {
			seen[p] = true
			ordered = append(ordered, p)
		}
	}

	return &Extractor{
		opts:      opts,
		mandatory: ordered,
		src:       src,
		asm:       newAssembler(src, interest),
	}, nil
}

// GetNextRecord returns the next record as an Entry, a Skip for records
// filtered out by species or curation status, or EndOfInput at a cleanly
// terminated stream. Any error is fatal to the batch: the grammar offers
// no unambiguous resync point inside a corrupt record. The underlying
// stream is released on end of input and on error, so a bare
// `defer x.Close()` is enough for early exits.
func (x *Extractor) GetNextRecord() (Result, error) {
	const op xerrors.Op = "uniprot.GetNextRecord"

	if x.closed {
		return Result{Kind: ResultEndOfInput}, nil
	}

	rec, done, err := x.asm.next()
	if err != nil {
		x.Close()
		return Result{}, err
	}
	if done {
		x.Close()
		return Result{Kind: ResultEndOfInput}, nil
	}

	// Consecutive terminators produce an empty record; it fails the
	// species check vacuously.
	if len(rec) == 0 {
		return Result{Kind: ResultSkip}, nil
	}

	for _, prefix := range x.mandatory {
		if len(rec[prefix]) == 0 {
			x.Close()
			return Result{}, xerrors.MissingField(op, prefix)
		}
	}

	// Species gate: only AC and OX are decoded before deciding whether
	// the record deserves full decoding.
	accessions := decodeAccessions(rec[PrefixAC])
	if len(accessions) == 0 {
		x.Close()
		return Result{}, xerrors.MalformedField(op, PrefixAC, strings.Join(rec[PrefixAC], ""))
	}
	if !x.opts.KeepUnreviewed && strings.EqualFold(accessions[0], unreviewedAccession) {
		return Result{Kind: ResultSkip}, nil
	}

	taxonomyIDs, err := decodeTaxonomy(rec[PrefixOX])
	if err != nil {
		x.Close()
		return Result{}, err
	}
	if !matchesSpecies(taxonomyIDs, x.opts.SpeciesID) {
		return Result{Kind: ResultSkip}, nil
	}

	entry, err := x.buildEntry(rec, accessions)
	if err != nil {
		x.Close()
		return Result{}, err
	}
	return Result{Kind: ResultEntry, Entry: entry}, nil
}

// buildEntry runs the remaining decoders over a species-matched record.
func (x *Extractor) buildEntry(rec RawRecord, accessions []string) (*Entry, error) {
	entry := &Entry{
		AccessionNumbers: accessions,
		CitationGroups:   []string{},
		CrossReferences:  map[string][]CrossRef{},
		GeneNames:        []GeneNameGroup{},
	}

	if groups := decodeCitationGroups(rec[PrefixRG]); groups != nil {
		entry.CitationGroups = groups
	}
	if lines := rec[PrefixDR]; len(lines) > 0 {
		refs, err := decodeCrossReferences(lines)
		if err != nil {
			return nil, err
		}
		entry.CrossReferences = refs
	}
	entry.Description = decodeDescription(rec[PrefixDE])
	if lines := rec[PrefixGN]; len(lines) > 0 {
		groups, err := decodeGeneNames(lines)
		if err != nil {
			return nil, err
		}
		entry.GeneNames = groups
	}
	if lines := rec[PrefixID]; len(lines) > 0 {
		status, err := decodeStatus(lines)
		if err != nil {
			return nil, err
		}
		entry.Quality.Status = status
	}
	if lines := rec[PrefixPE]; len(lines) > 0 {
		level, err := decodeEvidenceLevel(lines)
		if err != nil {
			return nil, err
		}
		entry.Quality.EvidenceLevel = level
	}
	entry.Sequence = decodeSequence(rec[PrefixSQ], rec[PrefixSequence])

	return entry, nil
}

// SpeciesName returns the configured species name, carried through for
// the orchestration layer.
func (x *Extractor) SpeciesName() string {
	return x.opts.SpeciesName
}

// Path returns the input path actually opened after fallback resolution.
func (x *Extractor) Path() string {
	return x.src.Path()
}

// Close releases the underlying stream. Safe to call more than once;
// GetNextRecord calls it on end of input and on error.
func (x *Extractor) Close() error {
	if x.closed {
		return nil
	}
	x.closed = true
	return x.src.Close()
}
