package uniprot

import "encoding/json"

// Status is the curation status from the ID line.
type Status string

const (
	StatusReviewed   Status = "Reviewed"   // SwissProt, manually curated
	StatusUnreviewed Status = "Unreviewed" // TrEMBL, automatic
)

// Quality combines the ID-line status with the PE protein-existence level.
// A zero EvidenceLevel means the PE line was absent.
type Quality struct {
	Status        Status `json:"status,omitempty"`
	EvidenceLevel int    `json:"evidence_level,omitempty"`
}

// SequenceType classifies the SQ payload by its declared unit.
type SequenceType string

const (
	SequencePeptide   SequenceType = "peptide"
	SequenceDNA       SequenceType = "dna"
	SequenceUndefined SequenceType = "undefined"
)

// Sequence is the decoded SQ block: the declared type and the payload with
// all whitespace and mid-sequence counts removed.
type Sequence struct {
	Type SequenceType `json:"type"`
	Seq  string       `json:"seq"`
}

// CrossRef is one decoded DR line, keyed under its resource abbreviation
// in Entry.CrossReferences.
type CrossRef struct {
	ID            string   `json:"id"`
	OptionalInfo  []string `json:"optional_info,omitempty"`
	TargetIsoform string   `json:"target_isoform,omitempty"`
}

// GeneNameGroup is one gene's worth of GN tokens. Name is the only scalar
// token; every other token (Synonyms, OrderedLocusNames, ORFNames, ...)
// carries an ordered list and lives in Values.
type GeneNameGroup struct {
	Name   string
	Values map[string][]string
}

// MarshalJSON flattens the group into a single token→value object, the
// shape downstream consumers read.
func (g GeneNameGroup) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(g.Values)+1)
	if g.Name != "" {
		m["Name"] = g.Name
	}
	for k, v := range g.Values {
		m[k] = v
	}
	return json.Marshal(m)
}

// Entry is the structured, input-format-independent representation of one
// UniProt-KB record, ready for the transform stage.
type Entry struct {
	AccessionNumbers []string              `json:"accession_numbers"`
	CitationGroups   []string              `json:"citation_groups"`
	CrossReferences  map[string][]CrossRef `json:"crossreferences"`
	Description      string                `json:"description,omitempty"`
	GeneNames        []GeneNameGroup       `json:"gene_names"`
	Quality          Quality               `json:"quality"`
	Sequence         Sequence              `json:"sequence"`
}

// ResultKind discriminates the outcomes of GetNextRecord.
type ResultKind int

const (
	// ResultEntry carries a fully decoded record.
	ResultEntry ResultKind = iota
	// ResultSkip marks a record that parsed cleanly but was filtered out
	// (wrong species, unreviewed first accession, empty record).
	ResultSkip
	// ResultEndOfInput marks a cleanly terminated stream.
	ResultEndOfInput
)

// String returns a short label for logging.
func (k ResultKind) String() string {
	switch k {
	case ResultEntry:
		return "entry"
	case ResultSkip:
		return "skip"
	case ResultEndOfInput:
		return "end of input"
	default:
		return "unknown"
	}
}

// Result is one pull from the extractor. Entry is set only when Kind is
// ResultEntry.
type Result struct {
	Kind  ResultKind
	Entry *Entry
}
