package database

// Info types classify how an xref was attached to the schema.
const (
	InfoTypeDirect    = "DIRECT"
	InfoTypeDependent = "DEPENDENT"
	InfoTypeSequence  = "SEQUENCE_MATCH"
)

// Xref is one cross-reference row.
type Xref struct {
	ID          int64  `json:"xref_id"`
	Accession   string `json:"accession"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	SourceID    int64  `json:"source_id"`
	SourceName  string `json:"source,omitempty"` // joined in on reads
	SpeciesID   int    `json:"species_id"`
	InfoType    string `json:"info_type"`
}

// PrimaryXref carries the sequence payload of a sequence-bearing xref.
type PrimaryXref struct {
	XrefID       int64  `json:"xref_id"`
	Sequence     string `json:"sequence"`
	SequenceType string `json:"sequence_type"` // peptide, dna, undefined
	Status       string `json:"status,omitempty"`
}

// DependentXref links an xref to the master xref it was derived from.
type DependentXref struct {
	MasterXrefID      int64  `json:"master_xref_id"`
	DependentXrefID   int64  `json:"dependent_xref_id"`
	LinkageAnnotation string `json:"linkage_annotation,omitempty"`
}

// Stats summarises the store for the CLI and the API.
type Stats struct {
	Xrefs          int64            `json:"xrefs"`
	PrimaryXrefs   int64            `json:"primary_xrefs"`
	DependentXrefs int64            `json:"dependent_xrefs"`
	Synonyms       int64            `json:"synonyms"`
	BySource       map[string]int64 `json:"by_source"`
}
