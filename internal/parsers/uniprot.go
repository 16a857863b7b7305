package parsers

import (
	"context"

	"github.com/avullo/ensembl-xref/internal/database"
	xerrors "github.com/avullo/ensembl-xref/internal/errors"
	"github.com/avullo/ensembl-xref/internal/uniprot"
)

func init() {
	Register("uniprot", func() Parser { return &UniProtParser{} })
}

// UniProtParser streams a UniProt-KB flat file through the extractor and
// persists each species-matched entry: the primary accession becomes a
// sequence-bearing xref, secondary accessions and gene synonyms become
// synonyms, and DR cross-references hang off the entry as dependent
// xrefs.
type UniProtParser struct{}

// Name returns the registry key.
func (p *UniProtParser) Name() string { return "uniprot" }

// Run consumes the first configured file until end of input.
func (p *UniProtParser) Run(ctx context.Context, src Source, loader Loader) (Stats, error) {
	const op xerrors.Op = "parsers.uniprot.Run"

	var stats Stats
	x, err := uniprot.New(uniprot.Options{
		FileNames:         src.Files,
		MandatoryPrefixes: uniprot.DefaultMandatoryPrefixes(),
		OptionalPrefixes:  uniprot.DefaultOptionalPrefixes(),
		SpeciesID:         src.SpeciesID,
		SpeciesName:       src.SpeciesName,
		KeepUnreviewed:    src.KeepUnreviewed,
	})
	if err != nil {
		return stats, err
	}
	defer x.Close()

	for {
		if err := ctx.Err(); err != nil {
			return stats, xerrors.Wrap(op, err)
		}
		res, err := x.GetNextRecord()
		if err != nil {
			return stats, err
		}
		switch res.Kind {
		case uniprot.ResultEndOfInput:
			return stats, nil
		case uniprot.ResultSkip:
			stats.Seen++
			stats.Skipped++
		case uniprot.ResultEntry:
			stats.Seen++
			if err := storeEntry(res.Entry, loader); err != nil {
				return stats, err
			}
			stats.Loaded++
		}
	}
}

// storeEntry maps one structured entry onto the xref schema.
func storeEntry(e *uniprot.Entry, loader Loader) error {
	label := e.AccessionNumbers[0]
	if len(e.GeneNames) > 0 && e.GeneNames[0].Name != "" {
		label = e.GeneNames[0].Name
	}

	masterID, err := loader.AddXref(e.AccessionNumbers[0], label, e.Description, database.InfoTypeSequence)
	if err != nil {
		return err
	}
	if e.Sequence.Seq != "" {
		err = loader.AddPrimaryXref(masterID, e.Sequence.Seq, string(e.Sequence.Type), string(e.Quality.Status))
		if err != nil {
			return err
		}
	}
	for _, secondary := range e.AccessionNumbers[1:] {
		if err := loader.AddSynonym(masterID, secondary); err != nil {
			return err
		}
	}
	for _, group := range e.GeneNames {
		for _, synonym := range group.Values["Synonyms"] {
			if err := loader.AddSynonym(masterID, synonym); err != nil {
				return err
			}
		}
	}
	for abbrev, refs := range e.CrossReferences {
		for _, ref := range refs {
			depID, err := loader.AddXref(ref.ID, "", "", database.InfoTypeDependent)
			if err != nil {
				return err
			}
			if err := loader.AddDependentXref(masterID, depID, abbrev); err != nil {
				return err
			}
		}
	}
	return nil
}
