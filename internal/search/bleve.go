// Package search maintains a Bleve full-text index over the loaded
// xrefs, so accessions can be found from labels, descriptions and
// synonyms.
package search

import (
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/avullo/ensembl-xref/internal/database"
	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// Index wraps the Bleve search index. Documents are keyed by xref id.
type Index struct {
	index bleve.Index
	path  string
}

// Document is the indexed projection of one xref.
type Document struct {
	Accession   string   `json:"accession"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Synonyms    []string `json:"synonyms"`
	Source      string   `json:"source"`
}

// Hit is one search result.
type Hit struct {
	XrefID    int64   `json:"xref_id"`
	Accession string  `json:"accession"`
	Score     float64 `json:"score"`
}

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	const op xerrors.Op = "search.Open"

	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, createIndexMapping())
	}
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindIO, path, err)
	}
	return &Index{index: index, path: path}, nil
}

// createIndexMapping keeps accessions and sources exact-match while
// labels, descriptions and synonyms get full-text analysis.
func createIndexMapping() mapping.IndexMapping {
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	textField := bleve.NewTextFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("accession", keywordField)
	doc.AddFieldMappingsAt("source", keywordField)
	doc.AddFieldMappingsAt("label", textField)
	doc.AddFieldMappingsAt("description", textField)
	doc.AddFieldMappingsAt("synonyms", textField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = doc
	return indexMapping
}

// IndexXref adds or replaces one xref's document.
func (i *Index) IndexXref(x database.Xref, synonyms []string) error {
	const op xerrors.Op = "search.IndexXref"

	doc := Document{
		Accession:   x.Accession,
		Label:       x.Label,
		Description: x.Description,
		Synonyms:    synonyms,
		Source:      x.SourceName,
	}
	return xerrors.Wrap(op, i.index.Index(strconv.FormatInt(x.ID, 10), doc))
}

// Build indexes every xref in the store and returns how many documents
// were written.
func (i *Index) Build(db *database.DB) (int, error) {
	const op xerrors.Op = "search.Build"

	// The store runs on a single connection, so synonyms are looked up
	// only after the xref walk has released it.
	var xrefs []database.Xref
	err := db.ForEachXref(func(x database.Xref) error {
		xrefs = append(xrefs, x)
		return nil
	})
	if err != nil {
		return 0, xerrors.Wrap(op, err)
	}

	batch := i.index.NewBatch()
	count := 0
	for _, x := range xrefs {
		synonyms, err := db.GetSynonyms(x.ID)
		if err != nil {
			return count, xerrors.Wrap(op, err)
		}
		doc := Document{
			Accession:   x.Accession,
			Label:       x.Label,
			Description: x.Description,
			Synonyms:    synonyms,
			Source:      x.SourceName,
		}
		if err := batch.Index(strconv.FormatInt(x.ID, 10), doc); err != nil {
			return count, xerrors.Wrap(op, err)
		}
		count++
		if batch.Size() >= 1000 {
			if err := i.index.Batch(batch); err != nil {
				return count, xerrors.Wrap(op, err)
			}
			batch = i.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := i.index.Batch(batch); err != nil {
			return count, xerrors.Wrap(op, err)
		}
	}
	return count, nil
}

// Search runs a match query over all indexed fields.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	const op xerrors.Op = "search.Search"

	if limit <= 0 {
		limit = 20
	}
	// Accessions are indexed verbatim, so an exact term query covers
	// them while the match query covers the analysed text fields.
	match := bleve.NewMatchQuery(query)
	exact := bleve.NewTermQuery(query)
	exact.SetField("accession")
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(match, exact), limit, 0, false)
	req.Fields = []string{"accession"}
	res, err := i.index.Search(req)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindIO, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		hit := Hit{XrefID: id, Score: h.Score}
		if acc, ok := h.Fields["accession"].(string); ok {
			hit.Accession = acc
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Close releases the index.
func (i *Index) Close() error {
	return xerrors.Wrap("search.Close", i.index.Close())
}
