package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avullo/ensembl-xref/internal/database"
)

// xrefResponse is one accession's full view: every matching xref row
// with its synonyms, sequence payload and dependents.
type xrefResponse struct {
	Accession string       `json:"accession"`
	Xrefs     []xrefDetail `json:"xrefs"`
}

type xrefDetail struct {
	database.Xref
	Synonyms   []string              `json:"synonyms,omitempty"`
	Primary    *database.PrimaryXref `json:"primary,omitempty"`
	Dependents []database.Xref       `json:"dependents,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleXref(w http.ResponseWriter, r *http.Request) {
	accession := mux.Vars(r)["accession"]

	xrefs, err := s.db.GetXrefs(accession)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(xrefs) == 0 {
		s.writeError(w, http.StatusNotFound, "no xref for accession "+accession)
		return
	}

	resp := xrefResponse{Accession: accession}
	for _, x := range xrefs {
		detail := xrefDetail{Xref: x}
		if detail.Synonyms, err = s.db.GetSynonyms(x.ID); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if detail.Primary, err = s.db.GetPrimaryXref(x.ID); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if detail.Dependents, err = s.db.GetDependents(x.ID); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Xrefs = append(resp.Xrefs, detail)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		s.writeError(w, http.StatusNotFound, "search index not configured")
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > 1000 {
		limit = 1000
	}

	hits, err := s.index.Search(q, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": q,
		"hits":  hits,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
