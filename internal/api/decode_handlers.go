package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rflorenc/jenkins-workbench/internal/jenkins"
)

type familyInfo struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes"`
}

// ListFamilies returns every family with its registered classes, and the
// names of the plain records /api/decode also accepts.
func (s *Server) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families := []familyInfo{}
	for _, name := range jenkins.Families() {
		classes, err := jenkins.Classes(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		families = append(families, familyInfo{Name: name, Classes: classes})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"families": families,
		"records":  jenkins.Records(),
	})
}

func (s *Server) GetFamily(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "family")
	classes, err := jenkins.Classes(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, familyInfo{Name: name, Classes: classes})
}

// DecodeRecord decodes the request body as a member of the family, or as the
// named plain record. With ?narrow=1 a family value is decoded as an
// envelope first and then narrowed to its class.
func (s *Server) DecodeRecord(w http.ResponseWriter, r *http.Request) {
	family := chi.URLParam(r, "family")
	v, err := readWire(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var out interface{}
	if r.URL.Query().Get("narrow") == "1" {
		out, err = jenkins.Narrow(family, v)
	} else {
		out, err = jenkins.Decode(family, v)
	}
	switch {
	case errors.Is(err, jenkins.ErrUnknownFamily):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.Logger.Debug("decode failed", "family", family, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeJSON(w, http.StatusOK, out)
	}
}
