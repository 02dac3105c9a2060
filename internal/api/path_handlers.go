package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rflorenc/jenkins-workbench/internal/jenkins"
	"github.com/rflorenc/jenkins-workbench/internal/resource"
)

type pathResult struct {
	InstanceID string        `json:"instance_id,omitempty"`
	Base       string        `json:"base"`
	Path       resource.Spec `json:"path"`
	Encoded    string        `json:"encoded"`
	URL        string        `json:"url,omitempty"`
	APIURL     string        `json:"api_url"`
}

// base picks the URL paths are resolved against: an explicit base, the
// instance named by id, or the registered instance rawURL belongs to.
func (s *Server) base(base, instanceID, rawURL string) (string, string, bool) {
	if base != "" {
		return base, "", true
	}
	if instanceID != "" {
		inst := s.Instances.Get(instanceID)
		if inst == nil {
			return "", "", false
		}
		return inst.BaseURL(), inst.ID, true
	}
	if inst := s.Instances.Match(rawURL); inst != nil {
		return inst.BaseURL(), inst.ID, true
	}
	return "", "", true
}

func (s *Server) pathResult(base, instanceID string, p resource.Path, tree resource.Tree) pathResult {
	res := pathResult{
		InstanceID: instanceID,
		Base:       base,
		Path:       resource.Describe(p),
		Encoded:    resource.Encode(p),
		APIURL:     resource.APIURL(base, p, tree),
	}
	if base != "" {
		res.URL = base + res.Encoded
	}
	return res
}

// DecodePath classifies a URL returned by Jenkins into a resource path.
func (s *Server) DecodePath(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL        string `json:"url"`
		InstanceID string `json:"instance_id"`
		Base       string `json:"base"`
		Tree       string `json:"tree"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tree, err := resource.ParseTree(req.Tree)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	base, instanceID, ok := s.base(req.Base, req.InstanceID, req.URL)
	if !ok {
		writeError(w, http.StatusNotFound, "instance not found")
		return
	}
	p := resource.Decode(req.URL, base)
	writeJSON(w, http.StatusOK, s.pathResult(base, instanceID, p, tree))
}

// EncodePath renders a path described in JSON.
func (s *Server) EncodePath(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path       resource.Spec `json:"path"`
		InstanceID string        `json:"instance_id"`
		Base       string        `json:"base"`
		Tree       string        `json:"tree"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := req.Path.Path()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tree, err := resource.ParseTree(req.Tree)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	base, instanceID, ok := s.base(req.Base, req.InstanceID, "")
	if !ok {
		writeError(w, http.StatusNotFound, "instance not found")
		return
	}
	writeJSON(w, http.StatusOK, s.pathResult(base, instanceID, p, tree))
}

type linkResult struct {
	Rel   string      `json:"rel"`
	Path  *pathResult `json:"path,omitempty"`
	Error string      `json:"error,omitempty"`
}

// RecordLinks decodes a record (?family=Job by default) and resolves the
// URLs it carries against the instance.
func (s *Server) RecordLinks(w http.ResponseWriter, r *http.Request) {
	inst := s.Instances.Get(chi.URLParam(r, "id"))
	if inst == nil {
		writeError(w, http.StatusNotFound, "instance not found")
		return
	}
	family := r.URL.Query().Get("family")
	if family == "" {
		family = "Job"
	}
	v, err := readWire(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	decoded, err := jenkins.Decode(family, v)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, jenkins.ErrUnknownFamily) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	links := []linkResult{}
	for _, l := range jenkins.Links(inst.BaseURL(), decoded.Value) {
		lr := linkResult{Rel: l.Rel}
		if l.Err != nil {
			lr.Error = l.Err.Error()
		} else {
			res := s.pathResult(inst.BaseURL(), inst.ID, l.Path, resource.Tree{})
			lr.Path = &res
		}
		links = append(links, lr)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"family": decoded.Family,
		"class":  decoded.Class,
		"known":  decoded.Known,
		"links":  links,
	})
}
