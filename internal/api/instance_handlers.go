package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rflorenc/jenkins-workbench/internal/models"
)

func (s *Server) CreateInstance(w http.ResponseWriter, r *http.Request) {
	var inst models.Instance
	if err := readJSON(r, &inst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inst.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Instances.Create(&inst)
	s.Logger.Info("instance created", "id", inst.ID, "name", inst.Name, "url", inst.BaseURL())
	writeJSON(w, http.StatusCreated, inst)
}

func (s *Server) ListInstances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Instances.List())
}

func (s *Server) GetInstance(w http.ResponseWriter, r *http.Request) {
	inst := s.Instances.Get(chi.URLParam(r, "id"))
	if inst == nil {
		writeError(w, http.StatusNotFound, "instance not found")
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) UpdateInstance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var inst models.Instance
	if err := readJSON(r, &inst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inst.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inst.ID = id
	if !s.Instances.Update(&inst) {
		writeError(w, http.StatusNotFound, "instance not found")
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) DeleteInstance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Instances.Delete(id) {
		writeError(w, http.StatusNotFound, "instance not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
