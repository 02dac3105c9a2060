package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rflorenc/jenkins-workbench/internal/scan"
)

// StartScan scans a directory of captured responses in the background.
func (s *Server) StartScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dir string `json:"dir"`
	}
	if s.CapturesDir == "" {
		writeError(w, http.StatusForbidden, "scans are disabled: no captures directory is configured")
		return
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := s.scanDir(req.Dir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		writeError(w, http.StatusBadRequest, "not a directory: "+req.Dir)
		return
	}

	job := s.Jobs.Create("scan", dir)
	ctx := job.Context()
	s.Logger.Info("scan started", "job", job.ID, "dir", dir)

	go func() {
		report, err := scan.Dir(ctx, dir, job.AppendLog)
		if err != nil {
			job.AppendLog("ERROR: " + err.Error())
			job.Fail(err.Error())
			s.Logger.Warn("scan failed", "job", job.ID, "error", err)
			return
		}
		job.Complete(report)
		s.Logger.Info("scan completed", "job", job.ID, "files", report.Files, "findings", len(report.Findings))
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// scanDir resolves dir relative to CapturesDir; it may not leave it.
func (s *Server) scanDir(dir string) (string, error) {
	root := filepath.Clean(s.CapturesDir)
	full := filepath.Join(root, dir)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("dir %q is outside the captures directory", dir)
	}
	return full, nil
}
