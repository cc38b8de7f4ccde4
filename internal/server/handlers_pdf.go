package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// GenerateRequest is the body of POST /api/pdf/generate.
type GenerateRequest struct {
	ResumeData *types.ResumeDocument `json:"resumeData"`
}

// handleGeneratePDF renders the submitted resume and returns it as a download.
// The whole PDF is produced before anything is written, so a failure never yields a partial file.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondError(w, s.log, err)
			return
		}
		respondError(w, s.log, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.ResumeData == nil {
		respondError(w, s.log, layout.ErrMissingInput)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(req.ResumeData, &buf); err != nil {
		respondError(w, s.log, fmt.Errorf("failed to render resume: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, req.ResumeData.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.WithError(err).Warn("failed to write PDF response")
	}
}
