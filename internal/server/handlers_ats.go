package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// multipartOverhead is allowed on top of the file limit for the other form fields.
const multipartOverhead = 1 << 20

// AnalyzeResponse is the body of a successful POST /api/ats/analyze.
type AnalyzeResponse struct {
	Success  bool                  `json:"success"`
	Analysis *types.AnalysisResult `json:"analysis"`
	Model    string                `json:"model"`
}

// handleAnalyze scores an uploaded resume PDF against a job description given
// inline or as a posting URL.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxUpload := s.cfg.ATS.MaxUploadBytes
	tooLarge := &ErrUpload{Message: fmt.Sprintf("File too large. Maximum size is %dMB", maxUpload>>20)}
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondError(w, s.log, tooLarge)
			return
		}
		respondError(w, s.log, &ErrUpload{Message: "Resume PDF is required"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("resume")
	if err != nil {
		respondError(w, s.log, &ErrUpload{Message: "Resume PDF is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUpload {
		respondError(w, s.log, tooLarge)
		return
	}
	if header.Header.Get("Content-Type") != "application/pdf" {
		respondError(w, s.log, &ErrUpload{Message: "Only PDF files are allowed"})
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("jobDescription"))
	jobURL := strings.TrimSpace(r.FormValue("jobUrl"))
	if jobDescription == "" && jobURL == "" {
		respondError(w, s.log, &ErrUpload{Message: "Job description is required"})
		return
	}

	log := s.log.WithFields(logrus.Fields{
		"file":  header.Filename,
		"bytes": header.Size,
	})

	// Both inputs are prepared together; either failing fails the request
	var resumeText string
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		text, err := s.policy.ResumeText(file, header.Size)
		resumeText = text
		return err
	})
	if jobDescription == "" {
		g.Go(func() error {
			text, _, err := ingestion.IngestFromURL(gctx, jobURL, s.urlOptions)
			jobDescription = text
			return err
		})
	}
	if err := g.Wait(); err != nil {
		respondError(w, log, err)
		return
	}
	log.WithField("chars", len(resumeText)).Debug("extracted resume text")

	ctx := r.Context()
	if s.cfg.LLM.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LLM.Timeout)
		defer cancel()
	}

	result, err := s.oracle.Analyze(ctx, jobDescription, resumeText)
	if err != nil {
		respondError(w, log, err)
		return
	}

	log.WithFields(logrus.Fields{
		"model": result.Model,
		"score": result.Analysis.Score,
	}).Info("resume analyzed")

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:  true,
		Analysis: result.Analysis,
		Model:    result.Model,
	})
}
