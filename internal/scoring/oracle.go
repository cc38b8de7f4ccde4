// Package scoring asks a language model to score a resume against a job description.
// Candidate models are tried one at a time, in order, until one answers.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Result is a normalized analysis and the model that produced it.
type Result struct {
	Analysis *types.AnalysisResult `json:"analysis"`
	Model    string                `json:"model"`
	// Recovered is set when the reply needed best-effort JSON recovery.
	Recovered bool `json:"-"`
}

// Oracle scores resumes with an ordered list of candidate models.
type Oracle struct {
	client llm.Client
	models []string
	log    logrus.FieldLogger
}

// NewOracle returns an Oracle that tries models in order through client.
// A nil logger discards output.
func NewOracle(client llm.Client, models []string, log logrus.FieldLogger) *Oracle {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Oracle{
		client: client,
		models: append([]string(nil), models...),
		log:    log,
	}
}

// Models returns the candidate list in try order.
func (o *Oracle) Models() []string {
	return append([]string(nil), o.models...)
}

// BuildPrompt fills the analysis prompt with both texts verbatim.
func BuildPrompt(jobDescription, resumeText string) (string, error) {
	return prompts.Render("ats.json", "analyze", map[string]string{
		"JobDescription": jobDescription,
		"ResumeText":     resumeText,
	})
}

// Analyze scores resumeText against jobDescription.
func (o *Oracle) Analyze(ctx context.Context, jobDescription, resumeText string) (*Result, error) {
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(resumeText) == "" {
		return nil, ErrMissingInput
	}

	prompt, err := BuildPrompt(jobDescription, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	reply, model, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	analysis, recovered, err := ParseAnalysis(reply)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Model = model
		}
		o.log.WithError(err).WithField("model", model).Error("failed to parse model reply")
		return nil, err
	}
	if recovered {
		o.log.WithField("model", model).Warn("model reply needed JSON recovery")
	}

	return &Result{Analysis: analysis, Model: model, Recovered: recovered}, nil
}

// generate makes one attempt per candidate model and returns the first non-empty reply.
func (o *Oracle) generate(ctx context.Context, prompt string) (string, string, error) {
	if len(o.models) == 0 {
		return "", "", &UnavailableError{}
	}

	var attempts []Attempt
	for _, model := range o.models {
		if err := ctx.Err(); err != nil {
			return "", "", fmt.Errorf("analysis canceled: %w", err)
		}

		log := o.log.WithFields(logrus.Fields{"model": model, "attempt": 1})
		log.Info("trying model")

		text, err := o.client.GenerateWithModel(ctx, model, prompt)
		if err == nil && strings.TrimSpace(text) == "" {
			err = fmt.Errorf("%w from model %s", llm.ErrEmptyResponse, model)
		}
		if err == nil {
			log.Info("model succeeded")
			return text, model, nil
		}

		log.WithError(err).Warn("model attempt failed")
		attempts = append(attempts, Attempt{Model: model, Attempt: 1, Err: err})

		if isAuthFailure(err) {
			return "", "", &ConfigError{Model: model, Cause: err}
		}
	}

	return "", "", &UnavailableError{Attempts: attempts}
}
