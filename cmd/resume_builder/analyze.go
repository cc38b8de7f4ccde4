package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume PDF against a job description",
	Long:  "Extract the text of a resume PDF and score it against a job description read from a file or fetched from a URL.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJobFile    string
	analyzeJobURL     string
	analyzePretty     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to resume PDF (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job-file", "j", "", "Path to text file containing the job description (- for stdin)")
	analyzeCmd.Flags().StringVarP(&analyzeJobURL, "job-url", "u", "", "URL of the job posting")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "Print a human-readable summary instead of JSON")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job-file", "job-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeJobFile == "" && analyzeJobURL == "" {
		return fmt.Errorf("either --job-file or --job-url must be provided")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey() == "" {
		return fmt.Errorf("an API key for provider %q is required", cfg.LLM.Provider)
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobDescription, err := loadJobDescription(ctx, analyzeJobFile, analyzeJobURL, ingestion.URLOptions{
		UseBrowser: cfg.ATS.UseBrowser,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	oracle, client, err := newOracle(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := analyzeResume(ctx, oracle, ingestion.Policy{MinTextLength: cfg.ATS.MinTextLength}, analyzeResumeFile, jobDescription)
	if err != nil {
		return err
	}

	if analyzePretty {
		observability.NewPrinter(os.Stdout).PrintAnalysis(result.Analysis, result.Model)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// loadJobDescription reads the job text from a file or fetches it from a URL.
func loadJobDescription(ctx context.Context, path, jobURL string, opts ingestion.URLOptions) (string, error) {
	if path == "-" {
		text, _, err := ingestion.IngestFromReader(os.Stdin, ingestion.SourceInline)
		if err != nil {
			return "", fmt.Errorf("failed to read job description from stdin: %w", err)
		}
		return text, nil
	}
	if path != "" {
		text, _, err := ingestion.IngestFromFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to ingest from file: %w", err)
		}
		return text, nil
	}

	text, _, err := ingestion.IngestFromURL(ctx, jobURL, opts)
	if err != nil {
		return "", fmt.Errorf("failed to ingest from URL: %w", err)
	}
	return text, nil
}

// analyzeResume extracts the PDF at path and scores it.
func analyzeResume(ctx context.Context, oracle *scoring.Oracle, policy ingestion.Policy, path, jobDescription string) (*scoring.Result, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("resume must be a .pdf file")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat resume: %w", err)
	}
	resumeText, err := policy.ResumeText(f, info.Size())
	if err != nil {
		return nil, err
	}
	return oracle.Analyze(ctx, jobDescription, resumeText)
}
