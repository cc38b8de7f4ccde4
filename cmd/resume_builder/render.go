package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to PDF",
	Long:  "Render a resume document (the resumeData body of POST /api/pdf/generate) to a one-page-style PDF, or print its layout plan with --plan.",
	RunE:  runRender,
}

var (
	renderInFile  string
	renderOutFile string
	renderPlan    bool
	renderVerbose bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInFile, "in", "i", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Output path (default: <name>_CV.pdf, or stdout with --plan)")
	renderCmd.Flags().BoolVar(&renderPlan, "plan", false, "Print the layout plan as JSON instead of rendering")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print a layout summary to stderr")

	_ = renderCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	doc, err := readResume(renderInFile)
	if err != nil {
		return err
	}

	if renderVerbose {
		plan, err := renderer.Plan(doc)
		if err != nil {
			return err
		}
		observability.NewPrinter(os.Stderr).PrintPlanSummary(plan)
	}

	var buf bytes.Buffer
	if err := renderResume(renderer, doc, &buf, renderPlan); err != nil {
		return err
	}

	out := renderOutFile
	if out == "" {
		if renderPlan {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		out = doc.FileName()
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s (%d bytes)\n", out, buf.Len())
	return nil
}

// readResume decodes a resume document from a JSON file.
func readResume(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	return &doc, nil
}

// renderResume writes either the PDF or the indented plan JSON for doc.
func renderResume(renderer *rendering.Renderer, doc *types.ResumeDocument, w io.Writer, planOnly bool) error {
	if !planOnly {
		return renderer.Render(doc, w)
	}

	plan, err := renderer.Plan(doc)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
