package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		Score:           72,
		MatchLevel:      types.LevelForScore(72),
		MissingKeywords: []string{"Kubernetes", "Terraform", "gRPC", "Kafka", "Redis", "Spark", "Airflow"},
		Strengths:       []string{"Go services"},
		Improvements:    []string{"Quantify impact"},
	}, "gemini-2.5-flash")
	output := buf.String()

	assert.Contains(t, output, "ATS ANALYSIS")
	assert.Contains(t, output, "72/100")
	assert.Contains(t, output, "gemini-2.5-flash")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Airflow")
	assert.Contains(t, output, "Quantify impact")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil, "model")

	assert.Empty(t, buf.String())
}

func TestPrintPlanSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	plan := &layout.Plan{Pages: []layout.Page{
		{Instructions: []layout.Instruction{{Kind: layout.KindText}, {Kind: layout.KindText}, {Kind: layout.KindLine}}},
		{Instructions: []layout.Instruction{{Kind: layout.KindBullet}}},
	}}
	p.PrintPlanSummary(plan)
	output := buf.String()

	assert.Contains(t, output, "LAYOUT PLAN")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "overflowed")
	assert.Contains(t, output, "text     2")
	assert.NotContains(t, output, "circle")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
