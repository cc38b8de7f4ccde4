package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MatchLevel is the coarse label derived from an ATS score.
type MatchLevel string

const (
	// MatchExcellent is a score of 80 or more.
	MatchExcellent MatchLevel = "Excellent"
	// MatchGood is a score in [60, 80).
	MatchGood MatchLevel = "Good"
	// MatchFair is a score in [40, 60).
	MatchFair MatchLevel = "Fair"
	// MatchPoor is a score below 40.
	MatchPoor MatchLevel = "Poor"
)

// AnalysisResult is the normalized outcome of one ATS analysis. It is never persisted.
type AnalysisResult struct {
	Score           int        `json:"score"`
	MatchLevel      MatchLevel `json:"matchLevel"`
	MissingKeywords []string   `json:"missingKeywords"`
	Strengths       []string   `json:"strengths"`
	Improvements    []string   `json:"improvements"`
}

// LevelForScore maps a clamped score onto its MatchLevel.
func LevelForScore(score int) MatchLevel {
	switch {
	case score >= 80:
		return MatchExcellent
	case score >= 60:
		return MatchGood
	case score >= 40:
		return MatchFair
	default:
		return MatchPoor
	}
}

// ClampScore coerces an arbitrary decoded JSON value into [0, 100].
// Numbers and numeric strings are accepted; anything else is 0.
func ClampScore(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}

	if math.IsNaN(f) {
		return 0
	}
	f = math.Max(0, math.Min(100, f))
	return int(f)
}

// NormalizeAnalysis builds an AnalysisResult from a loosely-typed oracle object.
// The match level is always recomputed from the clamped score.
func NormalizeAnalysis(raw map[string]any) *AnalysisResult {
	score := ClampScore(raw["score"])
	return &AnalysisResult{
		Score:           score,
		MatchLevel:      LevelForScore(score),
		MissingKeywords: stringList(raw["missingKeywords"]),
		Strengths:       stringList(raw["strengths"]),
		Improvements:    stringList(raw["improvements"]),
	}
}

// stringList keeps the string elements of a JSON array and returns an empty slice otherwise.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
