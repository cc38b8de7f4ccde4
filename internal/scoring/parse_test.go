package scoring

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysis_Strict(t *testing.T) {
	analysis, recovered, err := ParseAnalysis("```json\n" + goodReply + "\n```")
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Equal(t, 72, analysis.Score)
	assert.Equal(t, types.MatchGood, analysis.MatchLevel)
}

func TestParseAnalysis_Recovered(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		score int
	}{
		{"preamble", "Here is the analysis:\n" + goodReply, 72},
		{"trailing chatter", goodReply + "\nLet me know if you need more.", 72},
		{"score as string", `{"score": "85", "missingKeywords": [], "strengths": [], "improvements": []}`, 85},
		{"missing lists", `{"score": 45}`, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, recovered, err := ParseAnalysis(tt.reply)
			require.NoError(t, err)
			assert.True(t, recovered)
			assert.Equal(t, tt.score, analysis.Score)
			assert.Equal(t, types.LevelForScore(tt.score), analysis.MatchLevel)
		})
	}
}

func TestParseAnalysis_Normalizes(t *testing.T) {
	analysis, _, err := ParseAnalysis(`{"score": 150, "matchLevel": "Poor", "missingKeywords": "Docker", "strengths": ["Go", 3], "improvements": null}`)
	require.NoError(t, err)

	assert.Equal(t, 100, analysis.Score)
	assert.Equal(t, types.MatchExcellent, analysis.MatchLevel)
	assert.Equal(t, []string{}, analysis.MissingKeywords)
	assert.Equal(t, []string{"Go"}, analysis.Strengths)
	assert.Equal(t, []string{}, analysis.Improvements)
}

func TestParseAnalysis_NegativeScore(t *testing.T) {
	analysis, _, err := ParseAnalysis(`{"score": -12, "missingKeywords": [], "strengths": [], "improvements": []}`)
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Score)
	assert.Equal(t, types.MatchPoor, analysis.MatchLevel)
}

func TestParseAnalysis_Unparseable(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose", "Sorry, I cannot score this resume."},
		{"array", `[1, 2, 3]`},
		{"broken object", `{"score": 80,}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseAnalysis(tt.reply)
			require.Error(t, err)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}
