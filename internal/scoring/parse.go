package scoring

import (
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var errNoObject = errors.New("no JSON object found")

// ParseAnalysis turns a model reply into a normalized analysis. The whole reply is first
// decoded as a schema-valid object; failing that, the span from the first '{' to the last '}'
// is decoded instead and recovered reports true.
func ParseAnalysis(reply string) (analysis *types.AnalysisResult, recovered bool, err error) {
	cleaned := llm.StripCodeFences(reply)

	if schemas.ValidateAnalysis(cleaned) == nil {
		var raw map[string]any
		if err := json.Unmarshal([]byte(cleaned), &raw); err == nil {
			return types.NormalizeAnalysis(raw), false, nil
		}
	}

	candidate, ok := llm.ExtractJSONObject(cleaned)
	if !ok {
		return nil, false, &ParseError{Raw: truncate(cleaned, 1000), Cause: errNoObject}
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, false, &ParseError{Raw: truncate(cleaned, 1000), Cause: err}
	}
	return types.NormalizeAnalysis(raw), true, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
