package ingestion

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPDF(t *testing.T, doc *types.ResumeDocument) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, rendering.NewRenderer(nil).Render(doc, &buf))
	return buf.Bytes()
}

func TestPolicy_ResumeText_RoundTrip(t *testing.T) {
	data := renderPDF(t, &types.ResumeDocument{
		Personal: types.Personal{Name: "Grace Hopper", Email: "grace@example.com"},
		Summary:  "Compiler engineer",
		Skills: types.Skills{
			Languages:  []string{"COBOL", "Fortran"},
			Frameworks: []string{"Kubernetes"},
		},
		Achievements: []string{"Invented the first compiler for a programming language"},
	})

	text, err := DefaultPolicy().ResumeText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Contains(t, text, "Hopper")
	assert.GreaterOrEqual(t, len([]rune(text)), DefaultMinTextLength)
}

func TestPolicy_ResumeText_TooShort(t *testing.T) {
	data := renderPDF(t, &types.ResumeDocument{Personal: types.Personal{Name: "Al"}})

	_, err := DefaultPolicy().ResumeText(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTextTooShort))
	assert.True(t, errors.Is(err, ErrUnreadableUpload))

	var extractErr *ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Contains(t, extractErr.Message, "need 50")
}

func TestPolicy_ResumeText_CustomMinimum(t *testing.T) {
	data := renderPDF(t, &types.ResumeDocument{Personal: types.Personal{Name: "Al"}})

	text, err := Policy{MinTextLength: 1}.ResumeText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Contains(t, text, "Al")
}

func TestExtractPDFText_NotAPDF(t *testing.T) {
	data := []byte("this is plainly not a pdf document")

	_, err := ExtractPDFText(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadableUpload))
	assert.False(t, errors.Is(err, ErrTextTooShort))

	var extractErr *ExtractError
	assert.True(t, errors.As(err, &extractErr))
}
