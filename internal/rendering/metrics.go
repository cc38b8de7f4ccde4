package rendering

import (
	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Metrics measures text with the same core font tables the emitter draws with,
// so layout decisions match the printed result. Not safe for concurrent use.
type Metrics struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewMetrics returns a measurer backed by an unused fpdf document.
func NewMetrics() *Metrics {
	pdf := fpdf.New("P", "pt", "A4", "")
	return &Metrics{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Width implements layout.Measurer.
func (m *Metrics) Width(text string, bold bool, size float64) float64 {
	m.pdf.SetFont(fontFamily, fontStyle(bold, false), size)
	return m.pdf.GetStringWidth(m.translate(EscapeCoreFont(text)))
}

func fontStyle(bold, underline bool) string {
	style := ""
	if bold {
		style += "B"
	}
	if underline {
		style += "U"
	}
	return style
}
