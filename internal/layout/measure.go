package layout

import "strings"

// Measurer returns the rendered width in points of text set in Helvetica at size.
type Measurer interface {
	Width(text string, bold bool, size float64) float64
}

// leading is the line advance for wrapped text of the given font size.
func leading(size float64) float64 {
	return size * 1.2
}

// wrapText breaks text into lines no wider than width. Explicit newlines start a new line;
// a single word wider than width stays on its own line.
func wrapText(m Measurer, text string, bold bool, size, width float64) []string {
	var lines []string
	for _, para := range wrapParagraphs(m, text, bold, size, width) {
		lines = append(lines, para...)
	}
	return lines
}

// wrapParagraphs is wrapText keeping the lines of each newline-delimited paragraph together.
func wrapParagraphs(m Measurer, text string, bold bool, size, width float64) [][]string {
	var paras [][]string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			paras = append(paras, []string{""})
			continue
		}
		var lines []string
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if m.Width(candidate, bold, size) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		paras = append(paras, append(lines, line))
	}
	return paras
}
