package rendering

import (
	"strings"
	"unicode"
)

// replacements for runes the core fonts cannot draw
var coreFontReplacements = map[rune]string{
	'\t':     " ",
	'\u00a0': " ",
	'\u2002': " ",
	'\u2003': " ",
	'\u2009': " ",
	'\u200b': "",
	'\u200d': "",
	'\ufeff': "",
	'\u2010': "-",
	'\u2011': "-",
	'\u2212': "-",
	'\u2192': "->",
	'\u2190': "<-",
	'\u2605': "*",
	'\u2713': "v",
	'\ufb01': "fi",
	'\ufb02': "fl",
}

// cp1252Extra lists the printable runes of Windows-1252 outside Latin-1.
const cp1252Extra = "€‚ƒ„…†‡ˆ‰Š‹ŒŽ‘’“”•–—˜™š›œžŸ"

// EscapeCoreFont rewrites text so every rune is drawable with the built-in Helvetica
// encoding. Known typographic runes get ASCII stand-ins, control runes are dropped, and
// anything else outside Windows-1252 becomes '?'.
func EscapeCoreFont(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		if rep, ok := coreFontReplacements[r]; ok {
			result.WriteString(rep)
			continue
		}
		switch {
		case unicode.IsControl(r):
			// dropped
		case r < 0x7f, r >= 0xa0 && r <= 0xff, strings.ContainsRune(cp1252Extra, r):
			result.WriteRune(r)
		default:
			result.WriteByte('?')
		}
	}

	return result.String()
}
