// Package emphasis holds the shared keyword table that decides which words of a bullet render bold.
//
// A table has two match modes. Single-word entries match one word exactly (case-insensitive,
// surrounding punctuation ignored). Entries containing a space are phrases and match anywhere in
// the line (case-insensitive); every word touched by a phrase occurrence is bold.
package emphasis

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// punctuation stripped from a word before exact matching
const punctuation = ".,!?;:()"

// defaultKeywords is the stock table used by the PDF layout and the client preview.
var defaultKeywords = []string{
	"React", "MERN", "MongoDB", "Node.js", "Express", "JWT",
	"Authentication", "REST API", "Tailwind", "MySQL", "Django",
	"JavaScript", "Python", "HTML", "CSS", "Bootstrap", "SQL",
	"Firebase", "Git", "GitHub", "API", "TypeScript", "Next.js",
	"Redux", "Vue", "Angular", "PostgreSQL", "Docker", "AWS",
	"data structure", "visualizer", "e-commerce", "website",
	"full-stack", "dynamic", "shopping cart", "checkout",
	"online learning platform", "responsive", "interface",
	"SQLite", "real time", "product management", "user authentication",
	"Node", "Scrum", "Agile",
}

// Table is an immutable keyword table. It is safe for concurrent use.
type Table struct {
	keywords []string
	exact    map[string]struct{}
	phrases  []string
}

// Word is one whitespace-delimited token of a line with its emphasis decision.
type Word struct {
	Text string
	Bold bool
}

// Span is a half-open byte range [Start, End) of a line.
type Span struct {
	Start int
	End   int
}

// New builds a table from keywords. Blank entries are ignored.
func New(keywords []string) *Table {
	t := &Table{exact: make(map[string]struct{})}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		t.keywords = append(t.keywords, kw)
		lower := strings.ToLower(kw)
		if strings.ContainsFunc(kw, unicode.IsSpace) {
			t.phrases = append(t.phrases, lower)
		} else {
			t.exact[lower] = struct{}{}
		}
	}
	// longer phrases first so overlapping matches prefer the wider span
	sort.SliceStable(t.phrases, func(i, j int) bool { return len(t.phrases[i]) > len(t.phrases[j]) })
	return t
}

// Default returns the stock keyword table.
func Default() *Table {
	return New(defaultKeywords)
}

// fileFormat is the YAML shape of a keyword file.
type fileFormat struct {
	Keywords []string `yaml:"keywords"`
}

// Load reads a keyword table from a YAML file with a top-level "keywords" list.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read emphasis file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML keyword document.
func Parse(data []byte) (*Table, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse emphasis YAML: %w", err)
	}
	if len(f.Keywords) == 0 {
		return nil, fmt.Errorf("emphasis file has no keywords")
	}
	return New(f.Keywords), nil
}

// Keywords returns the entries in their original spelling and order.
func (t *Table) Keywords() []string {
	out := make([]string, len(t.keywords))
	copy(out, t.keywords)
	return out
}

// IsExact reports whether word, minus surrounding punctuation, equals a single-word keyword.
func (t *Table) IsExact(word string) bool {
	clean := strings.Trim(word, punctuation)
	if clean == "" {
		return false
	}
	_, ok := t.exact[strings.ToLower(clean)]
	return ok
}

// PhraseSpans returns the non-overlapping byte ranges of line covered by phrase keywords,
// ordered by start offset.
func (t *Table) PhraseSpans(line string) []Span {
	if len(t.phrases) == 0 {
		return nil
	}
	covered := make([]bool, len(line))
	var spans []Span
	for _, phrase := range t.phrases {
		n := len(phrase)
		for i := range line {
			if i+n > len(line) {
				break
			}
			if covered[i] || covered[i+n-1] {
				continue
			}
			if !strings.EqualFold(line[i:i+n], phrase) {
				continue
			}
			for k := i; k < i+n; k++ {
				covered[k] = true
			}
			spans = append(spans, Span{Start: i, End: i + n})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// Words splits line on whitespace and marks each word bold when it is an exact keyword
// or overlaps a phrase occurrence.
func (t *Table) Words(line string) []Word {
	spans := t.PhraseSpans(line)
	var words []Word
	start := -1
	flush := func(end int) {
		text := line[start:end]
		words = append(words, Word{
			Text: text,
			Bold: t.IsExact(text) || overlaps(spans, start, end),
		})
		start = -1
	}
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				flush(i)
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		flush(len(line))
	}
	return words
}

func overlaps(spans []Span, start, end int) bool {
	for _, s := range spans {
		if s.Start < end && start < s.End {
			return true
		}
	}
	return false
}
