package ingestion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// maxBlankLines caps how many empty lines may separate two blocks of text.
const maxBlankLines = 1

// bulletMarkers are line prefixes kept verbatim, including inner spacing.
var bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ ", "– "}

// invisibles are dropped outright; copy-pasted postings are full of them.
var invisibles = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
	"\u00ad", "",
)

// CleanText normalizes pasted or scraped posting text. Line endings become
// LF, runs of blank lines shrink to one, and ordinary lines have their inner
// whitespace collapsed. Headings and bullets keep their layout.
func CleanText(content string) string {
	content = invisibles.Replace(content)
	content = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)

	var out []string
	blanks := 0
	for _, raw := range strings.Split(content, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			blanks++
			if blanks > maxBlankLines || len(out) == 0 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func normalizeLine(line string) string {
	line = strings.Map(func(r rune) rune {
		if r == '\t' || r == ' ' || !unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, line)
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	body := strings.TrimLeft(line, " \t")
	if body == "" {
		return ""
	}
	indent := strings.Repeat(" ", len(line)-len(body))

	if strings.HasPrefix(body, "#") {
		return body
	}
	if isBullet(body) {
		return indent + body
	}
	return indent + strings.Join(strings.Fields(body), " ")
}

func isBullet(line string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// IngestFromReader cleans a posting read from r.
func IngestFromReader(r io.Reader, source Source) (string, *Metadata, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("failed to read job description: %w", err)
	}

	text := CleanText(sb.String())
	if text == "" {
		return "", nil, fmt.Errorf("%w: job description is empty", ErrContentExtractionFailed)
	}
	meta := NewMetadata(text, "")
	meta.Source = source
	return text, meta, nil
}

// IngestFromFile reads a job description from a text file.
func IngestFromFile(path string) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	text, meta, err := IngestFromReader(f, SourceFile)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return text, meta, nil
}
