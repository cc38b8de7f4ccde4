package fetch

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplate is stripped from every page before looking for content.
const boilerplate = "nav, footer, header, script, style, noscript, template, iframe, svg, " +
	".ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "dd": true,
	"div": true, "dl": true, "dt": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "li": true, "main": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

var spaces = regexp.MustCompile(`\s+`)

// ExtractMainText returns the readable text of a job posting page.
// Boilerplate and noiseSelectors are removed, then the first element matching
// contentSelectors is used (JobPostingSelectors when none are given, the body
// when nothing matches). A schema.org JobPosting embedded as JSON-LD wins when
// it carries more text than the markup.
func ExtractMainText(page string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	structured := jobPostingLD(doc)

	doc.Find(boilerplate).Remove()
	if noise := strings.Join(noiseSelectors, ", "); noise != "" {
		doc.Find(noise).Remove()
	}

	if len(contentSelectors) == 0 {
		contentSelectors = JobPostingSelectors()
	}
	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if match := doc.Find(selector); match.Length() > 0 {
			content = match.First()
			break
		}
	}

	text := blockText(content)
	if len(structured) > len(text) {
		return structured, nil
	}
	return text, nil
}

// JobPostingSelectors lists containers that commonly hold a posting, most specific first.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// blockText renders a selection as text, one line per block element.
// List items are prefixed with "- ".
func blockText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch name := goquery.NodeName(c); {
			case name == "#text":
				sb.WriteString(spaces.ReplaceAllString(c.Text(), " "))
			case name == "br":
				sb.WriteByte('\n')
			case blockTags[name]:
				sb.WriteByte('\n')
				if name == "li" {
					sb.WriteString("- ")
				}
				walk(c)
				sb.WriteByte('\n')
			default:
				walk(c)
			}
		})
	}
	walk(sel)
	return tidyLines(sb.String())
}

// tidyLines collapses spaces in each line and drops empty lines and bare bullets.
func tidyLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || line == "-" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// jobPostingLD returns the title and description of the first schema.org
// JobPosting found in the page's JSON-LD blocks, or "" when there is none.
func jobPostingLD(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		posting := findJobPosting(data)
		if posting == nil {
			return true
		}

		title, _ := posting["title"].(string)
		description, _ := posting["description"].(string)
		if strings.Contains(description, "&lt;") {
			description = html.UnescapeString(description)
		}
		if desc, err := goquery.NewDocumentFromReader(strings.NewReader(description)); err == nil {
			description = blockText(desc.Find("body"))
		}
		found = tidyLines(title + "\n" + description)
		return found == ""
	})
	return found
}

func findJobPosting(v any) map[string]any {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			if p := findJobPosting(item); p != nil {
				return p
			}
		}
	case map[string]any:
		if isType(node["@type"], "JobPosting") {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findJobPosting(graph)
		}
	}
	return nil
}

func isType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}
