package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = fmt.Errorf("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// URLOptions controls how a job posting URL is fetched.
type URLOptions struct {
	// UseBrowser renders the page with a headless browser when the plain fetch yields too little text.
	UseBrowser bool
	Fetch      *fetch.Options
	Logger     logrus.FieldLogger
}

func (o URLOptions) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// IngestFromURL fetches a job posting, extracts its main text, cleans it, and returns cleaned text with metadata.
// It uses platform detection to apply platform-specific selectors for better content extraction.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidURL, urlStr)
	}

	platform := fetch.DetectPlatform(urlStr)
	log := opts.logger().WithFields(logrus.Fields{
		"url":      urlStr,
		"platform": platform,
	})

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.WithField("bytes", len(result.HTML)).Debug("fetched job posting")

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent := result.Text
	if textContent == "" {
		textContent, err = fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}

	// SPA job boards often render their content client-side
	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		log.WithField("chars", len(textContent)).Info("job posting text too short, rendering with browser")

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, log)
		if browserErr != nil {
			log.WithError(browserErr).Warn("browser rendering failed, using HTTP content")
		} else if rendered, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); err != nil {
			log.WithError(err).Warn("browser content extraction failed, using HTTP content")
		} else {
			textContent = rendered
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}
	log.WithField("chars", len(cleanedText)).Debug("cleaned job posting text")

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)

	return cleanedText, metadata, nil
}
