package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source records where a job description came from.
type Source string

const (
	SourceInline Source = "inline"
	SourceFile   Source = "file"
	SourceURL    Source = "url"
)

// Metadata contains metadata about an ingested job description
type Metadata struct {
	Source     Source `json:"source"`
	URL        string `json:"url,omitempty"`
	Timestamp  string `json:"timestamp"`          // RFC3339 format
	Hash       string `json:"hash"`               // SHA256 hex digest
	Platform   string `json:"platform,omitempty"` // Detected job board platform
	Characters int    `json:"characters"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, url string) *Metadata {
	source := SourceInline
	if url != "" {
		source = SourceURL
	}
	return &Metadata{
		Source:     source,
		URL:        url,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Characters: len([]rune(content)),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
