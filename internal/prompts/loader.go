// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Set is a collection of prompt files, each a JSON object of key to template.
type Set struct {
	files fs.FS

	mu    sync.RWMutex
	cache map[string]map[string]string
}

// NewSet returns a Set reading prompt files from files.
func NewSet(files fs.FS) *Set {
	return &Set{files: files, cache: make(map[string]map[string]string)}
}

var defaultSet = NewSet(promptFiles)

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "ats.json").
// Returns an error if the file or key is not found.
func (s *Set) Get(filename, key string) (string, error) {
	prompts, err := s.loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// Render loads a prompt and fills its placeholders from data.
func (s *Set) Render(filename, key string, data map[string]string) (string, error) {
	template, err := s.Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(template, data), nil
}

// List returns the sorted prompt keys in a file.
func (s *Set) List(filename string) ([]string, error) {
	prompts, err := s.loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops every parsed file.
func (s *Set) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string]map[string]string)
	s.mu.Unlock()
}

func (s *Set) loadFile(filename string) (map[string]string, error) {
	s.mu.RLock()
	if prompts, exists := s.cache[filename]; exists {
		s.mu.RUnlock()
		return prompts, nil
	}
	s.mu.RUnlock()

	data, err := fs.ReadFile(s.files, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s.mu.Lock()
	s.cache[filename] = prompts
	s.mu.Unlock()

	return prompts, nil
}

// Get retrieves a prompt from the embedded prompt files.
func Get(filename, key string) (string, error) {
	return defaultSet.Get(filename, key)
}

// Render retrieves an embedded prompt and fills its placeholders.
func Render(filename, key string, data map[string]string) (string, error) {
	return defaultSet.Render(filename, key, data)
}

// MustGet retrieves an embedded prompt, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders in the form {{.Key}} with values from data.
// Values are inserted verbatim; placeholders without data are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
