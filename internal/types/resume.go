// Package types provides type definitions for structured data used throughout the resume builder.
package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ResumeDocument is the full resume snapshot submitted by the client.
// Each PDF request carries one complete, immutable snapshot.
type ResumeDocument struct {
	Personal     Personal     `json:"personal"`
	Summary      string       `json:"summary,omitempty"`
	Skills       Skills       `json:"skills"`
	Experience   []Experience `json:"experience"`
	Projects     []Project    `json:"projects"`
	Education    []Education  `json:"education"`
	Achievements []string     `json:"achievements"`
	Certificates []string     `json:"certificates"`
}

// Personal holds the header fields. Values are free text.
type Personal struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// Skills is always four named sequences, never a flat list.
type Skills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
	Soft       []string `json:"soft"`
}

// Experience is one internship or job entry. Description holds newline-delimited bullets.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project is one project entry. Description holds newline-delimited bullets.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tech        string `json:"tech"`
	Duration    string `json:"duration"`
	LiveLink    string `json:"liveLink"`
}

// Education is one education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Score       string `json:"score"`
	Location    string `json:"location"`
}

// UnmarshalJSON accepts the legacy skills shapes: a flat array is treated as frameworks,
// and a missing or null object becomes four empty sequences.
func (s *Skills) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Skills{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.normalize()
		return nil
	}

	if data[0] == '[' {
		var flat []string
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		s.Frameworks = flat
		s.normalize()
		return nil
	}

	// alias drops the method set so decoding does not recurse
	type alias Skills
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Skills(a)
	s.normalize()
	return nil
}

func (s *Skills) normalize() {
	if s.Languages == nil {
		s.Languages = []string{}
	}
	if s.Frameworks == nil {
		s.Frameworks = []string{}
	}
	if s.Tools == nil {
		s.Tools = []string{}
	}
	if s.Soft == nil {
		s.Soft = []string{}
	}
}

// Empty reports whether all four skill groups are empty.
func (s Skills) Empty() bool {
	return len(s.Languages) == 0 && len(s.Frameworks) == 0 && len(s.Tools) == 0 && len(s.Soft) == 0
}

// Normalize fills every collection so callers never see nil slices.
// Decoding through json already does this for skills; Normalize covers documents built in code.
func (d *ResumeDocument) Normalize() {
	d.Skills.normalize()
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Achievements == nil {
		d.Achievements = []string{}
	}
	if d.Certificates == nil {
		d.Certificates = []string{}
	}
}

// Bullets splits a newline-delimited description into trimmed, non-blank lines.
func Bullets(description string) []string {
	lines := strings.Split(description, "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// FileName returns the download name used for the generated PDF.
func (d *ResumeDocument) FileName() string {
	name := strings.TrimSpace(d.Personal.Name)
	if name == "" {
		name = "Resume"
	}
	// header values cannot carry quotes or line breaks
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\r', '\n':
			return -1
		}
		return r
	}, name)
	return name + "_CV.pdf"
}
