// Package layout turns a ResumeDocument into absolutely positioned drawing instructions.
//
// The engine walks the document section by section, tracking a single vertical cursor in a
// Context. Page breaks happen only before a section heading, before an entry block, or before
// an individual bullet; a bullet never splits across pages.
package layout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/emphasis"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrMissingInput is returned when no document is supplied.
var ErrMissingInput = errors.New("resume data is required")

const (
	bodySize  = 10.0
	smallSize = 9.0

	bulletIndent  = 8.0
	bulletLeading = 12.0
	bulletGap     = 15.0
	contactRow    = 11.0

	// rightColumnWidth is the space kept free on the right for dates and locations.
	rightColumnWidth = 120.0
)

// trailingDate matches a certificate ending in "(date)".
var trailingDate = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`)

// Engine lays out documents. It holds no per-document state and can be shared.
type Engine struct {
	measure  Measurer
	emphasis *emphasis.Table
}

// NewEngine returns an engine that measures with m and bolds bullet words found in table.
// A nil table uses the default keywords.
func NewEngine(m Measurer, table *emphasis.Table) *Engine {
	if table == nil {
		table = emphasis.Default()
	}
	return &Engine{measure: m, emphasis: table}
}

// Layout produces the drawing plan for doc.
func (e *Engine) Layout(doc *types.ResumeDocument) (*Plan, error) {
	if doc == nil {
		return nil, ErrMissingInput
	}
	d := *doc
	d.Normalize()

	b := &builder{
		Engine: e,
		ctx:    NewContext(),
		plan:   &Plan{Pages: []Page{{}}},
	}

	b.header(d.Personal)
	if d.Summary != "" {
		b.summary(d.Summary)
	}
	if !d.Skills.Empty() {
		b.skills(d.Skills)
	}
	if len(d.Experience) > 0 {
		b.experience(d.Experience)
	}
	if len(d.Projects) > 0 {
		b.projects(d.Projects)
	}
	if len(d.Achievements) > 0 {
		b.achievements(d.Achievements)
	}
	if len(d.Certificates) > 0 {
		b.certificates(d.Certificates)
	}
	if len(d.Education) > 0 {
		b.education(d.Education)
	}
	return b.plan, nil
}

// builder carries the cursor and output of one Layout call.
type builder struct {
	*Engine
	ctx  *Context
	plan *Plan
}

func (b *builder) emit(in Instruction) {
	page := &b.plan.Pages[len(b.plan.Pages)-1]
	page.Instructions = append(page.Instructions, in)
}

// breakIfNeeded starts a new page when fewer than minRemaining points are left.
func (b *builder) breakIfNeeded(minRemaining float64) {
	if !b.ctx.NeedsPageBreak(minRemaining) {
		return
	}
	b.ctx.NewPage()
	b.plan.Pages = append(b.plan.Pages, Page{})
}

func (b *builder) text(x, y float64, s string, size float64, bold bool, c Color) {
	if s == "" {
		return
	}
	b.emit(Instruction{Kind: KindText, X: x, Y: y, Text: s, Size: size, Bold: bold, Color: c})
}

// rightText draws s so that it ends at the right margin.
func (b *builder) rightText(y float64, s string, size float64, bold bool, c Color) {
	x := PageWidth - MarginRight - b.measure.Width(s, bold, size)
	b.text(x, y, s, size, bold, c)
}

// block draws wrapped text starting at (x, y) and returns its height.
func (b *builder) block(x, y, width float64, s string, size float64, bold bool, c Color) float64 {
	lines := wrapText(b.measure, s, bold, size, width)
	for i, line := range lines {
		b.text(x, y+float64(i)*leading(size), line, size, bold, c)
	}
	return float64(len(lines)) * leading(size)
}

// entryTitle draws the bold first line of an entry, wrapped clear of the right column,
// and returns how far to advance: never less than one 13pt row.
func (b *builder) entryTitle(y float64, s string) float64 {
	return max(b.block(MarginLeft, y, ContentWidth-rightColumnWidth, s, bodySize, true, AccentColor), 13)
}

// justified draws s wrapped to width with every line but the last of each paragraph
// stretched to the full width. Returns the height.
func (b *builder) justified(x, y, width float64, s string, size float64, c Color) float64 {
	row := 0
	for _, para := range wrapParagraphs(b.measure, s, false, size, width) {
		for i, line := range para {
			lineY := y + float64(row)*leading(size)
			row++
			words := strings.Fields(line)
			if i == len(para)-1 || len(words) < 2 {
				b.text(x, lineY, line, size, false, c)
				continue
			}
			used := 0.0
			for _, w := range words {
				used += b.measure.Width(w, false, size)
			}
			gap := (width - used) / float64(len(words)-1)
			wx := x
			for _, w := range words {
				b.text(wx, lineY, w, size, false, c)
				wx += b.measure.Width(w, false, size) + gap
			}
		}
	}
	return float64(row) * leading(size)
}

func (b *builder) heading(label string) {
	b.breakIfNeeded(headingReserve)
	y := b.ctx.Y()
	b.text(MarginLeft, y, strings.ToUpper(label), 11, true, HeadingColor)
	b.emit(Instruction{
		Kind:      KindLine,
		X:         MarginLeft,
		Y:         y + 14,
		X2:        PageWidth - MarginRight,
		Y2:        y + 14,
		LineWidth: 0.5,
		Color:     BodyColor,
	})
	b.ctx.Advance(20)
}

// bullet draws a marker and the words of text, bolding keywords and wrapping at the
// content width. The cursor ends one bullet gap below the last line.
func (b *builder) bullet(text string) {
	b.breakIfNeeded(bulletReserve)
	y := b.ctx.Y()

	indent := MarginLeft + bulletIndent
	limit := MarginLeft + ContentWidth - bulletIndent
	words := b.emphasis.Words(text)

	in := Instruction{Kind: KindBullet, X: MarginLeft, Y: y + 4, Radius: 2, Size: bodySize, Color: BodyColor}
	x, lineY := indent, y
	for i, w := range words {
		seg := w.Text
		if i < len(words)-1 {
			seg += " "
		}
		width := b.measure.Width(seg, w.Bold, bodySize)
		if x+width > limit && x > indent {
			lineY += bulletLeading
			x = indent
		}
		in.Runs = append(in.Runs, Run{Text: w.Text, X: x, Y: lineY, Bold: w.Bold})
		x += width
	}
	b.emit(in)
	b.ctx.Advance(lineY + bulletGap - y)
}

func (b *builder) header(p types.Personal) {
	b.text(MarginLeft, b.ctx.Y(), p.Name, 18, true, HeadingColor)
	b.ctx.Advance(22)

	type pair struct{ label, value string }
	var left, right []pair
	if p.LinkedIn != "" {
		left = append(left, pair{"LinkedIn", stripScheme(p.LinkedIn)})
	}
	if p.Email != "" {
		left = append(left, pair{"Email", p.Email})
	}
	if p.Portfolio != "" {
		left = append(left, pair{"Portfolio", stripScheme(p.Portfolio)})
	}
	if p.GitHub != "" {
		right = append(right, pair{"Github", stripScheme(p.GitHub)})
	}
	if p.Phone != "" {
		right = append(right, pair{"Mobile", p.Phone})
	}

	top := b.ctx.Y()
	column := func(x float64, pairs []pair) {
		for i, pr := range pairs {
			y := top + float64(i)*contactRow
			label := pr.label + ": "
			b.text(x, y, label, smallSize, true, BodyColor)
			b.text(x+b.measure.Width(label, true, smallSize), y, pr.value, smallSize, false, AccentColor)
		}
	}
	column(MarginLeft, left)
	column(MarginLeft+ContentWidth/2+10, right)

	b.ctx.Advance(float64(max(len(left), len(right)))*contactRow + 12)
}

func stripScheme(link string) string {
	return strings.Replace(link, "https://", "", 1)
}

func (b *builder) summary(s string) {
	b.heading("Professional Summary")
	h := b.justified(MarginLeft, b.ctx.Y(), ContentWidth, s, bodySize, BodyColor)
	b.ctx.Advance(h + 10)
}

func (b *builder) skills(s types.Skills) {
	b.heading("Skills")
	rows := []struct {
		label  string
		values []string
	}{
		{"Languages: ", s.Languages},
		{"Framework: ", s.Frameworks},
		{"DataBases: ", s.Tools},
		{"Soft Skills: ", s.Soft},
	}
	for _, row := range rows {
		if len(row.values) == 0 {
			continue
		}
		y := b.ctx.Y()
		labelWidth := b.measure.Width(row.label, true, bodySize)
		b.text(MarginLeft, y, row.label, bodySize, true, AccentColor)
		h := b.block(MarginLeft+labelWidth, y, ContentWidth-labelWidth, strings.Join(row.values, ", "), bodySize, false, BodyColor)
		b.ctx.Advance(h + 3)
	}
	b.ctx.Advance(8)
}

func (b *builder) experience(entries []types.Experience) {
	b.heading("Internship")
	for _, exp := range entries {
		b.breakIfNeeded(entryReserve)
		y := b.ctx.Y()
		h := b.entryTitle(y, strings.ToUpper(exp.Company))
		b.rightText(y, exp.Duration, smallSize, true, AccentColor)
		b.ctx.Advance(h)

		b.text(MarginLeft, b.ctx.Y(), exp.Title, bodySize, false, BodyColor)
		b.ctx.Advance(14)

		for _, line := range types.Bullets(exp.Description) {
			b.bullet(line)
		}
		b.ctx.Advance(6)
	}
}

func (b *builder) projects(entries []types.Project) {
	b.heading("Projects")
	for _, p := range entries {
		b.breakIfNeeded(entryReserve)
		y := b.ctx.Y()
		h := b.entryTitle(y, p.Title)
		if p.Duration != "" {
			b.rightText(y, p.Duration, smallSize, true, AccentColor)
		}
		b.ctx.Advance(h)

		if p.Tech != "" {
			b.text(MarginLeft, b.ctx.Y(), "Tech: "+p.Tech, bodySize, false, AccentColor)
			b.ctx.Advance(13)
		}

		if p.LiveLink != "" {
			y := b.ctx.Y()
			label := "Live: "
			b.text(MarginLeft, y, label, smallSize, true, AccentColor)
			x := MarginLeft + b.measure.Width(label, true, smallSize)
			b.emit(Instruction{
				Kind:      KindText,
				X:         x,
				Y:         y,
				Text:      p.LiveLink,
				Size:      smallSize,
				Underline: true,
				Color:     LinkColor,
			})
			b.emit(Instruction{
				Kind:   KindLink,
				X:      x,
				Y:      y,
				Width:  b.measure.Width(p.LiveLink, false, smallSize),
				Height: leading(smallSize),
				URL:    p.LiveLink,
			})
			b.ctx.Advance(13)
		}

		for _, line := range types.Bullets(p.Description) {
			b.bullet(line)
		}
		b.ctx.Advance(6)
	}
}

func (b *builder) achievements(items []string) {
	b.heading("Achievements")
	for _, item := range items {
		b.breakIfNeeded(bulletReserve)
		y := b.ctx.Y()
		b.emit(Instruction{Kind: KindCircle, X: MarginLeft, Y: y + 4, Radius: 2, Color: BodyColor})
		h := b.block(MarginLeft+bulletIndent, y, ContentWidth-bulletIndent, item, bodySize, false, BodyColor)
		b.ctx.Advance(h + 3)
	}
	b.ctx.Advance(6)
}

// splitDate separates a trailing "(date)" from a certificate line.
func splitDate(cert string) (text, date string) {
	m := trailingDate.FindStringSubmatch(cert)
	if m == nil {
		return cert, ""
	}
	return m[1], m[2]
}

func (b *builder) certificates(items []string) {
	b.heading("Certificates")
	for _, cert := range items {
		b.breakIfNeeded(bulletReserve)
		y := b.ctx.Y()
		text, date := splitDate(cert)
		width := ContentWidth
		if date != "" {
			width -= rightColumnWidth
			b.rightText(y, date, smallSize, true, AccentColor)
		}
		h := b.block(MarginLeft, y, width, text, bodySize, false, BodyColor)
		b.ctx.Advance(h + 3)
	}
	b.ctx.Advance(6)
}

// scoreLabel names the score of a degree: CGPA for bachelor programs, Percentage otherwise.
func scoreLabel(degree string) string {
	d := strings.ToLower(degree)
	if strings.Contains(d, "bachelor") || strings.Contains(d, "b.tech") {
		return "CGPA"
	}
	return "Percentage"
}

func (b *builder) education(entries []types.Education) {
	b.heading("Education")
	for _, edu := range entries {
		b.breakIfNeeded(educationReserve)
		y := b.ctx.Y()
		h := b.entryTitle(y, edu.Institution)
		if edu.Location != "" {
			b.rightText(y, edu.Location, smallSize, true, BodyColor)
		}
		b.ctx.Advance(h)

		b.text(MarginLeft, b.ctx.Y(), edu.Degree, bodySize, false, BodyColor)
		b.ctx.Advance(13)

		y = b.ctx.Y()
		switch {
		case edu.Score != "":
			b.text(MarginLeft, y, scoreLabel(edu.Degree)+": "+edu.Score, bodySize, false, BodyColor)
			if edu.Year != "" {
				b.rightText(y, edu.Year, smallSize, true, AccentColor)
			}
			b.ctx.Advance(16)
		case edu.Year != "":
			b.rightText(y, edu.Year, smallSize, true, AccentColor)
			b.ctx.Advance(16)
		}
	}
}
