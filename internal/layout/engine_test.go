package layout

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/emphasis"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every rune the same width regardless of font.
type fixedMeasurer struct {
	perRune float64
}

func (m fixedMeasurer) Width(text string, _ bool, _ float64) float64 {
	return float64(len([]rune(text))) * m.perRune
}

func newTestEngine() *Engine {
	return NewEngine(fixedMeasurer{perRune: 5}, emphasis.Default())
}

func newTestBuilder() *builder {
	return &builder{
		Engine: newTestEngine(),
		ctx:    NewContext(),
		plan:   &Plan{Pages: []Page{{}}},
	}
}

func instructions(p *Plan, kind Kind) []Instruction {
	var out []Instruction
	for _, page := range p.Pages {
		for _, in := range page.Instructions {
			if in.Kind == kind {
				out = append(out, in)
			}
		}
	}
	return out
}

func findText(p *Plan, text string) (Instruction, bool) {
	for _, in := range instructions(p, KindText) {
		if in.Text == text {
			return in, true
		}
	}
	return Instruction{}, false
}

func TestLayout_MissingInput(t *testing.T) {
	plan, err := newTestEngine().Layout(nil)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Nil(t, plan)
}

func TestLayout_NameOnly(t *testing.T) {
	doc := &types.ResumeDocument{Personal: types.Personal{Name: "Ada Lovelace"}}

	plan, err := newTestEngine().Layout(doc)
	require.NoError(t, err)
	require.Len(t, plan.Pages, 1)
	require.Len(t, plan.Pages[0].Instructions, 1)

	name := plan.Pages[0].Instructions[0]
	assert.Equal(t, KindText, name.Kind)
	assert.Equal(t, "Ada Lovelace", name.Text)
	assert.Equal(t, 18.0, name.Size)
	assert.True(t, name.Bold)
	assert.Equal(t, HeadingColor, name.Color)
	assert.Equal(t, StartY, name.Y)
}

func TestLayout_EmptyNameEmitsNothing(t *testing.T) {
	plan, err := newTestEngine().Layout(&types.ResumeDocument{})
	require.NoError(t, err)
	require.Len(t, plan.Pages, 1)
	assert.Empty(t, plan.Pages[0].Instructions)
}

func TestLayout_ExperienceBulletsBoldKeywords(t *testing.T) {
	doc := &types.ResumeDocument{
		Personal: types.Personal{Name: "Ada"},
		Experience: []types.Experience{{
			Company:     "Acme",
			Title:       "Intern",
			Duration:    "Jun 2024 - Jul 2024",
			Description: "Built a React dashboard\nUsed Node.js APIs",
		}},
	}

	plan, err := newTestEngine().Layout(doc)
	require.NoError(t, err)

	bullets := instructions(plan, KindBullet)
	require.Len(t, bullets, 2)

	bold := func(in Instruction) []string {
		var out []string
		for _, r := range in.Runs {
			if r.Bold {
				out = append(out, r.Text)
			}
		}
		return out
	}
	assert.Equal(t, []string{"React"}, bold(bullets[0]))
	assert.Equal(t, []string{"Node.js"}, bold(bullets[1]))
	assert.Len(t, bullets[0].Runs, 4)
	assert.Len(t, bullets[1].Runs, 3)

	company, ok := findText(plan, "ACME")
	require.True(t, ok)
	assert.True(t, company.Bold)
	assert.Equal(t, AccentColor, company.Color)

	duration, ok := findText(plan, "Jun 2024 - Jul 2024")
	require.True(t, ok)
	assert.Equal(t, company.Y, duration.Y)
	assert.InDelta(t, PageWidth-MarginRight-19*5, duration.X, 1e-9)

	title, ok := findText(plan, "Intern")
	require.True(t, ok)
	assert.InDelta(t, company.Y+13, title.Y, 1e-9)
	assert.InDelta(t, title.Y+14+4, bullets[0].Y, 1e-9)
	assert.InDelta(t, bullets[0].Y+bulletGap, bullets[1].Y, 1e-9)
}

func TestBullet_OneWordOverflowWrapsOnce(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 200
	// 19 words of "aaaa " fill 475pt of the 479.28pt line; the 20th does not fit
	text := strings.TrimSpace(strings.Repeat("aaaa ", 20))

	b.bullet(text)

	bullets := instructions(b.plan, KindBullet)
	require.Len(t, bullets, 1)
	runs := bullets[0].Runs
	require.Len(t, runs, 20)
	for _, r := range runs[:19] {
		assert.Equal(t, 200.0, r.Y)
	}
	assert.Equal(t, 212.0, runs[19].Y)
	assert.Equal(t, MarginLeft+bulletIndent, runs[19].X)
	assert.Equal(t, 227.0, b.ctx.Y())
}

func TestBullet_FitsOnOneLine(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 200
	b.bullet(strings.TrimSpace(strings.Repeat("aaaa ", 19)))

	runs := instructions(b.plan, KindBullet)[0].Runs
	for _, r := range runs {
		assert.Equal(t, 200.0, r.Y)
	}
	assert.Equal(t, 215.0, b.ctx.Y())
}

func TestBullet_LongWordAloneIsNotWrapped(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 200
	b.bullet(strings.Repeat("x", 200))

	runs := instructions(b.plan, KindBullet)[0].Runs
	require.Len(t, runs, 1)
	assert.Equal(t, 200.0, runs[0].Y)
}

func TestBullet_PageBreakBoundary(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		wantPages int
	}{
		{"at H-50 stays", PageHeight - 50, 1},
		{"at H-51 stays", PageHeight - 51, 1},
		{"past H-50 breaks", PageHeight - 49, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			b.ctx.y = tt.y
			b.bullet("Shipped it")

			require.Len(t, b.plan.Pages, tt.wantPages)
			last := b.plan.Pages[len(b.plan.Pages)-1].Instructions
			require.Len(t, last, 1)
			if tt.wantPages == 2 {
				assert.Equal(t, ResumeY+4, last[0].Y)
			} else {
				assert.Equal(t, tt.y+4, last[0].Y)
			}
		})
	}
}

func TestHeading_PageBreakBoundary(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		wantPages int
	}{
		{"at H-100 stays", PageHeight - 100, 1},
		{"at H-101 stays", PageHeight - 101, 1},
		{"past H-100 breaks", PageHeight - 99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			b.ctx.y = tt.y
			b.heading("Projects")

			require.Len(t, b.plan.Pages, tt.wantPages)
			label, ok := findText(b.plan, "PROJECTS")
			require.True(t, ok)
			wantY := tt.y
			if tt.wantPages == 2 {
				wantY = ResumeY
				assert.Empty(t, b.plan.Pages[0].Instructions)
			}
			assert.Equal(t, wantY, label.Y)
			assert.Equal(t, wantY+20, b.ctx.Y())
		})
	}
}

func TestHeading_Rule(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.heading("Professional Summary")

	label, ok := findText(b.plan, "PROFESSIONAL SUMMARY")
	require.True(t, ok)
	assert.Equal(t, 11.0, label.Size)
	assert.Equal(t, HeadingColor, label.Color)

	lines := instructions(b.plan, KindLine)
	require.Len(t, lines, 1)
	assert.Equal(t, 114.0, lines[0].Y)
	assert.Equal(t, lines[0].Y, lines[0].Y2)
	assert.Equal(t, MarginLeft, lines[0].X)
	assert.Equal(t, PageWidth-MarginRight, lines[0].X2)
	assert.Equal(t, 0.5, lines[0].LineWidth)
}

func TestExperience_EntryBreaksBeforeBlock(t *testing.T) {
	b := newTestBuilder()
	// heading fits, but the entry would start past H-150
	b.ctx.y = PageHeight - 160
	b.experience([]types.Experience{{Company: "Acme", Title: "Intern", Description: "Did things"}})

	require.Len(t, b.plan.Pages, 2)
	_, onFirst := findText(&Plan{Pages: b.plan.Pages[:1]}, "INTERNSHIP")
	assert.True(t, onFirst)

	company, ok := findText(&Plan{Pages: b.plan.Pages[1:]}, "ACME")
	require.True(t, ok)
	assert.Equal(t, ResumeY, company.Y)
}

func TestHeader_ContactColumns(t *testing.T) {
	b := newTestBuilder()
	b.header(types.Personal{
		Name:      "Ada",
		Email:     "ada@example.com",
		Phone:     "555",
		LinkedIn:  "https://linkedin.com/in/ada",
		GitHub:    "https://github.com/ada",
		Portfolio: "https://ada.dev",
	})

	// three rows on the left decide the block height
	assert.Equal(t, StartY+22+3*contactRow+12, b.ctx.Y())

	linkedin, ok := findText(b.plan, "linkedin.com/in/ada")
	require.True(t, ok)
	assert.Equal(t, StartY+22, linkedin.Y)
	assert.Equal(t, MarginLeft+10*5, linkedin.X)
	assert.Equal(t, AccentColor, linkedin.Color)

	portfolio, ok := findText(b.plan, "ada.dev")
	require.True(t, ok)
	assert.Equal(t, StartY+22+2*contactRow, portfolio.Y)

	github, ok := findText(b.plan, "Github: ")
	require.True(t, ok)
	assert.InDelta(t, MarginLeft+ContentWidth/2+10, github.X, 1e-9)
	assert.Equal(t, StartY+22, github.Y)
	assert.True(t, github.Bold)

	mobile, ok := findText(b.plan, "Mobile: ")
	require.True(t, ok)
	assert.Equal(t, StartY+22+contactRow, mobile.Y)
}

func TestSummary_Justified(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.summary(strings.TrimSpace(strings.Repeat("word ", 30)))

	firstLine := 0
	var last Instruction
	for _, in := range instructions(b.plan, KindText) {
		if in.Y == 120 {
			firstLine++
			last = in
		}
	}
	// 20 words fit the first line and are spread to the full width
	assert.Equal(t, 20, firstLine)
	assert.InDelta(t, MarginLeft+ContentWidth, last.X+20, 1e-6)

	second, ok := findText(b.plan, strings.TrimSpace(strings.Repeat("word ", 10)))
	require.True(t, ok)
	assert.Equal(t, 132.0, second.Y)
	assert.InDelta(t, 120+2*12+10, b.ctx.Y(), 1e-9)
}

func TestSkills_Rows(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.skills(types.Skills{
		Languages:  []string{"Go", "Python"},
		Frameworks: []string{},
		Tools:      []string{"PostgreSQL"},
		Soft:       nil,
	})

	lang, ok := findText(b.plan, "Languages: ")
	require.True(t, ok)
	assert.Equal(t, AccentColor, lang.Color)

	values, ok := findText(b.plan, "Go, Python")
	require.True(t, ok)
	assert.Equal(t, MarginLeft+11*5, values.X)
	assert.Equal(t, lang.Y, values.Y)

	_, ok = findText(b.plan, "Framework: ")
	assert.False(t, ok)

	db, ok := findText(b.plan, "DataBases: ")
	require.True(t, ok)
	assert.Equal(t, lang.Y+12+3, db.Y)
	assert.Equal(t, 120+2*15+8.0, b.ctx.Y())
}

func TestProjects_LiveLink(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.projects([]types.Project{{
		Title:       "Shop",
		Tech:        "React, Express",
		Duration:    "2024",
		LiveLink:    "https://shop.dev",
		Description: "Built a shopping cart",
	}})

	tech, ok := findText(b.plan, "Tech: React, Express")
	require.True(t, ok)
	assert.Equal(t, 133.0, tech.Y)

	links := instructions(b.plan, KindLink)
	require.Len(t, links, 1)
	assert.Equal(t, "https://shop.dev", links[0].URL)
	assert.Equal(t, 146.0, links[0].Y)
	assert.Equal(t, MarginLeft+6*5, links[0].X)

	text, ok := findText(b.plan, "https://shop.dev")
	require.True(t, ok)
	assert.True(t, text.Underline)
	assert.Equal(t, LinkColor, text.Color)

	bullets := instructions(b.plan, KindBullet)
	require.Len(t, bullets, 1)
	assert.Equal(t, 159.0+4, bullets[0].Y)
}

func TestAchievements_MarkerAndWrap(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.achievements([]string{"Won a hackathon", "Top 1%"})

	circles := instructions(b.plan, KindCircle)
	require.Len(t, circles, 2)
	assert.Equal(t, 124.0, circles[0].Y)
	assert.Equal(t, 124.0+15, circles[1].Y)

	won, ok := findText(b.plan, "Won a hackathon")
	require.True(t, ok)
	assert.Equal(t, MarginLeft+bulletIndent, won.X)
	assert.False(t, won.Bold)
	assert.Equal(t, 120+2*15+6.0, b.ctx.Y())
}

func TestSplitDate(t *testing.T) {
	tests := []struct {
		in, text, date string
	}{
		{"AWS Cloud Practitioner (2024)", "AWS Cloud Practitioner", "2024"},
		{"Meta Frontend (Jan 2023)  ", "Meta Frontend", "Jan 2023"},
		{"No date here", "No date here", ""},
		{"Course (online) from Coursera", "Course (online) from Coursera", ""},
	}
	for _, tt := range tests {
		text, date := splitDate(tt.in)
		assert.Equal(t, tt.text, text, tt.in)
		assert.Equal(t, tt.date, date, tt.in)
	}
}

func TestCertificates_DateRightAligned(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.certificates([]string{"AWS Cloud Practitioner (2024)"})

	date, ok := findText(b.plan, "2024")
	require.True(t, ok)
	assert.True(t, date.Bold)
	assert.InDelta(t, PageWidth-MarginRight-20, date.X, 1e-9)

	text, ok := findText(b.plan, "AWS Cloud Practitioner")
	require.True(t, ok)
	assert.Equal(t, date.Y, text.Y)
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "CGPA", scoreLabel("B.Tech in Computer Science"))
	assert.Equal(t, "CGPA", scoreLabel("Bachelor of Science"))
	assert.Equal(t, "Percentage", scoreLabel("Class XII"))
	assert.Equal(t, "Percentage", scoreLabel(""))
}

func TestEducation_ScoreAndYear(t *testing.T) {
	b := newTestBuilder()
	b.ctx.y = 100
	b.education([]types.Education{
		{Degree: "B.Tech", Institution: "IIT", Year: "2025", Score: "8.9", Location: "Delhi"},
		{Degree: "Class XII", Institution: "DPS", Year: "2021"},
	})

	score, ok := findText(b.plan, "CGPA: 8.9")
	require.True(t, ok)
	assert.Equal(t, 146.0, score.Y)

	years := 0
	for _, in := range instructions(b.plan, KindText) {
		if in.Text == "2025" || in.Text == "2021" {
			years++
			assert.Equal(t, AccentColor, in.Color)
		}
	}
	assert.Equal(t, 2, years)

	_, ok = findText(b.plan, "Percentage: ")
	assert.False(t, ok)
	// each entry takes 13 + 13 + 16
	assert.Equal(t, 120+2*42.0, b.ctx.Y())
}

func TestEntryTitles_WrapClearOfRightColumn(t *testing.T) {
	limit := ContentWidth - rightColumnWidth
	institution := "National Institute of Advanced Industrial Science and Technology, School of Computing and Data Engineering"
	company := "Consolidated Interplanetary Logistics and Freight Forwarding Holdings International Private Limited"

	tests := []struct {
		name  string
		title string
		right string
		next  string
		draw  func(b *builder)
	}{
		{
			name:  "education institution",
			title: institution,
			right: "New Delhi",
			next:  "B.Tech",
			draw: func(b *builder) {
				b.education([]types.Education{{Institution: institution, Degree: "B.Tech", Location: "New Delhi"}})
			},
		},
		{
			name:  "experience company",
			title: strings.ToUpper(company),
			right: "Jun 2024 - Aug 2024",
			next:  "Backend Intern",
			draw: func(b *builder) {
				b.experience([]types.Experience{{Company: company, Title: "Backend Intern", Duration: "Jun 2024 - Aug 2024"}})
			},
		},
		{
			name:  "project title",
			title: company,
			right: "2024",
			next:  "Tech: Go",
			draw: func(b *builder) {
				b.projects([]types.Project{{Title: company, Tech: "Go", Duration: "2024"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			b.ctx.y = 100
			tt.draw(b)
			top := 100 + 20.0

			lines := wrapText(b.measure, tt.title, true, bodySize, limit)
			require.Greater(t, len(lines), 1)
			for i, line := range lines {
				in, ok := findText(b.plan, line)
				require.True(t, ok, line)
				assert.Equal(t, MarginLeft, in.X)
				assert.InDelta(t, top+float64(i)*leading(bodySize), in.Y, 1e-9)
				assert.True(t, in.Bold)
				assert.LessOrEqual(t, in.X+b.measure.Width(line, true, bodySize), PageWidth-MarginRight-rightColumnWidth)
			}

			right, ok := findText(b.plan, tt.right)
			require.True(t, ok)
			assert.Equal(t, top, right.Y)

			next, ok := findText(b.plan, tt.next)
			require.True(t, ok)
			assert.InDelta(t, top+float64(len(lines))*leading(bodySize), next.Y, 1e-9)
		})
	}
}

func TestLayout_LongDocumentPaginates(t *testing.T) {
	doc := &types.ResumeDocument{Personal: types.Personal{Name: "Ada"}}
	for i := 0; i < 25; i++ {
		doc.Experience = append(doc.Experience, types.Experience{
			Company:     "Acme",
			Title:       "Engineer",
			Duration:    "2024",
			Description: "Built APIs\nShipped React apps\nWrote Docker tooling",
		})
	}

	plan, err := newTestEngine().Layout(doc)
	require.NoError(t, err)
	assert.Greater(t, len(plan.Pages), 1)
	assert.Equal(t, 75, plan.Count(KindBullet))

	for _, page := range plan.Pages {
		for _, in := range page.Instructions {
			assert.Less(t, in.Y, PageHeight)
		}
	}
}
