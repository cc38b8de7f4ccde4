package rendering

import (
	"io"

	"github.com/jonathan/resume-builder/internal/emphasis"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// Renderer lays out a resume and emits it as a PDF. Each call uses its own measurer,
// so a Renderer can serve concurrent requests.
type Renderer struct {
	emphasis *emphasis.Table
	emitter  Emitter
}

// NewRenderer returns a renderer that bolds bullet words found in table.
func NewRenderer(table *emphasis.Table) *Renderer {
	return &Renderer{
		emphasis: table,
		emitter:  Emitter{Creator: "resume-builder"},
	}
}

// Plan returns the drawing plan for doc without producing PDF bytes.
func (r *Renderer) Plan(doc *types.ResumeDocument) (*layout.Plan, error) {
	return layout.NewEngine(NewMetrics(), r.emphasis).Layout(doc)
}

// Render writes the PDF for doc to w.
func (r *Renderer) Render(doc *types.ResumeDocument, w io.Writer) error {
	plan, err := r.Plan(doc)
	if err != nil {
		return err
	}
	emitter := r.emitter
	emitter.Title = doc.Personal.Name
	return emitter.Emit(plan, w)
}
