// Package rendering draws layout plans as PDF documents with go-pdf/fpdf.
package rendering

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/resume-builder/internal/layout"
)

// ascent is the Helvetica ascender as a fraction of the font size. Plan y values are the
// top of a line; fpdf places text on its baseline.
const ascent = 0.718

// Emitter replays a layout plan onto fpdf pages.
type Emitter struct {
	Title   string
	Creator string
}

// Emit writes plan as a PDF to w. A plan with no pages still produces one blank page.
func (e *Emitter) Emit(plan *layout.Plan, w io.Writer) error {
	if plan == nil {
		return &RenderError{Message: "no plan to emit"}
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(layout.MarginLeft, 0, layout.MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	if e.Title != "" {
		pdf.SetTitle(e.Title, true)
	}
	if e.Creator != "" {
		pdf.SetCreator(e.Creator, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pages := plan.Pages
	if len(pages) == 0 {
		pages = []layout.Page{{}}
	}
	for i, page := range pages {
		pdf.AddPage()
		for _, in := range page.Instructions {
			if err := draw(pdf, tr, in); err != nil {
				err.Page = i + 1
				return err
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

func draw(pdf *fpdf.Fpdf, tr func(string) string, in layout.Instruction) *RenderError {
	switch in.Kind {
	case layout.KindText:
		pdf.SetFont(fontFamily, fontStyle(in.Bold, in.Underline), in.Size)
		pdf.SetTextColor(rgb(in.Color))
		pdf.Text(in.X, in.Y+in.Size*ascent, tr(EscapeCoreFont(in.Text)))
	case layout.KindLine:
		pdf.SetDrawColor(rgb(in.Color))
		pdf.SetLineWidth(in.LineWidth)
		pdf.Line(in.X, in.Y, in.X2, in.Y2)
	case layout.KindCircle:
		pdf.SetFillColor(rgb(in.Color))
		pdf.Circle(in.X, in.Y, in.Radius, "F")
	case layout.KindLink:
		pdf.LinkString(in.X, in.Y, in.Width, in.Height, in.URL)
	case layout.KindBullet:
		pdf.SetFillColor(rgb(in.Color))
		pdf.Circle(in.X, in.Y, in.Radius, "F")
		pdf.SetTextColor(rgb(in.Color))
		for _, run := range in.Runs {
			pdf.SetFont(fontFamily, fontStyle(run.Bold, false), in.Size)
			pdf.Text(run.X, run.Y+in.Size*ascent, tr(EscapeCoreFont(run.Text)))
		}
	default:
		return &RenderError{Message: fmt.Sprintf("unknown instruction kind %q", in.Kind)}
	}
	if pdf.Err() {
		return &RenderError{Message: "drawing failed", Cause: pdf.Error()}
	}
	return nil
}

func rgb(c layout.Color) (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}
