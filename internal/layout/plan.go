package layout

// Kind identifies the drawing operation of an Instruction.
type Kind string

const (
	KindText   Kind = "text"
	KindLine   Kind = "line"
	KindCircle Kind = "circle"
	KindLink   Kind = "link"
	// KindBullet is a filled marker followed by word runs that may wrap over several lines.
	KindBullet Kind = "bullet"
)

// Color is an RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Palette
var (
	HeadingColor = Color{0x0c, 0x1e, 0x5e}
	AccentColor  = Color{0x1a, 0x4d, 0x8f}
	BodyColor    = Color{0x00, 0x00, 0x00}
	LinkColor    = Color{0x00, 0x66, 0xcc}
)

// Instruction is one absolutely positioned drawing operation.
//
// Coordinates are in points from the top-left corner of the page. For text, Y is the top
// of the line. For lines, (X, Y)-(X2, Y2) are the endpoints. For circles and bullets, (X, Y)
// is the marker center. For links, X, Y, Width and Height describe the clickable area.
type Instruction struct {
	Kind      Kind    `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	X2        float64 `json:"x2,omitempty"`
	Y2        float64 `json:"y2,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
	Text      string  `json:"text,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     Color   `json:"color"`
	URL       string  `json:"url,omitempty"`
	Runs      []Run   `json:"runs,omitempty"`
}

// Run is one word of a bullet, drawn at (X, Y) in the bullet's size and color.
type Run struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Bold bool    `json:"bold,omitempty"`
}

// Page is the ordered instruction list of one page.
type Page struct {
	Instructions []Instruction `json:"instructions"`
}

// Plan is the complete output of a layout run.
type Plan struct {
	Pages []Page `json:"pages"`
}

// Count returns how many instructions of kind the plan holds across all pages.
func (p *Plan) Count(kind Kind) int {
	n := 0
	for _, page := range p.Pages {
		for _, in := range page.Instructions {
			if in.Kind == kind {
				n++
			}
		}
	}
	return n
}
