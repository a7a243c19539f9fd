package layout

import "github.com/matzehuels/smartview/pkg/layout/box"

// Length is a size for one axis that may be left unset.
type Length struct {
	Value float64
	Set   bool
}

// Px returns a set Length of v units.
func Px(v float64) Length { return Length{Value: v, Set: true} }

// Offset is the space between a group's outer edge and its content box.
type Offset struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// Horizontal returns Left + Right.
func (o Offset) Horizontal() float64 { return o.Left + o.Right }

// Vertical returns Top + Bottom.
func (o Offset) Vertical() float64 { return o.Top + o.Bottom }

// Add returns the per-side sum of o and p.
func (o Offset) Add(p Offset) Offset {
	return Offset{Top: o.Top + p.Top, Left: o.Left + p.Left, Bottom: o.Bottom + p.Bottom, Right: o.Right + p.Right}
}

// Uniform returns an Offset with v on every side.
func Uniform(v float64) Offset { return Offset{Top: v, Left: v, Bottom: v, Right: v} }

// Spec configures a new group. Width and Height are outer sizes; when one is
// unset the group starts at its offsets and grows with its content.
type Spec struct {
	Align       box.Align
	Width       Length
	Height      Length
	FixedWidth  bool
	FixedHeight bool
	Padding     Offset
}

func (s Spec) length(a box.Axis) Length {
	if a == box.Horizontal {
		return s.Width
	}
	return s.Height
}

// LabelPosition places a visible group's caption.
type LabelPosition int

const (
	// LabelTop reserves a caption band above the content.
	LabelTop LabelPosition = iota
	// LabelLateral reserves a caption column left of the content.
	LabelLateral
)

func (p LabelPosition) String() string {
	if p == LabelLateral {
		return "lateral"
	}
	return "top"
}

// Label is the caption of a visible group.
type Label struct {
	Text     string
	Position LabelPosition
}

// LabelStyle sizes the caption area of visible groups.
type LabelStyle struct {
	Width  float64 // lateral caption column
	Height float64 // top caption band
	Gap    float64 // space between caption and content
}

// Ref ties a container to the semantic element it renders.
// ViewID, when set, becomes the container id; otherwise one is generated.
type Ref struct {
	ModelID string
	ViewID  string
	Name    string
	Type    string
}

// Frame is the absolute geometry of one container after layout.
type Frame struct {
	ID      string
	X, Y    float64
	Width   float64
	Height  float64
	Visible bool
}
