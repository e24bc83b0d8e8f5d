package progress

import (
	"image/color"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/chewxy/math32"

	"git.sr.ht/~gioverse/imageview/anim"
)

// Drawer draws the indicator of one mode.
type Drawer interface {
	// Setup reads the options the drawer depends on. It is called whenever
	// they change.
	Setup(o *Options)
	// Draw the indicator inside bounds.
	Draw(gtx layout.Context, bounds Rect)
	// StartIndeterminateAnimation starts periodic redraws of an
	// indeterminate indicator. It is a no-op for determinate ones.
	StartIndeterminateAnimation()
	// StopIndeterminateAnimation stops any running animation.
	StopIndeterminateAnimation()
	// SetListener sets the function asking for the indicator to be redrawn.
	SetListener(invalidate func())
}

// frameInterval paces animation ticks.
const frameInterval = time.Second / 60

// newDrawer builds the drawer for mode. Unknown modes get a drawer that
// draws nothing.
func newDrawer(mode Mode, t anim.Ticker) Drawer {
	switch mode {
	case Determinate:
		return &determinateDrawer{valueAnimation: valueAnimation{ticker: t}}
	case Indeterminate:
		return &indeterminateDrawer{ticker: t}
	case HorizontalDeterminate:
		return &horizontalDeterminateDrawer{valueAnimation: valueAnimation{ticker: t}}
	case HorizontalIndeterminate:
		return &horizontalIndeterminateDrawer{ticker: t}
	}
	return dummyDrawer{}
}

// dummyDrawer is used while the indicator is hidden.
type dummyDrawer struct{}

func (dummyDrawer) Setup(*Options) {}
func (dummyDrawer) Draw(layout.Context, Rect) {}
func (dummyDrawer) StartIndeterminateAnimation() {}
func (dummyDrawer) StopIndeterminateAnimation() {}
func (dummyDrawer) SetListener(func()) {}

// shadow holds the shadow settings shared by all drawers.
type shadow struct {
	enabled bool
	color   color.NRGBA
	bounds  Rect
}

func (s *shadow) setup(o *Options) {
	s.enabled = o.ShadowEnabled()
	s.color = o.ShadowColor()
	s.bounds = o.Shadow()
}

// drawRound fills the shadow circle of circular indicators.
func (s shadow) drawRound(ops *op.Ops) {
	if !s.enabled || s.bounds.Empty() {
		return
	}
	paint.FillShape(ops, s.color, clip.Ellipse(s.bounds.Image()).Op(ops))
}

// drawBar fills the shadow rectangle of horizontal indicators.
func (s shadow) drawBar(ops *op.Ops) {
	if !s.enabled || s.bounds.Empty() {
		return
	}
	paint.FillShape(ops, s.color, clip.Rect(s.bounds.Image()).Op())
}

// circle returns the center and radius of the circle inscribed in r.
func circle(r Rect) (f32.Point, float32) {
	c := f32.Pt((r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
	return c, math32.Min(r.Dx(), r.Dy()) / 2
}

// arcPath traces the arc of the circle inscribed in r, from start sweeping
// clockwise by sweep radians. Zero is the three o'clock position.
func arcPath(ops *op.Ops, r Rect, start, sweep float32) clip.PathSpec {
	c, radius := circle(r)
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(c.Add(f32.Pt(radius*math32.Cos(start), radius*math32.Sin(start))))
	p.ArcTo(c, c, sweep)
	return p.End()
}

// wedgePath traces the pie slice of the circle inscribed in r.
func wedgePath(ops *op.Ops, r Rect, start, sweep float32) clip.PathSpec {
	c, radius := circle(r)
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(c)
	p.LineTo(c.Add(f32.Pt(radius*math32.Cos(start), radius*math32.Sin(start))))
	p.ArcTo(c, c, sweep)
	p.Close()
	return p.End()
}

// strokeArc strokes an arc of the circle inscribed in r.
func strokeArc(ops *op.Ops, r Rect, start, sweep, width float32, col color.NRGBA) {
	if sweep == 0 || r.Empty() {
		return
	}
	paint.FillShape(ops, col, clip.Stroke{
		Path:  arcPath(ops, r, start, sweep),
		Width: width,
	}.Op())
}

// topAngle is twelve o'clock, where determinate indicators start.
const topAngle = -math32.Pi / 2
