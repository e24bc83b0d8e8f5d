package progress

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/chewxy/math32"

	"git.sr.ht/~gioverse/imageview/anim"
)

// bar returns the track of a horizontal indicator: the horizontal extent of
// b, thickness high, centered on b vertically.
func bar(b Rect, thickness float32) Rect {
	cy := (b.Top + b.Bottom) / 2
	return Rect{Left: b.Left, Top: cy - thickness/2, Right: b.Right, Bottom: cy + thickness/2}
}

// horizontalDeterminateDrawer draws a track filled from the start edge.
type horizontalDeterminateDrawer struct {
	valueAnimation
	shadow shadow
	front  color.NRGBA
	back   color.NRGBA
	border float32
	rtl    bool
}

func (d *horizontalDeterminateDrawer) Setup(o *Options) {
	d.shadow.setup(o)
	d.front = o.FrontColor()
	d.back = o.BackColor()
	d.border = float32(o.CalculatedBorderWidth())
	d.rtl = o.Params().Rtl
	d.set(o.ValuePercent(), o.DeterminateAnimationEnabled())
}

func (d *horizontalDeterminateDrawer) Draw(gtx layout.Context, b Rect) {
	d.shadow.drawBar(gtx.Ops)
	b = bar(b, d.border)
	if b.Empty() {
		return
	}
	paint.FillShape(gtx.Ops, d.back, clip.Rect(b.Image()).Op())
	fill := b
	w := b.Dx() * d.value / 100
	if d.rtl {
		fill.Left = b.Right - w
	} else {
		fill.Right = b.Left + w
	}
	if fill.Empty() {
		return
	}
	paint.FillShape(gtx.Ops, d.front, clip.Rect(fill.Image()).Op())
}

func (d *horizontalDeterminateDrawer) StartIndeterminateAnimation() {}

func (d *horizontalDeterminateDrawer) StopIndeterminateAnimation() { d.stop() }

func (d *horizontalDeterminateDrawer) SetListener(invalidate func()) { d.invalidate = invalidate }

const (
	// phaseStep moves the segment across the track in one second.
	phaseStep = float32(1) / 60
	// segmentRatio is the segment length relative to the track.
	segmentRatio = 0.25
)

// horizontalIndeterminateDrawer sweeps a segment across the track, entering
// and leaving at the edges.
type horizontalIndeterminateDrawer struct {
	ticker     anim.Ticker
	invalidate func()
	shadow     shadow
	color      color.NRGBA
	border     float32
	rtl        bool
	// phase in [0, 1) of the current sweep.
	phase float32
}

func (d *horizontalIndeterminateDrawer) Setup(o *Options) {
	d.shadow.setup(o)
	d.color = o.IndeterminateColor()
	d.border = float32(o.CalculatedBorderWidth())
	d.rtl = o.Params().Rtl
}

// segment returns the visible part of the moving segment within b.
func (d *horizontalIndeterminateDrawer) segment(b Rect) Rect {
	seg := b.Dx() * segmentRatio
	offset := d.phase*(b.Dx()+seg) - seg
	s := b
	if d.rtl {
		s.Right = b.Right - offset
		s.Left = s.Right - seg
	} else {
		s.Left = b.Left + offset
		s.Right = s.Left + seg
	}
	s.Left = math32.Max(s.Left, b.Left)
	s.Right = math32.Min(s.Right, b.Right)
	return s
}

func (d *horizontalIndeterminateDrawer) Draw(gtx layout.Context, b Rect) {
	d.shadow.drawBar(gtx.Ops)
	b = bar(b, d.border)
	if b.Empty() {
		return
	}
	if s := d.segment(b); !s.Empty() {
		paint.FillShape(gtx.Ops, d.color, clip.Rect(s.Image()).Op())
	}
}

func (d *horizontalIndeterminateDrawer) tick() {
	d.phase += phaseStep
	if d.phase >= 1 {
		d.phase -= 1
	}
	if d.invalidate != nil {
		d.invalidate()
	}
}

func (d *horizontalIndeterminateDrawer) StartIndeterminateAnimation() {
	if d.ticker != nil {
		d.ticker.Start(frameInterval, d.tick)
	}
}

func (d *horizontalIndeterminateDrawer) StopIndeterminateAnimation() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
}

func (d *horizontalIndeterminateDrawer) SetListener(invalidate func()) { d.invalidate = invalidate }
