package progress

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/chewxy/math32"

	"git.sr.ht/~gioverse/imageview/anim"
)

// valueStep is how far, in percent, an animated value moves per tick.
const valueStep = 2

// valueAnimation moves the shown value of determinate drawers towards the
// configured one.
type valueAnimation struct {
	ticker     anim.Ticker
	invalidate func()
	// value is shown, target is configured.
	value, target float32
	ready         bool
}

// set the configured value. The first value and any value while animation
// is disabled are shown immediately.
func (a *valueAnimation) set(target float32, animated bool) {
	a.target = target
	if !a.ready || !animated || a.ticker == nil {
		a.ready = true
		a.value = target
		if a.ticker != nil {
			a.ticker.Stop()
		}
		return
	}
	if a.value != a.target {
		a.ticker.Start(frameInterval, a.step)
	}
}

func (a *valueAnimation) step() {
	delta := a.target - a.value
	if math32.Abs(delta) <= valueStep {
		a.value = a.target
		a.ticker.Stop()
	} else {
		a.value += math32.Copysign(valueStep, delta)
	}
	if a.invalidate != nil {
		a.invalidate()
	}
}

// stop jumps to the configured value.
func (a *valueAnimation) stop() {
	if a.ticker != nil && a.ticker.Running() {
		a.ticker.Stop()
		a.value = a.target
	}
}

// determinateDrawer draws a ring, or a wedge, filled clockwise from twelve
// o'clock.
type determinateDrawer struct {
	valueAnimation
	shadow shadow
	front  color.NRGBA
	back   color.NRGBA
	border float32
	wedge  bool
}

func (d *determinateDrawer) Setup(o *Options) {
	d.shadow.setup(o)
	d.front = o.FrontColor()
	d.back = o.BackColor()
	d.border = float32(o.CalculatedBorderWidth())
	d.wedge = o.DrawWedge()
	d.set(o.ValuePercent(), o.DeterminateAnimationEnabled())
}

func (d *determinateDrawer) Draw(gtx layout.Context, b Rect) {
	d.shadow.drawRound(gtx.Ops)
	if b.Empty() {
		return
	}
	sweep := 2 * math32.Pi * d.value / 100
	if d.wedge {
		paint.FillShape(gtx.Ops, d.back, clip.Ellipse(b.Image()).Op(gtx.Ops))
		if sweep > 0 {
			paint.FillShape(gtx.Ops, d.front, clip.Outline{
				Path: wedgePath(gtx.Ops, b, topAngle, sweep),
			}.Op())
		}
		return
	}
	strokeArc(gtx.Ops, b, topAngle, 2*math32.Pi, d.border, d.back)
	strokeArc(gtx.Ops, b, topAngle, sweep, d.border, d.front)
}

func (d *determinateDrawer) StartIndeterminateAnimation() {}

func (d *determinateDrawer) StopIndeterminateAnimation() { d.stop() }

func (d *determinateDrawer) SetListener(invalidate func()) { d.invalidate = invalidate }

// Arc lengths of the indeterminate indicator, in radians.
const (
	spinStep  = 2 * math32.Pi / 90
	sweepStep = 2 * math32.Pi / 120
	minSweep  = math32.Pi / 8
	maxSweep  = math32.Pi * 3 / 2
)

// indeterminateDrawer draws an arc spinning clockwise while its length
// oscillates.
type indeterminateDrawer struct {
	ticker     anim.Ticker
	invalidate func()
	shadow     shadow
	color      color.NRGBA
	border     float32
	// start is the tail angle, sweep the arc length.
	start, sweep float32
	shrinking    bool
}

func (d *indeterminateDrawer) Setup(o *Options) {
	d.shadow.setup(o)
	d.color = o.IndeterminateColor()
	d.border = float32(o.CalculatedBorderWidth())
	if d.sweep == 0 {
		d.start, d.sweep = topAngle, minSweep
	}
}

func (d *indeterminateDrawer) Draw(gtx layout.Context, b Rect) {
	d.shadow.drawRound(gtx.Ops)
	strokeArc(gtx.Ops, b, d.start, d.sweep, d.border, d.color)
}

func (d *indeterminateDrawer) tick() {
	if d.shrinking {
		// Pull the tail, keeping the head in place.
		d.start += sweepStep
		d.sweep -= sweepStep
		if d.sweep <= minSweep {
			d.sweep, d.shrinking = minSweep, false
		}
	} else {
		d.sweep += sweepStep
		if d.sweep >= maxSweep {
			d.sweep, d.shrinking = maxSweep, true
		}
	}
	d.start = math32.Mod(d.start+spinStep, 2*math32.Pi)
	if d.invalidate != nil {
		d.invalidate()
	}
}

func (d *indeterminateDrawer) StartIndeterminateAnimation() {
	if d.ticker != nil {
		d.ticker.Start(frameInterval, d.tick)
	}
}

func (d *indeterminateDrawer) StopIndeterminateAnimation() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
}

func (d *indeterminateDrawer) SetListener(invalidate func()) { d.invalidate = invalidate }
