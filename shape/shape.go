// Package shape masks widgets, typically images, with simple outlines and
// decorates them with a background and a border.
package shape

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/component"
)

// Options of a shape. The zero value draws neither border nor background.
type Options struct {
	// BorderWidth in pixels, drawn inside the shape outline.
	BorderWidth int
	BorderColor color.NRGBA
	// BackgroundColor fills the shape beneath the content, showing through
	// transparent pixels.
	BackgroundColor color.NRGBA
	// Radius of the corners of RoundedRectangle, in pixels.
	Radius int
}

// Bounds of a shape inside a view.
type Bounds struct {
	// Outer is the shape outline, border included.
	Outer image.Rectangle
	// Inner is where the content shows, inside the border.
	Inner image.Rectangle
	// Radius of the inner corners, for rounded rectangles.
	Radius int
}

// Calculate the bounds of a shape in a view of size w×h.
func Calculate(mode Mode, w, h int, o Options) Bounds {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := Bounds{Outer: image.Rect(0, 0, w, h)}
	if mode.Centered() {
		side := w
		if h < side {
			side = h
		}
		x, y := (w-side)/2, (h-side)/2
		b.Outer = image.Rect(x, y, x+side, y+side)
	}
	b.Inner = b.Outer
	if mode == Normal {
		return b
	}
	bw := o.BorderWidth
	if limit := min(b.Outer.Dx(), b.Outer.Dy()) / 2; bw > limit {
		bw = limit
	}
	if bw > 0 {
		b.Inner = b.Outer.Inset(bw)
	}
	if mode == RoundedRectangle {
		b.Radius = o.Radius - bw
		if limit := min(b.Inner.Dx(), b.Inner.Dy()) / 2; b.Radius > limit {
			b.Radius = limit
		}
		if b.Radius < 0 {
			b.Radius = 0
		}
	}
	return b
}

// Shape lays out a widget masked by an outline.
type Shape struct {
	Mode Mode
	Options
}

// Layout the widget, clipped to the shape computed from its dimensions.
func (s Shape) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	b := Calculate(s.Mode, dims.Size.X, dims.Size.Y, s.Options)

	if s.BackgroundColor.A > 0 {
		s.background(gtx, b)
	}
	if s.Mode == Normal {
		call.Add(gtx.Ops)
		return dims
	}
	stack := s.clip(gtx.Ops, b.Inner, b.Radius).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
	s.border(gtx.Ops, b)
	return dims
}

func (s Shape) background(gtx layout.Context, b Bounds) {
	switch s.Mode {
	case Normal, Rectangle:
		component.Rect{Color: s.BackgroundColor, Size: b.Outer.Size()}.Layout(gtx)
	default:
		paint.FillShape(gtx.Ops, s.BackgroundColor, s.clip(gtx.Ops, b.Outer, s.Radius))
	}
}

func (s Shape) border(ops *op.Ops, b Bounds) {
	if s.BorderColor.A == 0 || b.Inner == b.Outer {
		return
	}
	// The stroke is centered on its path: trace it half a border inside.
	bw := b.Inner.Min.X - b.Outer.Min.X
	mid := b.Outer.Inset(bw / 2)
	paint.FillShape(ops, s.BorderColor, clip.Stroke{
		Path:  s.path(ops, mid, b.Radius+bw/2),
		Width: float32(bw),
	}.Op())
}

// clip returns the clip operation of the shape outline fitted in r.
func (s Shape) clip(ops *op.Ops, r image.Rectangle, radius int) clip.Op {
	switch s.Mode {
	case Circle, Oval:
		return clip.Ellipse(r).Op(ops)
	case RoundedRectangle:
		return clip.UniformRRect(r, radius).Op(ops)
	}
	return clip.Rect(r).Op()
}

func (s Shape) path(ops *op.Ops, r image.Rectangle, radius int) clip.PathSpec {
	switch s.Mode {
	case Circle, Oval:
		return clip.Ellipse(r).Path(ops)
	case RoundedRectangle:
		return clip.UniformRRect(r, radius).Path(ops)
	}
	return clip.Rect(r).Path()
}
