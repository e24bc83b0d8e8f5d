/*
Package debug provides tools for debugging the layout of image views.
*/
package debug

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"

	"git.sr.ht/~gioverse/imageview/progress"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	// IndicatorColor outlines the indicator bounds.
	IndicatorColor = color.NRGBA{R: 0xff, A: 0xff}
	// ShadowColor outlines the shadow bounds.
	ShadowColor = color.NRGBA{B: 0xff, A: 0xff}
)

// Outline traces a small black outline around the provided widget.
func Outline(gtx C, w func(gtx C) D) D {
	return widget.Border{
		Color: color.NRGBA{A: 255},
		Width: unit.Dp(1),
	}.Layout(gtx, w)
}

// Bounds traces the shadow and indicator bounds of o, as calculated for the
// current view size.
func Bounds(gtx C, o *progress.Options) D {
	width := float32(gtx.Dp(unit.Dp(1)))
	if width < 1 {
		width = 1
	}
	stroke(gtx, o.Shadow(), width, ShadowColor)
	stroke(gtx, o.Indicator(), width, IndicatorColor)
	return D{Size: gtx.Constraints.Min}
}

func stroke(gtx C, r progress.Rect, width float32, col color.NRGBA) {
	if r == (progress.Rect{}) {
		return
	}
	rect := r.Canon().Image()
	if rect.Empty() {
		// Degenerate bounds still show as a dot.
		rect.Max = rect.Max.Add(image.Pt(1, 1))
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  clip.Rect(rect).Path(),
		Width: width,
	}.Op())
}
