package progress

import "image"

// Rect is a rectangle in view pixels with float edges, as handed to drawers.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Dx returns the width of r.
func (r Rect) Dx() float32 { return r.Right - r.Left }

// Dy returns the height of r.
func (r Rect) Dy() float32 { return r.Bottom - r.Top }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{Left: r.Left + d, Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d}
}

// Image converts r to integer pixels, rounding each edge to the nearest
// pixel.
func (r Rect) Image() image.Rectangle {
	return image.Rect(round(r.Left), round(r.Top), round(r.Right), round(r.Bottom))
}

// Canon returns r with its edges swapped as needed so that Left <= Right and
// Top <= Bottom. Horizontal indicators thinner than twice their shadow
// padding are inverted vertically.
func (r Rect) Canon() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// dirty returns the region to redraw when the content of r changes: r
// truncated to pixels and grown by one pixel on each side to cover
// antialiased and stroked edges.
func (r Rect) dirty() image.Rectangle {
	r = r.Canon()
	return image.Rect(int(r.Left)-1, int(r.Top)-1, int(r.Right)+1, int(r.Bottom)+1)
}

func round(f float32) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

// Params are the raw inputs of the bounds calculation.
type Params struct {
	Size          Dimension
	BorderWidth   Dimension
	ShadowPadding Dimension
	Padding       int
	ShadowEnabled bool
	Gravity       Gravity
	// Rtl is the effective layout direction.
	Rtl bool
}

// Bounds are the outputs of the bounds calculation.
type Bounds struct {
	// Size of the indicator square (circular) or bar length (horizontal).
	Size int
	// BorderWidth is the stroke width, or the bar thickness. Never below 1.
	BorderWidth int
	// ShadowPadding between shadow and indicator. Zero without shadow.
	ShadowPadding int
	// Indicator is where the progress shape is drawn.
	Indicator Rect
	// Shadow encloses the indicator and its shadow margin.
	Shadow Rect
}

// Calculate computes the indicator geometry for a view of the given size.
//
// It is pure: the same inputs always give identical outputs. Percentages
// take priority over pixel values; the size percentage refers to the largest
// square fitting the view minus padding, the border width and shadow padding
// percentages to the resulting size. For modes without a family all
// rectangles are empty.
func Calculate(p Params, width, height int, mode Mode) Bounds {
	maxSize := width
	if height < maxSize {
		maxSize = height
	}
	maxSize -= 2 * p.Padding
	if maxSize < 0 {
		maxSize = 0
	}

	var b Bounds
	b.Size = p.Size.floor(maxSize)
	if b.Size > maxSize {
		b.Size = maxSize
	}
	if b.Size < 0 {
		b.Size = 0
	}
	b.ShadowPadding = p.ShadowPadding.floor(b.Size)
	if !p.ShadowEnabled || b.ShadowPadding < 0 {
		b.ShadowPadding = 0
	}
	b.BorderWidth = p.BorderWidth.round(b.Size)
	if b.BorderWidth < 1 {
		b.BorderWidth = 1
	}

	family := mode.Family()
	if family == NoFamily {
		return b
	}

	anchor := p.Gravity.Resolve(p.Rtl)
	thickness, inset := b.Size, b.ShadowPadding+b.BorderWidth/2
	if family == Horizontal {
		// The border width is the bar itself, not a stroke around it.
		thickness, inset = b.BorderWidth, b.ShadowPadding
	}
	left, right := span(anchor.Left, anchor.Right, width, b.Size, p.Padding)
	top, bottom := span(anchor.Top, anchor.Bottom, height, thickness, p.Padding)
	b.Shadow = Rect{
		Left:   float32(left),
		Top:    float32(top),
		Right:  float32(right),
		Bottom: float32(bottom),
	}
	b.Indicator = b.Shadow.Inset(float32(inset))
	return b
}

// span places a segment of length size along an axis of length total.
func span(leading, trailing bool, total, size, padding int) (start, end int) {
	switch {
	case leading:
		return padding, size + padding
	case trailing:
		return total - size - padding, total - padding
	}
	return (total - size) / 2, (total + size) / 2
}
