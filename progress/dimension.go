package progress

import "github.com/chewxy/math32"

// DimensionKind tells which value of a Dimension is in effect.
type DimensionKind uint8

const (
	// Unset dimensions resolve to zero.
	Unset DimensionKind = iota
	// Pixels dimensions resolve to their absolute value.
	Pixels
	// Percent dimensions resolve to a percentage of a reference length.
	Percent
)

// Dimension is a length given in pixels or as a percentage of a reference
// length. Both values are retained; the percentage wins whenever it is
// non-negative, so that switching it off falls back to the pixel value.
type Dimension struct {
	kind    DimensionKind
	px      int
	percent float32
}

// Px returns a pixel dimension. Negative values are unset.
func Px(px int) Dimension {
	return Dimension{percent: -1}.WithPx(px)
}

// Pct returns a percentage dimension, folded into [0, 100). A negative
// percentage is unset.
func Pct(percent float32) Dimension {
	return Dimension{px: -1}.WithPercent(percent)
}

// WithPx replaces the pixel value. A percentage in effect stays in effect.
func (d Dimension) WithPx(px int) Dimension {
	d.px = px
	if d.kind != Percent {
		d.kind = pixelKind(px)
	}
	return d
}

// WithPercent replaces the percentage, folding values of 100 and more into
// [0, 100). Zero is a valid percentage; a negative one hands priority back
// to the pixel value.
func (d Dimension) WithPercent(percent float32) Dimension {
	percent = foldPercent(percent)
	d.percent = percent
	if percent >= 0 {
		d.kind = Percent
	} else {
		d.kind = pixelKind(d.px)
	}
	return d
}

// Kind in effect.
func (d Dimension) Kind() DimensionKind { return d.kind }

// Pixels value as last set, whether in effect or not.
func (d Dimension) Pixels() int { return d.px }

// Percentage value as last set, whether in effect or not.
func (d Dimension) Percentage() float32 { return d.percent }

// floor resolves the dimension against ref, truncating percentages.
func (d Dimension) floor(ref int) int {
	switch d.kind {
	case Percent:
		return int(float32(ref) * d.percent / 100)
	case Pixels:
		return d.px
	}
	return 0
}

// round resolves the dimension against ref, rounding percentages half up.
func (d Dimension) round(ref int) int {
	switch d.kind {
	case Percent:
		return int(math32.Floor(float32(ref)*d.percent/100 + 0.5))
	case Pixels:
		return d.px
	}
	return 0
}

func pixelKind(px int) DimensionKind {
	if px < 0 {
		return Unset
	}
	return Pixels
}

// foldPercent folds percentages of 100 and above into [0, 100).
func foldPercent(p float32) float32 {
	if p >= 100 {
		return math32.Mod(p, 100)
	}
	return p
}
