package widget

import (
	"image"

	"gioui.org/op/paint"
)

// Changer can report that it has changed since the last call.
type Changer interface {
	Changed() bool
}

// CachedImage converts an image into a paint operation once and reuses the
// operation until the image is replaced, or reports a change.
type CachedImage struct {
	src image.Image
	op  paint.ImageOp
}

// Set the image to paint. Setting the same image again keeps the cached
// operation.
func (c *CachedImage) Set(src image.Image) {
	if src == c.src {
		return
	}
	c.src = src
	c.op = paint.ImageOp{}
}

// Image returns the image to paint.
func (c *CachedImage) Image() image.Image { return c.src }

// Op returns the paint operation of the image, the zero operation when
// there is none.
//
// If the image implements Changer and reports a change, the operation is
// rebuilt. Gio has a fast path for *image.NRGBA and *image.RGBA images.
func (c *CachedImage) Op() paint.ImageOp {
	if c.src == nil {
		return paint.ImageOp{}
	}
	if changer, ok := c.src.(Changer); (ok && changer.Changed()) || c.op == (paint.ImageOp{}) {
		c.op = paint.NewImageOp(c.src)
	}
	return c.op
}
