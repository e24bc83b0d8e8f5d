package widget

import (
	"image"
	"image/color"
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~gioverse/imageview/config"
	"git.sr.ht/~gioverse/imageview/progress"
	"git.sr.ht/~gioverse/imageview/shape"
)

func frameContext(size image.Point, now time.Time) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Now:         now,
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(size),
	}
}

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img
}

func TestImageViewLayout(t *testing.T) {
	c := config.Default()
	c.Progress.Mode = progress.Determinate
	c.Shape.Mode = shape.Circle
	v := NewImageView(c, nil)
	defer v.Close()
	v.SetImage(solid(64, 48))

	dims := v.Layout(frameContext(image.Pt(200, 100), time.Now()), widget.Contain, layout.Center)
	assert.Equal(t, image.Pt(200, 100), dims.Size)
	assert.Equal(t, image.Pt(200, 100), v.Size())
	w, h := v.ProgressOptions().LastSize()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.Equal(t, progress.Rect{Left: 86, Top: 36, Right: 114, Bottom: 64}, v.Progress().Bounds())
	assert.True(t, v.Dirty().Empty(), "layout consumes dirty regions")
}

func TestImageViewInvalidation(t *testing.T) {
	c := config.Default()
	c.Progress.Mode = progress.Determinate
	v := NewImageView(c, nil)
	defer v.Close()
	var reported []image.Rectangle
	v.OnInvalidate = func(r image.Rectangle) { reported = append(reported, r) }
	v.Layout(frameContext(image.Pt(200, 100), time.Now()), widget.Contain, layout.Center)
	require.Empty(t, reported, "changes during layout are drawn by that layout")

	v.Progress().SetProgress(50)
	assert.Equal(t, []image.Rectangle{image.Rect(85, 35, 115, 65)}, reported)
	assert.Equal(t, image.Rect(85, 35, 115, 65), v.Dirty())

	v.ProgressOptions().SetGravity(progress.TopStart)
	assert.Equal(t, image.Rect(6, 6, 115, 65), v.Dirty())
}

func TestImageViewSaveRestore(t *testing.T) {
	c := config.Default()
	c.Progress.Mode = progress.HorizontalDeterminate
	c.Shape.Mode = shape.Oval
	v := NewImageView(c, nil)
	defer v.Close()
	v.Layout(frameContext(image.Pt(300, 200), time.Now()), widget.Contain, layout.Center)
	v.Progress().SetProgress(35)
	v.ProgressOptions().SetFrontColor(color.NRGBA{R: 9, A: 0xff})

	data, err := v.Save()
	require.NoError(t, err)

	restored := NewImageView(config.Default(), nil)
	defer restored.Close()
	require.NoError(t, restored.Restore(data))
	assert.Equal(t, shape.Oval, restored.Shape.Mode)
	assert.Equal(t, progress.HorizontalDeterminate, restored.Progress().Mode())
	assert.Equal(t, float32(35), restored.ProgressOptions().ValuePercent())
	assert.Equal(t, color.NRGBA{R: 9, A: 0xff}, restored.ProgressOptions().FrontColor())
	assert.Equal(t, v.Progress().Bounds(), restored.Progress().Bounds())

	assert.ErrorIs(t, restored.Restore([]byte("nope")), ErrBadState)
	assert.ErrorIs(t, restored.Restore(append([]byte(stateMagic), 99)), ErrBadState)
	assert.ErrorIs(t, restored.Restore(append([]byte(stateMagic), 0, 1)), progress.ErrStateTooShort)
}

func TestImageViewBlur(t *testing.T) {
	c := config.Default()
	c.Blur.Enabled = true
	c.Blur.Radius = 2
	c.Blur.DownSamplingRate = 2
	v := NewImageView(c, nil)
	defer v.Close()
	src := solid(40, 40)
	v.SetImage(src)

	size := image.Pt(40, 40)
	require.Eventually(t, func() bool {
		v.Layout(frameContext(size, time.Now()), widget.Fill, layout.Center)
		blurred := v.Blur().Blurred()
		return blurred != nil && v.blurred.Image() == image.Image(blurred)
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, image.Pt(20, 20), v.Blur().Blurred().Bounds().Size())
	assert.NoError(t, v.BlurErr())
	assert.Same(t, src, v.Image())
}

func TestImageViewConfigure(t *testing.T) {
	v := NewImageView(config.Default(), nil)
	defer v.Close()
	v.Layout(frameContext(image.Pt(100, 100), time.Now()), widget.Contain, layout.Center)
	assert.Equal(t, progress.None, v.Progress().Mode())

	c := config.Default()
	c.Progress.Mode = progress.Indeterminate
	c.Shape.Mode = shape.RoundedRectangle
	c.Shape.Radius = 8
	v.Configure(c)
	assert.Equal(t, progress.Indeterminate, v.Progress().Mode())
	assert.Equal(t, 8, v.Shape.Radius)
	assert.False(t, v.Progress().Bounds().Empty())

	// The spinner keeps asking for frames.
	start := time.Now()
	v.Layout(frameContext(image.Pt(100, 100), start), widget.Contain, layout.Center)
	v.Layout(frameContext(image.Pt(100, 100), start.Add(time.Second)), widget.Contain, layout.Center)
	assert.Equal(t, 1, v.clock.Running())
}

func TestCachedImage(t *testing.T) {
	var c CachedImage
	assert.Equal(t, image.Point{}, c.Op().Size())
	img := solid(3, 2)
	c.Set(img)
	cached := c.Op()
	assert.Equal(t, image.Pt(3, 2), cached.Size())
	c.Set(img)
	assert.Equal(t, cached, c.Op(), "same image keeps the operation")
	c.Set(solid(5, 5))
	assert.Equal(t, image.Pt(5, 5), c.Op().Size())
}
