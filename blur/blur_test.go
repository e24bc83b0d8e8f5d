package blur

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			} else {
				img.Set(x, y, color.NRGBA{A: 0xff})
			}
		}
	}
	return img
}

type optionsRecorder struct{ keep, rate int }

func (r *optionsRecorder) KeepOriginalChanged(*Options)     { r.keep++ }
func (r *optionsRecorder) DownSamplingRateChanged(*Options) { r.rate++ }

func TestOptions(t *testing.T) {
	o := NewOptions(0.5, true, false)
	assert.Equal(t, float32(1), o.DownSamplingRate())

	var r optionsRecorder
	unregister := o.SetListener(&r)
	o.SetDownSamplingRate(-3)
	assert.Equal(t, float32(1), o.DownSamplingRate())
	o.SetDownSamplingRate(2.5)
	assert.Equal(t, float32(2.5), o.DownSamplingRate())
	o.SetKeepOriginal(false)
	o.SetUseFallback(true)
	assert.Equal(t, 2, r.rate)
	assert.Equal(t, 1, r.keep)
	assert.True(t, o.UseFallback())

	unregister()
	o.SetKeepOriginal(true)
	assert.Equal(t, 1, r.keep)
}

func TestDownsample(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  image.Point
		view image.Point
		rate float32
		want image.Point
	}{
		{"fits", image.Pt(50, 40), image.Pt(100, 100), 1, image.Pt(50, 40)},
		{"wide", image.Pt(400, 100), image.Pt(100, 100), 1, image.Pt(100, 25)},
		{"tall with rate", image.Pt(100, 400), image.Pt(200, 200), 4, image.Pt(12, 50)},
		{"unknown view", image.Pt(30, 30), image.Pt(0, 0), 1, image.Pt(30, 30)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := downsample(checker(tc.src.X, tc.src.Y), tc.view, tc.rate)
			assert.Equal(t, tc.want, got.Bounds().Size())
		})
	}
}

func TestBlur(t *testing.T) {
	m := NewManager(NewOptions(2, true, false))
	defer m.Close()

	_, err := m.Blur(context.Background(), 3, image.Pt(64, 64))
	assert.ErrorIs(t, err, ErrNoImage)

	src := checker(64, 64)
	m.SetImage(src)
	out, err := m.Blur(context.Background(), 3, image.Pt(64, 64))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 32), out.Bounds().Size())
	assert.Same(t, out, m.Blurred())
	assert.NotNil(t, m.Original(), "original kept")

	// A blurred checkerboard has intermediate grays.
	gray := false
	for _, v := range out.Pix {
		if v != 0 && v != 0xff {
			gray = true
			break
		}
	}
	assert.True(t, gray)
}

func TestBlurReleasesOriginal(t *testing.T) {
	o := NewOptions(1, false, false)
	m := NewManager(o)
	m.SetImage(checker(16, 16))
	first, err := m.Blur(context.Background(), 2, image.Pt(16, 16))
	require.NoError(t, err)
	assert.Nil(t, m.Original())

	again, err := m.Blur(context.Background(), 10, image.Pt(16, 16))
	require.NoError(t, err)
	assert.Same(t, first, again, "released original cannot be blurred again")
}

func TestKeepOriginalChanged(t *testing.T) {
	o := NewOptions(1, true, false)
	m := NewManager(o)
	m.SetImage(checker(8, 8))
	o.SetKeepOriginal(false)
	assert.NotNil(t, m.Original(), "unblurred original survives")

	_, err := m.Blur(context.Background(), 1, image.Pt(8, 8))
	require.NoError(t, err)
	o.SetKeepOriginal(true)
	assert.Nil(t, m.Original())
}

func TestDownSamplingRateChanged(t *testing.T) {
	o := NewOptions(1, true, false)
	m := NewManager(o)
	m.SetImage(checker(8, 8))
	_, err := m.Blur(context.Background(), 1, image.Pt(8, 8))
	require.NoError(t, err)
	gen := m.Generation()

	o.SetDownSamplingRate(2)
	assert.Nil(t, m.Blurred())
	assert.NotEqual(t, gen, m.Generation())
}

func TestBlurFallback(t *testing.T) {
	failing := func(image.Image, float64) *image.RGBA { panic("out of memory") }
	boxed := 0
	box := func(src image.Image, _ float64) *image.RGBA {
		boxed++
		return image.NewRGBA(src.Bounds())
	}

	m := NewManager(NewOptions(1, true, false), WithKernels(failing, box))
	m.SetImage(checker(8, 8))
	_, err := m.Blur(context.Background(), 2, image.Pt(8, 8))
	assert.ErrorIs(t, err, ErrBlurFailed)
	assert.Zero(t, boxed)

	m.Options().SetUseFallback(true)
	out, err := m.Blur(context.Background(), 2, image.Pt(8, 8))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 1, boxed)
}

func TestJobBlursCurrentImage(t *testing.T) {
	m := NewManager(NewOptions(1, true, false))
	m.SetImage(checker(8, 8))
	job := m.Job(2, image.Pt(8, 8))
	m.SetImage(checker(4, 4))

	out, err := job(context.Background())
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 4), out.Bounds().Size())
	assert.Same(t, out, m.Blurred())
}

func TestBlurCancelled(t *testing.T) {
	m := NewManager(NewOptions(1, true, false))
	m.SetImage(checker(8, 8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Blur(ctx, 2, image.Pt(8, 8))
	assert.True(t, errors.Is(err, context.Canceled))
}
