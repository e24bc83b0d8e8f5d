// Package blur blurs images to a size suited to the view showing them.
package blur

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"go.uber.org/zap"

	"git.sr.ht/~gioverse/imageview/async"
)

var (
	// ErrNoImage is returned when there is nothing to blur.
	ErrNoImage = errors.New("blur: no image")
	// ErrBlurFailed is returned when every kernel failed.
	ErrBlurFailed = errors.New("blur: failed")
)

// MaxRadius bounds the blur radius, in pixels of the downsampled image.
const MaxRadius = 25

// Kernel blurs src with the given radius.
type Kernel func(src image.Image, radius float64) *image.RGBA

// Manager blurs one image at a time according to its options.
//
// Blur may run on any goroutine while the UI goroutine sets images and
// options.
type Manager struct {
	options    *Options
	unregister func()
	logger     *zap.Logger
	primary    Kernel
	fallback   Kernel

	mu       sync.Mutex
	original image.Image
	blurred  *image.RGBA
	// generation changes whenever a previous result becomes stale.
	generation uint64
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger logs fallbacks and failures to l.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithKernels replaces the Gaussian and box kernels.
func WithKernels(primary, fallback Kernel) ManagerOption {
	return func(m *Manager) {
		if primary != nil {
			m.primary = primary
		}
		if fallback != nil {
			m.fallback = fallback
		}
	}
}

// NewManager returns a manager listening to o.
func NewManager(o *Options, opts ...ManagerOption) *Manager {
	m := &Manager{
		options:  o,
		logger:   zap.NewNop(),
		primary:  blur.Gaussian,
		fallback: blur.Box,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unregister = o.SetListener(m)
	return m
}

// Options returns the blur options.
func (m *Manager) Options() *Options { return m.options }

// SetImage replaces the image to blur and discards the previous result.
func (m *Manager) SetImage(src image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.original = src
	m.blurred = nil
	m.generation++
}

// Original returns the image to blur, nil once released.
func (m *Manager) Original() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.original
}

// Blurred returns the last result.
func (m *Manager) Blurred() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blurred
}

// Generation identifies the current image and options: results computed
// for another generation are stale.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// request holds the inputs of one blur, read from the options on the
// goroutine owning them.
type request struct {
	radius   float64
	view     image.Point
	rate     float32
	fallback bool
	keep     bool
}

func (m *Manager) request(radius float64, view image.Point) request {
	if radius < 0 {
		radius = 0
	}
	if radius > MaxRadius {
		radius = MaxRadius
	}
	return request{
		radius:   radius,
		view:     view,
		rate:     m.options.DownSamplingRate(),
		fallback: m.options.UseFallback(),
		keep:     m.options.KeepOriginal(),
	}
}

// Blur the image for a view of the given size. radius is clamped to
// [0, MaxRadius]. Once the original has been released, the last result is
// returned as it is.
//
// Blur reads the options, so it must be called from the goroutine owning
// them; use Job to blur on another goroutine.
func (m *Manager) Blur(ctx context.Context, radius float64, view image.Point) (*image.RGBA, error) {
	return m.blur(ctx, m.request(radius, view))
}

// Job returns a load function blurring for view with the current options,
// for use with an async.Loader.
func (m *Manager) Job(radius float64, view image.Point) async.LoadFunc[*image.RGBA] {
	req := m.request(radius, view)
	return func(ctx context.Context) (*image.RGBA, error) {
		return m.blur(ctx, req)
	}
}

func (m *Manager) blur(ctx context.Context, req request) (*image.RGBA, error) {
	m.mu.Lock()
	src, prev, gen := m.original, m.blurred, m.generation
	m.mu.Unlock()
	if src == nil || src.Bounds().Empty() {
		if prev != nil {
			return prev, nil
		}
		return nil, ErrNoImage
	}

	small := downsample(src, req.view, req.rate)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := run(m.primary, small, req.radius)
	if err != nil && req.fallback {
		m.logger.Debug("gaussian blur failed, falling back to box blur", zap.Error(err))
		out, err = run(m.fallback, small, req.radius)
	}
	if err != nil {
		m.logger.Warn("blur failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBlurFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.generation {
		m.blurred = out
		if !req.keep {
			m.original = nil
		}
	}
	return out, nil
}

// KeepOriginalChanged implements Listener.
func (m *Manager) KeepOriginalChanged(o *Options) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !o.KeepOriginal() && m.blurred != nil {
		m.original = nil
	}
}

// DownSamplingRateChanged implements Listener.
func (m *Manager) DownSamplingRateChanged(*Options) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.original != nil {
		m.blurred = nil
		m.generation++
	}
}

// Close detaches the manager from its options and drops the images.
func (m *Manager) Close() {
	m.unregister()
	m.SetImage(nil)
}

// downsample scales src to fit within view divided by rate, keeping its
// aspect ratio. Images that already fit are copied as they are.
func downsample(src image.Image, view image.Point, rate float32) *image.RGBA {
	b := src.Bounds()
	maxW := int(float32(view.X) / rate)
	maxH := int(float32(view.Y) / rate)
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return clone.AsRGBA(src)
	}
	scale := float64(maxW) / float64(b.Dx())
	if s := float64(maxH) / float64(b.Dy()); s < scale {
		scale = s
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return transform.Resize(src, w, h, transform.Linear)
}

// run applies k, turning a panic or an empty result into an error.
func run(k Kernel, src *image.RGBA, radius float64) (out *image.RGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("kernel panicked: %v", p)
		}
	}()
	out = k(src, radius)
	if out == nil || out.Bounds().Empty() {
		return nil, errors.New("kernel returned no image")
	}
	return out, nil
}
