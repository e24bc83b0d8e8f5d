package widget

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"go.uber.org/zap"

	"git.sr.ht/~gioverse/imageview/anim"
	"git.sr.ht/~gioverse/imageview/async"
	"git.sr.ht/~gioverse/imageview/blur"
	"git.sr.ht/~gioverse/imageview/config"
	"git.sr.ht/~gioverse/imageview/progress"
	"git.sr.ht/~gioverse/imageview/shape"
)

// ErrBadState is returned when restoring a state not saved by ImageView.
var ErrBadState = errors.New("imageview: bad state")

// stateMagic starts every saved ImageView state.
const stateMagic = "IV1"

// ImageView holds the state of an image with a progress indicator, a shape
// mask and an optional blur, across frames.
//
// All methods must be called from the goroutine laying out the view.
type ImageView struct {
	// Shape masks the image.
	Shape shape.Shape
	// BlurEnabled shows the blurred image instead of the original once it
	// is ready.
	BlurEnabled bool
	// BlurRadius in pixels of the downsampled image.
	BlurRadius float64
	// OnInvalidate, if set, is called when a region of the view changes
	// between frames. Use it to request a frame.
	OnInvalidate func(r image.Rectangle)

	logger   *zap.Logger
	image    CachedImage
	blurred  CachedImage
	blur     *blur.Manager
	loader   *async.Loader[*image.RGBA]
	blurErr  error
	clock    anim.Clock
	options  *progress.Options
	progress *progress.Manager

	size     image.Point
	dirty    image.Rectangle
	inLayout bool
}

// blurKey identifies a blurred image in the loader.
type blurKey struct {
	view       *ImageView
	generation uint64
	radius     float64
	size       image.Point
}

// NewImageView returns a view configured by c. A nil logger disables
// logging.
func NewImageView(c config.Config, logger *zap.Logger) *ImageView {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &ImageView{
		logger:  logger,
		options: progress.NewOptions(),
		loader:  &async.Loader[*image.RGBA]{Logger: logger.Named("blur")},
	}
	v.progress = progress.NewManager(v, v.options,
		progress.WithClock(&v.clock),
		progress.WithLogger(logger.Named("progress")))
	v.blur = blur.NewManager(c.Blur.Options(), blur.WithLogger(logger.Named("blur")))
	v.Configure(c)
	return v
}

// Configure applies c to the view, keeping its image and progress value.
func (v *ImageView) Configure(c config.Config) {
	c.Progress.Apply(v.options)
	v.progress.ChangeMode(c.Progress.Mode)
	v.Shape = c.Shape.Shape()
	c.Blur.Apply(v.blur.Options())
	v.BlurEnabled = c.Blur.Enabled
	v.BlurRadius = c.Blur.Radius
	v.InvalidateRect(image.Rectangle{Max: v.size})
}

// SetImage replaces the image shown.
func (v *ImageView) SetImage(src image.Image) {
	v.image.Set(src)
	v.blurred.Set(nil)
	v.blurErr = nil
	v.blur.SetImage(src)
	v.InvalidateRect(image.Rectangle{Max: v.size})
}

// Image returns the image shown, before blurring.
func (v *ImageView) Image() image.Image { return v.image.Image() }

// BlurErr returns the error of the last failed blur.
func (v *ImageView) BlurErr() error { return v.blurErr }

// Progress returns the progress indicator manager.
func (v *ImageView) Progress() *progress.Manager { return v.progress }

// ProgressOptions returns the options of the progress indicator.
func (v *ImageView) ProgressOptions() *progress.Options { return v.options }

// Blur returns the blur manager.
func (v *ImageView) Blur() *blur.Manager { return v.blur }

// Updated reports that a background blur progressed.
func (v *ImageView) Updated() <-chan struct{} { return v.loader.Updated() }

// Size returns the size of the last layout.
func (v *ImageView) Size() image.Point { return v.size }

// InvalidateRect implements progress.Host. Regions invalidated during
// layout are part of the frame being drawn; others are accumulated and
// reported to OnInvalidate.
func (v *ImageView) InvalidateRect(r image.Rectangle) {
	if r.Empty() {
		return
	}
	v.dirty = v.dirty.Union(r)
	if !v.inLayout && v.OnInvalidate != nil {
		v.OnInvalidate(r)
	}
}

// Dirty returns the region changed since the last layout.
func (v *ImageView) Dirty() image.Rectangle { return v.dirty }

// Layout the view, filling the maximum constraints: the image scaled by fit
// and masked by the shape, with the progress indicator over it.
func (v *ImageView) Layout(gtx layout.Context, fit widget.Fit, position layout.Direction) layout.Dimensions {
	v.inLayout = true
	defer func() {
		v.inLayout = false
		v.dirty = image.Rectangle{}
	}()
	size := gtx.Constraints.Max
	if size != v.size {
		v.size = size
		v.progress.SizeChanged(size.X, size.Y)
	}
	gtx.Constraints = layout.Exact(size)
	return v.loader.Frame(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				return v.Shape.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					src := v.imageOp()
					if src == (paint.ImageOp{}) {
						return layout.Dimensions{Size: gtx.Constraints.Min}
					}
					img := widget.Image{Src: src, Fit: fit, Position: position}
					if gtx.Metric.PxPerDp > 0 {
						// One image pixel per screen pixel before fitting.
						img.Scale = 1 / gtx.Metric.PxPerDp
					}
					return img.Layout(gtx)
				})
			}),
			layout.Expanded(v.progress.Frame),
		)
	})
}

// imageOp returns the blurred image when enabled and ready, the original
// otherwise, scheduling the blur as needed.
func (v *ImageView) imageOp() paint.ImageOp {
	if v.image.Image() == nil {
		return paint.ImageOp{}
	}
	if !v.BlurEnabled {
		return v.image.Op()
	}
	key := blurKey{
		view:       v,
		generation: v.blur.Generation(),
		radius:     v.BlurRadius,
		size:       v.size,
	}
	res := v.loader.Schedule(key, v.blur.Job(v.BlurRadius, v.size))
	switch res.State {
	case async.Loaded:
		v.blurred.Set(res.Value)
		return v.blurred.Op()
	case async.Failed:
		if v.blurErr == nil {
			v.logger.Warn("showing original image", zap.Error(res.Err))
		}
		v.blurErr = res.Err
	}
	if img := v.blur.Blurred(); img != nil && v.blur.Original() == nil {
		// The original was released after blurring.
		v.blurred.Set(img)
		return v.blurred.Op()
	}
	return v.image.Op()
}

// Save the view state: shape mode, progress mode and options.
func (v *ImageView) Save() ([]byte, error) {
	progressState, err := v.progress.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("imageview: saving progress: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(stateMagic)
	buf.WriteByte(byte(v.Shape.Mode))
	buf.Write(progressState)
	return buf.Bytes(), nil
}

// Restore a state returned by Save.
func (v *ImageView) Restore(data []byte) error {
	if len(data) < len(stateMagic)+1 || string(data[:len(stateMagic)]) != stateMagic {
		return ErrBadState
	}
	data = data[len(stateMagic):]
	mode := shape.Mode(data[0])
	if mode > shape.RoundedRectangle {
		return fmt.Errorf("%w: shape %d", ErrBadState, data[0])
	}
	if err := v.progress.UnmarshalBinary(data[1:]); err != nil {
		return fmt.Errorf("imageview: restoring progress: %w", err)
	}
	v.Shape.Mode = mode
	v.InvalidateRect(image.Rectangle{Max: v.size})
	return nil
}

// Close stops animations and background work.
func (v *ImageView) Close() {
	v.progress.Close()
	v.blur.Close()
	v.loader.Close()
}
