package progress

import (
	"image/color"
)

// Listener is notified of option changes.
type Listener interface {
	// OptionsUpdated reports a change that affects only how the indicator
	// is painted.
	OptionsUpdated(o *Options)
	// SizeUpdated reports a change of the indicator bounds. They have
	// already been recalculated when it is called.
	SizeUpdated(o *Options)
}

// Options of the progress indicator, and the bounds calculated from them.
//
// Setters affecting the geometry recalculate the bounds against the last
// view size and mode before notifying the listener, so callers never have
// to supply the view size again.
type Options struct {
	determinateAnimation bool
	borderWidth          Dimension
	size                 Dimension
	padding              int
	valuePercent         float32
	frontColor           color.NRGBA
	backColor            color.NRGBA
	indeterminateColor   color.NRGBA
	gravity              Gravity
	rtl                  bool
	rtlDisabled          bool
	drawWedge            bool
	shadowEnabled        bool
	shadowColor          color.NRGBA
	shadowPadding        Dimension

	bounds     Bounds
	lastWidth  int
	lastHeight int
	lastMode   Mode

	reg *registration
}

// registration ties a listener to a single SetListener call, so a stale
// unregister cannot remove a newer listener.
type registration struct {
	l Listener
}

// Defaults used by NewOptions.
var (
	DefaultFrontColor         = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	DefaultBackColor          = color.NRGBA{R: 0xbb, G: 0xde, B: 0xfb, A: 0xff}
	DefaultIndeterminateColor = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	DefaultShadowColor        = color.NRGBA{A: 0x44}
)

const (
	DefaultBorderWidthPercent   = 10
	DefaultSizePercent          = 40
	DefaultPadding              = 2
	DefaultShadowPaddingPercent = 10
)

// NewOptions returns options with the default look: a centered indicator
// 40% of the view, border 10% of the indicator, with shadow.
func NewOptions() *Options {
	return &Options{
		determinateAnimation: true,
		borderWidth:          Pct(DefaultBorderWidthPercent),
		size:                 Pct(DefaultSizePercent),
		padding:              DefaultPadding,
		frontColor:           DefaultFrontColor,
		backColor:            DefaultBackColor,
		indeterminateColor:   DefaultIndeterminateColor,
		gravity:              Center,
		shadowEnabled:        true,
		shadowColor:          DefaultShadowColor,
		shadowPadding:        Pct(DefaultShadowPaddingPercent),
		bounds:               Bounds{BorderWidth: 1},
	}
}

// SetListener registers l for change notifications, replacing any previous
// listener. The returned function unregisters it; calling it after another
// listener has been set does nothing. A nil listener disables notifications.
func (o *Options) SetListener(l Listener) (unregister func()) {
	if l == nil {
		o.reg = nil
		return func() {}
	}
	reg := &registration{l: l}
	o.reg = reg
	return func() {
		if o.reg == reg {
			o.reg = nil
		}
	}
}

// SetOptions copies every option and calculated value of other, then
// notifies the listener of a size change. The listener is not copied.
func (o *Options) SetOptions(other *Options) {
	reg := o.reg
	*o = *other
	o.reg = reg
	o.sizeUpdated()
}

// Params returns the inputs of the bounds calculation.
func (o *Options) Params() Params {
	return Params{
		Size:          o.size,
		BorderWidth:   o.borderWidth,
		ShadowPadding: o.shadowPadding,
		Padding:       o.padding,
		ShadowEnabled: o.shadowEnabled,
		Gravity:       o.gravity,
		Rtl:           o.rtl && !o.rtlDisabled,
	}
}

// CalculateBounds recalculates the bounds for a view of size w×h showing
// mode, and remembers those for later recalculations.
func (o *Options) CalculateBounds(w, h int, mode Mode) {
	o.lastWidth, o.lastHeight, o.lastMode = w, h, mode
	o.bounds = Calculate(o.Params(), w, h, mode)
}

func (o *Options) recalculate() {
	o.CalculateBounds(o.lastWidth, o.lastHeight, o.lastMode)
	o.sizeUpdated()
}

func (o *Options) sizeUpdated() {
	if o.reg != nil {
		o.reg.l.SizeUpdated(o)
	}
}

func (o *Options) optionsUpdated() {
	if o.reg != nil {
		o.reg.l.OptionsUpdated(o)
	}
}

// Bounds returns the last calculated geometry.
func (o *Options) Bounds() Bounds { return o.bounds }

// Indicator returns the rectangle the indicator is drawn in.
func (o *Options) Indicator() Rect { return o.bounds.Indicator }

// Shadow returns the rectangle enclosing indicator and shadow.
func (o *Options) Shadow() Rect { return o.bounds.Shadow }

// CalculatedSize is the size actually used by the indicator.
func (o *Options) CalculatedSize() int { return o.bounds.Size }

// CalculatedBorderWidth is the border width actually used by the indicator.
func (o *Options) CalculatedBorderWidth() int { return o.bounds.BorderWidth }

// CalculatedShadowPadding is the shadow padding actually used.
func (o *Options) CalculatedShadowPadding() int { return o.bounds.ShadowPadding }

// LastSize returns the view size of the last calculation.
func (o *Options) LastSize() (w, h int) { return o.lastWidth, o.lastHeight }

// LastMode returns the mode of the last calculation.
func (o *Options) LastMode() Mode { return o.lastMode }

// SetBorderWidth sets the border width in pixels. It is used only while the
// border width percentage is negative.
func (o *Options) SetBorderWidth(px int) {
	o.borderWidth = o.borderWidth.WithPx(px)
	o.recalculate()
}

// SetBorderWidthPercent sets the border width as a percentage of the
// indicator size. Values of 100 and more are taken modulo 100; negative
// values hand priority back to the pixel border width.
func (o *Options) SetBorderWidthPercent(percent float32) {
	o.borderWidth = o.borderWidth.WithPercent(percent)
	o.recalculate()
}

// BorderWidth returns the pixel border width as set.
func (o *Options) BorderWidth() int { return o.borderWidth.Pixels() }

// BorderWidthPercent returns the border width percentage as set.
func (o *Options) BorderWidthPercent() float32 { return o.borderWidth.Percentage() }

// SetSize sets the indicator size in pixels. It is used only while the size
// percentage is negative, and never exceeds the view size minus padding.
func (o *Options) SetSize(px int) {
	o.size = o.size.WithPx(px)
	o.recalculate()
}

// SetSizePercent sets the indicator size as a percentage of the view.
// Values of 100 and more are taken modulo 100; negative values hand priority
// back to the pixel size.
func (o *Options) SetSizePercent(percent float32) {
	o.size = o.size.WithPercent(percent)
	o.recalculate()
}

// Size returns the pixel size as set.
func (o *Options) Size() int { return o.size.Pixels() }

// SizePercent returns the size percentage as set.
func (o *Options) SizePercent() float32 { return o.size.Percentage() }

// SetPadding sets the padding between the view edges and the indicator.
func (o *Options) SetPadding(px int) {
	o.padding = px
	o.recalculate()
}

// Padding returns the indicator padding.
func (o *Options) Padding() int { return o.padding }

// SetGravity sets where the indicator is anchored.
func (o *Options) SetGravity(g Gravity) {
	o.gravity = g
	o.recalculate()
}

// Gravity returns the indicator gravity.
func (o *Options) Gravity() Gravity { return o.gravity }

// SetRtl sets the layout direction of the view.
func (o *Options) SetRtl(rtl bool) {
	o.rtl = rtl
	o.recalculate()
}

// Rtl reports whether the view lays out right to left.
func (o *Options) Rtl() bool { return o.rtl }

// SetRtlDisabled makes start always mean left when true.
func (o *Options) SetRtlDisabled(disabled bool) {
	o.rtlDisabled = disabled
	o.recalculate()
}

// RtlDisabled reports whether right to left support is disabled.
func (o *Options) RtlDisabled() bool { return o.rtlDisabled }

// SetShadowEnabled shows or hides the indicator shadow.
func (o *Options) SetShadowEnabled(enabled bool) {
	o.shadowEnabled = enabled
	o.recalculate()
}

// ShadowEnabled reports whether the shadow is shown.
func (o *Options) ShadowEnabled() bool { return o.shadowEnabled }

// SetShadowPadding sets the padding between shadow and indicator in pixels.
// It is used only while the shadow padding percentage is negative.
func (o *Options) SetShadowPadding(px int) {
	o.shadowPadding = o.shadowPadding.WithPx(px)
	o.recalculate()
}

// SetShadowPaddingPercent sets the shadow padding as a percentage of the
// indicator size. Values of 100 and more are taken modulo 100; negative
// values hand priority back to the pixel shadow padding.
func (o *Options) SetShadowPaddingPercent(percent float32) {
	o.shadowPadding = o.shadowPadding.WithPercent(percent)
	o.recalculate()
}

// ShadowPadding returns the pixel shadow padding as set.
func (o *Options) ShadowPadding() int { return o.shadowPadding.Pixels() }

// ShadowPaddingPercent returns the shadow padding percentage as set.
func (o *Options) ShadowPaddingPercent() float32 { return o.shadowPadding.Percentage() }

// SetDeterminateAnimationEnabled makes determinate indicators animate value
// changes instead of jumping.
func (o *Options) SetDeterminateAnimationEnabled(enabled bool) {
	o.determinateAnimation = enabled
	o.optionsUpdated()
}

// DeterminateAnimationEnabled reports whether value changes animate.
func (o *Options) DeterminateAnimationEnabled() bool { return o.determinateAnimation }

// SetValuePercent sets the value shown by determinate indicators. Values of
// 100 and more are taken modulo 100, so multiples of 100 show as 0;
// negative values show as 0.
func (o *Options) SetValuePercent(percent float32) {
	percent = foldPercent(percent)
	if percent < 0 {
		percent = 0
	}
	o.valuePercent = percent
	o.optionsUpdated()
}

// ValuePercent returns the value shown by determinate indicators.
func (o *Options) ValuePercent() float32 { return o.valuePercent }

// SetFrontColor sets the value color of determinate indicators.
func (o *Options) SetFrontColor(c color.NRGBA) {
	o.frontColor = c
	o.optionsUpdated()
}

// FrontColor returns the value color of determinate indicators.
func (o *Options) FrontColor() color.NRGBA { return o.frontColor }

// SetBackColor sets the track color of determinate indicators.
func (o *Options) SetBackColor(c color.NRGBA) {
	o.backColor = c
	o.optionsUpdated()
}

// BackColor returns the track color of determinate indicators.
func (o *Options) BackColor() color.NRGBA { return o.backColor }

// SetIndeterminateColor sets the color of indeterminate indicators.
func (o *Options) SetIndeterminateColor(c color.NRGBA) {
	o.indeterminateColor = c
	o.optionsUpdated()
}

// IndeterminateColor returns the color of indeterminate indicators.
func (o *Options) IndeterminateColor() color.NRGBA { return o.indeterminateColor }

// SetShadowColor sets the shadow color.
func (o *Options) SetShadowColor(c color.NRGBA) {
	o.shadowColor = c
	o.optionsUpdated()
}

// ShadowColor returns the shadow color.
func (o *Options) ShadowColor() color.NRGBA { return o.shadowColor }

// SetDrawWedge makes the circular determinate indicator a filled wedge
// instead of an arc.
func (o *Options) SetDrawWedge(wedge bool) {
	o.drawWedge = wedge
	o.optionsUpdated()
}

// DrawWedge reports whether a wedge is drawn.
func (o *Options) DrawWedge() bool { return o.drawWedge }
