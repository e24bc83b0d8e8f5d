package blur

// Listener is notified of blur option changes.
type Listener interface {
	KeepOriginalChanged(o *Options)
	DownSamplingRateChanged(o *Options)
}

// Options of the blur transform.
type Options struct {
	downSamplingRate float32
	keepOriginal     bool
	useFallback      bool
	listener         *Listener
}

// NewOptions returns options with the given values. A downsampling rate
// below 1 is taken as 1.
func NewOptions(downSamplingRate float32, keepOriginal, useFallback bool) *Options {
	return &Options{
		downSamplingRate: clampRate(downSamplingRate),
		keepOriginal:     keepOriginal,
		useFallback:      useFallback,
	}
}

// SetListener registers l, replacing any previous listener. The returned
// function unregisters it unless another listener was set since.
func (o *Options) SetListener(l Listener) (unregister func()) {
	if l == nil {
		o.listener = nil
		return func() {}
	}
	reg := &l
	o.listener = reg
	return func() {
		if o.listener == reg {
			o.listener = nil
		}
	}
}

// DownSamplingRate is how much smaller than the view the blurred image is:
// it is scaled to fit within the view size divided by the rate.
func (o *Options) DownSamplingRate() float32 { return o.downSamplingRate }

// SetDownSamplingRate sets the downsampling rate, at least 1.
func (o *Options) SetDownSamplingRate(rate float32) {
	o.downSamplingRate = clampRate(rate)
	if o.listener != nil {
		(*o.listener).DownSamplingRateChanged(o)
	}
}

// KeepOriginal reports whether the original image is kept once blurred, so
// that it can be blurred again.
func (o *Options) KeepOriginal() bool { return o.keepOriginal }

// SetKeepOriginal sets whether the original image is kept. Turning it off
// releases an original that has already been blurred.
func (o *Options) SetKeepOriginal(keep bool) {
	o.keepOriginal = keep
	if o.listener != nil {
		(*o.listener).KeepOriginalChanged(o)
	}
}

// UseFallback reports whether a failed Gaussian blur is retried with a box
// blur.
func (o *Options) UseFallback() bool { return o.useFallback }

// SetUseFallback sets whether failed blurs are retried with a box blur.
func (o *Options) SetUseFallback(fallback bool) { o.useFallback = fallback }

func clampRate(rate float32) float32 {
	if rate < 1 || rate != rate {
		return 1
	}
	return rate
}
