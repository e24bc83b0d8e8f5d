package progress

import (
	"fmt"
	"image"

	"gioui.org/layout"
	"go.uber.org/zap"

	"git.sr.ht/~gioverse/imageview/anim"
)

// Host is the view showing the indicator.
type Host interface {
	// InvalidateRect asks for the region r of the view to be redrawn.
	InvalidateRect(r image.Rectangle)
}

// DrawerFactory builds the drawer for a mode, driven by ticker.
type DrawerFactory func(mode Mode, ticker anim.Ticker) Drawer

// Manager switches between the drawers of each mode and keeps them in sync
// with the options.
//
// Drawers are built the first time their mode is shown and reused
// afterwards. A Manager belongs to the goroutine laying out its host.
type Manager struct {
	host       Host
	options    *Options
	unregister func()
	clock      *anim.Clock
	factory    DrawerFactory
	logger     *zap.Logger

	drawers [modeCount]Drawer
	drawer  Drawer
	mode    Mode
	// bounds caches the indicator bounds of the options.
	bounds Rect
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock drives drawer animations with c. Without it the manager owns
// a clock, available from Clock.
func WithClock(c *anim.Clock) ManagerOption {
	return func(m *Manager) { m.clock = c }
}

// WithLogger logs mode changes to l.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDrawerFactory replaces the built-in drawers.
func WithDrawerFactory(f DrawerFactory) ManagerOption {
	return func(m *Manager) {
		if f != nil {
			m.factory = f
		}
	}
}

// NewManager returns a manager drawing no indicator, listening to o.
func NewManager(host Host, o *Options, opts ...ManagerOption) *Manager {
	m := &Manager{
		host:    host,
		options: o,
		factory: newDrawer,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = new(anim.Clock)
	}
	m.mode = None
	m.drawer = m.drawerFor(None)
	m.drawer.Setup(o)
	m.bounds = o.Indicator()
	m.unregister = o.SetListener(m)
	return m
}

// drawerFor returns the drawer of mode, building it if needed.
func (m *Manager) drawerFor(mode Mode) Drawer {
	if mode >= modeCount {
		mode = None
	}
	if m.drawers[mode] == nil {
		d := m.factory(mode, m.clock.NewTicker())
		d.SetListener(m.requestInvalidate)
		m.drawers[mode] = d
		m.logger.Debug("progress drawer built", zap.Stringer("mode", mode))
	}
	return m.drawers[mode]
}

// ChangeMode shows the indicator of mode. Asking for the current mode does
// nothing; otherwise animations of the current drawer stop before the new
// one is set up, and start again if the new mode is indeterminate.
func (m *Manager) ChangeMode(mode Mode) {
	if mode == m.mode {
		return
	}
	m.drawer.StopIndeterminateAnimation()
	m.logger.Debug("progress mode changed",
		zap.Stringer("from", m.mode),
		zap.Stringer("to", mode))
	m.mode = mode
	m.drawer = m.drawerFor(mode)
	w, h := m.options.LastSize()
	m.options.CalculateBounds(w, h, mode)
	m.updateBounds()
	m.drawer.Setup(m.options)
	m.drawer.StartIndeterminateAnimation()
}

// Mode returns the mode shown.
func (m *Manager) Mode() Mode { return m.mode }

// Options returns the options of the indicator.
func (m *Manager) Options() *Options { return m.options }

// Bounds returns the cached indicator bounds.
func (m *Manager) Bounds() Rect { return m.bounds }

// Clock returns the clock driving the animations.
func (m *Manager) Clock() *anim.Clock { return m.clock }

// SetProgress shows value on a determinate indicator, switching an
// indeterminate or hidden indicator to the determinate one of its family.
func (m *Manager) SetProgress(value float32) {
	if m.mode.Indeterminate() || m.mode == None {
		m.ChangeMode(m.mode.WithIndeterminate(false))
	}
	m.options.SetValuePercent(value)
}

// SetIndeterminate switches between the determinate and indeterminate
// indicator of the current family.
func (m *Manager) SetIndeterminate(indeterminate bool) {
	m.ChangeMode(m.mode.WithIndeterminate(indeterminate))
}

// SizeChanged recalculates the bounds for the new view size.
func (m *Manager) SizeChanged(w, h int) {
	m.options.CalculateBounds(w, h, m.mode)
	m.updateBounds()
	m.drawer.Setup(m.options)
}

// OptionsUpdated implements Listener.
func (m *Manager) OptionsUpdated(o *Options) {
	m.drawer.Setup(o)
	m.requestInvalidate()
}

// SizeUpdated implements Listener.
func (m *Manager) SizeUpdated(o *Options) {
	m.updateBounds()
	m.drawer.Setup(o)
}

// Draw the indicator.
func (m *Manager) Draw(gtx layout.Context) {
	m.drawer.Draw(gtx, m.bounds)
}

// Frame advances the animations to the frame time, then draws the
// indicator.
func (m *Manager) Frame(gtx layout.Context) layout.Dimensions {
	return m.clock.Frame(gtx, func(gtx layout.Context) layout.Dimensions {
		m.Draw(gtx)
		return layout.Dimensions{Size: gtx.Constraints.Min}
	})
}

// Close stops animations and detaches the manager from its options and host.
// A closed manager still answers queries but never invalidates its host.
func (m *Manager) Close() {
	m.drawer.StopIndeterminateAnimation()
	if m.unregister != nil {
		m.unregister()
		m.unregister = nil
	}
	m.host = nil
}

// updateBounds copies the calculated bounds, invalidating the old and new
// region when they moved.
func (m *Manager) updateBounds() {
	old := m.bounds
	m.bounds = m.options.Indicator()
	if old == m.bounds {
		m.requestInvalidate()
		return
	}
	if old != (Rect{}) {
		m.invalidate(old)
	}
	m.invalidate(m.bounds)
}

// requestInvalidate redraws the indicator region.
func (m *Manager) requestInvalidate() {
	m.invalidate(m.bounds)
}

func (m *Manager) invalidate(r Rect) {
	if m.host == nil || r == (Rect{}) {
		return
	}
	m.host.InvalidateRect(r.dirty())
}

// MarshalBinary encodes the mode and the options.
func (m *Manager) MarshalBinary() ([]byte, error) {
	opts, err := m.options.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(m.mode)}, opts...), nil
}

// UnmarshalBinary restores the options and mode encoded by MarshalBinary.
// The restored bounds are used as they are until the next size change.
func (m *Manager) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return ErrStateTooShort
	}
	mode := Mode(data[0])
	if mode >= modeCount {
		return fmt.Errorf("%w: mode %d", ErrStateVersion, data[0])
	}
	if err := m.options.UnmarshalBinary(data[1:]); err != nil {
		return err
	}
	if mode == m.mode {
		return nil
	}
	m.drawer.StopIndeterminateAnimation()
	m.mode = mode
	m.drawer = m.drawerFor(mode)
	m.drawer.Setup(m.options)
	m.drawer.StartIndeterminateAnimation()
	return nil
}
