// Package anim drives periodic animation ticks from the frame loop.
//
// Gio has no timers of its own: a widget that animates asks for a new frame
// at some point in the future and does its work when that frame arrives.
// Clock packages that pattern for any number of Tickers so that tick
// callbacks are always delivered on the goroutine that lays out the UI.
package anim

import (
	"time"

	"gioui.org/layout"
	"gioui.org/op"
)

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	// Start delivering ticks every interval. Starting a running ticker is a
	// no-op.
	Start(interval time.Duration, tick func())
	// Stop delivering ticks. Stopping a stopped ticker is a no-op.
	Stop()
	// Running reports whether the ticker is started.
	Running() bool
}

// Clock multiplexes Tickers onto frame times.
//
// The zero value is ready to use. A Clock is not safe for concurrent use; it
// belongs to the goroutine that advances it.
type Clock struct {
	tickers []*ticker
}

// NewTicker allocates a stopped Ticker driven by this clock.
func (c *Clock) NewTicker() Ticker {
	t := &ticker{}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance delivers the ticks that are due at now.
//
// A ticker that missed several intervals receives a single tick: frames that
// never happened cannot be drawn. Advance reports the earliest time at which
// another tick is due, and false when no ticker is running.
func (c *Clock) Advance(now time.Time) (next time.Time, ok bool) {
	// Ticks may start or stop other tickers; iterate a snapshot.
	due := make([]*ticker, 0, len(c.tickers))
	for _, t := range c.tickers {
		if !t.running {
			continue
		}
		if t.due.IsZero() {
			t.due = now.Add(t.interval)
			continue
		}
		if !now.Before(t.due) {
			t.due = now.Add(t.interval)
			due = append(due, t)
		}
	}
	for _, t := range due {
		if t.running && t.tick != nil {
			t.tick()
		}
	}
	for _, t := range c.tickers {
		if !t.running {
			continue
		}
		at := t.due
		if at.IsZero() {
			at = now.Add(t.interval)
		}
		if !ok || at.Before(next) {
			next, ok = at, true
		}
	}
	return next, ok
}

// Frame advances the clock to the frame time and requests a frame for the
// next due tick.
//
// Wrap the layout of animated widgets with Frame, or call it once per frame
// anywhere in the layout.
func (c *Clock) Frame(gtx layout.Context, w layout.Widget) layout.Dimensions {
	next, ok := c.Advance(gtx.Now)
	var dims layout.Dimensions
	if w != nil {
		dims = w(gtx)
	}
	if ok {
		op.InvalidateOp{At: next}.Add(gtx.Ops)
	}
	return dims
}

// Running reports the number of running tickers.
func (c *Clock) Running() int {
	n := 0
	for _, t := range c.tickers {
		if t.running {
			n++
		}
	}
	return n
}

type ticker struct {
	interval time.Duration
	tick     func()
	running  bool
	// due is zero until the first advance after Start.
	due time.Time
}

func (t *ticker) Start(interval time.Duration, tick func()) {
	if t.running {
		return
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	t.interval = interval
	t.tick = tick
	t.running = true
	t.due = time.Time{}
}

func (t *ticker) Stop() {
	t.running = false
	t.due = time.Time{}
}

func (t *ticker) Running() bool {
	return t.running
}
