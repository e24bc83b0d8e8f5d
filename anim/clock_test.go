package anim

import (
	"image"
	"testing"
	"time"

	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
)

func TestClockAdvance(t *testing.T) {
	var (
		c     Clock
		ticks int
		t0    = time.Unix(1000, 0)
		iv    = 10 * time.Millisecond
	)
	tk := c.NewTicker()
	if _, ok := c.Advance(t0); ok {
		t.Fatalf("stopped ticker should not schedule a frame")
	}
	tk.Start(iv, func() { ticks++ })
	next, ok := c.Advance(t0)
	if !ok || !next.Equal(t0.Add(iv)) {
		t.Fatalf("first advance: got %v %v, want %v true", next, ok, t0.Add(iv))
	}
	if ticks != 0 {
		t.Errorf("first advance should only arm the ticker, got %d ticks", ticks)
	}
	c.Advance(t0.Add(5 * time.Millisecond))
	if ticks != 0 {
		t.Errorf("tick delivered early: %d", ticks)
	}
	c.Advance(t0.Add(iv))
	if ticks != 1 {
		t.Errorf("expected 1 tick, got %d", ticks)
	}
	// Missed intervals collapse into one tick.
	c.Advance(t0.Add(100 * iv))
	if ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", ticks)
	}
	tk.Stop()
	c.Advance(t0.Add(200 * iv))
	if ticks != 2 {
		t.Errorf("stopped ticker delivered a tick")
	}
	if c.Running() != 0 {
		t.Errorf("expected no running tickers, got %d", c.Running())
	}
}

func TestTickerIdempotent(t *testing.T) {
	var (
		c        Clock
		first    int
		second   int
		t0       = time.Unix(0, 0)
		interval = time.Millisecond
	)
	tk := c.NewTicker()
	tk.Start(interval, func() { first++ })
	tk.Start(interval, func() { second++ })
	c.Advance(t0)
	c.Advance(t0.Add(interval))
	if first != 1 || second != 0 {
		t.Errorf("restart replaced running ticker: first=%d second=%d", first, second)
	}
	tk.Stop()
	tk.Stop()
	if tk.Running() {
		t.Errorf("ticker still running after Stop")
	}
}

func TestTickStopsItself(t *testing.T) {
	var (
		c  Clock
		t0 = time.Unix(0, 0)
		n  int
	)
	tk := c.NewTicker()
	tk.Start(time.Millisecond, func() {
		n++
		tk.Stop()
	})
	c.Advance(t0)
	if _, ok := c.Advance(t0.Add(time.Millisecond)); ok {
		t.Errorf("ticker that stopped itself should not schedule a frame")
	}
	if n != 1 {
		t.Errorf("expected one tick, got %d", n)
	}
}

func TestClockFrame(t *testing.T) {
	var ops op.Ops
	gtx := layout.NewContext(&ops, system.FrameEvent{
		Now:    time.Unix(0, 0),
		Metric: unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Size:   image.Pt(100, 100),
	})
	var c Clock
	c.NewTicker().Start(time.Millisecond, func() {})
	dims := c.Frame(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Dimensions{Size: image.Pt(10, 10)}
	})
	if dims.Size != image.Pt(10, 10) {
		t.Errorf("frame should return the wrapped widget dimensions, got %v", dims.Size)
	}
}
