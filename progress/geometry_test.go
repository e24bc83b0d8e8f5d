package progress

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func defaultParams() Params {
	return Params{
		Size:          Pct(40),
		BorderWidth:   Pct(10),
		ShadowPadding: Pct(10),
		Padding:       2,
		ShadowEnabled: true,
		Gravity:       Center,
	}
}

func TestCalculate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params func(p *Params)
		w, h   int
		mode   Mode
		want   Bounds
	}{
		{
			name: "none collapses bounds",
			w:    200, h: 100,
			mode: None,
			want: Bounds{Size: 38, BorderWidth: 4, ShadowPadding: 3},
		},
		{
			name: "unknown mode collapses bounds",
			w:    200, h: 100,
			mode: Mode(42),
			want: Bounds{Size: 38, BorderWidth: 4, ShadowPadding: 3},
		},
		{
			// maxSize = 100-4 = 96, size = floor(38.4) = 38,
			// border = round(3.8) = 4, shadow padding = floor(3.8) = 3.
			name: "circular centered",
			w:    200, h: 100,
			mode: Determinate,
			want: Bounds{
				Size: 38, BorderWidth: 4, ShadowPadding: 3,
				Shadow:    Rect{Left: 81, Top: 31, Right: 119, Bottom: 69},
				Indicator: Rect{Left: 86, Top: 36, Right: 114, Bottom: 64},
			},
		},
		{
			name: "horizontal centered",
			w:    200, h: 100,
			mode: HorizontalIndeterminate,
			want: Bounds{
				Size: 38, BorderWidth: 4, ShadowPadding: 3,
				Shadow:    Rect{Left: 81, Top: 48, Right: 119, Bottom: 52},
				Indicator: Rect{Left: 84, Top: 51, Right: 116, Bottom: 49},
			},
		},
		{
			name: "top start",
			params: func(p *Params) {
				p.Gravity = TopStart
			},
			w: 200, h: 100,
			mode: Indeterminate,
			want: Bounds{
				Size: 38, BorderWidth: 4, ShadowPadding: 3,
				Shadow:    Rect{Left: 2, Top: 2, Right: 40, Bottom: 40},
				Indicator: Rect{Left: 7, Top: 7, Right: 35, Bottom: 35},
			},
		},
		{
			name: "top start rtl",
			params: func(p *Params) {
				p.Gravity = TopStart
				p.Rtl = true
			},
			w: 200, h: 100,
			mode: Indeterminate,
			want: Bounds{
				Size: 38, BorderWidth: 4, ShadowPadding: 3,
				Shadow:    Rect{Left: 160, Top: 2, Right: 198, Bottom: 40},
				Indicator: Rect{Left: 165, Top: 7, Right: 193, Bottom: 35},
			},
		},
		{
			name: "bottom end horizontal",
			params: func(p *Params) {
				p.Gravity = BottomEnd
			},
			w: 200, h: 100,
			mode: HorizontalDeterminate,
			want: Bounds{
				Size: 38, BorderWidth: 4, ShadowPadding: 3,
				Shadow:    Rect{Left: 160, Top: 94, Right: 198, Bottom: 98},
				Indicator: Rect{Left: 163, Top: 97, Right: 195, Bottom: 95},
			},
		},
		{
			name: "absolute size clamped to view",
			params: func(p *Params) {
				p.Size = Px(500)
				p.BorderWidth = Px(3)
				p.ShadowPadding = Px(5)
			},
			w: 100, h: 100,
			mode: Determinate,
			want: Bounds{
				Size: 96, BorderWidth: 3, ShadowPadding: 5,
				Shadow:    Rect{Left: 2, Top: 2, Right: 98, Bottom: 98},
				Indicator: Rect{Left: 8, Top: 8, Right: 92, Bottom: 92},
			},
		},
		{
			name: "shadow disabled",
			params: func(p *Params) {
				p.ShadowEnabled = false
				p.ShadowPadding = Px(5)
			},
			w: 100, h: 100,
			mode: Determinate,
			want: Bounds{
				Size: 38, BorderWidth: 4, ShadowPadding: 0,
				Shadow:    Rect{Left: 31, Top: 31, Right: 69, Bottom: 69},
				Indicator: Rect{Left: 33, Top: 33, Right: 67, Bottom: 67},
			},
		},
		{
			name: "zero percent is a size",
			params: func(p *Params) {
				p.Size = Px(50).WithPercent(0)
			},
			w: 100, h: 100,
			mode: Determinate,
			want: Bounds{
				Size: 0, BorderWidth: 1, ShadowPadding: 0,
				Shadow:    Rect{Left: 50, Top: 50, Right: 50, Bottom: 50},
				Indicator: Rect{Left: 50, Top: 50, Right: 50, Bottom: 50},
			},
		},
		{
			name: "negative view size",
			w:    -10, h: 100,
			mode: Determinate,
			want: Bounds{
				Size: 0, BorderWidth: 1, ShadowPadding: 0,
				Shadow:    Rect{Left: -5, Top: 50, Right: -5, Bottom: 50},
				Indicator: Rect{Left: -5, Top: 50, Right: -5, Bottom: 50},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := defaultParams()
			if tc.params != nil {
				tc.params(&p)
			}
			got := Calculate(p, tc.w, tc.h, tc.mode)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateInsets(t *testing.T) {
	p := Params{
		Size:          Px(60),
		BorderWidth:   Px(3),
		ShadowPadding: Px(5),
		ShadowEnabled: true,
	}
	circ := Calculate(p, 100, 100, Determinate)
	if got := circ.Indicator.Left - circ.Shadow.Left; got != 6 {
		t.Errorf("circular inset: got %v, want 6", got)
	}
	if got := circ.Shadow.Bottom - circ.Indicator.Bottom; got != 6 {
		t.Errorf("circular inset: got %v, want 6", got)
	}
	bar := Calculate(p, 100, 100, HorizontalDeterminate)
	if got := bar.Indicator.Left - bar.Shadow.Left; got != 5 {
		t.Errorf("horizontal inset: got %v, want 5", got)
	}
	if got := bar.Shadow.Right - bar.Indicator.Right; got != 5 {
		t.Errorf("horizontal inset: got %v, want 5", got)
	}
}

func TestCalculateProperties(t *testing.T) {
	sizes := [][2]int{{1, 1}, {10, 300}, {200, 100}, {640, 480}, {0, 50}, {-4, -4}}
	for _, percent := range []float32{0, 0.5, 12.5, 33, 40, 99.9} {
		for _, sz := range sizes {
			for _, shadowOn := range []bool{true, false} {
				for _, mode := range []Mode{Determinate, HorizontalIndeterminate} {
					p := defaultParams()
					p.Size = Pct(percent)
					p.ShadowEnabled = shadowOn
					p.ShadowPadding = Px(7).WithPercent(float32(sz[0] % 30))
					b := Calculate(p, sz[0], sz[1], mode)

					maxSize := sz[0]
					if sz[1] < maxSize {
						maxSize = sz[1]
					}
					maxSize -= 2 * p.Padding
					if maxSize < 0 {
						maxSize = 0
					}
					if want := int(float32(maxSize) * percent / 100); b.Size != want {
						t.Errorf("%v %v%%: size %d, want %d", sz, percent, b.Size, want)
					}
					if b.Size > maxSize {
						t.Errorf("%v %v%%: size %d above max %d", sz, percent, b.Size, maxSize)
					}
					if b.BorderWidth < 1 {
						t.Errorf("%v %v%%: border width %d below 1", sz, percent, b.BorderWidth)
					}
					if !shadowOn && b.ShadowPadding != 0 {
						t.Errorf("%v %v%%: shadow padding %d without shadow", sz, percent, b.ShadowPadding)
					}
					if again := Calculate(p, sz[0], sz[1], mode); again != b {
						t.Errorf("%v %v%%: calculation is not deterministic", sz, percent)
					}
				}
			}
		}
	}
}

func TestRectDirty(t *testing.T) {
	r := Rect{Left: 10.7, Top: 20.2, Right: 30.5, Bottom: 40.9}
	got := r.dirty()
	if got.Min.X != 9 || got.Min.Y != 19 || got.Max.X != 31 || got.Max.Y != 41 {
		t.Errorf("dirty region %v", got)
	}
	// Thin horizontal indicators are inverted vertically.
	bar := Rect{Left: 84, Top: 51, Right: 116, Bottom: 49}
	if got, want := bar.dirty(), image.Rect(83, 48, 117, 52); got != want {
		t.Errorf("inverted dirty region: got %v, want %v", got, want)
	}
}
