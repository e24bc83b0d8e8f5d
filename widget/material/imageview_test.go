package material

import (
	"image"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~gioverse/imageview/config"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"
)

func TestImageViewStyleSize(t *testing.T) {
	th := material.NewTheme(gofont.Collection())
	v := ivwidget.NewImageView(config.Default(), nil)
	defer v.Close()

	for _, tc := range []struct {
		name          string
		width, height unit.Dp
		want          image.Point
	}{
		{name: "fills constraints", want: image.Pt(300, 200)},
		{name: "fixed size", width: 120, height: 90, want: image.Pt(120, 90)},
		{name: "size above constraints", width: 500, height: 50, want: image.Pt(300, 50)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			gtx := layout.Context{
				Ops:         new(op.Ops),
				Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
				Constraints: layout.Constraints{Max: image.Pt(300, 200)},
			}
			s := ImageView(th, v, "")
			s.Width, s.Height = tc.width, tc.height
			s.Layout(gtx)
			if got := v.Size(); got != tc.want {
				t.Errorf("view size %v, want %v", got, tc.want)
			}
		})
	}
}
