package material

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	ivwidget "git.sr.ht/~gioverse/imageview/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// DefaultDangerColor paints the blur error indicator.
var DefaultDangerColor = color.NRGBA{R: 200, A: 255}

// ErrorIcon is the material design outlined error indicator.
var ErrorIcon *widget.Icon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AlertErrorOutline)
	return icon
}()

// ImageViewStyle lays out an ImageView with an optional caption beneath it.
type ImageViewStyle struct {
	View *ivwidget.ImageView
	// Fit and Position place the image inside the view.
	Fit      widget.Fit
	Position layout.Direction
	// Width and Height of the view. If left empty, the view fills the
	// constraints.
	Width, Height unit.Dp
	// Caption is shown under the view when its text is not empty.
	Caption material.LabelStyle
	// ErrorIcon is shown over the top end corner when blurring failed.
	ErrorIcon  *widget.Icon
	ErrorColor color.NRGBA
	IconSize   unit.Dp
}

// ImageView returns a style showing v with caption.
func ImageView(th *material.Theme, v *ivwidget.ImageView, caption string) ImageViewStyle {
	return ImageViewStyle{
		View:       v,
		Fit:        widget.Contain,
		Position:   layout.Center,
		Caption:    material.Caption(th, caption),
		ErrorIcon:  ErrorIcon,
		ErrorColor: DefaultDangerColor,
		IconSize:   unit.Dp(24),
	}
}

// Layout the view.
func (s ImageViewStyle) Layout(gtx C) D {
	if s.Width > 0 {
		gtx.Constraints.Max.X = gtx.Constraints.Constrain(image.Pt(gtx.Dp(s.Width), 0)).X
	}
	if s.Height > 0 {
		gtx.Constraints.Max.Y = gtx.Constraints.Constrain(image.Pt(0, gtx.Dp(s.Height))).Y
	}
	if s.Caption.Text == "" {
		return s.layoutView(gtx)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, s.layoutView),
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, s.Caption.Layout)
		}),
	)
}

func (s ImageViewStyle) layoutView(gtx C) D {
	return layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx C) D {
			return s.View.Layout(gtx, s.Fit, s.Position)
		}),
		layout.Expanded(func(gtx C) D {
			if s.View.BlurErr() == nil || s.ErrorIcon == nil {
				return D{}
			}
			return layout.NE.Layout(gtx, func(gtx C) D {
				return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
					gtx.Constraints.Max = image.Pt(gtx.Dp(s.IconSize), gtx.Dp(s.IconSize))
					return s.ErrorIcon.Layout(gtx, s.ErrorColor)
				})
			})
		}),
	)
}
