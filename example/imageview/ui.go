// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	lorem "github.com/drhodes/golorem"
	"go.uber.org/zap"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~gioverse/imageview/config"
	"git.sr.ht/~gioverse/imageview/debug"
	"git.sr.ht/~gioverse/imageview/profile"
	"git.sr.ht/~gioverse/imageview/progress"
	"git.sr.ht/~gioverse/imageview/shape"
	ivwidget "git.sr.ht/~gioverse/imageview/widget"
	ivmaterial "git.sr.ht/~gioverse/imageview/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var th = material.NewTheme(gofont.Collection())

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return icon
}

// modeButton switches the indicator to mode.
type modeButton struct {
	mode progress.Mode
	icon *widget.Icon
	widget.Clickable
}

// UI holds state for, and lays out, the UI.
type UI struct {
	logger  *zap.Logger
	view    *ivwidget.ImageView
	caption string
	debug   bool

	modes    []*modeButton
	shapeBtn widget.Clickable
	blur     widget.Bool
	value    widget.Float
}

// NewUI returns a UI showing src, configured by c.
func NewUI(c config.Config, src image.Image, logger *zap.Logger) *UI {
	ui := &UI{
		logger:  logger,
		view:    ivwidget.NewImageView(c, logger.Named("view")),
		caption: lorem.Sentence(5, 12),
		modes: []*modeButton{
			{mode: progress.None, icon: mustIcon(icons.ActionVisibilityOff)},
			{mode: progress.Determinate, icon: mustIcon(icons.ImageTimeLapse)},
			{mode: progress.Indeterminate, icon: mustIcon(icons.ActionAutorenew)},
			{mode: progress.HorizontalDeterminate, icon: mustIcon(icons.ActionTrendingFlat)},
			{mode: progress.HorizontalIndeterminate, icon: mustIcon(icons.NavigationMoreHoriz)},
		},
	}
	ui.view.SetImage(src)
	ui.blur.Value = c.Blur.Enabled
	ui.value.Value = ui.view.ProgressOptions().ValuePercent()
	return ui
}

// Run handles window events and renders the application, applying the
// configurations received on reload.
func (ui *UI) Run(w *app.Window, profiler *profile.Profiler, reload <-chan config.Config) error {
	var ops op.Ops
	profiler.Start()
	defer profiler.Stop()
	defer ui.view.Close()
	ui.view.OnInvalidate = func(image.Rectangle) { w.Invalidate() }
	for {
		select {
		case <-ui.view.Updated():
			w.Invalidate()
		case c := <-reload:
			ui.logger.Info("configuration reloaded")
			ui.view.Configure(c)
			ui.blur.Value = c.Blur.Enabled
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				profiler.Record(gtx)
				ui.Layout(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}

// update applies the input of the controls.
func (ui *UI) update() {
	p := ui.view.Progress()
	for _, b := range ui.modes {
		if b.Clicked() {
			p.ChangeMode(b.mode)
		}
	}
	if ui.shapeBtn.Clicked() {
		ui.view.Shape.Mode = (ui.view.Shape.Mode + 1) % (shape.RoundedRectangle + 1)
		ui.logger.Debug("shape changed", zap.Stringer("shape", ui.view.Shape.Mode))
		ui.view.InvalidateRect(image.Rectangle{Max: ui.view.Size()})
	}
	if ui.blur.Changed() {
		ui.view.BlurEnabled = ui.blur.Value
	}
	if ui.value.Changed() {
		p.SetProgress(ui.value.Value)
	}
}

// Layout the view above its controls.
func (ui *UI) Layout(gtx C) D {
	ui.update()
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.Stack{}.Layout(gtx,
				layout.Expanded(ivmaterial.ImageView(th, ui.view, ui.caption).Layout),
				layout.Expanded(func(gtx C) D {
					if !ui.debug {
						return D{}
					}
					return debug.Bounds(gtx, ui.view.ProgressOptions())
				}),
			)
		}),
		layout.Rigid(ui.layoutControls),
	)
}

func (ui *UI) layoutControls(gtx C) D {
	inset := layout.UniformInset(unit.Dp(4))
	children := make([]layout.FlexChild, 0, len(ui.modes)+3)
	for _, b := range ui.modes {
		b := b
		children = append(children, layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.IconButton(th, &b.Clickable, b.icon, b.mode.String()).Layout)
		}))
	}
	children = append(children,
		layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.Button(th, &ui.shapeBtn, ui.view.Shape.Mode.String()).Layout)
		}),
		layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, material.CheckBox(th, &ui.blur, "Blur").Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			return inset.Layout(gtx, material.Slider(th, &ui.value, 0, 100).Layout)
		}),
	)
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}
