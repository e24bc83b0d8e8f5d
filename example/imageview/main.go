// SPDX-License-Identifier: Unlicense OR MIT

// Command imageview shows an image with a progress indicator, a shape mask
// and an optional blur.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"gioui.org/app"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"git.sr.ht/~gioverse/imageview/config"
	"git.sr.ht/~gioverse/imageview/profile"
	"git.sr.ht/~gioverse/imageview/progress"
	"git.sr.ht/~gioverse/imageview/shape"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// errNotImage is returned for files that are not a decodable image.
var errNotImage = errors.New("not an image")

// flags of the command.
type flags struct {
	image      string
	config     string
	mode       string
	shape      string
	blur       bool
	debug      bool
	watch      bool
	verbose    bool
	profileOpt profile.Opt
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	f := flags{profileOpt: profile.None}
	cmd := &cobra.Command{
		Use:   "imageview",
		Short: "Show an image with a progress indicator",
		Long: `imageview shows an image masked by a shape, optionally blurred, with a
progress indicator drawn over it. Buttons switch between indicator modes and a
slider sets the progress value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.image, "image", "i", "", "image to show; a generated gradient if empty")
	fl.StringVarP(&f.config, "config", "c", "", "TOML or YAML configuration file")
	fl.BoolVar(&f.watch, "watch", false, "reload the configuration file when it changes")
	fl.StringVar(&f.mode, "mode", progress.Determinate.String(), "progress mode: none, determinate, indeterminate, horizontal_determinate, horizontal_indeterminate")
	fl.StringVar(&f.shape, "shape", shape.Normal.String(), "shape: normal, circle, oval, square, rectangle, rounded_rectangle")
	fl.BoolVar(&f.blur, "blur", false, "blur the image")
	fl.BoolVar(&f.debug, "debug", false, "outline the indicator bounds")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log debug messages")
	fl.Var(&f.profileOpt, "profile", fmt.Sprintf("create the provided kind of profile, one of %v", profile.Opts))
	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	logger, err := newLogger(f.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	c := config.Default()
	if f.config != "" {
		if c, err = config.Load(f.config); err != nil {
			return err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("mode") || f.config == "" {
		if c.Progress.Mode, err = progress.ParseMode(f.mode); err != nil {
			return err
		}
	}
	if fl.Changed("shape") || f.config == "" {
		if c.Shape.Mode, err = shape.ParseMode(f.shape); err != nil {
			return err
		}
	}
	if fl.Changed("blur") {
		c.Blur.Enabled = f.blur
	}

	src, err := loadImage(f.image)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	reload := make(chan config.Config, 1)
	if f.watch && f.config != "" {
		go func() {
			err := config.Watch(ctx, f.config, logger.Named("config"), func(c config.Config) {
				select {
				case reload <- c:
				default:
				}
			})
			if err != nil {
				logger.Warn("watching config", zap.Error(err))
			}
		}()
	}

	ui := NewUI(c, src, logger)
	ui.debug = f.debug
	profiler := f.profileOpt.NewProfiler(logger.Named("profile"))
	go func() {
		w := app.NewWindow(app.Title("Image view"))
		if err := ui.Run(w, profiler, reload); err != nil {
			logger.Error("window closed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// loadImage decodes the image at path, or generates one if path is empty.
func loadImage(path string) (image.Image, error) {
	if path == "" {
		return gradient(640, 480), nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	head := make([]byte, 261)
	n, _ := file.Read(head)
	kind, err := filetype.Match(head[:n])
	if err != nil || !filetype.IsImage(head[:n]) {
		return nil, fmt.Errorf("%s: %w", path, errNotImage)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding %s: %w", path, kind.MIME.Value, err)
	}
	return img, nil
}

// gradient returns a diagonal gradient image.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * x / w),
				G: uint8(255 * y / h),
				B: uint8(255 * (w - x) / w),
				A: 255,
			})
		}
	}
	return img
}
