// Package config loads the defaults of image views from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~gioverse/imageview/blur"
	"git.sr.ht/~gioverse/imageview/progress"
	"git.sr.ht/~gioverse/imageview/shape"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor
// YAML.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// Config of an image view.
type Config struct {
	Progress Progress `toml:"progress" yaml:"progress"`
	Shape    Shape    `toml:"shape" yaml:"shape"`
	Blur     Blur     `toml:"blur" yaml:"blur"`
}

// Progress configures the progress indicator. Negative pixel values are
// unset; negative percentages give priority to the pixel value.
type Progress struct {
	Mode                 progress.Mode    `toml:"mode" yaml:"mode"`
	Size                 int              `toml:"size" yaml:"size"`
	SizePercent          float32          `toml:"size_percent" yaml:"size_percent"`
	BorderWidth          int              `toml:"border_width" yaml:"border_width"`
	BorderWidthPercent   float32          `toml:"border_width_percent" yaml:"border_width_percent"`
	Padding              int              `toml:"padding" yaml:"padding"`
	Gravity              progress.Gravity `toml:"gravity" yaml:"gravity"`
	RtlDisabled          bool             `toml:"rtl_disabled" yaml:"rtl_disabled"`
	ShadowEnabled        bool             `toml:"shadow_enabled" yaml:"shadow_enabled"`
	ShadowPadding        int              `toml:"shadow_padding" yaml:"shadow_padding"`
	ShadowPaddingPercent float32          `toml:"shadow_padding_percent" yaml:"shadow_padding_percent"`
	DeterminateAnimation bool             `toml:"determinate_animation" yaml:"determinate_animation"`
	DrawWedge            bool             `toml:"draw_wedge" yaml:"draw_wedge"`
	FrontColor           Color            `toml:"front_color" yaml:"front_color"`
	BackColor            Color            `toml:"back_color" yaml:"back_color"`
	IndeterminateColor   Color            `toml:"indeterminate_color" yaml:"indeterminate_color"`
	ShadowColor          Color            `toml:"shadow_color" yaml:"shadow_color"`
}

// Shape configures the image mask.
type Shape struct {
	Mode            shape.Mode `toml:"mode" yaml:"mode"`
	BorderWidth     int        `toml:"border_width" yaml:"border_width"`
	BorderColor     Color      `toml:"border_color" yaml:"border_color"`
	BackgroundColor Color      `toml:"background_color" yaml:"background_color"`
	Radius          int        `toml:"radius" yaml:"radius"`
}

// Blur configures the blur transform.
type Blur struct {
	Enabled          bool    `toml:"enabled" yaml:"enabled"`
	Radius           float64 `toml:"radius" yaml:"radius"`
	DownSamplingRate float32 `toml:"down_sampling_rate" yaml:"down_sampling_rate"`
	KeepOriginal     bool    `toml:"keep_original" yaml:"keep_original"`
	UseFallback      bool    `toml:"use_fallback" yaml:"use_fallback"`
}

// Default returns the configuration of a fresh image view.
func Default() Config {
	return Config{
		Progress: Progress{
			Mode:                 progress.None,
			Size:                 -1,
			SizePercent:          progress.DefaultSizePercent,
			BorderWidth:          -1,
			BorderWidthPercent:   progress.DefaultBorderWidthPercent,
			Padding:              progress.DefaultPadding,
			Gravity:              progress.Center,
			ShadowEnabled:        true,
			ShadowPadding:        -1,
			ShadowPaddingPercent: progress.DefaultShadowPaddingPercent,
			DeterminateAnimation: true,
			FrontColor:           Color(progress.DefaultFrontColor),
			BackColor:            Color(progress.DefaultBackColor),
			IndeterminateColor:   Color(progress.DefaultIndeterminateColor),
			ShadowColor:          Color(progress.DefaultShadowColor),
		},
		Shape: Shape{
			Mode: shape.Normal,
		},
		Blur: Blur{
			Radius:           10,
			DownSamplingRate: 1,
			KeepOriginal:     true,
			UseFallback:      true,
		},
	}
}

// Load reads the file at path over the defaults. The format follows the
// extension: .toml, .yaml or .yml. A leading ~ is the home directory.
func Load(path string) (Config, error) {
	c := Default()
	path, err := homedir.Expand(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := Decode(&c, filepath.Ext(path), data); err != nil {
		return c, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode data in the format named by ext into c. Fields missing from data
// keep their value.
func Decode(c *Config, ext string, data []byte) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		return toml.Unmarshal(data, c)
	case "yaml", "yml":
		return yaml.Unmarshal(data, c)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Encode c in the format named by ext.
func Encode(c Config, ext string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		return toml.Marshal(c)
	case "yaml", "yml":
		return yaml.Marshal(c)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Apply sets every progress option. Pixel values are set before
// percentages so that the percentages decide which one is in effect.
func (p Progress) Apply(o *progress.Options) {
	o.SetSize(p.Size)
	o.SetSizePercent(p.SizePercent)
	o.SetBorderWidth(p.BorderWidth)
	o.SetBorderWidthPercent(p.BorderWidthPercent)
	o.SetPadding(p.Padding)
	o.SetGravity(p.Gravity)
	o.SetRtlDisabled(p.RtlDisabled)
	o.SetShadowEnabled(p.ShadowEnabled)
	o.SetShadowPadding(p.ShadowPadding)
	o.SetShadowPaddingPercent(p.ShadowPaddingPercent)
	o.SetDeterminateAnimationEnabled(p.DeterminateAnimation)
	o.SetDrawWedge(p.DrawWedge)
	o.SetFrontColor(p.FrontColor.NRGBA())
	o.SetBackColor(p.BackColor.NRGBA())
	o.SetIndeterminateColor(p.IndeterminateColor.NRGBA())
	o.SetShadowColor(p.ShadowColor.NRGBA())
}

// Shape returns the configured mask.
func (s Shape) Shape() shape.Shape {
	return shape.Shape{
		Mode: s.Mode,
		Options: shape.Options{
			BorderWidth:     s.BorderWidth,
			BorderColor:     s.BorderColor.NRGBA(),
			BackgroundColor: s.BackgroundColor.NRGBA(),
			Radius:          s.Radius,
		},
	}
}

// Apply sets every blur option.
func (b Blur) Apply(o *blur.Options) {
	o.SetDownSamplingRate(b.DownSamplingRate)
	o.SetKeepOriginal(b.KeepOriginal)
	o.SetUseFallback(b.UseFallback)
}

// Options returns new blur options.
func (b Blur) Options() *blur.Options {
	return blur.NewOptions(b.DownSamplingRate, b.KeepOriginal, b.UseFallback)
}
