package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a color written as "#rrggbb", or "#aarrggbb" when translucent.
type Color color.NRGBA

// NRGBA returns c as a Gio color.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA(c) }

func (c Color) MarshalText() ([]byte, error) {
	hex := colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}.Hex()
	if c.A != 0xff {
		hex = fmt.Sprintf("#%02x%s", c.A, hex[1:])
	}
	return []byte(hex), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#aarrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == len("#aarrggbb") && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("config: color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	}
	rgb, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	r, g, b := rgb.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}
