package shape

import (
	"fmt"
	"strings"
)

// Mode selects the outline an image is masked with.
type Mode uint8

const (
	// Normal shows the image as it is.
	Normal Mode = iota
	// Circle masks the image with the largest centered circle.
	Circle
	// Oval masks the image with the ellipse inscribed in the view.
	Oval
	// Square masks the image with the largest centered square.
	Square
	// Rectangle masks the image with the view rectangle.
	Rectangle
	// RoundedRectangle masks the image with the view rectangle, rounded.
	RoundedRectangle
)

var modeNames = [...]string{
	Normal:           "normal",
	Circle:           "circle",
	Oval:             "oval",
	Square:           "square",
	Rectangle:        "rectangle",
	RoundedRectangle: "rounded_rectangle",
}

// Centered reports whether the shape is a square centered in the view,
// rather than filling it.
func (m Mode) Centered() bool {
	return m == Circle || m == Square
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses a shape name as returned by String. Case is ignored and
// dashes may replace underscores.
func ParseMode(s string) (Mode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return Normal, fmt.Errorf("shape: unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
