package progress

import (
	"fmt"
	"strings"
)

// Gravity anchors the indicator inside the view.
//
// Start and End follow the layout direction: with right to left layout
// enabled, Start is the right edge.
type Gravity uint8

const (
	Center Gravity = iota
	Start
	End
	Top
	Bottom
	TopStart
	TopEnd
	BottomStart
	BottomEnd
)

var gravityNames = [...]string{
	Center:      "center",
	Start:       "start",
	End:         "end",
	Top:         "top",
	Bottom:      "bottom",
	TopStart:    "top_start",
	TopEnd:      "top_end",
	BottomStart: "bottom_start",
	BottomEnd:   "bottom_end",
}

// Anchor reports which view edges the indicator sticks to. An axis with
// neither edge set is centered.
type Anchor struct {
	Left, Right bool
	Top, Bottom bool
}

// Resolve maps the gravity to view edges. rtl is the effective layout
// direction, i.e. already false when right to left support is disabled.
func (g Gravity) Resolve(rtl bool) Anchor {
	var a Anchor
	switch g {
	case Start, TopStart, BottomStart:
		a.Left, a.Right = !rtl, rtl
	case End, TopEnd, BottomEnd:
		a.Left, a.Right = rtl, !rtl
	}
	switch g {
	case Top, TopStart, TopEnd:
		a.Top = true
	case Bottom, BottomStart, BottomEnd:
		a.Bottom = true
	}
	return a
}

func (g Gravity) String() string {
	if int(g) < len(gravityNames) {
		return gravityNames[g]
	}
	return fmt.Sprintf("Gravity(%d)", uint8(g))
}

// ParseGravity parses the name of a gravity, as returned by String. Dashes
// and underscores are interchangeable and case is ignored.
func ParseGravity(s string) (Gravity, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for g, n := range gravityNames {
		if n == name {
			return Gravity(g), nil
		}
	}
	return Center, fmt.Errorf("progress: unknown gravity %q", s)
}

func (g Gravity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gravity) UnmarshalText(b []byte) error {
	v, err := ParseGravity(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
