package progress

import (
	"fmt"
	"strings"
)

// Mode selects the kind of progress indicator shown over the image.
type Mode uint8

const (
	// None hides the indicator.
	None Mode = iota
	// Determinate is a circular indicator showing a value.
	Determinate
	// Indeterminate is a circular indicator spinning continuously.
	Indeterminate
	// HorizontalDeterminate is a bar showing a value.
	HorizontalDeterminate
	// HorizontalIndeterminate is a bar with a segment sweeping across.
	HorizontalIndeterminate

	modeCount
)

var modeNames = [...]string{
	None:                    "none",
	Determinate:             "determinate",
	Indeterminate:           "indeterminate",
	HorizontalDeterminate:   "horizontal_determinate",
	HorizontalIndeterminate: "horizontal_indeterminate",
}

// Family groups modes sharing the same bounds geometry.
type Family uint8

const (
	// NoFamily has empty bounds.
	NoFamily Family = iota
	// Circular indicators are drawn in a square, with the border as stroke.
	Circular
	// Horizontal indicators are bars as thick as the border width.
	Horizontal
)

// Family of the mode. Unknown modes have no family.
func (m Mode) Family() Family {
	switch m {
	case Determinate, Indeterminate:
		return Circular
	case HorizontalDeterminate, HorizontalIndeterminate:
		return Horizontal
	}
	return NoFamily
}

// Indeterminate reports whether the mode animates continuously.
func (m Mode) Indeterminate() bool {
	return m == Indeterminate || m == HorizontalIndeterminate
}

// WithIndeterminate returns the mode of the same family that is, or is not,
// indeterminate. None becomes a circular mode.
func (m Mode) WithIndeterminate(indeterminate bool) Mode {
	if m.Family() == Horizontal {
		if indeterminate {
			return HorizontalIndeterminate
		}
		return HorizontalDeterminate
	}
	if indeterminate {
		return Indeterminate
	}
	return Determinate
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses the name of a mode, as returned by String.
func ParseMode(s string) (Mode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return None, fmt.Errorf("progress: unknown mode %q", s)
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
