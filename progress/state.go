package progress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrStateTooShort is returned when restoring a truncated state.
	ErrStateTooShort = errors.New("progress: state too short")
	// ErrStateVersion is returned when restoring a state of unknown layout.
	ErrStateVersion = errors.New("progress: unknown state version")
)

const stateVersion = 1

// state is the persisted layout of Options. Every field is fixed width and
// the order never changes within a version.
type state struct {
	Version              uint8
	DeterminateAnimation bool
	BorderWidth          dimensionState
	Size                 dimensionState
	ShadowPadding        dimensionState
	Padding              int32
	ValuePercent         float32
	FrontColor           uint32
	BackColor            uint32
	IndeterminateColor   uint32
	ShadowColor          uint32
	Gravity              uint8
	Rtl                  bool
	RtlDisabled          bool
	DrawWedge            bool
	ShadowEnabled        bool
	CalculatedSize       int32
	CalculatedBorder     int32
	CalculatedShadow     int32
	Indicator            [4]float32
	Shadow               [4]float32
	LastWidth            int32
	LastHeight           int32
	LastMode             uint8
}

type dimensionState struct {
	Kind    uint8
	Px      int32
	Percent float32
}

// StateSize is the length of a persisted Options state.
var StateSize = binary.Size(state{})

// MarshalBinary encodes every option together with the calculated bounds,
// so that a restored indicator can be drawn before the next size change.
func (o *Options) MarshalBinary() ([]byte, error) {
	s := state{
		Version:              stateVersion,
		DeterminateAnimation: o.determinateAnimation,
		BorderWidth:          saveDimension(o.borderWidth),
		Size:                 saveDimension(o.size),
		ShadowPadding:        saveDimension(o.shadowPadding),
		Padding:              int32(o.padding),
		ValuePercent:         o.valuePercent,
		FrontColor:           packColor(o.frontColor),
		BackColor:            packColor(o.backColor),
		IndeterminateColor:   packColor(o.indeterminateColor),
		ShadowColor:          packColor(o.shadowColor),
		Gravity:              uint8(o.gravity),
		Rtl:                  o.rtl,
		RtlDisabled:          o.rtlDisabled,
		DrawWedge:            o.drawWedge,
		ShadowEnabled:        o.shadowEnabled,
		CalculatedSize:       int32(o.bounds.Size),
		CalculatedBorder:     int32(o.bounds.BorderWidth),
		CalculatedShadow:     int32(o.bounds.ShadowPadding),
		Indicator:            saveRect(o.bounds.Indicator),
		Shadow:               saveRect(o.bounds.Shadow),
		LastWidth:            int32(o.lastWidth),
		LastHeight:           int32(o.lastHeight),
		LastMode:             uint8(o.lastMode),
	}
	var buf bytes.Buffer
	buf.Grow(StateSize)
	if err := binary.Write(&buf, binary.BigEndian, &s); err != nil {
		return nil, fmt.Errorf("progress: encoding state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores options encoded by MarshalBinary, without
// recalculating the bounds, and notifies the listener of a size change.
func (o *Options) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return ErrStateTooShort
	}
	if data[0] != stateVersion {
		return fmt.Errorf("%w: %d", ErrStateVersion, data[0])
	}
	if len(data) < StateSize {
		return fmt.Errorf("%w: %d of %d bytes", ErrStateTooShort, len(data), StateSize)
	}
	var s state
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &s); err != nil {
		return fmt.Errorf("progress: decoding state: %w", err)
	}
	o.determinateAnimation = s.DeterminateAnimation
	o.borderWidth = loadDimension(s.BorderWidth)
	o.size = loadDimension(s.Size)
	o.shadowPadding = loadDimension(s.ShadowPadding)
	o.padding = int(s.Padding)
	o.valuePercent = s.ValuePercent
	o.frontColor = unpackColor(s.FrontColor)
	o.backColor = unpackColor(s.BackColor)
	o.indeterminateColor = unpackColor(s.IndeterminateColor)
	o.shadowColor = unpackColor(s.ShadowColor)
	o.gravity = Gravity(s.Gravity)
	o.rtl = s.Rtl
	o.rtlDisabled = s.RtlDisabled
	o.drawWedge = s.DrawWedge
	o.shadowEnabled = s.ShadowEnabled
	o.bounds = Bounds{
		Size:          int(s.CalculatedSize),
		BorderWidth:   int(s.CalculatedBorder),
		ShadowPadding: int(s.CalculatedShadow),
		Indicator:     loadRect(s.Indicator),
		Shadow:        loadRect(s.Shadow),
	}
	o.lastWidth = int(s.LastWidth)
	o.lastHeight = int(s.LastHeight)
	o.lastMode = Mode(s.LastMode)
	o.sizeUpdated()
	return nil
}

func saveDimension(d Dimension) dimensionState {
	return dimensionState{Kind: uint8(d.kind), Px: int32(d.px), Percent: d.percent}
}

func loadDimension(s dimensionState) Dimension {
	kind := DimensionKind(s.Kind)
	if kind > Percent {
		kind = Unset
	}
	return Dimension{kind: kind, px: int(s.Px), percent: s.Percent}
}

func saveRect(r Rect) [4]float32 {
	return [4]float32{r.Left, r.Top, r.Right, r.Bottom}
}

func loadRect(v [4]float32) Rect {
	return Rect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
}

// packColor packs c as 0xAARRGGBB.
func packColor(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpackColor(v uint32) color.NRGBA {
	return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}
