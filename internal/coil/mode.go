package coil

import (
	"fmt"

	"coilgen/internal/spec"
)

// Role classifies a turn's position within the winding.
type Role int

const (
	// RoleSingle is the only turn of a single-turn coil.
	RoleSingle Role = iota
	// RoleOuter is the outermost turn of a multi-turn coil.
	RoleOuter
	// RoleInner is the innermost turn of a multi-turn coil.
	RoleInner
	// RoleMiddle is any turn strictly between outer and inner.
	RoleMiddle
)

func (r Role) String() string {
	switch r {
	case RoleSingle:
		return "single"
	case RoleOuter:
		return "outer"
	case RoleInner:
		return "inner"
	case RoleMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Parity is the evenness of a turn index.
type Parity int

const (
	ParityEven Parity = iota
	ParityOdd
)

func (p Parity) String() string {
	if p == ParityEven {
		return "even"
	}
	return "odd"
}

// ParityOf returns the parity of a turn index.
func ParityOf(turn int) Parity {
	if turn%2 == 0 {
		return ParityEven
	}
	return ParityOdd
}

// RoleOf classifies a turn index within a winding of turnCount turns.
func RoleOf(turn, turnCount int) Role {
	switch {
	case turnCount == 1:
		return RoleSingle
	case turn == 0:
		return RoleOuter
	case turn == turnCount-1:
		return RoleInner
	default:
		return RoleMiddle
	}
}

// BreakMode selects where a turn's edge list is broken for leads,
// bridges, and openings.
type BreakMode int

const (
	// ModeClosed emits all edges unchanged.
	ModeClosed BreakMode = iota
	// ModeLeadOnly breaks only the bottom edge for the lead gap.
	ModeLeadOnly
	// ModeLeadBridge breaks the bottom edge for the lead gap and the top
	// edge for a bridge gap.
	ModeLeadBridge
	// ModeInnerTop breaks the top edge of an odd-index inner turn.
	ModeInnerTop
	// ModeInnerBottom breaks the bottom edge of an even-index inner turn.
	ModeInnerBottom
	// ModeMiddleEven breaks top and bottom of an even-index middle turn.
	ModeMiddleEven
	// ModeMiddleOdd breaks top and bottom of an odd-index middle turn.
	ModeMiddleOdd
	// ModeNoLastSide drops the final edge.
	ModeNoLastSide
	// ModeNoMidSide drops the middle edge.
	ModeNoMidSide
	// ModeNoMidLastSide drops the middle and final edges.
	ModeNoMidLastSide
	// ModeTopOpen inserts a plain opening in the top edge.
	ModeTopOpen
	// ModeBottomOpen inserts a plain opening in the bottom edge.
	ModeBottomOpen
	// ModeTopBottomOpen inserts openings in both top and bottom edges.
	ModeTopBottomOpen
	// ModeRightOpen inserts a plain opening in the right edge.
	ModeRightOpen
	// ModeLeftOpen inserts a plain opening in the left edge; the lead
	// escapes to the left (R270 family).
	ModeLeftOpen
)

var modeNames = [...]string{
	"closed", "lead-only", "lead+bridge", "inner-top", "inner-bottom",
	"middle-even", "middle-odd", "no-last-side", "no-mid-side",
	"no-mid-last-side", "top-open", "bottom-open", "top-bottom-open",
	"right-open", "left-open",
}

func (m BreakMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// modeKey indexes the coil mode table. Only the combinations present in
// the table are legal; everything else is an unsupported configuration.
type modeKey struct {
	role   Role
	parity Parity
	orient spec.Orientation
}

var coilModeTable = map[modeKey]BreakMode{
	{RoleSingle, ParityEven, spec.R0}:   ModeLeadOnly,
	{RoleSingle, ParityEven, spec.R270}: ModeLeftOpen,
	{RoleOuter, ParityEven, spec.R0}:    ModeLeadBridge,
	{RoleInner, ParityOdd, spec.R0}:     ModeInnerTop,
	{RoleInner, ParityEven, spec.R0}:    ModeInnerBottom,
	{RoleMiddle, ParityEven, spec.R0}:   ModeMiddleEven,
	{RoleMiddle, ParityOdd, spec.R0}:    ModeMiddleOdd,
}

// SelectMode maps a turn position and orientation to its break mode.
// The inner turn's parity decides whether the final inward-facing break
// lands on the top or the bottom edge, so the spiral terminates on the
// correct side for both even and odd turn counts.
func SelectMode(turn, turnCount int, orient spec.Orientation) (BreakMode, error) {
	key := modeKey{RoleOf(turn, turnCount), ParityOf(turn), orient}
	mode, ok := coilModeTable[key]
	if !ok {
		return 0, fmt.Errorf("%w: no mode for role=%v parity=%v orient=%v",
			ErrUnsupported, key.role, key.parity, key.orient)
	}
	return mode, nil
}

// ringModeTable maps orientations to the opening mode of a guard ring
// turn on the coil layer.
var ringModeTable = map[spec.Orientation]BreakMode{
	spec.R0:   ModeBottomOpen,
	spec.MY:   ModeBottomOpen,
	spec.R180: ModeTopOpen,
	spec.MX:   ModeTopOpen,
	spec.R90:  ModeRightOpen,
	spec.R270: ModeLeftOpen,
}

// SelectRingMode maps an orientation to the guard-ring opening mode on
// the coil layer. When both terminal pairs escape (top and bottom), the
// ring opens on both edges.
func SelectRingMode(orient spec.Orientation, bothEnds bool) (BreakMode, error) {
	if bothEnds {
		if orient == spec.R0 || orient == spec.R180 || orient == spec.MX || orient == spec.MY {
			return ModeTopBottomOpen, nil
		}
		return 0, fmt.Errorf("%w: no dual-opening ring mode for orient=%v", ErrUnsupported, orient)
	}
	mode, ok := ringModeTable[orient]
	if !ok {
		return 0, fmt.Errorf("%w: no ring mode for orient=%v", ErrUnsupported, orient)
	}
	return mode, nil
}
