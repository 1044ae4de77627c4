// Package grid is the routing-grid query surface consumed by the coil
// generators. The generators only use it to align lead and tap
// coordinates to legal wire positions; they never create grid state.
package grid

import "coilgen/pkg/geometry"

// Direction is the preferred wiring direction of a routing layer.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// RoutingGrid answers track queries for routing layers.
type RoutingGrid interface {
	// TrackPitch returns the track pitch of the layer.
	TrackPitch(layer int) int
	// TrackWidth returns the drawn wire width of a single track.
	TrackWidth(layer int) int
	// Direction returns the preferred wiring direction of the layer.
	Direction(layer int) Direction
	// AlignToTrack snaps a coordinate to the nearest track center.
	AlignToTrack(layer, coord int) int
}

// Uniform is a routing grid with one pitch and wire width on every
// layer and the usual alternating preferred direction: even layers run
// horizontal, odd layers vertical.
type Uniform struct {
	Pitch     int
	WireWidth int
}

// TrackPitch implements RoutingGrid.
func (u Uniform) TrackPitch(layer int) int {
	return u.Pitch
}

// TrackWidth implements RoutingGrid.
func (u Uniform) TrackWidth(layer int) int {
	return u.WireWidth
}

// Direction implements RoutingGrid.
func (u Uniform) Direction(layer int) Direction {
	if layer%2 == 0 {
		return Horizontal
	}
	return Vertical
}

// AlignToTrack implements RoutingGrid.
func (u Uniform) AlignToTrack(layer, coord int) int {
	if u.Pitch <= 0 {
		return coord
	}
	n := geometry.FloorDiv(coord+u.Pitch/2, u.Pitch)
	return n * u.Pitch
}

// QuantizeOpening widens a terminal opening so that both lead wires land
// on track centers of the layer: the opening is rounded up to a whole
// number of pitches measured between wire edges, then re-expanded by the
// conductor width.
func QuantizeOpening(g RoutingGrid, layer, opening, width int) int {
	pitch := g.TrackPitch(layer)
	if pitch <= 0 {
		return opening
	}
	trackW := g.TrackWidth(layer)
	numPitch := geometry.CeilDiv(opening+trackW, pitch)
	return pitch*numPitch - trackW + width
}
