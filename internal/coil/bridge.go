package coil

import (
	"fmt"
	"math"

	"coilgen/pkg/geometry"
)

// Via is a single inter-layer connection. LayerHigh is always
// LayerLow+1; longer spans are emitted as stacks of adjacent vias.
type Via struct {
	Center    geometry.Point `json:"center"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	LayerLow  int            `json:"layer_low"`
	LayerHigh int            `json:"layer_high"`
}

// BBox returns the via's drawn extent.
func (v Via) BBox() geometry.BBox {
	return geometry.BBox{
		XL: v.Center.X - v.Width/2,
		YL: v.Center.Y - v.Height/2,
		XH: v.Center.X + v.Width/2,
		YH: v.Center.Y + v.Height/2,
	}
}

// Translate returns the via shifted by (dx, dy).
func (v Via) Translate(dx, dy int) Via {
	v.Center = v.Center.Add(geometry.Point{X: dx, Y: dy})
	return v
}

// Bridge is a connecting segment between two turn endpoints, possibly
// jumping to another layer through vias at its endpoints.
type Bridge struct {
	Points []geometry.Point `json:"points"` // 2 points, or 3 for a dog-leg
	Layer  int              `json:"layer"`
	Width  int              `json:"width"`
	Vias   []Via            `json:"vias,omitempty"`
}

// Translate returns the bridge shifted by (dx, dy).
func (b *Bridge) Translate(dx, dy int) *Bridge {
	out := &Bridge{Layer: b.Layer, Width: b.Width}
	out.Points = make([]geometry.Point, len(b.Points))
	for i, p := range b.Points {
		out.Points[i] = p.Add(geometry.Point{X: dx, Y: dy})
	}
	out.Vias = make([]Via, len(b.Vias))
	for i, v := range b.Vias {
		out.Vias[i] = v.Translate(dx, dy)
	}
	return out
}

// viaLandingExt is the extra landing metal added on each side of a
// bridge via so the overlap stays manufacturable on 45-degree entries.
func viaLandingExt(width int) int {
	return geometry.RoundAway(float64(width) * math.Sin(math.Pi/8))
}

// StackVias emits the adjacent-layer via stack connecting layerLow to
// layerHigh at center, sized w by h.
func StackVias(center geometry.Point, w, h, layerLow, layerHigh int) ([]Via, error) {
	if layerHigh <= layerLow {
		return nil, fmt.Errorf("%w: via stack needs layer_high=%d above layer_low=%d",
			ErrUnsupported, layerHigh, layerLow)
	}
	vias := make([]Via, 0, layerHigh-layerLow)
	for l := layerLow; l < layerHigh; l++ {
		vias = append(vias, Via{Center: center, Width: w, Height: h, LayerLow: l, LayerHigh: l + 1})
	}
	return vias, nil
}

// RouteBridge connects two turn endpoints on bridgeLayer. An endpoint
// whose own layer differs from the bridge layer gets a via stack sized
// to the conductor width plus the landing extension. Endpoints sharing
// a y coordinate collapse the dog-leg to a single straight segment.
func RouteBridge(left, right geometry.Point, leftLayer, rightLayer, bridgeLayer, width int) (*Bridge, error) {
	b := &Bridge{Layer: bridgeLayer, Width: width}
	if left.Y == right.Y {
		b.Points = []geometry.Point{left, right}
	} else {
		b.Points = []geometry.Point{left, {X: right.X, Y: left.Y}, right}
	}

	ext := viaLandingExt(width)
	viaW := width + 2*ext
	for _, end := range []struct {
		pt    geometry.Point
		layer int
	}{{left, leftLayer}, {right, rightLayer}} {
		if end.layer == bridgeLayer {
			continue
		}
		lo, hi := end.layer, bridgeLayer
		if lo > hi {
			lo, hi = hi, lo
		}
		vias, err := StackVias(end.pt, viaW, width, lo, hi)
		if err != nil {
			return nil, err
		}
		b.Vias = append(b.Vias, vias...)
	}
	return b, nil
}
