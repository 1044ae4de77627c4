// Package ring generates concentric guard rings around a coil: square
// loops stitched through a layer range with via taps, broken on the
// coil layer so the leads can escape.
package ring

import (
	"fmt"

	"coilgen/internal/coil"
	"coilgen/internal/spec"
	"coilgen/pkg/geometry"
)

// Turn is one concentric ring, drawn once per layer in the stitched
// range. Index 0 is the innermost ring.
type Turn struct {
	Index   int
	HalfLen int // centerline half side length
	Paths   []LayerPath
}

// LayerPath is the ring path on one layer.
type LayerPath struct {
	Layer int
	Path  *coil.TurnPath
}

// Ring is the complete guard-ring geometry.
type Ring struct {
	Width    int
	Opening  int // lead-escape gap on the coil layer
	Center   geometry.Point
	Turns    []Turn
	Vias     []coil.Via
	Pin      geometry.BBox // supply pin on the outermost ring
	PinLayer int
	BBox     geometry.BBox
}

// openSide maps the coil orientation to the ring side that carries the
// lead-escape opening.
func openSide(o spec.Orientation) int {
	switch o {
	case spec.R180, spec.MX:
		return sideTop
	case spec.R90:
		return sideRight
	case spec.R270:
		return sideLeft
	default:
		return sideBottom
	}
}

const (
	sideBottom = iota
	sideRight
	sideTop
	sideLeft
)

// Generate builds the guard ring for a coil whose bounding box is
// coilW x coilH and whose terminal opening is coilOpening. The ring is
// square, sized to clear the larger coil dimension.
func Generate(s *spec.CoilSpec, coilW, coilH, coilOpening int) (*Ring, error) {
	rs := s.Ring
	if rs == nil {
		return nil, nil
	}
	if rs.ConnCount < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrConnCount, rs.ConnCount)
	}
	layLow := rs.LayerLow
	if layLow == 0 {
		layLow = s.Layer
	}
	if layLow > s.Layer {
		return nil, fmt.Errorf("%w: layer_low=%d coil layer=%d", ErrLayerRange, layLow, s.Layer)
	}
	opening := rs.Gap
	if opening == 0 {
		opening = 3 * coilOpening
	}

	dim := coilW
	if coilH > dim {
		dim = coilH
	}
	tot := dim + 2*(rs.Clearance+rs.Width)
	hfLen := geometry.CeilDiv(tot, 2) - rs.Width/2
	pitch := rs.Width + rs.Spacing
	hfMax := hfLen + (rs.Turns-1)*pitch

	r := &Ring{
		Width:    rs.Width,
		Opening:  opening,
		Center:   geometry.NewPoint(hfMax+rs.Width/2, hfMax+rs.Width/2),
		PinLayer: s.Layer,
		BBox:     geometry.NewBBox(0, 0, 2*hfMax+rs.Width, 2*hfMax+rs.Width),
	}

	// t-coil and stacked coils break every turn at both top and bottom,
	// so their rings open on both ends of the escape axis
	bothEnds := s.TCoil || s.BottomLayer() < s.Layer
	side := openSide(s.Orientation)
	side2 := -1
	if bothEnds {
		side2 = (side + 2) % 4
	}
	for idx := 0; idx < rs.Turns; idx++ {
		hl := hfLen + idx*pitch
		verts, err := coil.ComputeVertices(4, 1, hl, hl, rs.Width, 0)
		if err != nil {
			return nil, err
		}
		// shift inner rings outward so every ring shares one center
		d := (rs.Turns - 1 - idx) * pitch
		t := Turn{Index: idx, HalfLen: hl}
		for layer := layLow; layer <= s.Layer; layer++ {
			mode := coil.ModeClosed
			if layer == s.Layer {
				var err error
				mode, err = coil.SelectRingMode(s.Orientation, bothEnds)
				if err != nil {
					return nil, err
				}
			}
			tp, err := coil.GeneratePath(coil.PathConfig{
				Vertices:   verts[0],
				Radius:     hl,
				Turn:       0,
				Sides:      4,
				Width:      rs.Width,
				BottomOpen: opening,
				TopOpen:    opening,
			}, mode)
			if err != nil {
				return nil, err
			}
			tp.Translate(d, d)
			t.Paths = append(t.Paths, LayerPath{Layer: layer, Path: tp})
		}
		r.Turns = append(r.Turns, t)
		r.Vias = append(r.Vias, stitchVias(r.Center, hl, rs, layLow, s.Layer, side, side2)...)
	}

	// with both ends open the side opposite the opening is gone too, so
	// the supply pin moves to a perpendicular edge
	pinRef := side
	if bothEnds {
		if side == sideBottom || side == sideTop {
			pinRef = sideLeft
		} else {
			pinRef = sideBottom
		}
	}
	r.Pin = supplyPin(r.Center, hfMax, rs.Width, pinRef)
	return r, nil
}

// stitchVias places ConnCount via taps per side on every adjacent layer
// pair of the stitched range, skipping the open side(s). When the coil
// layer is odd its bridge stubs run directly below it, so the pair into
// the coil layer is left unstitched to keep that layer free.
func stitchVias(center geometry.Point, halfLen int, rs *spec.RingSpec, layLow, coilLayer, open, open2 int) []coil.Via {
	var vias []coil.Via
	for low := layLow; low < coilLayer; low++ {
		if low == coilLayer-1 && coilLayer%2 == 1 {
			continue
		}
		for side := sideBottom; side <= sideLeft; side++ {
			if side == open || side == open2 {
				continue
			}
			for i := 1; i <= rs.ConnCount; i++ {
				off := -halfLen + 2*halfLen*i/(rs.ConnCount+1)
				var p geometry.Point
				switch side {
				case sideBottom:
					p = geometry.NewPoint(center.X+off, center.Y-halfLen)
				case sideTop:
					p = geometry.NewPoint(center.X+off, center.Y+halfLen)
				case sideLeft:
					p = geometry.NewPoint(center.X-halfLen, center.Y+off)
				case sideRight:
					p = geometry.NewPoint(center.X+halfLen, center.Y+off)
				}
				vias = append(vias, coil.Via{
					Center: p, Width: rs.Width, Height: rs.Width,
					LayerLow: low, LayerHigh: low + 1,
				})
			}
		}
	}
	return vias
}

// supplyPin is the tap box on the outermost ring, opposite the opening.
func supplyPin(center geometry.Point, halfMax, width, open int) geometry.BBox {
	w2 := width / 2
	switch open {
	case sideTop:
		return geometry.NewBBox(center.X-width, center.Y-halfMax-w2, center.X+width, center.Y-halfMax+w2)
	case sideLeft:
		return geometry.NewBBox(center.X+halfMax-w2, center.Y-width, center.X+halfMax+w2, center.Y+width)
	case sideRight:
		return geometry.NewBBox(center.X-halfMax-w2, center.Y-width, center.X-halfMax+w2, center.Y+width)
	default:
		return geometry.NewBBox(center.X-width, center.Y+halfMax-w2, center.X+width, center.Y+halfMax+w2)
	}
}
