// Package layout assembles a complete coil instance: the winding, the
// optional guard ring around it, and the metal-fill passes between the
// two, placed in one shared coordinate frame.
package layout

import (
	"fmt"
	"log"

	"coilgen/internal/coil"
	"coilgen/internal/fill"
	"coilgen/internal/grid"
	"coilgen/internal/ring"
	"coilgen/internal/spec"
	"coilgen/pkg/geometry"
)

// Result is one placed coil instance.
type Result struct {
	Spec  *spec.CoilSpec
	Coil  *coil.Coil
	Ring  *ring.Ring
	Fills []*fill.Result
	BBox  geometry.BBox
}

// Generate synthesizes the coil and, when specified, wraps it with the
// guard ring and fill passes. The coil is recentered inside the ring so
// the returned frame has its origin at the lower-left of the whole
// instance.
func Generate(s *spec.CoilSpec, g grid.RoutingGrid) (*Result, error) {
	c, err := coil.Synthesize(s, g)
	if err != nil {
		return nil, fmt.Errorf("synthesize coil: %w", err)
	}
	res := &Result{Spec: s, Coil: c, BBox: c.BBox}

	var ringInner *geometry.Polygon
	if s.Ring != nil {
		r, err := ring.Generate(s, c.BBox.W(), c.BBox.H(), c.Opening)
		if err != nil {
			return nil, fmt.Errorf("generate ring: %w", err)
		}
		dx := (r.BBox.W() - c.BBox.W()) / 2
		dy := (r.BBox.H() - c.BBox.H()) / 2
		c.Translate(dx, dy)
		res.Ring = r
		res.BBox = r.BBox
		ringInner = innerBoundary(r)
	}

	for i, f := range s.Fill {
		fr, err := fill.Compute(f, c, s.Orientation, res.BBox, ringInner)
		if err != nil {
			return nil, fmt.Errorf("fill pass %d: %w", i, err)
		}
		if len(fr.Tiles) == 0 {
			log.Printf("layout: fill pass %d produced no tiles, skipping", i)
			continue
		}
		res.Fills = append(res.Fills, fr)
	}
	return res, nil
}

// innerBoundary is the clear region inside the innermost ring, as a
// counter-clockwise square at the metal's inner edge.
func innerBoundary(r *ring.Ring) *geometry.Polygon {
	h := r.Turns[0].HalfLen - r.Width/2
	c := r.Center
	pg := geometry.Polygon{
		{X: c.X - h, Y: c.Y - h},
		{X: c.X + h, Y: c.Y - h},
		{X: c.X + h, Y: c.Y + h},
		{X: c.X - h, Y: c.Y + h},
	}
	return &pg
}
