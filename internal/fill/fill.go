// Package fill tiles dummy metal around and inside a coil. Density
// rules want uniform metal coverage; the coil itself must stay clear,
// so tiles are kept or dropped by half-plane tests against the winding.
package fill

import (
	"math"

	"coilgen/internal/coil"
	"coilgen/internal/spec"
	"coilgen/pkg/geometry"
)

// Result is one fill pass: the emitted tiles and the layer they go on.
type Result struct {
	Layer  int
	Region geometry.BBox
	Tiles  []geometry.BBox
}

// halfPlane is the constraint A*x + B*y <= C. A convex polygon is the
// intersection of one half-plane per edge.
type halfPlane struct {
	A, B, C int
}

func (h halfPlane) holds(p geometry.Point) bool {
	return h.A*p.X+h.B*p.Y <= h.C
}

// planes builds the inward half-planes of a convex polygon, each inset
// by margin toward the interior. Winding is normalized so callers may
// pass either orientation.
func planes(pg geometry.Polygon, margin int) []halfPlane {
	if !pg.IsCCW() {
		pg = pg.Reversed()
	}
	hp := make([]halfPlane, 0, len(pg))
	for i := range pg {
		a, b := pg[i], pg[(i+1)%len(pg)]
		h := halfPlane{A: b.Y - a.Y, B: a.X - b.X}
		h.C = h.A*a.X + h.B*a.Y
		norm := math.Hypot(float64(h.A), float64(h.B))
		h.C -= geometry.RoundAway(float64(margin) * norm)
		hp = append(hp, h)
	}
	return hp
}

func corners(t geometry.BBox) [4]geometry.Point {
	return [4]geometry.Point{
		{X: t.XL, Y: t.YL}, {X: t.XH, Y: t.YL},
		{X: t.XH, Y: t.YH}, {X: t.XL, Y: t.YH},
	}
}

// insidePlanes reports whether the whole tile satisfies every plane.
func insidePlanes(t geometry.BBox, hp []halfPlane) bool {
	for _, h := range hp {
		for _, c := range corners(t) {
			if !h.holds(c) {
				return false
			}
		}
	}
	return true
}

// outsidePlanes reports whether the whole tile lies beyond at least one
// plane. For a convex region that guarantees no overlap.
func outsidePlanes(t geometry.BBox, hp []halfPlane) bool {
	for _, h := range hp {
		out := true
		for _, c := range corners(t) {
			if h.holds(c) {
				out = false
				break
			}
		}
		if out {
			return true
		}
	}
	return false
}

// tiles lays a centered grid of tileWidth squares over the region,
// tileSpacing apart. The leftover margin is split evenly.
func tiles(region geometry.BBox, tw, sp int) []geometry.BBox {
	pitch := tw + sp
	nx := geometry.FloorDiv(region.W()+sp, pitch)
	ny := geometry.FloorDiv(region.H()+sp, pitch)
	if nx <= 0 || ny <= 0 {
		return nil
	}
	mx := (region.W() - (nx*pitch - sp)) / 2
	my := (region.H() - (ny*pitch - sp)) / 2
	out := make([]geometry.BBox, 0, nx*ny)
	for iy := 0; iy < ny; iy++ {
		y0 := region.YL + my + iy*pitch
		for ix := 0; ix < nx; ix++ {
			x0 := region.XL + mx + ix*pitch
			out = append(out, geometry.NewBBox(x0, y0, x0+tw, y0+tw))
		}
	}
	return out
}

// leadKeepOut is the exclusion band along the lead escape path so fill
// never shorts against the terminal wires.
func leadKeepOut(c *coil.Coil, orient spec.Orientation, margin int) *geometry.BBox {
	if c.Lead == nil || len(c.Lead.Pair) != 2 {
		return nil
	}
	a, b := c.Lead.Pair[0], c.Lead.Pair[1]
	w2 := c.Width/2 + margin
	if orient == spec.R270 {
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		kb := geometry.NewBBox(c.BBox.XL, lo-w2, a.X, hi+w2)
		return &kb
	}
	lo, hi := a.X, b.X
	if lo > hi {
		lo, hi = hi, lo
	}
	kb := geometry.NewBBox(lo-w2, c.BBox.YL, hi+w2, a.Y)
	return &kb
}

// Compute runs one fill pass over region. Inside tiles must sit fully
// within the innermost turn; outside tiles must clear the outermost
// turn, the lead band, and (when given) stay inside ringInner.
func Compute(f spec.FillSpec, c *coil.Coil, orient spec.Orientation, region geometry.BBox, ringInner *geometry.Polygon) (*Result, error) {
	res := &Result{Layer: c.Layer, Region: region}
	margin := c.Width/2 + f.TileSpacing

	if f.Inside {
		inner := c.Turns[len(c.Turns)-1].Vertices
		hp := planes(inner, margin)
		for _, t := range tiles(inner.BoundingBox(), f.TileWidth, f.TileSpacing) {
			// cheap center reject before the full corner test
			if !inner.Contains(t.Center()) {
				continue
			}
			if insidePlanes(t, hp) {
				res.Tiles = append(res.Tiles, t)
			}
		}
	}

	if f.Outside {
		outer := c.Turns[0].Vertices
		hp := planes(outer, -margin)
		keep := leadKeepOut(c, orient, f.TileSpacing)
		var ringHp []halfPlane
		if ringInner != nil {
			ringHp = planes(*ringInner, margin)
		}
		for _, t := range tiles(region, f.TileWidth, f.TileSpacing) {
			if !outsidePlanes(t, hp) {
				continue
			}
			if keep != nil && keep.Intersects(t) {
				continue
			}
			if ringHp != nil && !insidePlanes(t, ringHp) {
				continue
			}
			res.Tiles = append(res.Tiles, t)
		}
	}
	return res, nil
}
