// Package spiral generates rectangular spiral windings: a single
// polyline that spirals inward, plus the interleaved differential pair
// built from two such spirals rotated into each other.
package spiral

import (
	"coilgen/internal/coil"
	"coilgen/pkg/geometry"
)

// Config parameterizes one rectangular spiral.
type Config struct {
	Turns       int
	Layer       int
	Radius      int // outermost centerline radius
	Width       int
	Spacing     int
	LeadWidth   int
	LeadSpacing int
	Interleave  bool // leave room for a second interleaved winding
	DrawLead    bool
}

// Spiral is one generated winding.
type Spiral struct {
	Vertices  []geometry.Point
	VertexOut geometry.Point // outermost endpoint
	VertexIn  geometry.Point // innermost endpoint
	Lead0     *geometry.BBox // outer terminal wire
	Lead1     *geometry.BBox // inner terminal wire (interleaved only)
	Vias      []coil.Via     // terminal drops to the port layer
	PortLayer int
	BBox      geometry.BBox
}

// Validate checks that the requested turns fit inside the radius. The
// interleaved form consumes two pitches per turn.
func (c Config) Validate() error {
	outer := c.Radius + c.Width/2
	turns := c.Turns + 1
	if c.Interleave {
		turns = 2*c.Turns + 1
	}
	if outer < turns*(c.Width+c.Spacing) {
		return &coil.InfeasibleError{
			Check: "spiral winding fit",
			Params: []coil.Param{
				{Name: "radius", Value: c.Radius},
				{Name: "width", Value: c.Width},
				{Name: "spacing", Value: c.Spacing},
				{Name: "turns", Value: c.Turns},
			},
			Hint: "increase radius or decrease width, spacing, or turns",
		}
	}
	return nil
}

// Coords emits the spiral polyline, spiralling inward from the outer
// terminal: left, up, right, down per turn, shrinking the radius by one
// pitch per half revolution (two when interleaved).
func Coords(c Config) []geometry.Point {
	radius := c.Radius
	xm := c.Width/2 + radius
	ym := xm
	dx := (c.LeadWidth + c.LeadSpacing) / 2
	pitch := c.Width + c.Spacing

	startX := xm + dx
	if c.DrawLead {
		startX = xm - dx
	}
	verts := []geometry.Point{{X: startX, Y: ym - radius}}
	for turn := 0; turn < c.Turns; turn++ {
		verts = append(verts, geometry.Point{X: xm - radius, Y: ym - radius})

		next := radius
		if c.Interleave {
			next = radius - pitch
		}
		verts = append(verts,
			geometry.Point{X: xm - radius, Y: ym + next},
			geometry.Point{X: xm + next, Y: ym + next})

		next2 := next - pitch
		verts = append(verts, geometry.Point{X: xm + next, Y: ym - next2})
		if turn == c.Turns-1 {
			verts = append(verts, geometry.Point{X: xm - dx, Y: ym - next2})
		}
		radius = next2
	}
	return verts
}

// Generate builds the winding with its terminal wires. Interleaved
// spirals land both terminals on the layer below through vias; plain
// ones keep the single outer lead on the winding layer.
func Generate(c Config) (*Spiral, error) {
	c.DrawLead = c.Interleave || c.DrawLead
	if err := c.Validate(); err != nil {
		return nil, err
	}
	outer := c.Radius + c.Width/2
	verts := Coords(c)
	s := &Spiral{
		Vertices:  verts,
		VertexOut: verts[0],
		VertexIn:  verts[len(verts)-1],
		PortLayer: c.Layer,
		BBox:      geometry.NewBBox(0, 0, 2*outer, 2*outer),
	}

	lw2 := c.LeadWidth / 2
	w2 := c.Width / 2
	if c.Interleave {
		s.PortLayer = c.Layer - 1

		t0 := s.VertexOut
		lead0 := geometry.NewBBox(t0.X-lw2, 0, t0.X+lw2, t0.Y+w2)
		s.Lead0 = &lead0
		s.Vias = append(s.Vias, coil.Via{
			Center:   geometry.NewPoint(t0.X, t0.Y),
			Width:    c.LeadWidth,
			Height:   c.Width,
			LayerLow: c.Layer - 1, LayerHigh: c.Layer,
		})

		t1 := s.VertexIn
		lead1 := geometry.NewBBox(t1.X-lw2, t1.Y-w2, t1.X+lw2, 2*outer)
		s.Lead1 = &lead1
		s.Vias = append(s.Vias, coil.Via{
			Center:   geometry.NewPoint(t1.X, t1.Y),
			Width:    c.LeadWidth,
			Height:   c.Width,
			LayerLow: c.Layer - 1, LayerHigh: c.Layer,
		})
	} else if c.DrawLead {
		t0 := s.VertexOut
		lead0 := geometry.NewBBox(t0.X-lw2, 0, t0.X+lw2, t0.Y+w2)
		s.Lead0 = &lead0
	}
	return s, nil
}

// Pair is the interleaved differential spiral: two identical windings,
// the second rotated 180 degrees into the gaps of the first.
type Pair struct {
	Core0, Core1 *Spiral
	Wires        []geometry.BBox // terminal extensions on the port layer
	Plus0        geometry.BBox   // pin boxes, also on the port layer
	Minus0       geometry.BBox
	Plus1        geometry.BBox
	Minus1       geometry.BBox
	LeadLower    int // terminal extent below the winding box
	LeadUpper    int // terminal extent above it
	BBox         geometry.BBox
}

// rotate180 maps a point through the center of the winding box.
func rotate180(p geometry.Point, dim int) geometry.Point {
	return geometry.Point{X: dim - p.X, Y: dim - p.Y}
}

// GeneratePair builds the differential pair and its four terminals.
// Terminal wires overshoot the winding box so the pins sit clear of the
// outermost turn.
func GeneratePair(c Config) (*Pair, error) {
	c.Interleave = true
	core0, err := Generate(c)
	if err != nil {
		return nil, err
	}
	core1, err := Generate(c)
	if err != nil {
		return nil, err
	}
	dim := core0.BBox.XH
	for i := range core1.Vertices {
		core1.Vertices[i] = rotate180(core1.Vertices[i], dim)
	}
	core1.VertexOut = core1.Vertices[0]
	core1.VertexIn = core1.Vertices[len(core1.Vertices)-1]
	flip := func(b geometry.BBox) geometry.BBox {
		return geometry.NewBBox(dim-b.XH, dim-b.YH, dim-b.XL, dim-b.YL)
	}
	l0, l1 := flip(*core1.Lead0), flip(*core1.Lead1)
	core1.Lead0, core1.Lead1 = &l0, &l1
	for i := range core1.Vias {
		core1.Vias[i].Center = rotate180(core1.Vias[i].Center, dim)
	}

	p := &Pair{Core0: core0, Core1: core1}
	lw := c.LeadWidth
	ext := 3*lw + lw/4

	plus0, minus0 := *core0.Lead0, *core0.Lead1
	plus1, minus1 := *core1.Lead0, *core1.Lead1
	p.LeadLower = plus0.YL - ext
	p.LeadUpper = plus1.YH + ext

	p.Wires = append(p.Wires,
		geometry.NewBBox(plus0.XL, p.LeadLower, plus0.XH, plus0.YH),
		geometry.NewBBox(minus1.XL, p.LeadLower, minus1.XH, plus0.YH),
		geometry.NewBBox(plus1.XL, plus1.YL, plus1.XH, p.LeadUpper),
		geometry.NewBBox(minus0.XL, minus0.YL, minus0.XH, p.LeadUpper),
	)
	p.Plus0 = geometry.NewBBox(plus0.XL, p.LeadLower, plus0.XH, p.LeadLower+lw)
	p.Minus1 = geometry.NewBBox(minus1.XL, p.LeadLower, minus1.XH, p.LeadLower+lw)
	p.Plus1 = geometry.NewBBox(plus1.XL, p.LeadUpper-lw, plus1.XH, p.LeadUpper)
	p.Minus0 = geometry.NewBBox(minus0.XL, p.LeadUpper-lw, minus0.XH, p.LeadUpper)

	p.BBox = geometry.NewBBox(0, p.LeadLower, dim, p.LeadUpper)
	return p, nil
}
