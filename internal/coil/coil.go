package coil

import (
	"fmt"

	"coilgen/internal/grid"
	"coilgen/internal/spec"
	"coilgen/pkg/geometry"
)

// Turn is one synthesized winding turn.
type Turn struct {
	Index    int
	Sides    int
	Layer    int
	Role     Role
	Parity   Parity
	Vertices geometry.Polygon
	Path     *TurnPath
}

// Lead is the external terminal pair of the outermost turn.
type Lead struct {
	Pair []geometry.Point   // the two gap endpoints on the turn
	Ext  []geometry.Segment // extension wires to the region edge
	Pins []geometry.BBox    // terminal pin boxes
}

// CenterTap is the mid-winding terminal of single-turn coils.
type CenterTap struct {
	Coord geometry.Point
	Wire  geometry.BBox // tap extension metal
	Pin   geometry.BBox
}

// SecondTerms is the t-coil secondary terminal pair at the inner turn.
type SecondTerms struct {
	Pair []geometry.Point
	Ext  []geometry.Segment
	Vias []Via
}

// Coil is the complete synthesized coil geometry. Everything is derived
// and stateless; Synthesize recomputes it fresh from the spec each call.
type Coil struct {
	Sides     int
	Layer     int
	BotLayer  int
	Width     int
	Opening   int // terminal opening after track quantization
	Turns     []Turn
	Bridges   []*Bridge
	Vias      []Via // via landings at bridge stubs
	Lead      *Lead
	Tap       *CenterTap
	Second    *SecondTerms
	BBox      geometry.BBox
	TailLayer int // layer of the bridge stubs
}

// Translate shifts the whole coil by (dx, dy).
func (c *Coil) Translate(dx, dy int) {
	d := geometry.Point{X: dx, Y: dy}
	for ti := range c.Turns {
		t := &c.Turns[ti]
		t.Vertices = t.Vertices.Translate(dx, dy)
		t.Path.Translate(dx, dy)
	}
	for i, b := range c.Bridges {
		c.Bridges[i] = b.Translate(dx, dy)
	}
	for i := range c.Vias {
		c.Vias[i] = c.Vias[i].Translate(dx, dy)
	}
	if c.Lead != nil {
		for i := range c.Lead.Pair {
			c.Lead.Pair[i] = c.Lead.Pair[i].Add(d)
		}
		for i := range c.Lead.Ext {
			c.Lead.Ext[i] = c.Lead.Ext[i].Translate(dx, dy)
		}
		for i := range c.Lead.Pins {
			c.Lead.Pins[i] = c.Lead.Pins[i].Translate(dx, dy)
		}
	}
	if c.Tap != nil {
		c.Tap.Coord = c.Tap.Coord.Add(d)
		c.Tap.Wire = c.Tap.Wire.Translate(dx, dy)
		c.Tap.Pin = c.Tap.Pin.Translate(dx, dy)
	}
	if c.Second != nil {
		for i := range c.Second.Pair {
			c.Second.Pair[i] = c.Second.Pair[i].Add(d)
		}
		for i := range c.Second.Ext {
			c.Second.Ext[i] = c.Second.Ext[i].Translate(dx, dy)
		}
		for i := range c.Second.Vias {
			c.Second.Vias[i] = c.Second.Vias[i].Translate(dx, dy)
		}
	}
	c.BBox = c.BBox.Translate(dx, dy)
}

// Synthesize maps a coil spec to its geometry. The routing grid, when
// non-nil, is used to quantize the terminal opening so the leads land on
// legal wire positions; passing nil keeps the raw opening.
func Synthesize(s *spec.CoilSpec, g grid.RoutingGrid) (*Coil, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sides := s.Shape.Sides()

	opening := s.TermSpacing
	if g != nil {
		opening = grid.QuantizeOpening(g, s.Layer, opening, s.Width)
	}

	c := &Coil{
		Sides:     sides,
		Layer:     s.Layer,
		BotLayer:  s.BottomLayer(),
		Width:     s.Width,
		Opening:   opening,
		TailLayer: s.Layer - 1,
		BBox:      geometry.NewBBox(0, 0, 2*s.RadiusX+s.Width, 2*s.RadiusY+s.Width),
	}

	switch {
	case c.BotLayer < c.Layer:
		if err := synthesizeStacked(c, s, opening); err != nil {
			return nil, err
		}
	case s.TCoil:
		if err := synthesizeTCoil(c, s, opening); err != nil {
			return nil, err
		}
	default:
		if err := synthesizeSpiral(c, s, opening); err != nil {
			return nil, err
		}
	}

	if err := deriveLeads(c, s, g); err != nil {
		return nil, err
	}
	deriveCenterTap(c, s, g)
	return c, nil
}

// snapToTrack aligns a wire coordinate to the nearest track center when
// a routing grid is present.
func snapToTrack(g grid.RoutingGrid, layer, coord int) int {
	if g == nil {
		return coord
	}
	return g.AlignToTrack(layer, coord)
}

// synthesizeSpiral is the same-layer winding: the break-mode engine
// emits each turn, bridge stubs carry the crossing to the layer below,
// and adjacent turns are paired by parity.
func synthesizeSpiral(c *Coil, s *spec.CoilSpec, opening int) error {
	sides := c.Sides
	vertices, err := ComputeVertices(sides, s.Turns, s.RadiusX, s.RadiusY, s.Width, s.Spacing)
	if err != nil {
		return err
	}
	if err := checkFeasibility(vertices, s, sides); err != nil {
		return err
	}

	viaWidth := s.ViaWidth
	if viaWidth == 0 {
		viaWidth = s.Width
	}
	botOpen := opening
	if s.DiffTerms {
		botOpen = vertices[0][0].X - vertices[0][sides-1].X
	}

	for t := 0; t < s.Turns; t++ {
		mode, err := SelectMode(t, s.Turns, s.Orientation)
		if err != nil {
			return err
		}
		tp, err := GeneratePath(PathConfig{
			Vertices:   vertices[t],
			Radius:     s.RadiusX,
			Turn:       t,
			Sides:      sides,
			Width:      s.Width,
			Spacing:    s.Spacing,
			BottomOpen: botOpen,
			ViaWidth:   viaWidth,
		}, mode)
		if err != nil {
			return err
		}
		c.Turns = append(c.Turns, Turn{
			Index:    t,
			Sides:    sides,
			Layer:    s.Layer,
			Role:     RoleOf(t, s.Turns),
			Parity:   ParityOf(t),
			Vertices: vertices[t],
			Path:     tp,
		})
		for _, p := range tp.Vias {
			c.Vias = append(c.Vias, Via{
				Center: p, Width: viaWidth, Height: s.Width,
				LayerLow: s.Layer - 1, LayerHigh: s.Layer,
			})
		}
	}

	// Pair adjacent turns: even indices hand over at the top break, odd
	// indices at the bottom break. The upper bridge stays on the coil
	// layer; the lower one runs underneath on the stub layer.
	for i := 0; i < s.Turns-1; i++ {
		var this, next []geometry.Point
		if i%2 == 0 {
			this, next = c.Turns[i].Path.Top, c.Turns[i+1].Path.Top
		} else {
			this, next = c.Turns[i].Path.Bottom, c.Turns[i+1].Path.Bottom
		}
		if len(this) != 2 || len(next) != 2 {
			return fmt.Errorf("%w: turn %d has no bridge break to pair", ErrUnsupported, i)
		}
		upper, err := RouteBridge(this[1], next[0], s.Layer, s.Layer, s.Layer, s.Width)
		if err != nil {
			return err
		}
		lower, err := RouteBridge(this[0], next[1], s.Layer-1, s.Layer-1, s.Layer-1, s.Width)
		if err != nil {
			return err
		}
		c.Bridges = append(c.Bridges, upper, lower)
	}
	return nil
}

// openTurn generates one turn broken at top and bottom, used by the
// stacked-coil and t-coil windings.
func openTurn(s *spec.CoilSpec, verts geometry.Polygon, turn, botOpen, topOpen int) (*TurnPath, error) {
	return GeneratePath(PathConfig{
		Vertices:   verts,
		Radius:     s.RadiusX,
		Turn:       turn,
		Sides:      s.Shape.Sides(),
		Width:      s.Width,
		Spacing:    s.Spacing,
		BottomOpen: botOpen,
		TopOpen:    topOpen,
	}, ModeTopBottomOpen)
}

// synthesizeStacked winds one turn per layer from the top layer down,
// alternating between two vertex rings so neighbouring layers nest.
func synthesizeStacked(c *Coil, s *spec.CoilSpec, opening int) error {
	sides := c.Sides
	vertices, err := ComputeVertices(sides, 2, s.RadiusX, s.RadiusY, s.Width, s.Spacing)
	if err != nil {
		return err
	}
	if err := checkFeasibility(vertices, s, sides); err != nil {
		return err
	}

	nGeo := c.Layer - c.BotLayer + 1
	bridgeSp := BridgeSpacing(s.Width, s.Spacing)
	layers := make([]int, 0, nGeo)
	for l := c.Layer; l >= c.BotLayer; l-- {
		layers = append(layers, l)
	}

	for gidx, layer := range layers {
		botOpen := bridgeSp
		if gidx == 0 {
			botOpen = opening + s.Width
		}
		tp, err := openTurn(s, vertices[gidx%2], gidx%2, botOpen, bridgeSp)
		if err != nil {
			return err
		}
		if gidx == 0 {
			tp.Lead = append([]geometry.Point(nil), tp.Bottom...)
		}
		c.Turns = append(c.Turns, Turn{
			Index:    gidx,
			Sides:    sides,
			Layer:    layer,
			Role:     RoleOf(gidx, nGeo),
			Parity:   ParityOf(gidx),
			Vertices: vertices[gidx%2],
			Path:     tp,
		})
	}

	routeStackedBridges := func(pick func(*TurnPath) []geometry.Point, top bool) error {
		last := nGeo - 1
		if (top && nGeo%2 == 1) || (!top && nGeo > 1 && nGeo%2 == 0) {
			// innermost turn closes its own gap directly
			ends := pick(c.Turns[last].Path)
			direct, err := RouteBridge(ends[0], ends[1],
				layers[last], layers[last], layers[last], s.Width)
			if err != nil {
				return err
			}
			c.Bridges = append(c.Bridges, direct)
		}
		stop := nGeo
		if !top {
			stop = nGeo - 1
		}
		for gidx := 1; gidx < stop; gidx += 2 {
			lo, hi := gidx, gidx-1
			bdg := layers[hi]
			if !top {
				lo, hi = gidx+1, gidx
				bdg = layers[hi]
			}
			loEnds, hiEnds := pick(c.Turns[lo].Path), pick(c.Turns[hi].Path)
			b1, err := RouteBridge(loEnds[0], hiEnds[1], layers[lo], layers[hi], bdg, s.Width)
			if err != nil {
				return err
			}
			b2, err := RouteBridge(hiEnds[0], loEnds[1], layers[hi], layers[lo], bdg-1, s.Width)
			if err != nil {
				return err
			}
			c.Bridges = append(c.Bridges, b1, b2)
		}
		return nil
	}

	if err := routeStackedBridges(func(tp *TurnPath) []geometry.Point { return tp.Top }, true); err != nil {
		return err
	}
	if nGeo > 1 {
		if err := routeStackedBridges(func(tp *TurnPath) []geometry.Point { return tp.Bottom }, false); err != nil {
			return err
		}
	}
	return nil
}

// synthesizeTCoil winds all turns on one layer with explicit top and
// bottom gaps, bridges them diagonally, and exposes the inner turn's
// bottom gap as a second terminal pair.
func synthesizeTCoil(c *Coil, s *spec.CoilSpec, opening int) error {
	sides := c.Sides
	vertices, err := ComputeVertices(sides, s.Turns, s.RadiusX, s.RadiusY, s.Width, s.Spacing)
	if err != nil {
		return err
	}
	if err := checkFeasibility(vertices, s, sides); err != nil {
		return err
	}
	if s.Turns < 2 {
		return fmt.Errorf("%w: t-coil needs at least 2 turns, got %d", ErrUnsupported, s.Turns)
	}

	bridgeSp := BridgeSpacing(s.Width, s.Spacing)
	for t := 0; t < s.Turns; t++ {
		botOpen := bridgeSp
		if t == 0 {
			botOpen = opening + s.Width
		}
		tp, err := openTurn(s, vertices[t], t, botOpen, bridgeSp)
		if err != nil {
			return err
		}
		if t == 0 {
			tp.Lead = append([]geometry.Point(nil), tp.Bottom...)
		}
		c.Turns = append(c.Turns, Turn{
			Index:    t,
			Sides:    sides,
			Layer:    s.Layer,
			Role:     RoleOf(t, s.Turns),
			Parity:   ParityOf(t),
			Vertices: vertices[t],
			Path:     tp,
		})
	}

	// Diagonal bridge pairs at the top gaps; the under-crossing drops a
	// layer, which inserts the via stacks.
	for t := 1; t < s.Turns; t += 2 {
		this, prev := c.Turns[t].Path.Top, c.Turns[t-1].Path.Top
		b1, err := RouteBridge(this[0], prev[1], s.Layer, s.Layer, s.Layer, s.Width)
		if err != nil {
			return err
		}
		b2, err := RouteBridge(prev[0], this[1], s.Layer, s.Layer, s.Layer-1, s.Width)
		if err != nil {
			return err
		}
		c.Bridges = append(c.Bridges, b1, b2)
	}
	for t := 1; t < s.Turns-1; t += 2 {
		this, next := c.Turns[t].Path.Bottom, c.Turns[t+1].Path.Bottom
		b1, err := RouteBridge(next[0], this[1], s.Layer, s.Layer, s.Layer, s.Width)
		if err != nil {
			return err
		}
		b2, err := RouteBridge(this[0], next[1], s.Layer, s.Layer, s.Layer-1, s.Width)
		if err != nil {
			return err
		}
		c.Bridges = append(c.Bridges, b1, b2)
	}

	// Second terminal pair: the inner turn's bottom gap endpoints are
	// pulled straight down and dropped one layer through vias.
	inner := c.Turns[s.Turns-1].Path
	w2 := s.Width / 2
	sec := &SecondTerms{Pair: []geometry.Point{inner.Bottom[0], inner.Bottom[1]}}
	for _, p := range sec.Pair {
		bot := geometry.Point{X: p.X, Y: p.Y - w2 - 2*s.Width}
		sec.Ext = append(sec.Ext, geometry.Segment{A: p, B: bot})
		vias, err := StackVias(geometry.Point{X: bot.X, Y: bot.Y + s.Width},
			s.Width, 2*s.Width, s.Layer-1, s.Layer)
		if err != nil {
			return err
		}
		sec.Vias = append(sec.Vias, vias...)
	}
	c.Second = sec
	return nil
}

// deriveLeads extends the outer turn's lead pair to the region edge and
// emits the terminal pin boxes, snapped to routing-grid tracks. The pair
// is copied so Translate never shifts the turn path twice.
func deriveLeads(c *Coil, s *spec.CoilSpec, g grid.RoutingGrid) error {
	pair := c.Turns[0].Path.Lead
	if len(pair) != 2 {
		return nil
	}
	lead := &Lead{Pair: append([]geometry.Point(nil), pair...)}
	pinLen := s.Width
	switch s.Orientation {
	case spec.R0:
		for _, p := range pair {
			end := geometry.Point{X: p.X, Y: 0}
			lead.Ext = append(lead.Ext, geometry.Segment{A: p, B: end})
			px := snapToTrack(g, s.Layer, p.X)
			lead.Pins = append(lead.Pins, geometry.BBox{
				XL: px - s.Width/2, YL: 0, XH: px + s.Width/2, YH: pinLen,
			})
		}
	case spec.R270:
		for _, p := range pair {
			end := geometry.Point{X: 0, Y: p.Y}
			lead.Ext = append(lead.Ext, geometry.Segment{A: p, B: end})
			py := snapToTrack(g, s.Layer, p.Y)
			lead.Pins = append(lead.Pins, geometry.BBox{
				XL: 0, YL: py - s.Width/2, XH: pinLen, YH: py + s.Width/2,
			})
		}
	default:
		return fmt.Errorf("%w: no lead escape for orient=%v", ErrUnsupported, s.Orientation)
	}
	c.Lead = lead
	return nil
}

// deriveCenterTap emits the tap wire and pin for single-turn coils.
func deriveCenterTap(c *Coil, s *spec.CoilSpec, g grid.RoutingGrid) {
	if s.Turns != 1 || len(c.Turns) == 0 {
		return
	}
	coord := c.Turns[len(c.Turns)-1].Path.CenterTap
	if coord == nil {
		return
	}
	w2 := s.Width / 2
	tapLen := 2 * s.Width
	tapExt := w2
	tap := &CenterTap{Coord: *coord}
	if s.Orientation == spec.R0 {
		px := snapToTrack(g, s.Layer, coord.X)
		upper := coord.Y + tapLen + tapExt
		tap.Wire = geometry.BBox{XL: coord.X - w2, YL: coord.Y, XH: coord.X + w2, YH: upper}
		tap.Pin = geometry.BBox{XL: px - w2, YL: upper - s.Width, XH: px + w2, YH: upper}
	} else {
		py := snapToTrack(g, s.Layer, coord.Y)
		upper := coord.X + tapLen + tapExt
		tap.Wire = geometry.BBox{XL: coord.X, YL: coord.Y - w2, XH: upper, YH: coord.Y + w2}
		tap.Pin = geometry.BBox{XL: upper - s.Width, YL: py - w2, XH: upper, YH: py + w2}
	}
	c.Tap = tap
}
