package coil

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"coilgen/pkg/geometry"
)

// ComputeVertices returns one vertex ring per turn, anti-clockwise,
// starting below the positive x-axis. The per-turn radius shrinks by
// width+spacing and is divided by cos(pi/n) so the edge midpoints, not
// the vertices, sit at the nominal radius. For octagons with
// radiusY != radiusX the vertical half of the vertex set is shifted by
// 2*(radiusY-radiusX), which stretches the shape without breaking the
// 45-degree edge constraint. The whole shape is offset so it sits in
// the first quadrant with its conductor fully inside.
func ComputeVertices(sides, turns, radiusX, radiusY, width, spacing int) ([]geometry.Polygon, error) {
	if sides != 4 && sides != 8 {
		return nil, fmt.Errorf("%w: side count must be 4 or 8, got %d", ErrUnsupported, sides)
	}
	if turns < 1 {
		return nil, fmt.Errorf("%w: turn count must be at least 1, got %d", ErrUnsupported, turns)
	}

	phaseStep := 2 * math.Pi / float64(sides)
	phaseIni := -math.Pi/2 + phaseStep/2
	offX := radiusX + width/2

	vertices := make([]geometry.Polygon, turns)
	for tidx := 0; tidx < turns; tidx++ {
		// rounded before the trig products so every vertex derives from
		// the same integer radius
		radius := float64(geometry.RoundAway(float64(radiusX-tidx*(width+spacing)) / math.Cos(phaseStep/2)))
		ring := make(geometry.Polygon, 0, sides)
		for sidx := 0; sidx < sides; sidx++ {
			offY := 0
			if sides/4 <= sidx && sidx < 3*sides/4 {
				offY = 2 * (radiusY - radiusX)
			}
			phase := phaseIni + phaseStep*float64(sidx)
			v := r2.Scale(radius, r2.Vec{X: math.Cos(phase), Y: math.Sin(phase)})
			ring = append(ring, geometry.Point{
				X: offX + geometry.RoundAway(v.X),
				Y: offX + geometry.RoundAway(v.Y) + offY,
			})
		}
		vertices[tidx] = ring
	}
	return vertices, nil
}
