package coil

import (
	"fmt"
	"math"

	"coilgen/pkg/geometry"
)

// PathConfig carries the parameters of one turn's path generation.
// The optional openings and via width are only meaningful for the modes
// that use them; SelectMode / SelectRingMode decide which.
type PathConfig struct {
	Vertices   geometry.Polygon // this turn's vertex ring
	Radius     int              // nominal outer radius (edge-midpoint semantics)
	Turn       int              // turn index within the winding
	Sides      int              // 4 or 8
	Width      int              // conductor width
	Spacing    int              // inter-turn spacing
	BottomOpen int              // bottom opening width (lead gap)
	TopOpen    int              // top opening width
	ViaWidth   int              // via landing width at bridge stubs
}

// TurnPath is the geometry of one turn after break insertion.
type TurnPath struct {
	Mode      BreakMode
	Segments  []geometry.Segment // drawn edges on the turn's own layer
	Tail      []geometry.Segment // bridge-layer stubs adjacent to breaks
	Lead      []geometry.Point   // external lead pair (outer turns)
	Top       []geometry.Point   // top bridge coordinate pair
	Bottom    []geometry.Point   // bottom bridge coordinate pair
	Vias      []geometry.Point   // via landing centers at bridge stubs
	CenterTap *geometry.Point    // midline tap (single/terminal turns)
}

// Translate shifts every path coordinate by (dx, dy).
func (tp *TurnPath) Translate(dx, dy int) {
	d := geometry.Point{X: dx, Y: dy}
	for i := range tp.Segments {
		tp.Segments[i] = tp.Segments[i].Translate(dx, dy)
	}
	for i := range tp.Tail {
		tp.Tail[i] = tp.Tail[i].Translate(dx, dy)
	}
	for i := range tp.Lead {
		tp.Lead[i] = tp.Lead[i].Add(d)
	}
	for i := range tp.Top {
		tp.Top[i] = tp.Top[i].Add(d)
	}
	for i := range tp.Bottom {
		tp.Bottom[i] = tp.Bottom[i].Add(d)
	}
	for i := range tp.Vias {
		tp.Vias[i] = tp.Vias[i].Add(d)
	}
	if tp.CenterTap != nil {
		tap := tp.CenterTap.Add(d)
		tp.CenterTap = &tap
	}
}

// Closed reports whether the emitted segments form a closed cycle.
func (tp *TurnPath) Closed() bool {
	n := len(tp.Segments)
	if n == 0 {
		return false
	}
	return tp.Segments[n-1].B == tp.Segments[0].A
}

// GeneratePath breaks one turn's vertex ring according to mode and
// returns the resulting path descriptors.
//
// The two bridge-pitch formulas are intentionally asymmetric: a break
// shared with the previous turn spans a different local radius than one
// shared with the next turn. Both are kept exactly as derived; unifying
// them would silently change coil connectivity.
func GeneratePath(cfg PathConfig, mode BreakMode) (*TurnPath, error) {
	n := cfg.Sides
	if n != 4 && n != 8 {
		return nil, fmt.Errorf("%w: side count must be 4 or 8, got %d", ErrUnsupported, n)
	}
	if len(cfg.Vertices) != n {
		return nil, fmt.Errorf("%w: vertex count %d does not match side count %d",
			ErrUnsupported, len(cfg.Vertices), n)
	}
	coord := cfg.Vertices
	fd := geometry.FloorDiv

	phaseStep := 2 * math.Pi / float64(n)
	phaseIni := -math.Pi/2 + phaseStep/2
	sinMid := math.Sin(phaseIni + phaseStep*float64(n/2))
	sinIni := math.Sin(-phaseIni)
	// integer radius first, matching the vertex generator
	turnRad := float64(geometry.RoundAway(float64(cfg.Radius-cfg.Turn*(cfg.Width+cfg.Spacing)) / math.Cos(phaseStep/2)))
	pitch := float64(cfg.Spacing + cfg.Width)
	offset := cfg.Radius + cfg.Width/2
	width := cfg.Width
	topY := coord[n/2].Y
	botY := coord[0].Y

	// Break widths for bridges. An even turn index pairs its top break
	// with the previous turn and its bottom break with the next turn;
	// odd indices swap the two. Hence one "this-and-previous" and one
	// "this-and-next" formula per edge.
	topBdg0 := geometry.RoundAway(turnRad*sinMid - (turnRad - pitch/sinIni*sinMid))
	topBdg1 := geometry.RoundAway((turnRad+pitch/sinIni)*sinMid - turnRad*sinMid)
	botBdg0 := geometry.RoundAway((turnRad+pitch/sinIni)*sinMid - turnRad*sinMid)
	botBdg1 := geometry.RoundAway(turnRad*sinMid - (turnRad-pitch/sinIni)*sinMid)

	viaExt := width + fd(cfg.ViaWidth-width, 2)

	topCoord0 := []geometry.Point{
		{X: fd(-topBdg0, 2) + offset, Y: topY},
		{X: fd(topBdg0, 2) + offset, Y: topY},
	}
	topR0 := geometry.Point{X: fd(topBdg0, 2) + viaExt + offset, Y: topY}

	topCoord1 := []geometry.Point{
		{X: fd(-topBdg1, 2) + offset, Y: topY},
		{X: fd(topBdg1, 2) + offset, Y: topY},
	}
	topL1 := geometry.Point{X: fd(-topBdg1, 2) - viaExt + offset, Y: topY}

	botCoord0 := []geometry.Point{
		{X: fd(-botBdg0, 2) + offset, Y: botY},
		{X: fd(botBdg0, 2) + offset, Y: botY},
	}
	botL0 := geometry.Point{X: fd(-botBdg0, 2) - viaExt + offset, Y: botY}

	botCoord1 := []geometry.Point{
		{X: fd(-botBdg1, 2) + offset, Y: botY},
		{X: fd(botBdg1, 2) + offset, Y: botY},
	}
	botR1 := geometry.Point{X: fd(botBdg1, 2) + viaExt + offset, Y: botY}

	// Plain openings: the lead gap at the bottom for the R0 family, and
	// the rotated variants against the left/right edges.
	botOpenCoord := []geometry.Point{
		{X: fd(-cfg.BottomOpen, 2) + offset, Y: botY},
		{X: fd(cfg.BottomOpen, 2) + offset, Y: botY},
	}
	topOpenCoord := []geometry.Point{
		{X: fd(-cfg.TopOpen, 2) + offset, Y: topY},
		{X: fd(cfg.TopOpen, 2) + offset, Y: topY},
	}
	leftOpenCoord := []geometry.Point{
		{X: coord[n*3/4].X, Y: fd(-cfg.BottomOpen, 2) + offset},
		{X: coord[n*3/4].X, Y: fd(cfg.BottomOpen, 2) + offset},
	}
	rightOpenCoord := []geometry.Point{
		{X: coord[n/4].X, Y: fd(-cfg.TopOpen, 2) + offset},
		{X: coord[n/4].X, Y: fd(cfg.TopOpen, 2) + offset},
	}

	tp := &TurnPath{Mode: mode}
	seg := func(a, b geometry.Point) {
		tp.Segments = append(tp.Segments, geometry.Segment{A: a, B: b})
	}
	edge := func(i int) {
		seg(coord[i], coord[(i+1)%n])
	}

	switch mode {
	case ModeClosed:
		for i := 0; i < n; i++ {
			edge(i)
		}

	case ModeLeadOnly:
		tp.Lead = botOpenCoord
		tap := geometry.Point{X: offset, Y: topY}
		tp.CenterTap = &tap
		for i := 0; i < n; i++ {
			if i == n-1 {
				seg(coord[n-1], botOpenCoord[0])
				seg(botOpenCoord[1], coord[0])
			} else {
				edge(i)
			}
		}

	case ModeLeadBridge:
		tp.Lead = botOpenCoord
		tp.Top = topCoord0
		for i := 0; i < n; i++ {
			switch i {
			case n/2 - 1:
				seg(coord[n/2-1], topR0)
				seg(topCoord0[0], coord[n/2])
				tp.Tail = append(tp.Tail, geometry.Segment{A: topR0, B: topCoord0[1]})
				tp.Vias = append(tp.Vias, topR0)
			case n - 1:
				seg(coord[n-1], botOpenCoord[0])
				seg(botOpenCoord[1], coord[0])
			default:
				edge(i)
			}
		}

	case ModeInnerTop:
		tp.Top = topCoord1
		for i := 0; i < n; i++ {
			switch i {
			case n/2 - 1:
				seg(coord[n/2-1], topCoord1[1])
				seg(topL1, coord[n/2])
				tp.Tail = append(tp.Tail, geometry.Segment{A: topCoord1[0], B: topL1})
				tp.Vias = append(tp.Vias, topL1)
			default:
				edge(i)
			}
		}

	case ModeInnerBottom:
		tp.Bottom = botCoord0
		for i := 0; i < n; i++ {
			if i == n-1 {
				seg(coord[n-1], botL0)
				seg(botCoord0[1], coord[0])
				tp.Tail = append(tp.Tail, geometry.Segment{A: botL0, B: botCoord0[0]})
				tp.Vias = append(tp.Vias, botL0)
			} else {
				edge(i)
			}
		}

	case ModeMiddleEven:
		tp.Top = topCoord0
		tp.Bottom = botCoord0
		for i := 0; i < n; i++ {
			switch i {
			case n/2 - 1:
				seg(coord[n/2-1], topR0)
				seg(topCoord0[0], coord[n/2])
				tp.Tail = append(tp.Tail, geometry.Segment{A: topR0, B: topCoord0[1]})
				tp.Vias = append(tp.Vias, topR0)
			case n - 1:
				seg(coord[n-1], botL0)
				seg(botCoord0[1], coord[0])
				tp.Tail = append(tp.Tail, geometry.Segment{A: botL0, B: botCoord0[0]})
				tp.Vias = append(tp.Vias, botL0)
			default:
				edge(i)
			}
		}

	case ModeMiddleOdd:
		tp.Top = topCoord1
		tp.Bottom = botCoord1
		for i := 0; i < n; i++ {
			switch i {
			case n/2 - 1:
				seg(coord[n/2-1], topCoord1[1])
				seg(topL1, coord[n/2])
				tp.Tail = append(tp.Tail, geometry.Segment{A: topCoord1[0], B: topL1})
				tp.Vias = append(tp.Vias, topL1)
			case n - 1:
				seg(coord[n-1], botCoord1[0])
				seg(botR1, coord[0])
				tp.Tail = append(tp.Tail, geometry.Segment{A: botCoord1[1], B: botR1})
				tp.Vias = append(tp.Vias, botR1)
			default:
				edge(i)
			}
		}

	case ModeNoLastSide:
		for i := 0; i < n-1; i++ {
			edge(i)
		}

	case ModeNoMidSide:
		for i := 0; i < n; i++ {
			if i != n/2-1 {
				edge(i)
			}
		}

	case ModeNoMidLastSide:
		for i := 0; i < n-1; i++ {
			if i != n/2-1 {
				edge(i)
			}
		}

	case ModeTopOpen:
		for i := 0; i < n; i++ {
			if i == n/2-1 {
				seg(coord[n/2-1], topOpenCoord[1])
				seg(topOpenCoord[0], coord[n/2])
			} else {
				edge(i)
			}
		}

	case ModeBottomOpen:
		for i := 0; i < n; i++ {
			if i == n-1 {
				seg(coord[n-1], botOpenCoord[0])
				seg(botOpenCoord[1], coord[0])
			} else {
				edge(i)
			}
		}

	case ModeTopBottomOpen:
		for i := 0; i < n; i++ {
			switch i {
			case n/2 - 1:
				seg(coord[n/2-1], topOpenCoord[1])
				seg(topOpenCoord[0], coord[n/2])
			case n - 1:
				seg(coord[n-1], botOpenCoord[0])
				seg(botOpenCoord[1], coord[0])
			default:
				edge(i)
			}
		}
		tp.Bottom = botOpenCoord
		tp.Top = topOpenCoord

	case ModeRightOpen:
		tp.Lead = rightOpenCoord
		tap := geometry.Point{X: coord[n*3/4].X, Y: offset}
		tp.CenterTap = &tap
		for i := 0; i < n; i++ {
			if i == n/4-1 {
				seg(coord[i], rightOpenCoord[0])
				seg(rightOpenCoord[1], coord[i+1])
			} else {
				edge(i)
			}
		}

	case ModeLeftOpen:
		tp.Lead = leftOpenCoord
		tap := geometry.Point{X: coord[n/4].X, Y: offset}
		tp.CenterTap = &tap
		for i := 0; i < n; i++ {
			if i == n*3/4-1 {
				seg(coord[i], leftOpenCoord[1])
				seg(leftOpenCoord[0], coord[i+1])
			} else {
				edge(i)
			}
		}

	default:
		return nil, fmt.Errorf("%w: break mode %v", ErrUnsupported, mode)
	}

	return tp, nil
}
