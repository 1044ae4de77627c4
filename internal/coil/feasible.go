package coil

import (
	"coilgen/internal/spec"
	"coilgen/pkg/geometry"
)

// BridgeSpacing returns the clearance a bridge break needs between the
// innermost turn's endpoints.
func BridgeSpacing(width, spacing int) int {
	return spacing + 3*width
}

// checkFeasibility verifies the explicit feasibility inequalities
// against the computed vertex rings. The first failure aborts synthesis;
// no partial geometry is considered valid.
func checkFeasibility(vertices []geometry.Polygon, s *spec.CoilSpec, sides int) error {
	// Minimum-rule checks carried from the process inputs, when given.
	if s.MinWidth > 0 && s.Width < s.MinWidth {
		return &InfeasibleError{
			Check: "conductor width",
			Params: []Param{
				{Name: "width", Value: s.Width},
				{Name: "min_width", Value: s.MinWidth},
			},
			Hint: "increase width",
		}
	}
	if s.MinSpacing > 0 && s.Spacing < s.MinSpacing {
		return &InfeasibleError{
			Check: "turn spacing",
			Params: []Param{
				{Name: "spacing", Value: s.Spacing},
				{Name: "min_spacing", Value: s.MinSpacing},
			},
			Hint: "increase spacing",
		}
	}

	var vBot, vTop int
	if sides == 4 {
		vBot, vTop = 0, 1
	} else {
		vBot, vTop = 1, 2
	}

	outer := vertices[0]
	inner := vertices[len(vertices)-1]

	// Outer turn must fit the terminal opening plus lead clearance.
	if !s.DiffTerms {
		if outer[0].X-outer[sides-1].X < s.TermSpacing+4*s.Width {
			return &InfeasibleError{
				Check: "outer turn terminal clearance",
				Params: []Param{
					{Name: "radius_x", Value: s.RadiusX},
					{Name: "term_spacing", Value: s.TermSpacing},
				},
				Hint: "increase radius_x or decrease term_spacing",
			}
		}
	}

	// Inner turn must fit the bridge break plus via landings.
	if len(vertices) > 1 {
		if inner[0].X-inner[sides-1].X < BridgeSpacing(s.Width, s.Spacing)+2*s.Width {
			return &InfeasibleError{
				Check: "inner turn bridge clearance",
				Params: []Param{
					{Name: "radius_x", Value: s.RadiusX},
					{Name: "turns", Value: s.Turns},
				},
				Hint: "increase radius_x or decrease turns",
			}
		}
	}

	// Inner turn must keep at least one conductor width of vertical extent.
	if inner[vTop].Y-inner[vBot].Y < s.Width {
		return &InfeasibleError{
			Check: "inner turn vertical extent",
			Params: []Param{
				{Name: "radius_y", Value: s.RadiusY},
				{Name: "turns", Value: s.Turns},
			},
			Hint: "increase radius_y or decrease turns",
		}
	}

	return nil
}
