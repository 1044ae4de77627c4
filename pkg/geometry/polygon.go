package geometry

// Cross returns twice the signed area of the triangle (o, a, b).
// Positive when the turn o->a->b is counter-clockwise.
func Cross(o, a, b Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// SignedArea2 returns twice the signed area of the polygon, positive for
// counter-clockwise winding.
func (pg Polygon) SignedArea2() int {
	area := 0
	for i := range pg {
		a, b := pg[i], pg[(i+1)%len(pg)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area
}

// IsCCW reports whether the polygon winds counter-clockwise.
func (pg Polygon) IsCCW() bool {
	return pg.SignedArea2() > 0
}

// IsConvex reports whether the polygon is convex. Collinear runs are
// tolerated; self-intersecting input is not detected.
func (pg Polygon) IsConvex() bool {
	if len(pg) < 3 {
		return false
	}
	sign := 0
	n := len(pg)
	for i := 0; i < n; i++ {
		c := Cross(pg[i], pg[(i+1)%n], pg[(i+2)%n])
		if c == 0 {
			continue
		}
		s := 1
		if c < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// Reversed returns a copy of the polygon with the opposite winding.
func (pg Polygon) Reversed() Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[len(pg)-1-i] = p
	}
	return out
}

// Contains tests whether the point lies inside the polygon by ray
// casting. Points exactly on an edge may land on either side.
func (pg Polygon) Contains(p Point) bool {
	if len(pg) < 3 {
		return false
	}
	inside := false
	n := len(pg)
	for i := 0; i < n; i++ {
		a, b := pg[i], pg[(i+1)%n]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		// compare without dividing; flip the test when the edge runs down
		lhs := (p.X - a.X) * (b.Y - a.Y)
		rhs := (b.X - a.X) * (p.Y - a.Y)
		if b.Y > a.Y {
			if lhs < rhs {
				inside = !inside
			}
		} else if lhs > rhs {
			inside = !inside
		}
	}
	return inside
}
