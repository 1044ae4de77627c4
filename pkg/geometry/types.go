// Package geometry provides the integer layout-grid value types shared by
// every generator in the module.
package geometry

import (
	"math"
)

// Point represents a 2D point in layout grid units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint creates a new Point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Segment is one drawn edge between two consecutive points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Translate returns the segment shifted by (dx, dy).
func (s Segment) Translate(dx, dy int) Segment {
	return Segment{A: s.A.Add(Point{dx, dy}), B: s.B.Add(Point{dx, dy})}
}

// Midpoint returns the integer midpoint of the segment.
func (s Segment) Midpoint() Point {
	return Point{X: FloorDiv(s.A.X+s.B.X, 2), Y: FloorDiv(s.A.Y+s.B.Y, 2)}
}

// BBox represents an axis-aligned rectangle by its lower-left and
// upper-right corners, in layout grid units.
type BBox struct {
	XL int `json:"xl"`
	YL int `json:"yl"`
	XH int `json:"xh"`
	YH int `json:"yh"`
}

// NewBBox creates a new BBox.
func NewBBox(xl, yl, xh, yh int) BBox {
	return BBox{XL: xl, YL: yl, XH: xh, YH: yh}
}

// W returns the width of the box.
func (b BBox) W() int {
	return b.XH - b.XL
}

// H returns the height of the box.
func (b BBox) H() int {
	return b.YH - b.YL
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{X: FloorDiv(b.XL+b.XH, 2), Y: FloorDiv(b.YL+b.YH, 2)}
}

// Translate returns the box shifted by (dx, dy).
func (b BBox) Translate(dx, dy int) BBox {
	return BBox{XL: b.XL + dx, YL: b.YL + dy, XH: b.XH + dx, YH: b.YH + dy}
}

// Contains returns true if the point lies inside or on the box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.XL && p.X <= b.XH && p.Y >= b.YL && p.Y <= b.YH
}

// Intersects returns true if this box overlaps another.
func (b BBox) Intersects(other BBox) bool {
	return b.XL < other.XH && b.XH > other.XL &&
		b.YL < other.YH && b.YH > other.YL
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		XL: min(b.XL, other.XL),
		YL: min(b.YL, other.YL),
		XH: max(b.XH, other.XH),
		YH: max(b.YH, other.YH),
	}
}

// Polygon is an ordered vertex sequence, anti-clockwise, starting at the
// bottom-most-right vertex. It is implicitly closed unless a generator
// breaks it into explicit segments.
type Polygon []Point

// Translate returns the polygon shifted by (dx, dy).
func (pg Polygon) Translate(dx, dy int) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = p.Add(Point{dx, dy})
	}
	return out
}

// BoundingBox computes the axis-aligned bounding box of the polygon.
func (pg Polygon) BoundingBox() BBox {
	if len(pg) == 0 {
		return BBox{}
	}
	b := BBox{XL: pg[0].X, YL: pg[0].Y, XH: pg[0].X, YH: pg[0].Y}
	for _, p := range pg[1:] {
		b.XL = min(b.XL, p.X)
		b.XH = max(b.XH, p.X)
		b.YL = min(b.YL, p.Y)
		b.YH = max(b.YH, p.Y)
	}
	return b
}

// RoundAway rounds to the next integer away from zero. Positive values
// round up, negative values down, so a coordinate never lands short of
// its grid line.
func RoundAway(v float64) int {
	if v > 0 {
		return int(math.Ceil(v))
	}
	return int(math.Floor(v))
}

// FloorDiv divides rounding toward negative infinity. Splitting a gap of
// width w into FloorDiv(-w,2) and FloorDiv(w,2) halves keeps the pair
// symmetric about the center for odd w.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CeilDiv divides rounding toward positive infinity.
func CeilDiv(a, b int) int {
	return -FloorDiv(-a, b)
}
