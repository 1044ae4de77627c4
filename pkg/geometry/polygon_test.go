package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ccwSquare() Polygon {
	return Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
}

func TestPolygonWinding(t *testing.T) {
	sq := ccwSquare()
	assert.True(t, sq.IsCCW())
	assert.Equal(t, 200, sq.SignedArea2())

	rev := sq.Reversed()
	assert.False(t, rev.IsCCW())
	assert.Equal(t, -200, rev.SignedArea2())
	assert.Equal(t, sq, rev.Reversed())
}

func TestPolygonIsConvex(t *testing.T) {
	tests := []struct {
		name string
		pg   Polygon
		want bool
	}{
		{"square", ccwSquare(), true},
		{"clockwise square", ccwSquare().Reversed(), true},
		{"triangle", Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}}, true},
		{"collinear run", Polygon{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, true},
		{"dent", Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 4}, {X: 10, Y: 10}, {X: 0, Y: 10}}, false},
		{"degenerate", Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pg.IsConvex())
		})
	}
}

func TestPolygonContains(t *testing.T) {
	oct := Polygon{
		{X: 3, Y: 0}, {X: 7, Y: 0}, {X: 10, Y: 3}, {X: 10, Y: 7},
		{X: 7, Y: 10}, {X: 3, Y: 10}, {X: 0, Y: 7}, {X: 0, Y: 3},
	}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{X: 5, Y: 5}, true},
		{"near edge", Point{X: 1, Y: 5}, true},
		{"outside left", Point{X: -1, Y: 5}, false},
		{"outside corner", Point{X: 1, Y: 1}, false},
		{"above", Point{X: 5, Y: 11}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, oct.Contains(tt.p))
		})
	}
}
