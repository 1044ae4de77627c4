package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundAway(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"zero", 0, 0},
		{"positive integral", 3.0, 3},
		{"positive fraction", 3.2, 4},
		{"positive near one", 0.1, 1},
		{"negative fraction", -3.2, -4},
		{"negative integral", -3.0, -3},
		{"negative near zero", -0.1, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RoundAway(tc.in))
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{6, 2, 3},
		{-6, 2, -3},
		{0, 5, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FloorDiv(tc.a, tc.b), "FloorDiv(%d, %d)", tc.a, tc.b)
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 4, CeilDiv(7, 2))
	assert.Equal(t, 3, CeilDiv(6, 2))
	assert.Equal(t, 0, CeilDiv(0, 5))
}

func TestBBox(t *testing.T) {
	b := NewBBox(0, 0, 10, 20)
	assert.Equal(t, 10, b.W())
	assert.Equal(t, 20, b.H())
	assert.Equal(t, NewPoint(5, 10), b.Center())

	moved := b.Translate(3, 4)
	assert.Equal(t, NewBBox(3, 4, 13, 24), moved)

	assert.True(t, b.Contains(NewPoint(5, 5)))
	assert.False(t, b.Contains(NewPoint(11, 5)))

	assert.True(t, b.Intersects(NewBBox(5, 5, 15, 25)))
	assert.False(t, b.Intersects(NewBBox(11, 0, 20, 20)))

	assert.Equal(t, NewBBox(0, 0, 15, 25), b.Union(NewBBox(5, 5, 15, 25)))
}

func TestPolygon(t *testing.T) {
	pg := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.Equal(t, NewBBox(0, 0, 10, 10), pg.BoundingBox())

	moved := pg.Translate(1, 2)
	assert.Equal(t, NewPoint(1, 2), moved[0])
	assert.Equal(t, NewBBox(1, 2, 11, 12), moved.BoundingBox())
}

func TestSegment(t *testing.T) {
	s := Segment{A: NewPoint(0, 0), B: NewPoint(10, 0)}
	assert.Equal(t, NewPoint(5, 0), s.Midpoint())
	assert.Equal(t, Segment{A: NewPoint(2, 3), B: NewPoint(12, 3)}, s.Translate(2, 3))
}
