package coil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coilgen/internal/grid"
	"coilgen/internal/spec"
	"coilgen/pkg/geometry"
)

func octagonSpec() *spec.CoilSpec {
	return &spec.CoilSpec{
		Shape:       spec.ShapeOctagon,
		Turns:       1,
		Layer:       4,
		Width:       2000,
		Spacing:     1000,
		RadiusX:     50000,
		RadiusY:     50000,
		TermSpacing: 4000,
	}
}

func TestSynthesizeSingleTurn(t *testing.T) {
	s := octagonSpec()
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	assert.Equal(t, 4000, c.Opening)
	assert.Equal(t, 102000, c.BBox.W())
	assert.Equal(t, 102000, c.BBox.H())

	require.Len(t, c.Turns, 1)
	assert.Equal(t, ModeLeadOnly, c.Turns[0].Path.Mode)
	assert.Equal(t, RoleSingle, c.Turns[0].Role)

	// no bridges and no vias on a single turn
	assert.Empty(t, c.Bridges)
	assert.Empty(t, c.Vias)

	// the lead gap equals the terminal spacing and is centered
	require.NotNil(t, c.Lead)
	require.Len(t, c.Lead.Pair, 2)
	assert.Equal(t, s.TermSpacing, c.Lead.Pair[1].X-c.Lead.Pair[0].X)
	assert.Equal(t, 2*(s.RadiusX+s.Width/2), c.Lead.Pair[0].X+c.Lead.Pair[1].X)

	// leads run to the bottom edge and carry pin boxes there
	require.Len(t, c.Lead.Pins, 2)
	for i, pin := range c.Lead.Pins {
		assert.Equal(t, 0, pin.YL, "pin %d", i)
		assert.Equal(t, s.Width, pin.W(), "pin %d", i)
		assert.Equal(t, c.Lead.Pair[i].X, (pin.XL+pin.XH)/2, "pin %d", i)
	}

	// single-turn coils expose a center tap at the top
	require.NotNil(t, c.Tap)
	assert.Equal(t, s.RadiusX+s.Width/2, c.Tap.Coord.X)
	assert.Greater(t, c.Tap.Pin.YH, c.Tap.Coord.Y)
}

func TestSynthesizeQuantizedOpening(t *testing.T) {
	s := octagonSpec()
	g := grid.Uniform{Pitch: 200, WireWidth: 100}
	c, err := Synthesize(s, g)
	require.NoError(t, err)

	assert.Equal(t, grid.QuantizeOpening(g, s.Layer, s.TermSpacing, s.Width), c.Opening)
	assert.Equal(t, c.Opening, c.Lead.Pair[1].X-c.Lead.Pair[0].X)
}

func TestSynthesizeTwoTurns(t *testing.T) {
	s := octagonSpec()
	s.Turns = 2
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	require.Len(t, c.Turns, 2)
	assert.Equal(t, ModeLeadBridge, c.Turns[0].Path.Mode)
	assert.Equal(t, ModeInnerTop, c.Turns[1].Path.Mode)

	// one crossing: an upper bridge on the coil layer and a lower one on
	// the layer below
	require.Len(t, c.Bridges, 2)
	assert.Equal(t, s.Layer, c.Bridges[0].Layer)
	assert.Equal(t, s.Layer-1, c.Bridges[1].Layer)

	// the break stubs drop through one via per turn
	require.Len(t, c.Vias, 2)
	for _, v := range c.Vias {
		assert.Equal(t, s.Layer-1, v.LayerLow)
		assert.Equal(t, s.Layer, v.LayerHigh)
		assert.Equal(t, s.Width, v.Height)
	}

	assert.Nil(t, c.Tap)
	require.NotNil(t, c.Lead)
}

func TestSynthesizeThreeTurns(t *testing.T) {
	s := octagonSpec()
	s.Turns = 3
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	require.Len(t, c.Turns, 3)
	assert.Equal(t, ModeLeadBridge, c.Turns[0].Path.Mode)
	assert.Equal(t, ModeMiddleOdd, c.Turns[1].Path.Mode)
	assert.Equal(t, ModeInnerBottom, c.Turns[2].Path.Mode)

	// two crossings, two bridges each
	require.Len(t, c.Bridges, 4)
	onCoil, below := 0, 0
	for _, b := range c.Bridges {
		switch b.Layer {
		case s.Layer:
			onCoil++
		case s.Layer - 1:
			below++
		}
	}
	assert.Equal(t, 2, onCoil)
	assert.Equal(t, 2, below)

	// middle turn breaks twice, inner and outer once each
	assert.Len(t, c.Vias, 4)
}

func TestSynthesizeInfeasible(t *testing.T) {
	t.Run("inner bridge clearance", func(t *testing.T) {
		s := &spec.CoilSpec{
			Shape:       spec.ShapeSquare,
			Turns:       3,
			Layer:       4,
			Width:       1000,
			Spacing:     500,
			RadiusX:     5000,
			RadiusY:     5000,
			TermSpacing: 2000,
		}
		_, err := Synthesize(s, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInfeasible)

		var ife *InfeasibleError
		require.ErrorAs(t, err, &ife)
		assert.Equal(t, "inner turn bridge clearance", ife.Check)
		assert.Contains(t, err.Error(), "increase radius_x")
	})

	t.Run("outer terminal clearance", func(t *testing.T) {
		s := octagonSpec()
		s.TermSpacing = 100000
		_, err := Synthesize(s, nil)
		var ife *InfeasibleError
		require.ErrorAs(t, err, &ife)
		assert.Equal(t, "outer turn terminal clearance", ife.Check)
	})

	t.Run("vertical extent", func(t *testing.T) {
		s := octagonSpec()
		s.RadiusY = 25000
		_, err := Synthesize(s, nil)
		var ife *InfeasibleError
		require.ErrorAs(t, err, &ife)
		assert.Equal(t, "inner turn vertical extent", ife.Check)
	})

	t.Run("min width rule", func(t *testing.T) {
		s := octagonSpec()
		s.MinWidth = 3000
		_, err := Synthesize(s, nil)
		assert.ErrorIs(t, err, ErrInfeasible)
	})
}

func TestSynthesizeDiffTerms(t *testing.T) {
	s := octagonSpec()
	s.DiffTerms = true
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	// terminals at the outer bottom vertices instead of a centered gap
	v := c.Turns[0].Vertices
	require.Len(t, c.Lead.Pair, 2)
	assert.Equal(t, v[0].X-v[7].X, c.Lead.Pair[1].X-c.Lead.Pair[0].X)
}

func TestSynthesizeLeftOriented(t *testing.T) {
	s := octagonSpec()
	s.Orientation = spec.R270
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	assert.Equal(t, ModeLeftOpen, c.Turns[0].Path.Mode)

	// leads escape to the left edge
	require.NotNil(t, c.Lead)
	for _, pin := range c.Lead.Pins {
		assert.Equal(t, 0, pin.XL)
	}
	require.NotNil(t, c.Tap)
	assert.Greater(t, c.Tap.Pin.XH, c.Tap.Coord.X)
}

func TestSynthesizeTCoil(t *testing.T) {
	s := octagonSpec()
	s.Turns = 2
	s.TCoil = true
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	require.Len(t, c.Turns, 2)
	for _, turn := range c.Turns {
		assert.Equal(t, ModeTopBottomOpen, turn.Path.Mode)
	}

	// diagonal crossing at the top: the under-passing bridge drops a
	// layer through a via stack at each end
	require.Len(t, c.Bridges, 2)
	viaCount := 0
	for _, b := range c.Bridges {
		viaCount += len(b.Vias)
	}
	assert.Equal(t, 2, viaCount)

	// secondary terminal pair at the inner turn's bottom gap
	require.NotNil(t, c.Second)
	assert.Len(t, c.Second.Pair, 2)
	assert.Len(t, c.Second.Ext, 2)
	assert.Len(t, c.Second.Vias, 2)
	for _, v := range c.Second.Vias {
		assert.Equal(t, s.Layer-1, v.LayerLow)
		assert.Equal(t, s.Layer, v.LayerHigh)
	}
}

func TestSynthesizeStacked(t *testing.T) {
	s := octagonSpec()
	s.Layer = 5
	s.BotLayer = 3
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	// one turn per layer, top down
	require.Len(t, c.Turns, 3)
	for i, turn := range c.Turns {
		assert.Equal(t, 5-i, turn.Layer, "turn %d", i)
		assert.Equal(t, ModeTopBottomOpen, turn.Path.Mode)
	}

	// top: one direct close at the innermost plus a crossing pair;
	// bottom: one crossing pair
	assert.Len(t, c.Bridges, 5)

	// every inter-layer hop is via-stitched
	viaCount := 0
	for _, b := range c.Bridges {
		viaCount += len(b.Vias)
	}
	assert.Greater(t, viaCount, 0)

	require.NotNil(t, c.Lead)
	require.Len(t, c.Lead.Pair, 2)
}

func TestCoilTranslate(t *testing.T) {
	s := octagonSpec()
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	lead0 := c.Lead.Pair[0]
	tap := c.Tap.Coord
	bbox := c.BBox

	c.Translate(100, 200)

	d := geometry.NewPoint(100, 200)
	assert.Equal(t, lead0.Add(d), c.Lead.Pair[0])
	assert.Equal(t, tap.Add(d), c.Tap.Coord)
	assert.Equal(t, bbox.Translate(100, 200), c.BBox)

	// the lead pair must move in lockstep with the turn path it came
	// from, not pick up a second shift through a shared slice
	assert.Equal(t, c.Turns[0].Path.Lead, c.Lead.Pair)
}

func TestCoilTranslateStackedLead(t *testing.T) {
	s := octagonSpec()
	s.Layer = 5
	s.BotLayer = 3
	c, err := Synthesize(s, nil)
	require.NoError(t, err)

	outer := c.Turns[0].Path
	require.Len(t, outer.Lead, 2)
	require.Equal(t, outer.Lead, outer.Bottom)

	lead0, bottom0 := outer.Lead[0], outer.Bottom[0]
	c.Translate(300, 500)

	d := geometry.NewPoint(300, 500)
	assert.Equal(t, lead0.Add(d), outer.Lead[0])
	assert.Equal(t, bottom0.Add(d), outer.Bottom[0])
	assert.Equal(t, outer.Lead, outer.Bottom)
}

func TestSynthesizeSnappedPins(t *testing.T) {
	s := octagonSpec()
	g := grid.Uniform{Pitch: 300, WireWidth: 100}
	c, err := Synthesize(s, g)
	require.NoError(t, err)

	// pair endpoints sit off-track; the pin boxes snap to track centers
	require.Len(t, c.Lead.Pins, 2)
	for i, pin := range c.Lead.Pins {
		cx := (pin.XL + pin.XH) / 2
		assert.Zero(t, cx%g.Pitch, "pin %d", i)
		assert.Equal(t, g.AlignToTrack(s.Layer, c.Lead.Pair[i].X), cx, "pin %d", i)
	}
	assert.Equal(t, 48000, (c.Lead.Pins[0].XL+c.Lead.Pins[0].XH)/2)
	assert.Equal(t, 54000, (c.Lead.Pins[1].XL+c.Lead.Pins[1].XH)/2)

	require.NotNil(t, c.Tap)
	tx := (c.Tap.Pin.XL + c.Tap.Pin.XH) / 2
	assert.Equal(t, g.AlignToTrack(s.Layer, c.Tap.Coord.X), tx)
}

func TestSynthesizeRejectsInvalidSpec(t *testing.T) {
	s := octagonSpec()
	s.Turns = 0
	_, err := Synthesize(s, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInfeasible))
}
