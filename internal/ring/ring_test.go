package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coilgen/internal/coil"
	"coilgen/internal/spec"
)

func ringSpec() *spec.CoilSpec {
	return &spec.CoilSpec{
		Shape:       spec.ShapeOctagon,
		Turns:       1,
		Layer:       4,
		Width:       2000,
		Spacing:     1000,
		RadiusX:     50000,
		RadiusY:     50000,
		TermSpacing: 4000,
		Ring: &spec.RingSpec{
			Width:     1000,
			Spacing:   500,
			Clearance: 1000,
			Gap:       3000,
			Turns:     2,
			ConnCount: 2,
		},
	}
}

func TestGenerateConcentric(t *testing.T) {
	s := ringSpec()
	r, err := Generate(s, 102000, 102000, s.TermSpacing)
	require.NoError(t, err)
	require.NotNil(t, r)

	require.Len(t, r.Turns, 2)
	assert.Equal(t, 3000, r.Opening)

	// ring pitch is width+spacing
	assert.Equal(t, s.Ring.Width+s.Ring.Spacing, r.Turns[1].HalfLen-r.Turns[0].HalfLen)

	// single-layer range: one path per ring, open on the coil layer
	for _, turn := range r.Turns {
		require.Len(t, turn.Paths, 1)
		assert.Equal(t, s.Layer, turn.Paths[0].Layer)
		assert.Equal(t, coil.ModeBottomOpen, turn.Paths[0].Path.Mode)
	}

	// rings share one center: the opening stubs end symmetrically
	for _, turn := range r.Turns {
		segs := turn.Paths[0].Path.Segments
		require.NotEmpty(t, segs)
		var lo, hi int
		lo, hi = segs[0].A.X, segs[0].A.X
		for _, seg := range segs {
			for _, p := range []int{seg.A.X, seg.B.X} {
				if p < lo {
					lo = p
				}
				if p > hi {
					hi = p
				}
			}
		}
		assert.InDelta(t, 2*r.Center.X, lo+hi, 2, "turn %d", turn.Index)
	}

	// no stitched layers below, so no vias
	assert.Empty(t, r.Vias)

	// supply pin on the outermost edge, opposite the bottom opening
	assert.Equal(t, s.Layer, r.PinLayer)
	assert.Greater(t, r.Pin.YL, r.Center.Y)

	// ring encloses the coil with clearance on each side
	assert.GreaterOrEqual(t, r.BBox.W(), 102000+2*(s.Ring.Clearance+s.Ring.Width))
}

func TestGenerateDefaultGap(t *testing.T) {
	s := ringSpec()
	s.Ring.Gap = 0
	r, err := Generate(s, 102000, 102000, 4000)
	require.NoError(t, err)
	assert.Equal(t, 3*4000, r.Opening)
}

func TestGenerateStitchedLayers(t *testing.T) {
	s := ringSpec()
	s.Ring.LayerLow = 2 // stitch layers 2..4
	r, err := Generate(s, 102000, 102000, s.TermSpacing)
	require.NoError(t, err)

	// three layers drawn per ring turn; only the coil layer is open
	for _, turn := range r.Turns {
		require.Len(t, turn.Paths, 3)
		for _, lp := range turn.Paths {
			if lp.Layer == s.Layer {
				assert.Equal(t, coil.ModeBottomOpen, lp.Path.Mode)
			} else {
				assert.Equal(t, coil.ModeClosed, lp.Path.Mode)
				assert.True(t, lp.Path.Closed())
			}
		}
	}

	// coil layer 4 is even, so both adjacent pairs are stitched:
	// 2 pairs x 3 sides (opening side skipped) x 2 taps x 2 rings
	assert.Len(t, r.Vias, 24)
	for _, v := range r.Vias {
		assert.Equal(t, v.LayerLow+1, v.LayerHigh)
	}
}

func TestGenerateBothEndsOpen(t *testing.T) {
	s := ringSpec()
	s.Turns = 2
	s.TCoil = true
	s.Ring.LayerLow = 2
	r, err := Generate(s, 102000, 102000, s.TermSpacing)
	require.NoError(t, err)

	// the secondary pair escapes opposite the lead, so the coil-layer
	// ring opens top and bottom
	for _, turn := range r.Turns {
		for _, lp := range turn.Paths {
			if lp.Layer == s.Layer {
				assert.Equal(t, coil.ModeTopBottomOpen, lp.Path.Mode)
			} else {
				assert.Equal(t, coil.ModeClosed, lp.Path.Mode)
			}
		}
	}

	// both open sides skipped: 2 pairs x 2 sides x 2 taps x 2 rings
	assert.Len(t, r.Vias, 16)
	hls := map[int]bool{r.Turns[0].HalfLen: true, r.Turns[1].HalfLen: true}
	for _, v := range r.Vias {
		dx := v.Center.X - r.Center.X
		if dx < 0 {
			dx = -dx
		}
		assert.True(t, hls[dx], "via %v off the side edges", v.Center)
	}

	// the pin moves off the open axis onto the right edge
	assert.Greater(t, r.Pin.XL, r.Center.X)
}

func TestGenerateOddCoilLayerSkipsTopStitch(t *testing.T) {
	s := ringSpec()
	s.Layer = 5
	s.Ring.LayerLow = 3
	r, err := Generate(s, 102000, 102000, s.TermSpacing)
	require.NoError(t, err)

	// the pair into an odd coil layer is left unstitched
	for _, v := range r.Vias {
		assert.NotEqual(t, s.Layer, v.LayerHigh)
	}
	// only the 3->4 pair remains: 3 sides x 2 taps x 2 rings
	assert.Len(t, r.Vias, 12)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("nil ring spec", func(t *testing.T) {
		s := ringSpec()
		s.Ring = nil
		r, err := Generate(s, 102000, 102000, 4000)
		assert.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("conn count", func(t *testing.T) {
		s := ringSpec()
		s.Ring.ConnCount = 1
		_, err := Generate(s, 102000, 102000, 4000)
		assert.ErrorIs(t, err, ErrConnCount)
	})

	t.Run("layer range", func(t *testing.T) {
		s := ringSpec()
		s.Ring.LayerLow = 9
		_, err := Generate(s, 102000, 102000, 4000)
		assert.ErrorIs(t, err, ErrLayerRange)
	})
}
