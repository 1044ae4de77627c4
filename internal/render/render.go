// Package render draws synthesized coil layouts. The Renderer interface
// decouples the walking of the geometry from the backend; Record is the
// inspection backend and Raster produces images.
package render

import (
	"log"

	"coilgen/internal/coil"
	"coilgen/internal/layout"
	"coilgen/pkg/geometry"
)

// EndStyle selects how a stroked wire terminates.
type EndStyle int

const (
	// EndTruncate stops the stroke exactly at the endpoint.
	EndTruncate EndStyle = iota
	// EndExtend overshoots by half the width so joined corners close.
	EndExtend
)

// Renderer receives layout primitives. Implementations must tolerate
// layers they have no styling for.
type Renderer interface {
	DrawPolyline(layer int, pts []geometry.Point, width int, style EndStyle)
	DrawRect(layer int, b geometry.BBox)
	DrawVia(v coil.Via)
}

// Record is a Renderer that keeps everything it is given, for tests and
// for geometry dumps.
type Record struct {
	Polylines []RecordedPolyline
	Rects     []RecordedRect
	Vias      []coil.Via
}

type RecordedPolyline struct {
	Layer int
	Pts   []geometry.Point
	Width int
	Style EndStyle
}

type RecordedRect struct {
	Layer int
	BBox  geometry.BBox
}

func (r *Record) DrawPolyline(layer int, pts []geometry.Point, width int, style EndStyle) {
	r.Polylines = append(r.Polylines, RecordedPolyline{Layer: layer, Pts: pts, Width: width, Style: style})
}

func (r *Record) DrawRect(layer int, b geometry.BBox) {
	r.Rects = append(r.Rects, RecordedRect{Layer: layer, BBox: b})
}

func (r *Record) DrawVia(v coil.Via) {
	r.Vias = append(r.Vias, v)
}

func drawSegments(r Renderer, layer int, segs []geometry.Segment, width int) {
	for _, s := range segs {
		r.DrawPolyline(layer, []geometry.Point{s.A, s.B}, width, EndExtend)
	}
}

func drawPath(r Renderer, layer, tail int, tp *coil.TurnPath, width int) {
	if tp == nil || len(tp.Segments) == 0 {
		log.Printf("render: empty turn path on layer %d, skipping", layer)
		return
	}
	drawSegments(r, layer, tp.Segments, width)
	drawSegments(r, tail, tp.Tail, width)
}

// DrawCoil walks one coil's geometry into the renderer.
func DrawCoil(r Renderer, c *coil.Coil) {
	for _, t := range c.Turns {
		drawPath(r, t.Layer, c.TailLayer, t.Path, c.Width)
	}
	for _, b := range c.Bridges {
		if len(b.Points) < 2 {
			log.Printf("render: degenerate bridge on layer %d, skipping", b.Layer)
			continue
		}
		r.DrawPolyline(b.Layer, b.Points, b.Width, EndExtend)
		for _, v := range b.Vias {
			r.DrawVia(v)
		}
	}
	for _, v := range c.Vias {
		r.DrawVia(v)
	}
	if c.Lead != nil {
		drawSegments(r, c.Layer, c.Lead.Ext, c.Width)
		for _, p := range c.Lead.Pins {
			r.DrawRect(c.Layer, p)
		}
	}
	if c.Tap != nil {
		r.DrawRect(c.Layer, c.Tap.Wire)
		r.DrawRect(c.Layer, c.Tap.Pin)
	}
	if c.Second != nil {
		drawSegments(r, c.Layer, c.Second.Ext, c.Width)
		for _, v := range c.Second.Vias {
			r.DrawVia(v)
		}
	}
}

// DrawLayout walks a full placed instance: coil, guard ring, fill.
func DrawLayout(r Renderer, res *layout.Result) {
	DrawCoil(r, res.Coil)
	if rg := res.Ring; rg != nil {
		for _, t := range rg.Turns {
			for _, lp := range t.Paths {
				drawPath(r, lp.Layer, lp.Layer, lp.Path, rg.Width)
			}
		}
		for _, v := range rg.Vias {
			r.DrawVia(v)
		}
		r.DrawRect(rg.PinLayer, rg.Pin)
	}
	for _, f := range res.Fills {
		for _, t := range f.Tiles {
			r.DrawRect(f.Layer, t)
		}
	}
}
