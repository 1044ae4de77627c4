// Command coilgen synthesizes a coil from a JSON spec and renders it.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"coilgen/internal/grid"
	"coilgen/internal/layout"
	"coilgen/internal/render"
	"coilgen/internal/spec"
	"coilgen/internal/version"
)

func main() {
	specPath := flag.String("spec", "", "Path to coil spec (JSON)")
	outPath := flag.String("out", "coil.png", "Output image path")
	maxPx := flag.Int("px", 1024, "Image size in pixels (longer side)")
	trackPitch := flag.Int("track-pitch", 0, "Routing track pitch; 0 disables opening quantization")
	trackWidth := flag.Int("track-width", 0, "Routing track wire width")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("coilgen %s (built %s, commit %s)\n",
			version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *specPath == "" {
		fmt.Println("Usage: coilgen -spec <path> [-out coil.png] [-px 1024] [-track-pitch N -track-width N]")
		os.Exit(1)
	}

	s, err := spec.Load(*specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load spec: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded spec: %v, %d turn(s), layer %d, radius %dx%d\n",
		s.Shape, s.Turns, s.Layer, s.RadiusX, s.RadiusY)

	var g grid.RoutingGrid
	if *trackPitch > 0 {
		g = grid.Uniform{Pitch: *trackPitch, WireWidth: *trackWidth}
		fmt.Printf("Routing grid: pitch=%d wire=%d\n", *trackPitch, *trackWidth)
	}

	res, err := layout.Generate(s, g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synthesis failed: %v\n", err)
		os.Exit(1)
	}

	c := res.Coil
	fmt.Printf("\nSynthesized coil:\n")
	fmt.Printf("  Opening: %d\n", c.Opening)
	fmt.Printf("  Bounding box: %dx%d\n", res.BBox.W(), res.BBox.H())
	fmt.Printf("%-6s %-8s %-8s %-16s %9s\n", "Turn", "Layer", "Role", "Mode", "Segments")
	for _, t := range c.Turns {
		fmt.Printf("%-6d %-8d %-8s %-16s %9d\n",
			t.Index, t.Layer, t.Role, t.Path.Mode, len(t.Path.Segments))
	}
	fmt.Printf("Bridges: %d  Vias: %d\n", len(c.Bridges), len(c.Vias))
	if res.Ring != nil {
		fmt.Printf("Guard ring: %d turn(s), %d stitch vias\n", len(res.Ring.Turns), len(res.Ring.Vias))
	}
	for i, f := range res.Fills {
		fmt.Printf("Fill pass %d: %d tiles on layer %d\n", i, len(f.Tiles), f.Layer)
	}

	r := render.NewRaster(res.BBox, *maxPx)
	render.DrawLayout(r, res)

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := png.Encode(out, r.Image()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %s\n", *outPath)
}
