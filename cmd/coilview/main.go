// Command coilview renders a coil spec and shows it in a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"coilgen/internal/grid"
	"coilgen/internal/layout"
	"coilgen/internal/render"
	"coilgen/internal/spec"
	"coilgen/internal/version"
)

func main() {
	specPath := flag.String("spec", "", "Path to coil spec (JSON)")
	maxPx := flag.Int("px", 1024, "Render size in pixels (longer side)")
	trackPitch := flag.Int("track-pitch", 0, "Routing track pitch; 0 disables opening quantization")
	trackWidth := flag.Int("track-width", 0, "Routing track wire width")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if *specPath == "" {
		fmt.Println("Usage: coilview -spec <path> [-px 1024]")
		os.Exit(1)
	}

	s, err := spec.Load(*specPath)
	if err != nil {
		log.Fatalf("Failed to load spec: %v", err)
	}
	var g grid.RoutingGrid
	if *trackPitch > 0 {
		g = grid.Uniform{Pitch: *trackPitch, WireWidth: *trackWidth}
	}
	res, err := layout.Generate(s, g)
	if err != nil {
		log.Fatalf("Synthesis failed: %v", err)
	}

	r := render.NewRaster(res.BBox, *maxPx)
	render.DrawLayout(r, res)

	viewApp := app.New()
	win := viewApp.NewWindow("Coil Viewer " + version.Version)

	img := fynecanvas.NewImageFromImage(r.Image())
	img.FillMode = fynecanvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(512, 512))

	status := widget.NewLabel(fmt.Sprintf("%v  %d turn(s)  layer %d  %dx%d  %d bridge(s)",
		s.Shape, s.Turns, s.Layer, res.BBox.W(), res.BBox.H(), len(res.Coil.Bridges)))

	win.SetContent(container.NewBorder(nil, status, nil, nil, img))
	win.Resize(fyne.NewSize(800, 840))
	win.ShowAndRun()
}
