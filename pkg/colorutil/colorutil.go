// Package colorutil provides the shared drawing palette for layout
// rendering.
package colorutil

import "image/color"

// Fixed overlay colors.
var (
	Background = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	Via        = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// metalPalette cycles per routing layer. Alpha is kept below opaque so
// stacked layers stay distinguishable.
var metalPalette = []color.RGBA{
	{R: 0x3a, G: 0x7b, B: 0xd5, A: 0xc0}, // blue
	{R: 0xd5, G: 0x5a, B: 0x3a, A: 0xc0}, // orange
	{R: 0x4f, G: 0xb0, B: 0x6d, A: 0xc0}, // green
	{R: 0xb0, G: 0x4f, B: 0xa8, A: 0xc0}, // purple
	{R: 0xc9, G: 0xb4, B: 0x3c, A: 0xc0}, // olive
	{R: 0x3c, G: 0xb4, B: 0xc9, A: 0xc0}, // teal
}

// Layer returns the drawing color for a routing layer index.
func Layer(layer int) color.RGBA {
	if layer < 0 {
		layer = -layer
	}
	return metalPalette[layer%len(metalPalette)]
}
