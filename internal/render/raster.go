package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"coilgen/internal/coil"
	"coilgen/pkg/colorutil"
	"coilgen/pkg/geometry"
)

// Raster renders layout primitives into an RGBA image, scaled so the
// layout bounding box fits maxPx pixels on its longer side.
type Raster struct {
	img    *image.RGBA
	bounds geometry.BBox
	scale  float64
	h      int
}

// NewRaster allocates the target image for the given layout bounds.
func NewRaster(bounds geometry.BBox, maxPx int) *Raster {
	w, h := bounds.W(), bounds.H()
	long := w
	if h > long {
		long = h
	}
	scale := float64(maxPx) / float64(long)
	pw := int(math.Ceil(float64(w) * scale))
	ph := int(math.Ceil(float64(h) * scale))
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.Background), image.Point{}, draw.Src)
	return &Raster{img: img, bounds: bounds, scale: scale, h: ph}
}

// Image returns the rendered target.
func (r *Raster) Image() *image.RGBA { return r.img }

// px maps layout coordinates to pixel space, flipping y so layout +y
// points up.
func (r *Raster) px(x, y float64) (float32, float32) {
	return float32((x - float64(r.bounds.XL)) * r.scale),
		float32(float64(r.h) - (y-float64(r.bounds.YL))*r.scale)
}

func (r *Raster) fillQuad(c color.RGBA, quad [4][2]float64) {
	ras := vector.NewRasterizer(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	x, y := r.px(quad[0][0], quad[0][1])
	ras.MoveTo(x, y)
	for _, q := range quad[1:] {
		x, y = r.px(q[0], q[1])
		ras.LineTo(x, y)
	}
	ras.ClosePath()
	ras.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Raster) DrawPolyline(layer int, pts []geometry.Point, width int, style EndStyle) {
	c := colorutil.Layer(layer)
	hw := float64(width) / 2
	for i := 0; i+1 < len(pts); i++ {
		ax, ay := float64(pts[i].X), float64(pts[i].Y)
		bx, by := float64(pts[i+1].X), float64(pts[i+1].Y)
		dx, dy := bx-ax, by-ay
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		ux, uy := dx/l, dy/l
		if style == EndExtend {
			ax, ay = ax-ux*hw, ay-uy*hw
			bx, by = bx+ux*hw, by+uy*hw
		}
		nx, ny := -uy*hw, ux*hw
		r.fillQuad(c, [4][2]float64{
			{ax + nx, ay + ny}, {bx + nx, by + ny},
			{bx - nx, by - ny}, {ax - nx, ay - ny},
		})
	}
}

func (r *Raster) DrawRect(layer int, b geometry.BBox) {
	r.fillQuad(colorutil.Layer(layer), [4][2]float64{
		{float64(b.XL), float64(b.YL)}, {float64(b.XH), float64(b.YL)},
		{float64(b.XH), float64(b.YH)}, {float64(b.XL), float64(b.YH)},
	})
}

func (r *Raster) DrawVia(v coil.Via) {
	b := v.BBox()
	r.fillQuad(colorutil.Via, [4][2]float64{
		{float64(b.XL), float64(b.YL)}, {float64(b.XH), float64(b.YL)},
		{float64(b.XH), float64(b.YH)}, {float64(b.XL), float64(b.YH)},
	})
}
