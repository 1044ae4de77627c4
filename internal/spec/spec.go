// Package spec provides the flat parameter records consumed by the coil,
// ring and fill generators, with JSON loading and validation.
package spec

import (
	"encoding/json"
	"fmt"
	"os"
)

// Shape selects the coil outline.
type Shape int

const (
	ShapeSquare  Shape = iota // 4 sides
	ShapeOctagon              // 8 sides
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeOctagon:
		return "octagon"
	default:
		return "unknown"
	}
}

// Sides returns the polygon side count for the shape.
func (s Shape) Sides() int {
	if s == ShapeSquare {
		return 4
	}
	return 8
}

// MarshalJSON encodes the shape as its string name.
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes "square" or "octagon".
func (s *Shape) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "square":
		*s = ShapeSquare
	case "octagon":
		*s = ShapeOctagon
	default:
		return fmt.Errorf("unknown shape %q", name)
	}
	return nil
}

// Orientation is the placement transform applied to a generated coil.
type Orientation int

const (
	R0 Orientation = iota
	R90
	R180
	R270
	MX // mirror about the x-axis
	MY // mirror about the y-axis
)

var orientNames = map[Orientation]string{
	R0: "R0", R90: "R90", R180: "R180", R270: "R270", MX: "MX", MY: "MY",
}

func (o Orientation) String() string {
	if name, ok := orientNames[o]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the orientation as its name.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an orientation name such as "R0" or "R270".
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for k, v := range orientNames {
		if v == name {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown orientation %q", name)
}

// RingSpec describes an optional concentric guard ring around the coil.
type RingSpec struct {
	Width     int `json:"width"`               // ring conductor width
	Spacing   int `json:"spacing"`             // spacing between ring turns
	Clearance int `json:"clearance"`           // coil edge to innermost ring
	Gap       int `json:"gap,omitempty"`       // lead-escape opening width; 3x coil opening when zero
	Turns     int `json:"turns"`               // number of concentric rings
	ConnCount int `json:"conn_count"`          // via tap points per side
	LayerLow  int `json:"layer_low,omitempty"` // bottom of the stitched layer range; coil layer when zero
}

// FillSpec describes one tiled metal-fill pass.
type FillSpec struct {
	TileWidth   int  `json:"tile_width"`
	TileSpacing int  `json:"tile_spacing"`
	Inside      bool `json:"inside"`  // fill inside the innermost turn
	Outside     bool `json:"outside"` // fill outside the outermost turn
}

// CoilSpec is the flat parameter record for one coil instance. All
// dimensions are in layout grid units.
type CoilSpec struct {
	Shape       Shape       `json:"shape"`
	Turns       int         `json:"turns"`
	Layer       int         `json:"layer"`               // coil routing layer
	BotLayer    int         `json:"bot_layer,omitempty"` // bottom layer for stacked coils; 0 means same as Layer
	Width       int         `json:"width"`               // conductor width
	Spacing     int         `json:"spacing"`             // inter-turn spacing
	RadiusX     int         `json:"radius_x"`            // outer radius along x
	RadiusY     int         `json:"radius_y"`            // outer radius along y
	TermSpacing int         `json:"term_spacing"`        // terminal opening width
	ViaWidth    int         `json:"via_width,omitempty"` // bridge via width; conductor width when zero
	Orientation Orientation `json:"orientation"`
	DiffTerms   bool        `json:"diff_terms,omitempty"` // differential non-interleaved terminals at the outer vertices
	TCoil       bool        `json:"tcoil,omitempty"`      // expose second terminal pair at the inner turn
	MinWidth    int         `json:"min_width,omitempty"`
	MinSpacing  int         `json:"min_spacing,omitempty"`
	Ring        *RingSpec   `json:"ring,omitempty"`
	Fill        []FillSpec  `json:"fill,omitempty"`
}

// Validate checks the static constraints of the record. Geometric
// feasibility (clearances against radii) is checked by the coil package.
func (c *CoilSpec) Validate() error {
	if c.Shape != ShapeSquare && c.Shape != ShapeOctagon {
		return fmt.Errorf("shape must be square or octagon, got %v", c.Shape)
	}
	if c.Turns < 1 {
		return fmt.Errorf("turns must be at least 1, got %d", c.Turns)
	}
	if c.Layer < 1 {
		return fmt.Errorf("layer must be positive, got %d", c.Layer)
	}
	if c.BotLayer != 0 && c.BotLayer > c.Layer {
		return fmt.Errorf("bot_layer %d must not exceed layer %d", c.BotLayer, c.Layer)
	}
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Spacing < 0 {
		return fmt.Errorf("spacing must not be negative, got %d", c.Spacing)
	}
	if c.RadiusX <= 0 || c.RadiusY <= 0 {
		return fmt.Errorf("radii must be positive, got radius_x=%d radius_y=%d", c.RadiusX, c.RadiusY)
	}
	if c.TermSpacing < 0 {
		return fmt.Errorf("term_spacing must not be negative, got %d", c.TermSpacing)
	}
	if r := c.Ring; r != nil {
		if r.Width <= 0 {
			return fmt.Errorf("ring width must be positive, got %d", r.Width)
		}
		if r.Turns < 1 {
			return fmt.Errorf("ring turns must be at least 1, got %d", r.Turns)
		}
		if r.ConnCount <= 1 {
			return fmt.Errorf("ring conn_count must exceed 1, got %d", r.ConnCount)
		}
	}
	for i, f := range c.Fill {
		if f.TileWidth <= 0 || f.TileSpacing < 0 {
			return fmt.Errorf("fill[%d]: tile_width must be positive and tile_spacing non-negative", i)
		}
	}
	return nil
}

// BottomLayer returns the effective bottom layer of the coil stack.
func (c *CoilSpec) BottomLayer() int {
	if c.BotLayer == 0 {
		return c.Layer
	}
	return c.BotLayer
}

// Load reads and validates a coil spec from a JSON file.
func Load(path string) (*CoilSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coil spec: %w", err)
	}
	var c CoilSpec
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse coil spec: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coil spec: %w", err)
	}
	return &c, nil
}
