package ring

import "errors"

var (
	// ErrConnCount is returned when the via tap count per side is too
	// small to form a usable supply connection.
	ErrConnCount = errors.New("ring: conn_count must be at least 2")

	// ErrLayerRange is returned when the ring layer span is empty.
	ErrLayerRange = errors.New("ring: layer_low must not exceed the coil layer")
)
