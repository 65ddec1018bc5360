package main

import "time"

// Zoom limits and the step applied per discrete zoom activation.
const (
	minZoom  = 0.1
	maxZoom  = 2.0
	zoomStep = 0.1
)

// Entity cards occupy a fixed footprint in world units, matching the
// rendered card size on the phone/desktop clients.
const (
	entityWidth  = 300.0
	entityHeight = 100.0
)

// Terminal cells map to world pixels at zoom 1. Same trick as the PNG
// export's character metrics, just in reverse.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

// saveDebounce is the trailing quiet period before a dragged position
// is written to the gateway.
const saveDebounce = 500 * time.Millisecond

// statusTimeout is how long transient status messages stay visible.
const statusTimeout = 3 * time.Second

// Minimap panel size in cells, plus world padding inside it.
const (
	minimapCols    = 26
	minimapRows    = 9
	minimapPadding = 20.0
)

const numColorTags = 8
