package main

// computeBounds folds the placed entities into one world rectangle,
// card footprint included. No entities collapses to the zero rect.
func computeBounds(entities []*Entity) Bounds {
	var b Bounds
	first := true
	for _, e := range entities {
		if e.Position == nil {
			continue
		}
		p := *e.Position
		if first {
			b = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X + entityWidth, MaxY: p.Y + entityHeight}
			first = false
			continue
		}
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X+entityWidth > b.MaxX {
			b.MaxX = p.X + entityWidth
		}
		if p.Y+entityHeight > b.MaxY {
			b.MaxY = p.Y + entityHeight
		}
	}
	return b
}

// computeMinimapScale fits the bounds into the minimap widget. A
// degenerate dimension (single entity, empty set) is widened to 1 so
// the result is always finite.
func computeMinimapScale(b Bounds, mapW, mapH, padding float64) float64 {
	w := b.Width()
	if w < 1 {
		w = 1
	}
	h := b.Height()
	if h < 1 {
		h = 1
	}
	sx := (mapW - padding) / w
	sy := (mapH - padding) / h
	if sy < sx {
		return sy
	}
	return sx
}

// minimapDot is one entity projected into minimap space.
type minimapDot struct {
	Pos  Point
	Kind EntityKind
}

// Minimap is the derived proportional view: entity dots, edges and
// the viewport-indicator rectangle, all bounds-relative (the minimap
// ignores pan when placing entities).
type Minimap struct {
	Bounds   Bounds
	Scale    float64
	Dots     []minimapDot
	Edges    [][2]Point
	Viewport Rect
}

// deriveMinimap recomputes the minimap after any store, transform or
// window-size change. viewW/viewH are the visible canvas size in
// screen pixels, mapW/mapH the widget size in the same units.
func deriveMinimap(store *EntityStore, graph *ConnectionGraph, vp Viewport, viewW, viewH, mapW, mapH float64) Minimap {
	entities := store.All()
	b := computeBounds(entities)
	scale := computeMinimapScale(b, mapW, mapH, minimapPadding)

	m := Minimap{Bounds: b, Scale: scale}
	for _, e := range entities {
		if e.Position == nil {
			continue
		}
		m.Dots = append(m.Dots, minimapDot{
			Pos:  Point{X: e.Position.X * scale, Y: e.Position.Y * scale},
			Kind: e.Kind,
		})
	}
	for _, c := range graph.Connections() {
		from := store.Position(c.From)
		to := store.Position(c.To)
		m.Edges = append(m.Edges, [2]Point{
			{X: (from.X + entityWidth/2) * scale, Y: (from.Y + entityHeight/2) * scale},
			{X: (to.X + entityWidth/2) * scale, Y: (to.Y + entityHeight/2) * scale},
		})
	}
	m.Viewport = Rect{
		X: -vp.Pan.X * scale,
		Y: -vp.Pan.Y * scale,
		W: viewW / vp.Zoom * scale,
		H: viewH / vp.Zoom * scale,
	}
	return m
}
