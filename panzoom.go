package main

// PanSession drags the viewport itself. It starts only on empty
// canvas and never persists anything; pan is pure view state.
type PanSession struct {
	active bool
	start  Point
}

func NewPanSession() *PanSession { return &PanSession{} }

func (p *PanSession) Active() bool { return p.active }

// Begin anchors the pan at the pointer. No-op while a drag session
// holds the pointer or while a pan is already running.
func (p *PanSession) Begin(screen Point, vp Viewport, drag *DragSession) bool {
	if p.active || drag.Active() {
		return false
	}
	p.active = true
	p.start = Point{
		X: screen.X - vp.Pan.X*vp.Zoom,
		Y: screen.Y - vp.Pan.Y*vp.Zoom,
	}
	return true
}

// Update derives the new pan offset from pointer movement.
func (p *PanSession) Update(screen Point, vp Viewport) Viewport {
	if !p.active {
		return vp
	}
	vp.Pan = Point{
		X: (screen.X - p.start.X) / vp.Zoom,
		Y: (screen.Y - p.start.Y) / vp.Zoom,
	}
	return vp
}

func (p *PanSession) End() { p.active = false }

// Cancel is End under another name; pan has nothing to roll back.
func (p *PanSession) Cancel() { p.active = false }
