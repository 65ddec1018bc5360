package main

// handlePanKey pans the viewport from the keyboard, one cell per
// step. Pan is in world units, so the step shrinks as zoom grows.
func (m *model) handlePanKey(key string, speed float64) {
	step := speed * cellWidth / m.vp.Zoom
	vstep := speed * cellHeight / m.vp.Zoom
	switch key {
	case "h", "left", "H", "shift+left":
		m.vp.Pan.X += step
	case "l", "right", "L", "shift+right":
		m.vp.Pan.X -= step
	case "k", "up", "K", "shift+up":
		m.vp.Pan.Y += vstep
	case "j", "down", "J", "shift+down":
		m.vp.Pan.Y -= vstep
	}
}

func (m *model) getPanSpeed(key string) float64 {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}
