package main

import "math"

// toWorld converts a screen-space point to world space under the
// given viewport. Pure; any finite input yields a finite output.
func toWorld(screen Point, vp Viewport) Point {
	return Point{
		X: screen.X/vp.Zoom - vp.Pan.X,
		Y: screen.Y/vp.Zoom - vp.Pan.Y,
	}
}

// toScreen is the inverse of toWorld.
func toScreen(world Point, vp Viewport) Point {
	return Point{
		X: (world.X + vp.Pan.X) * vp.Zoom,
		Y: (world.Y + vp.Pan.Y) * vp.Zoom,
	}
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// setZoom changes the zoom factor, clamped to [minZoom, maxZoom], and
// re-derives the pan offset so that the world point under center (a
// screen-space point, normally the viewport center) stays put. The
// offset correction uses the two zoom factors directly so that
// zooming in and back out restores the original pan exactly.
func setZoom(newZoom float64, center Point, vp Viewport) Viewport {
	z := clampZoom(newZoom)
	if z == vp.Zoom {
		return vp
	}
	// Single correction term per axis: reversing the zoom negates the
	// exact same term, so in-then-out lands back on the original pan.
	dx := center.X/z - center.X/vp.Zoom
	dy := center.Y/z - center.Y/vp.Zoom
	return Viewport{
		Zoom: z,
		Pan:  Point{X: vp.Pan.X + dx, Y: vp.Pan.Y + dy},
	}
}

// zoomBy applies a discrete zoom step anchored at center. The new
// factor is quantized to the step grid so repeated in/out pairs land
// back on the same zoom value instead of accumulating float error.
func zoomBy(delta float64, center Point, vp Viewport) Viewport {
	z := math.Round((vp.Zoom+delta)*10) / 10
	return setZoom(z, center, vp)
}
