package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWorldToScreenRoundTrip(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: -512.25, Y: 381.75},
		{X: 1e6, Y: -1e6},
	}
	viewports := []Viewport{
		{Zoom: 1},
		{Zoom: 0.1, Pan: Point{X: 4000, Y: -2500}},
		{Zoom: 2.0, Pan: Point{X: -33.5, Y: 7.25}},
		{Zoom: 0.7, Pan: Point{X: 123.456, Y: 654.321}},
	}
	for _, vp := range viewports {
		for _, p := range points {
			got := toWorld(toScreen(p, vp), vp)
			assert.InDelta(t, p.X, got.X, 1e-6, "zoom=%v pan=%v", vp.Zoom, vp.Pan)
			assert.InDelta(t, p.Y, got.Y, 1e-6, "zoom=%v pan=%v", vp.Zoom, vp.Pan)
		}
	}
}

func TestSetZoomClamps(t *testing.T) {
	vp := Viewport{Zoom: 1}
	center := Point{X: 400, Y: 240}

	got := setZoom(99, center, vp)
	assert.Equal(t, maxZoom, got.Zoom)

	got = setZoom(-3, center, vp)
	assert.Equal(t, minZoom, got.Zoom)

	got = setZoom(0.5, center, vp)
	assert.Equal(t, 0.5, got.Zoom)
}

func TestZoomKeepsCenterFixed(t *testing.T) {
	vp := Viewport{Zoom: 1, Pan: Point{X: 37, Y: -18}}
	center := Point{X: 400, Y: 240}
	worldAtCenter := toWorld(center, vp)

	zoomed := setZoom(1.6, center, vp)
	after := toWorld(center, zoomed)
	assert.InDelta(t, worldAtCenter.X, after.X, 1e-9)
	assert.InDelta(t, worldAtCenter.Y, after.Y, 1e-9)
}

func TestZoomInThenOutRestoresPanExactly(t *testing.T) {
	vp := Viewport{Zoom: 1}
	center := Point{X: 400, Y: 240}

	in := zoomBy(zoomStep, center, vp)
	require.NotEqual(t, vp.Zoom, in.Zoom)
	out := zoomBy(-zoomStep, center, in)

	assert.Equal(t, vp.Zoom, out.Zoom)
	assert.Equal(t, vp.Pan, out.Pan)

	// Nonzero starting pan round-trips within float tolerance.
	vp = Viewport{Zoom: 1, Pan: Point{X: 123.5, Y: -77.25}}
	out = zoomBy(-zoomStep, center, zoomBy(zoomStep, center, vp))
	assert.Equal(t, vp.Zoom, out.Zoom)
	assert.InDelta(t, vp.Pan.X, out.Pan.X, 1e-9)
	assert.InDelta(t, vp.Pan.Y, out.Pan.Y, 1e-9)
}

func TestZoomByClampsAtLimits(t *testing.T) {
	vp := Viewport{Zoom: maxZoom}
	center := Point{X: 100, Y: 100}

	got := zoomBy(zoomStep, center, vp)
	assert.Equal(t, maxZoom, got.Zoom)
	assert.Equal(t, vp.Pan, got.Pan, "no pan jump when zoom is pinned")

	vp = Viewport{Zoom: minZoom}
	got = zoomBy(-zoomStep, center, vp)
	assert.Equal(t, minZoom, got.Zoom)
}
