package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBoundsEmpty(t *testing.T) {
	assert.Equal(t, Bounds{}, computeBounds(nil))
	assert.Equal(t, Bounds{}, computeBounds([]*Entity{
		testEntity(KindNote, "n", "unplaced", nil),
	}))
}

func TestComputeBoundsAddsFootprint(t *testing.T) {
	entities := []*Entity{
		testEntity(KindNote, "a", "a", &Point{X: 0, Y: 0}),
		testEntity(KindNote, "b", "b", &Point{X: 400, Y: 300}),
	}
	b := computeBounds(entities)
	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 700, MaxY: 400}, b)
}

func TestComputeBoundsNegativePositions(t *testing.T) {
	entities := []*Entity{
		testEntity(KindNote, "a", "a", &Point{X: -500, Y: -200}),
		testEntity(KindNote, "b", "b", &Point{X: 100, Y: 50}),
	}
	b := computeBounds(entities)
	assert.Equal(t, Bounds{MinX: -500, MinY: -200, MaxX: 400, MaxY: 150}, b)
}

func TestMinimapScaleIsAlwaysFinite(t *testing.T) {
	cases := []Bounds{
		{},
		{MinX: 10, MinY: 10, MaxX: 10, MaxY: 10},
		{MaxX: 1e9, MaxY: 1e9},
		{MinX: -1e9, MinY: -1e9, MaxX: 1e9, MaxY: 1e9},
	}
	for _, b := range cases {
		scale := computeMinimapScale(b, 240, 140, minimapPadding)
		require.False(t, math.IsNaN(scale), "bounds %+v", b)
		require.False(t, math.IsInf(scale, 0), "bounds %+v", b)
		assert.Greater(t, scale, 0.0, "bounds %+v", b)
	}
}

func TestMinimapScaleFitsBothAxes(t *testing.T) {
	b := Bounds{MaxX: 1000, MaxY: 100}
	scale := computeMinimapScale(b, 240, 140, 20)
	assert.InDelta(t, 0.22, scale, 1e-9, "width is the limiting axis")

	tall := Bounds{MaxX: 100, MaxY: 1200}
	scale = computeMinimapScale(tall, 240, 140, 20)
	assert.InDelta(t, 0.1, scale, 1e-9, "height is the limiting axis")
}

func TestDeriveMinimapProjection(t *testing.T) {
	s := NewEntityStore()
	s.Seed([]*Entity{
		{ID: "a", Kind: KindNote, Title: "A", Position: &Point{X: 0, Y: 0}, ConnectedTo: []string{"b"}},
		{ID: "b", Kind: KindFolder, Title: "B", Position: &Point{X: 700, Y: 400}},
		testEntity(KindNote, "c", "unplaced", nil),
	})
	g := NewConnectionGraph(s)
	vp := Viewport{Zoom: 1, Pan: Point{X: -100, Y: -50}}

	mm := deriveMinimap(s, g, vp, 800, 480, 240, 140)

	require.Len(t, mm.Dots, 2, "unplaced entities are not projected")
	scale := mm.Scale
	assert.Equal(t, Point{X: 0, Y: 0}, mm.Dots[0].Pos)
	assert.InDelta(t, 700*scale, mm.Dots[1].Pos.X, 1e-9)
	assert.InDelta(t, 400*scale, mm.Dots[1].Pos.Y, 1e-9)

	require.Len(t, mm.Edges, 1)
	assert.InDelta(t, (0+entityWidth/2)*scale, mm.Edges[0][0].X, 1e-9)
	assert.InDelta(t, (700+entityWidth/2)*scale, mm.Edges[0][1].X, 1e-9)

	// Viewport indicator is pan- and zoom-derived, bounds-independent.
	assert.InDelta(t, 100*scale, mm.Viewport.X, 1e-9)
	assert.InDelta(t, 50*scale, mm.Viewport.Y, 1e-9)
	assert.InDelta(t, 800*scale, mm.Viewport.W, 1e-9)
	assert.InDelta(t, 480*scale, mm.Viewport.H, 1e-9)
}

func TestDeriveMinimapZoomGrowsIndicator(t *testing.T) {
	s := NewEntityStore()
	s.Seed([]*Entity{testEntity(KindNote, "a", "a", &Point{X: 0, Y: 0})})
	g := NewConnectionGraph(s)

	wide := deriveMinimap(s, g, Viewport{Zoom: 0.5}, 800, 480, 240, 140)
	tight := deriveMinimap(s, g, Viewport{Zoom: 2}, 800, 480, 240, 140)

	assert.Greater(t, wide.Viewport.W, tight.Viewport.W,
		"zooming out shows more world, so the indicator covers more of the map")
}
