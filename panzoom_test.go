package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanFollowsPointer(t *testing.T) {
	p := NewPanSession()
	d := NewDragSession()
	vp := Viewport{Zoom: 1, Pan: Point{X: 10, Y: 10}}

	require.True(t, p.Begin(Point{X: 200, Y: 200}, vp, d))
	vp = p.Update(Point{X: 250, Y: 180}, vp)

	assert.InDelta(t, 60.0, vp.Pan.X, 1e-9)
	assert.InDelta(t, -10.0, vp.Pan.Y, 1e-9)

	p.End()
	assert.False(t, p.Active())
}

func TestPanScalesWithZoom(t *testing.T) {
	p := NewPanSession()
	d := NewDragSession()
	vp := Viewport{Zoom: 2}

	require.True(t, p.Begin(Point{X: 0, Y: 0}, vp, d))
	vp = p.Update(Point{X: 100, Y: 0}, vp)

	// 100 screen pixels at zoom 2 is 50 world units of pan.
	assert.InDelta(t, 50.0, vp.Pan.X, 1e-9)
}

func TestPanBlockedByActiveDrag(t *testing.T) {
	s := NewEntityStore()
	s.Seed([]*Entity{testEntity(KindNote, "n1", "one", &Point{X: 0, Y: 0})})
	d := NewDragSession()
	p := NewPanSession()
	vp := Viewport{Zoom: 1}

	require.True(t, d.Begin(NodeRef{Kind: KindNote, ID: "n1"}, Point{}, vp, s, false))
	assert.False(t, p.Begin(Point{X: 500, Y: 500}, vp, d))
}

func TestPanDoubleBeginIsNoOp(t *testing.T) {
	p := NewPanSession()
	d := NewDragSession()
	vp := Viewport{Zoom: 1}

	require.True(t, p.Begin(Point{X: 100, Y: 100}, vp, d))
	first := p.start
	assert.False(t, p.Begin(Point{X: 900, Y: 900}, vp, d))
	assert.Equal(t, first, p.start, "anchor not re-captured")
}

func TestPanUpdateWhenIdleIsNoOp(t *testing.T) {
	p := NewPanSession()
	vp := Viewport{Zoom: 1, Pan: Point{X: 7, Y: 7}}
	got := p.Update(Point{X: 9999, Y: 9999}, vp)
	assert.Equal(t, vp, got)
}
