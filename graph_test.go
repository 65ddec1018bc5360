package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphFixture(t *testing.T) (*EntityStore, *ConnectionGraph, NodeRef, NodeRef) {
	t.Helper()
	s := NewEntityStore()
	s.Seed([]*Entity{
		testEntity(KindNote, "a", "A", &Point{X: 0, Y: 0}),
		testEntity(KindNote, "b", "B", &Point{X: 400, Y: 300}),
		testEntity(KindFolder, "f", "F", &Point{X: 800, Y: 0}),
	})
	return s, NewConnectionGraph(s), NodeRef{Kind: KindNote, ID: "a"}, NodeRef{Kind: KindNote, ID: "b"}
}

func TestActivationOutsideConnectModeFallsThrough(t *testing.T) {
	_, g, a, _ := graphFixture(t)
	w, consumed := g.NodeActivated(a)
	assert.Nil(t, w)
	assert.False(t, consumed, "click should fall through to drag/navigation")
}

func TestConnectGestureCreatesDirectedEdge(t *testing.T) {
	s, g, a, b := graphFixture(t)

	require.True(t, g.ToggleConnectMode())

	w, consumed := g.NodeActivated(a)
	require.True(t, consumed)
	assert.Nil(t, w, "first endpoint only registers")
	require.NotNil(t, g.Pending())
	assert.Equal(t, a, *g.Pending())

	w, consumed = g.NodeActivated(b)
	require.True(t, consumed)
	require.NotNil(t, w)
	assert.Equal(t, a, w.Ref)
	assert.Equal(t, []string{"b"}, w.Targets)

	src, _ := s.Get(a)
	assert.Equal(t, []string{"b"}, src.ConnectedTo)
	dst, _ := s.Get(b)
	assert.Empty(t, dst.ConnectedTo, "no implicit reverse edge")

	assert.Nil(t, g.Pending())
	assert.True(t, g.ConnectMode(), "mode stays on until toggled off")
}

func TestConnectGestureIsIdempotent(t *testing.T) {
	s, g, a, b := graphFixture(t)
	g.ToggleConnectMode()

	g.NodeActivated(a)
	w, _ := g.NodeActivated(b)
	require.NotNil(t, w)

	g.NodeActivated(a)
	w, consumed := g.NodeActivated(b)
	assert.True(t, consumed)
	assert.Nil(t, w, "existing edge must not be written again")

	src, _ := s.Get(a)
	assert.Equal(t, []string{"b"}, src.ConnectedTo, "exactly one occurrence")
}

func TestSelfLoopRejectedKeepsPending(t *testing.T) {
	_, g, a, b := graphFixture(t)
	g.ToggleConnectMode()

	g.NodeActivated(a)
	w, consumed := g.NodeActivated(a)
	assert.True(t, consumed)
	assert.Nil(t, w)
	require.NotNil(t, g.Pending(), "user can still pick a different target")
	assert.Equal(t, a, *g.Pending())

	w, _ = g.NodeActivated(b)
	assert.NotNil(t, w, "retry with a different target succeeds")
}

func TestToggleOffClearsPending(t *testing.T) {
	_, g, a, _ := graphFixture(t)
	g.ToggleConnectMode()
	g.NodeActivated(a)
	require.NotNil(t, g.Pending())

	assert.False(t, g.ToggleConnectMode())
	assert.Nil(t, g.Pending())
}

func TestConnectionsSkipDanglingTargets(t *testing.T) {
	s, g, _, _ := graphFixture(t)
	s.Seed([]*Entity{
		{ID: "a", Kind: KindNote, Title: "A", Position: &Point{}, ConnectedTo: []string{"gone", "f"}},
		{ID: "f", Kind: KindFolder, Title: "F", Position: &Point{X: 100, Y: 100}},
	})

	conns := g.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, NodeRef{Kind: KindNote, ID: "a"}, conns[0].From)
	assert.Equal(t, NodeRef{Kind: KindFolder, ID: "f"}, conns[0].To)
}

func TestConnectionsRebuildFromEntityState(t *testing.T) {
	s, g, a, _ := graphFixture(t)

	assert.Empty(t, g.Connections())

	// A remote update rewrites the adjacency list; the graph reflects
	// it without any registration step.
	s.SetConnections(a, []string{"f", "b"})
	conns := g.Connections()
	require.Len(t, conns, 2)
	assert.Equal(t, NodeRef{Kind: KindFolder, ID: "f"}, conns[0].To)
	assert.Equal(t, NodeRef{Kind: KindNote, ID: "b"}, conns[1].To)
}

func TestConnectAcrossKinds(t *testing.T) {
	s, g, a, _ := graphFixture(t)
	f := NodeRef{Kind: KindFolder, ID: "f"}
	g.ToggleConnectMode()

	g.NodeActivated(f)
	w, _ := g.NodeActivated(a)
	require.NotNil(t, w)
	assert.Equal(t, f, w.Ref)

	src, _ := s.Get(f)
	assert.Equal(t, []string{"a"}, src.ConnectedTo)
}
