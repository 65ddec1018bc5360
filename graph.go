package main

// connectionWrite is a scheduled adjacency-list save for one source
// entity, produced by a completed connect gesture.
type connectionWrite struct {
	Ref     NodeRef
	Targets []string
}

// ConnectionGraph projects the directed edges out of each entity's
// ConnectedTo list. The store stays the single source of truth; the
// graph only owns the connect-mode gesture state.
type ConnectionGraph struct {
	store       *EntityStore
	connectMode bool
	pending     *NodeRef
}

func NewConnectionGraph(store *EntityStore) *ConnectionGraph {
	return &ConnectionGraph{store: store}
}

func (g *ConnectionGraph) ConnectMode() bool { return g.connectMode }

// Pending returns the first endpoint of an in-progress connect
// gesture, nil when none.
func (g *ConnectionGraph) Pending() *NodeRef { return g.pending }

// ToggleConnectMode flips connect mode. Leaving the mode drops any
// half-finished gesture.
func (g *ConnectionGraph) ToggleConnectMode() bool {
	g.connectMode = !g.connectMode
	if !g.connectMode {
		g.pending = nil
	}
	return g.connectMode
}

// NodeActivated handles a node click while connect mode is on. The
// first click registers the source endpoint, the second creates the
// edge pending→ref. Self-loops are refused with the pending endpoint
// kept so the user can pick a different target. The returned write is
// non-nil when a new edge must be persisted; consumed=false means the
// click should fall through to drag/navigation.
func (g *ConnectionGraph) NodeActivated(ref NodeRef) (write *connectionWrite, consumed bool) {
	if !g.connectMode {
		return nil, false
	}
	if g.pending == nil {
		p := ref
		g.pending = &p
		return nil, true
	}
	if *g.pending == ref {
		return nil, true
	}
	from := *g.pending
	g.pending = nil
	src, ok := g.store.Get(from)
	if !ok {
		return nil, true
	}
	for _, id := range src.ConnectedTo {
		if id == ref.ID {
			// Edge already exists; the gesture is idempotent.
			return nil, true
		}
	}
	merged := append(append([]string(nil), src.ConnectedTo...), ref.ID)
	g.store.SetConnections(from, merged)
	return &connectionWrite{Ref: from, Targets: merged}, true
}

// Connections rebuilds the edge list from entity state. Targets whose
// entity no longer exists are skipped, not errors; the CRUD screens
// delete entities without cleaning up inbound references.
func (g *ConnectionGraph) Connections() []Connection {
	var out []Connection
	for _, e := range g.store.All() {
		for _, id := range e.ConnectedTo {
			target, ok := g.store.Lookup(id)
			if !ok {
				continue
			}
			out = append(out, Connection{From: e.Ref(), To: target.Ref()})
		}
	}
	return out
}
