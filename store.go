package main

// EntityStore is the in-memory authoritative cache of every entity on
// the canvas. Rendering, hit testing and the minimap all read from
// it; only the active session writes to it. Entity lifecycle is owned
// by the CRUD screens, so there is no delete here: the store reflects
// whatever the gateway last listed.
type EntityStore struct {
	entities map[NodeRef]*Entity
	order    []NodeRef
}

func NewEntityStore() *EntityStore {
	return &EntityStore{entities: make(map[NodeRef]*Entity)}
}

// Seed replaces the full entity set, keeping list order for stable
// draw stacking.
func (s *EntityStore) Seed(entities []*Entity) {
	s.entities = make(map[NodeRef]*Entity, len(entities))
	s.order = s.order[:0]
	for _, e := range entities {
		ref := e.Ref()
		if _, dup := s.entities[ref]; !dup {
			s.order = append(s.order, ref)
		}
		s.entities[ref] = e
	}
}

// Apply inserts or replaces a single entity record, as pushed by a
// remote update.
func (s *EntityStore) Apply(e *Entity) {
	ref := e.Ref()
	if _, ok := s.entities[ref]; !ok {
		s.order = append(s.order, ref)
	}
	s.entities[ref] = e
}

func (s *EntityStore) Get(ref NodeRef) (*Entity, bool) {
	e, ok := s.entities[ref]
	return e, ok
}

// Lookup finds an entity by bare id across both kinds. ConnectedTo
// lists carry ids without kinds, so edge targets resolve this way.
func (s *EntityStore) Lookup(id string) (*Entity, bool) {
	if e, ok := s.entities[NodeRef{Kind: KindNote, ID: id}]; ok {
		return e, true
	}
	if e, ok := s.entities[NodeRef{Kind: KindFolder, ID: id}]; ok {
		return e, true
	}
	return nil, false
}

// Position returns the entity's world position, origin for unplaced
// or unknown entities.
func (s *EntityStore) Position(ref NodeRef) Point {
	if e, ok := s.entities[ref]; ok {
		return e.Pos()
	}
	return Point{}
}

// SetPosition moves an entity, producing a fresh record so consumers
// comparing references see the change. In-memory only; persistence is
// the session's business.
func (s *EntityStore) SetPosition(ref NodeRef, p Point) {
	e, ok := s.entities[ref]
	if !ok {
		return
	}
	next := *e
	pos := p
	next.Position = &pos
	s.entities[ref] = &next
}

// SetConnections replaces an entity's adjacency list, again with a
// fresh record and a defensive copy of the slice.
func (s *EntityStore) SetConnections(ref NodeRef, targets []string) {
	e, ok := s.entities[ref]
	if !ok {
		return
	}
	next := *e
	next.ConnectedTo = append([]string(nil), targets...)
	s.entities[ref] = &next
}

// All returns the entities in stable order.
func (s *EntityStore) All() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, s.entities[ref])
	}
	return out
}

func (s *EntityStore) Len() int { return len(s.entities) }
