package main

type dragState int

const (
	dragIdle dragState = iota
	dragArmed
	dragDragging
)

// positionWrite is one scheduled, debounced position save. Seq ties
// the write to the drag that produced it; a newer drag of the same
// entity makes older writes stale.
type positionWrite struct {
	Ref NodeRef
	Pos Point
	Seq int
}

// DragSession moves one entity at a time. Pointer-down arms it,
// the first real movement starts the drag, pointer-up schedules the
// debounced save. Armed-but-unmoved sessions are clicks and schedule
// nothing. The sequence counters live here so the scheduled write's
// lifecycle is owned by the session, not by an ambient timer handle.
type DragSession struct {
	state       dragState
	ref         NodeRef
	offset      Point
	startScreen Point
	lastPos     Point
	seq         map[NodeRef]int
}

func NewDragSession() *DragSession {
	return &DragSession{seq: make(map[NodeRef]int)}
}

func (d *DragSession) Active() bool { return d.state != dragIdle }

// Ref returns the entity under drag; only meaningful while Active.
func (d *DragSession) Ref() NodeRef { return d.ref }

// Begin arms a drag for ref at the given pointer position. Silently
// refuses while another session is active or while connect mode has
// claimed the gesture; pointer delivery order across devices is not
// something the caller can fully control.
func (d *DragSession) Begin(ref NodeRef, screen Point, vp Viewport, store *EntityStore, connectMode bool) bool {
	if d.state != dragIdle || connectMode {
		return false
	}
	if _, ok := store.Get(ref); !ok {
		return false
	}
	world := toWorld(screen, vp)
	pos := store.Position(ref)
	d.state = dragArmed
	d.ref = ref
	d.offset = Point{X: world.X - pos.X, Y: world.Y - pos.Y}
	d.startScreen = screen
	d.lastPos = pos
	// A drag in progress means the quiet period is over; any write
	// still pending for this entity is superseded.
	d.seq[ref]++
	return true
}

// Update applies a pointer move to the dragged entity. The armed
// state absorbs zero-movement events so a click misread as a
// micro-drag never mutates the store.
func (d *DragSession) Update(screen Point, vp Viewport, store *EntityStore) {
	switch d.state {
	case dragIdle:
		return
	case dragArmed:
		if screen == d.startScreen {
			return
		}
		d.state = dragDragging
	}
	world := toWorld(screen, vp)
	d.lastPos = Point{X: world.X - d.offset.X, Y: world.Y - d.offset.Y}
	store.SetPosition(d.ref, d.lastPos)
}

// End finishes the session. It returns the write to schedule after
// the debounce period, or ok=false when the gesture was a plain click
// and nothing needs saving.
func (d *DragSession) End() (positionWrite, bool) {
	state := d.state
	d.state = dragIdle
	if state != dragDragging {
		return positionWrite{}, false
	}
	d.seq[d.ref]++
	return positionWrite{Ref: d.ref, Pos: d.lastPos, Seq: d.seq[d.ref]}, true
}

// Cancel abandons the session without scheduling a write, for lost
// pointers and view teardown. The optimistic position already in the
// store stands.
func (d *DragSession) Cancel() {
	d.state = dragIdle
}

// Due reports whether a fired debounce timer still represents the
// latest position for its entity.
func (d *DragSession) Due(w positionWrite) bool {
	return d.seq[w.Ref] == w.Seq
}
