package main

// EntityKind distinguishes notes from folders. Both kinds live on the
// same canvas and are connectable.
type EntityKind string

const (
	KindNote   EntityKind = "note"
	KindFolder EntityKind = "folder"
)

// Point is a position in either world or screen space, depending on
// context. World coordinates are zoom/pan independent.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeRef identifies an entity on the canvas. IDs are only unique
// within their kind.
type NodeRef struct {
	Kind EntityKind
	ID   string
}

// Entity is one note or folder as the canvas sees it. Position and
// ConnectedTo are the only fields the canvas ever writes; everything
// else is owned by the CRUD screens and passed through unchanged.
type Entity struct {
	ID          string     `json:"id"`
	Kind        EntityKind `json:"kind"`
	Title       string     `json:"title"`
	Position    *Point     `json:"position"`
	ConnectedTo []string   `json:"connectedTo"`
	ColorTag    int        `json:"colorTag"`
	CrossedOut  bool       `json:"crossedOut"`
}

// Ref returns the entity's canvas identifier.
func (e *Entity) Ref() NodeRef {
	return NodeRef{Kind: e.Kind, ID: e.ID}
}

// Pos returns the entity's world position, treating an unplaced
// entity as the origin. The synthesized origin is never persisted
// unless the user actually moves the entity.
func (e *Entity) Pos() Point {
	if e.Position == nil {
		return Point{}
	}
	return *e.Position
}

// Viewport is the visible window onto the world plane.
type Viewport struct {
	Zoom float64
	Pan  Point
}

// Bounds is the world-space rectangle enclosing all placed entities,
// card footprint included.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Rect is a screen- or minimap-space rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Connection is one directed edge of the graph. It is derived from
// the source entity's ConnectedTo list and never stored on its own.
type Connection struct {
	From NodeRef
	To   NodeRef
}
