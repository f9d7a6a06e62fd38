package boardwalk

// Color represents an RGBA tint with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// SelectionTint is applied to the selected entity's sprite.
var SelectionTint = Color{0.75, 0.9, 1, 1}

// dimAlpha is the sprite alpha used while a controller is disabled by an
// exclusive edit mode.
const dimAlpha = 0.5

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset returns the rectangle grown outward by pad on every side.
// Negative pad shrinks it.
func (r Rect) Inset(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, Width: r.Width + 2*pad, Height: r.Height + 2*pad}
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// EntityKind identifies one of the closed set of placeable entity kinds.
// Every kind has its own document list except Player, which is a singleton.
type EntityKind uint8

const (
	KindNone   EntityKind = iota // no entity / cleared selection
	KindItem                     // decorative or interactive placed object
	KindFrame                    // picture frame with a user image
	KindSocial                   // social network icon with a link
	KindNPC                      // non-player character with dialog
	KindPlayer                   // the player spawn (singleton)
)

// String returns the short tag for the kind, matching the ID prefix the
// document assigns to entities of that kind.
func (k EntityKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindFrame:
		return "frame"
	case KindSocial:
		return "social"
	case KindNPC:
		return "npc"
	case KindPlayer:
		return "player"
	default:
		return "none"
	}
}

// Render depth bands. Entities of each kind render within their band;
// the selection decoration renders above everything.
const (
	DepthBackground = 0
	DepthFrame      = 100
	DepthItem       = 200
	DepthSocial     = 300
	DepthNPC        = 400
	DepthPlayer     = 500
	DepthSelection  = 900
	DepthUI         = 1000
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// EventType identifies a kind of builder interaction event.
type EventType uint8

const (
	EventSelect      EventType = iota // an entity became the current selection
	EventDeselect                     // the selection was cleared
	EventDragStart                    // a sprite drag began
	EventDrag                         // fires each frame while a sprite drags
	EventDragEnd                      // a sprite drag ended; position persisted
	EventDrop                         // a palette drop created a new entity
	EventDoubleClick                  // a double click on an entity
)

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders an image scaled to Width x Height
)

// EditMode selects which controllers accept interaction. Modes are mutually
// exclusive: entering one disables and dims the controllers it excludes.
type EditMode uint8

const (
	ModeLayout EditMode = iota // place and move entities (default)
	ModeDialog                 // edit dialog zones; entity controllers disabled
	ModePlay                   // game mode; builder interaction disabled
)
