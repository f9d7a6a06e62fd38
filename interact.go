package boardwalk

import "math"

// doubleClickTicks is the window within which a second press on the same
// target counts as a double click (~350ms at 60 TPS).
const doubleClickTicks = 21

// touchHitPadding grows a target's hit bounds for touch input, compensating
// for finger accuracy.
const touchHitPadding = 10.0

// InteractionConfig is the per-target policy a kind controller supplies
// when attaching the protocol.
type InteractionConfig struct {
	// Bounds is the axis-aligned constraint rectangle for drag positions.
	// Positions outside are clamped, never rejected.
	Bounds Rect

	// GridSize, when > 0, snaps dragged positions to this pixel pitch.
	GridSize float64
}

// InteractionCallbacks are the protocol's notifications to the owning kind
// controller. Nil callbacks are skipped. IsSelected must be non-nil: the
// two-phase rule (first click selects, second press drags) depends on it.
type InteractionCallbacks struct {
	OnSelect    func()
	OnDragStart func()
	OnDrag      func(x, y float64)
	OnDragEnd   func(x, y float64)
	IsSelected  func() bool

	// OnDoubleClick, when it returns true, consumes the press entirely:
	// no selection change, no drag.
	OnDoubleClick func() bool
}

// Interactable is one attached target: a sprite node plus its policy.
type Interactable struct {
	node *Node
	cfg  InteractionConfig
	cb   InteractionCallbacks

	set *Interactions

	// lastClickTick records when this target was last pressed, for
	// double-click detection. -1 means never.
	lastClickTick int
}

// Node returns the scene node this target controls.
func (it *Interactable) Node() *Node {
	return it.node
}

// Detach removes the target from its interaction set.
func (it *Interactable) Detach() {
	if it.set != nil {
		it.set.detach(it.node)
		it.set = nil
	}
}

// Interactions is the shared drag/select/double-click state machine. All
// placeable entities attach through the same instance, which enforces the
// exactly-one-active-drag invariant.
type Interactions struct {
	gestures *Gestures
	byNode   map[*Node]*Interactable

	// active is the one target currently in the Dragging state, or nil.
	active *Interactable

	// dragOffset is targetPos - pointerWorldPos captured at drag entry.
	dragOffset Vec2

	tick int
}

// NewInteractions creates an empty interaction set. A pinch preempting an
// active drag force-ends it through the arbitration context's interrupts.
func NewInteractions(gestures *Gestures) *Interactions {
	s := &Interactions{
		gestures: gestures,
		byNode:   make(map[*Node]*Interactable),
	}
	gestures.OnInterrupt(s.CancelDrag)
	return s
}

// Attach registers a node with the protocol and returns its handle.
func (s *Interactions) Attach(n *Node, cfg InteractionConfig, cb InteractionCallbacks) *Interactable {
	it := &Interactable{node: n, cfg: cfg, cb: cb, set: s, lastClickTick: -1}
	s.byNode[n] = it
	n.Interactable = true
	return it
}

func (s *Interactions) detach(n *Node) {
	if it, ok := s.byNode[n]; ok && it == s.active {
		s.endDrag()
	}
	delete(s.byNode, n)
	n.Interactable = false
}

// Lookup returns the interactable attached to n, if any.
func (s *Interactions) Lookup(n *Node) (*Interactable, bool) {
	it, ok := s.byNode[n]
	return it, ok
}

// Dragging reports whether any target is currently in the Dragging state.
func (s *Interactions) Dragging() bool {
	return s.active != nil
}

// Tick advances the double-click clock. Called once per update.
func (s *Interactions) Tick() {
	s.tick++
}

// HitTest finds the topmost interactable sprite at the world point,
// walking the tree in painter order (depth-sorted, insertion tie-break)
// and testing in reverse so the visually topmost target wins. pad grows
// each target's hit bounds (touch accuracy).
func (s *Interactions) HitTest(root *Node, wx, wy, pad float64) *Interactable {
	var buf []*Node
	buf = collectInteractable(root, buf)
	for i := len(buf) - 1; i >= 0; i-- {
		n := buf[i]
		if _, ok := s.byNode[n]; !ok {
			continue
		}
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly, pad) {
			return s.byNode[n]
		}
	}
	return nil
}

// collectInteractable walks the tree in painter order, appending
// interactable sprite nodes. Invisible subtrees are skipped entirely;
// non-interactable nodes are passed over but their children still walked,
// so a plain container never hides its sprites.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && n.Type == NodeTypeSprite {
		buf = append(buf, n)
	}
	for _, child := range sortedOrder(n) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit
// region, grown by pad. Uses HitShape if set (pad ignored for custom
// shapes except rectangles); otherwise the node's unscaled dimensions.
func nodeContainsLocal(n *Node, lx, ly, pad float64) bool {
	if n.HitShape != nil {
		if r, ok := n.HitShape.(HitRect); ok && pad > 0 {
			return HitRect{X: r.X - pad, Y: r.Y - pad, Width: r.Width + 2*pad, Height: r.Height + 2*pad}.Contains(lx, ly)
		}
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= -pad && lx <= n.Width+pad && ly >= -pad && ly <= n.Height+pad
}

// PointerDown runs the press half of the state machine for a hit target.
// The caller (input classifier) has already established that the pointer is
// not over UI and no other gesture owns it.
//
// First click on an unselected target only selects. A press on an
// already-selected target enters Dragging immediately; the two-phase rule
// prevents accidental drags while picking among densely packed objects.
// Do not "fix" this to drag-on-first-press.
func (s *Interactions) PointerDown(it *Interactable, wx, wy float64) {
	if s.active != nil || s.gestures.Busy() || s.gestures.InCooldown() {
		return
	}

	doubleClick := it.lastClickTick >= 0 && s.tick-it.lastClickTick <= doubleClickTicks
	it.lastClickTick = s.tick
	if doubleClick && it.cb.OnDoubleClick != nil && it.cb.OnDoubleClick() {
		return
	}

	if !it.cb.IsSelected() {
		if it.cb.OnSelect != nil {
			it.cb.OnSelect()
		}
		return
	}

	s.beginDrag(it, wx, wy)
}

// BeginTouchDrag is the touch activation path. The camera controller owns
// single-touch disambiguation and calls this only when the touch began
// within the target's padded hit bounds and the target is already
// selected, so sprites never race to claim a touch.
func (s *Interactions) BeginTouchDrag(it *Interactable, wx, wy float64) bool {
	if s.active != nil || !it.cb.IsSelected() {
		return false
	}
	return s.beginDrag(it, wx, wy)
}

func (s *Interactions) beginDrag(it *Interactable, wx, wy float64) bool {
	if !s.gestures.Begin(GestureSpriteDrag) {
		return false
	}
	s.active = it
	s.dragOffset = Vec2{X: it.node.X - wx, Y: it.node.Y - wy}
	if it.cb.OnDragStart != nil {
		it.cb.OnDragStart()
	}
	return true
}

// PointerMove drives the active drag from scene-level pointer movement.
// Scene-level, not per-sprite: fast pointer movement off a small sprite's
// bounds must not drop the drag.
func (s *Interactions) PointerMove(wx, wy float64) {
	it := s.active
	if it == nil {
		return
	}
	if it.node.IsDisposed() {
		// The entity was deleted out from under an in-flight drag.
		s.endDrag()
		return
	}

	x := wx + s.dragOffset.X
	y := wy + s.dragOffset.Y
	if g := it.cfg.GridSize; g > 0 {
		x = math.Round(x/g) * g
		y = math.Round(y/g) * g
	}
	x, y = clampToBounds(x, y, it.cfg.Bounds)

	it.node.SetPosition(x, y)
	if it.cb.OnDrag != nil {
		it.cb.OnDrag(x, y)
	}
}

// PointerUp exits Dragging. Also covers release outside the canvas: the
// classifier calls it whenever the pointer reports not-down.
func (s *Interactions) PointerUp() {
	if s.active == nil {
		return
	}
	it := s.active
	x, y := it.node.X, it.node.Y
	s.endDrag()
	if it.cb.OnDragEnd != nil {
		it.cb.OnDragEnd(x, y)
	}
}

// CancelDrag force-ends any active drag (pinch preemption, mode switch).
// The entity stays at its last valid, already-clamped position; OnDragEnd
// still fires so the position persists. No rollback.
func (s *Interactions) CancelDrag() {
	s.PointerUp()
}

func (s *Interactions) endDrag() {
	s.active = nil
	s.gestures.End(GestureSpriteDrag)
}

// clampToBounds restricts a position to the constraint rectangle.
func clampToBounds(x, y float64, b Rect) (float64, float64) {
	if b.Width <= 0 && b.Height <= 0 {
		return x, y
	}
	if x < b.X {
		x = b.X
	}
	if x > b.X+b.Width {
		x = b.X + b.Width
	}
	if y < b.Y {
		y = b.Y
	}
	if y > b.Y+b.Height {
		y = b.Y + b.Height
	}
	return x, y
}
