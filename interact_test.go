package boardwalk

import "testing"

// interactFixture wires one sprite into a fresh interaction set with a
// selectable flag, mirroring how a kind controller attaches its nodes.
type interactFixture struct {
	gestures *Gestures
	set      *Interactions
	root     *Node
	node     *Node
	it       *Interactable

	selected bool
	events   []string
	dragEnd  Vec2
}

func newInteractFixture(cfg InteractionConfig) *interactFixture {
	f := &interactFixture{
		gestures: NewGestures(),
		root:     NewContainer("root"),
	}
	f.set = NewInteractions(f.gestures)
	f.node = NewSprite("s", nil, 40, 40)
	f.node.SetPosition(100, 100)
	f.root.AddChild(f.node)
	f.it = f.set.Attach(f.node, cfg, InteractionCallbacks{
		IsSelected: func() bool { return f.selected },
		OnSelect: func() {
			f.selected = true
			f.events = append(f.events, "select")
		},
		OnDragStart: func() { f.events = append(f.events, "dragstart") },
		OnDrag:      func(x, y float64) { f.events = append(f.events, "drag") },
		OnDragEnd: func(x, y float64) {
			f.events = append(f.events, "dragend")
			f.dragEnd = Vec2{x, y}
		},
	})
	updateWorldTransform(f.root, identityTransform, 1.0, false)
	return f
}

func TestFirstPressSelectsOnly(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})

	// The press lands on an unselected sprite: selection changes, but no
	// drag starts even if the pointer then moves.
	f.set.PointerDown(f.it, 110, 110)
	if !f.selected {
		t.Fatal("first press should select")
	}
	if f.set.Dragging() {
		t.Fatal("first press must not start a drag")
	}
	f.set.PointerMove(200, 200)
	if f.node.X != 100 {
		t.Error("moving after a select-only press must not move the sprite")
	}
}

func TestSecondPressDrags(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.selected = true

	f.set.PointerDown(f.it, 110, 110)
	if !f.set.Dragging() {
		t.Fatal("press on a selected sprite should start a drag")
	}
	f.set.PointerMove(150, 130)
	// Grab offset preserved: grabbed 10 units in, so position = pointer - 10.
	assertFloat(t, "drag x", f.node.X, 140)
	assertFloat(t, "drag y", f.node.Y, 120)

	f.set.PointerUp()
	if f.set.Dragging() {
		t.Fatal("release should end the drag")
	}
	assertFloat(t, "dragend x", f.dragEnd.X, 140)
	assertFloat(t, "dragend y", f.dragEnd.Y, 120)

	want := []string{"dragstart", "drag", "dragend"}
	if len(f.events) != 3 {
		t.Fatalf("events = %v", f.events)
	}
	for i, e := range want {
		if f.events[i] != e {
			t.Fatalf("events = %v, want %v", f.events, want)
		}
	}
}

func TestOnlyOneDragAtATime(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.selected = true

	other := NewSprite("other", nil, 40, 40)
	f.root.AddChild(other)
	otherSelected := true
	var otherDragged bool
	otherIt := f.set.Attach(other, InteractionConfig{}, InteractionCallbacks{
		IsSelected:  func() bool { return otherSelected },
		OnDragStart: func() { otherDragged = true },
	})
	updateWorldTransform(f.root, identityTransform, 1.0, false)

	f.set.PointerDown(f.it, 110, 110)
	f.set.PointerDown(otherIt, 10, 10)

	if otherDragged {
		t.Error("a second drag must not start while one is active")
	}
	if f.set.active != f.it {
		t.Error("the original drag must keep the pointer")
	}
}

func TestDragSnapsToGrid(t *testing.T) {
	f := newInteractFixture(InteractionConfig{GridSize: 8})
	f.selected = true

	f.set.PointerDown(f.it, 100, 100)
	f.set.PointerMove(113, 121)
	// 113 -> 112, 121 -> 120.
	assertFloat(t, "snap x", f.node.X, 112)
	assertFloat(t, "snap y", f.node.Y, 120)
}

func TestDragClampedToBounds(t *testing.T) {
	f := newInteractFixture(InteractionConfig{Bounds: Rect{Width: 500, Height: 400}})
	f.selected = true

	f.set.PointerDown(f.it, 100, 100)
	f.set.PointerMove(-50, 9999)
	assertFloat(t, "clamp x", f.node.X, 0)
	assertFloat(t, "clamp y", f.node.Y, 400)
}

func TestDoubleClickConsumes(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	consume := true
	var doubles int
	f.it.cb.OnDoubleClick = func() bool {
		doubles++
		return consume
	}

	f.set.PointerDown(f.it, 110, 110) // first click selects
	f.set.Tick()
	f.set.PointerDown(f.it, 110, 110) // double click

	if doubles != 1 {
		t.Fatalf("doubles = %d, want 1", doubles)
	}
	if f.set.Dragging() {
		t.Error("a consumed double click must not start a drag")
	}
}

func TestDoubleClickUnconsumedFallsThrough(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.it.cb.OnDoubleClick = func() bool { return false }

	f.set.PointerDown(f.it, 110, 110)
	f.set.Tick()
	f.set.PointerDown(f.it, 110, 110)

	// Unconsumed double click behaves like a normal press: the sprite is
	// selected by now, so the press starts a drag.
	if !f.set.Dragging() {
		t.Error("unconsumed double click should continue the protocol")
	}
}

func TestDoubleClickWindowExpires(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	var doubles int
	f.it.cb.OnDoubleClick = func() bool {
		doubles++
		return true
	}

	f.set.PointerDown(f.it, 110, 110)
	for i := 0; i < doubleClickTicks+1; i++ {
		f.set.Tick()
	}
	f.set.PointerDown(f.it, 110, 110)

	if doubles != 0 {
		t.Errorf("doubles = %d, want 0 after window expired", doubles)
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})

	top := NewSprite("top", nil, 40, 40)
	top.SetPosition(100, 100)
	top.Depth = f.node.Depth + 1
	f.root.AddChild(top)
	topIt := f.set.Attach(top, InteractionConfig{}, InteractionCallbacks{
		IsSelected: func() bool { return false },
	})
	updateWorldTransform(f.root, identityTransform, 1.0, false)

	got := f.set.HitTest(f.root, 110, 110, 0)
	if got != topIt {
		t.Error("the deeper (topmost drawn) sprite must win the hit test")
	}
}

func TestHitTestPadding(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})

	if f.set.HitTest(f.root, 95, 95, 0) != nil {
		t.Error("point outside bounds must miss without padding")
	}
	if f.set.HitTest(f.root, 95, 95, touchHitPadding) != f.it {
		t.Error("padded hit test should catch near misses")
	}
}

func TestHitTestCustomHitRect(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.node.HitShape = HitRect{X: 10, Y: 10, Width: 20, Height: 20}
	updateWorldTransform(f.root, identityTransform, 1.0, false)

	if f.set.HitTest(f.root, 105, 105, 0) != nil {
		t.Error("point inside sprite but outside HitShape must miss")
	}
	if f.set.HitTest(f.root, 120, 120, 0) != f.it {
		t.Error("point inside HitShape must hit")
	}
}

func TestBeginTouchDragRequiresSelection(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})

	if f.set.BeginTouchDrag(f.it, 110, 110) {
		t.Error("touch drag must not start on an unselected sprite")
	}
	f.selected = true
	if !f.set.BeginTouchDrag(f.it, 110, 110) {
		t.Error("touch drag should start on a selected sprite")
	}
}

func TestPinchPreemptionEndsDrag(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.selected = true

	f.set.PointerDown(f.it, 110, 110)
	f.set.PointerMove(150, 150)
	if !f.set.Dragging() {
		t.Fatal("drag should be active")
	}

	// A pinch claims the pointer; the interrupt ends the drag and the
	// position persists where it was last dragged.
	f.gestures.Begin(GesturePinch)
	if f.set.Dragging() {
		t.Fatal("pinch preemption must end the drag")
	}
	if f.events[len(f.events)-1] != "dragend" {
		t.Error("preempted drag must still fire its end callback")
	}
	assertFloat(t, "kept x", f.node.X, 140)
}

func TestDragOfDisposedNodeEnds(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.selected = true

	f.set.PointerDown(f.it, 110, 110)
	f.node.Dispose()
	f.set.PointerMove(200, 200)

	if f.set.Dragging() {
		t.Error("drag of a deleted entity must terminate")
	}
}

func TestDetachDuringDrag(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.selected = true

	f.set.PointerDown(f.it, 110, 110)
	f.it.Detach()

	if f.set.Dragging() {
		t.Error("detaching the active target must end the drag")
	}
	if f.gestures.Busy() {
		t.Error("gesture ownership must be released")
	}
	if f.set.HitTest(f.root, 110, 110, 0) != nil {
		t.Error("detached sprite must no longer hit test")
	}
}

func TestPointerDownBlockedDuringCooldown(t *testing.T) {
	f := newInteractFixture(InteractionConfig{})
	f.gestures.Begin(GesturePinch)
	f.gestures.End(GesturePinch)

	f.set.PointerDown(f.it, 110, 110)
	if f.selected {
		t.Error("press during pinch cooldown must be ignored")
	}
}
