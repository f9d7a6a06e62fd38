package boardwalk

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// touchMoveThreshold is the screen-space movement (pixels) past which a
// single-touch candidate commits to either a sprite drag or a camera pan.
const touchMoveThreshold = 6.0

// pointerState tracks the mouse pointer across frames.
type pointerState struct {
	down    bool
	button  MouseButton
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
	overUI  bool
	// dragScrollCandidate is set on a left press that hit no sprite; once
	// movement passes dragScrollThreshold it commits to drag-to-scroll.
	dragScrollCandidate bool
}

// touchPoint is one active touch in screen coordinates.
type touchPoint struct {
	id   ebiten.TouchID
	x, y float64
}

// touchState tracks touch gesture disambiguation across frames.
type touchState struct {
	points  []touchPoint
	start   Vec2
	decided bool
	// candidate is the already-selected sprite the touch began over, if
	// any; movement then hands off to its drag instead of a camera pan.
	candidate *Interactable
	pinching  bool
	// ignoreUntilUp suppresses the trailing finger after a pinch ends so
	// it is not misread as a new pan or tap.
	ignoreUntilUp bool
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processInput classifies this frame's pointer, touch, and wheel input and
// routes each gesture to the viewport or the interaction protocol.
// Injected synthetic events take the mouse's place for the frame.
func (b *Builder) processInput() {
	mods := readModifiers()

	if b.processInjectedInput(mods) {
		// Synthetic frames replace real polling entirely so a test's
		// touch sequence is not clobbered by the empty real touch set.
		return
	}
	b.processMouse(mods)
	b.processWheel(mods)
	b.processTouches()
}

// processMouse polls the real mouse and runs the pointer state machine.
func (b *Builder) processMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	b.processPointer(sx, sy, pressed, button, mods)
}

// processWheel polls the wheel and feeds the viewport's zoom/pan inputs.
func (b *Builder) processWheel(mods KeyModifiers) {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	if b.gestures.OverUI(sx, sy) {
		return
	}
	b.viewport.HandleWheel(sx, sy, dx, dy, mods&ModCtrl != 0)
}

// processPointer runs the mouse pointer state machine. Coordinates are in
// screen space; world conversion happens at the point of use so mid-drag
// zoom changes stay consistent.
func (b *Builder) processPointer(sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	_ = mods
	ps := &b.mouse

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.dragScrollCandidate = false
		ps.overUI = b.gestures.OverUI(sx, sy)
		if ps.overUI || b.gestures.PaletteDragging() {
			return
		}

		if button == MouseButtonRight || button == MouseButtonMiddle {
			b.viewport.BeginPan(GesturePan, sx, sy)
			return
		}

		wx, wy := b.viewport.ScreenToWorld(sx, sy)
		if it := b.interactions.HitTest(b.world, wx, wy, 0); it != nil {
			b.interactions.PointerDown(it, wx, wy)
			return
		}
		// Background press: clears the selection (provided no gesture is
		// in flight) and becomes a drag-to-scroll candidate.
		if !b.gestures.Busy() && !b.interactions.Dragging() {
			b.doc.ClearSelection()
		}
		ps.dragScrollCandidate = true

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if b.interactions.Dragging() {
			wx, wy := b.viewport.ScreenToWorld(sx, sy)
			b.interactions.PointerMove(wx, wy)
		} else {
			if ps.dragScrollCandidate && b.gestures.Active() == GestureNone {
				dx := sx - ps.startX
				dy := sy - ps.startY
				if math.Hypot(dx, dy) > dragScrollThreshold {
					if b.viewport.BeginPan(GestureDragScroll, ps.startX, ps.startY) {
						ps.dragScrollCandidate = false
					}
				}
			}
			b.viewport.PanMove(sx, sy)
		}
		ps.lastX, ps.lastY = sx, sy

	case !pressed && ps.down:
		// Release. Also reached when the pointer reports not-down after
		// leaving the window, which must not strand a drag.
		b.interactions.PointerUp()
		b.viewport.EndPan()
		ps.down = false
		ps.dragScrollCandidate = false

	default:
		// Hover.
		if sx != ps.lastX || sy != ps.lastY {
			wx, wy := b.viewport.ScreenToWorld(sx, sy)
			b.hovering = !b.gestures.OverUI(sx, sy) &&
				b.interactions.HitTest(b.world, wx, wy, 0) != nil
			ps.lastX, ps.lastY = sx, sy
		}
	}
}

// processTouches polls real touches and runs gesture disambiguation.
func (b *Builder) processTouches() {
	ids := ebiten.AppendTouchIDs(b.touchIDBuf[:0])
	b.touchIDBuf = ids

	cur := b.touchPointBuf[:0]
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		cur = append(cur, touchPoint{id: id, x: float64(x), y: float64(y)})
	}
	b.touchPointBuf = cur
	b.applyTouches(cur)
}

// applyTouches advances the touch state machine for this frame's touch set.
//
// A single touch starts a candidate (tap, pan, or sprite drag) without
// committing; first movement past the threshold decides. A second touch
// always promotes to pinch and cancels whatever was in progress. The
// trailing finger after a pinch is ignored until lifted.
func (b *Builder) applyTouches(cur []touchPoint) {
	ts := &b.touch
	prevCount := len(ts.points)
	count := len(cur)
	// Record this frame's points up front: several branches below return
	// early, and prevCount must see them next frame regardless.
	ts.points = append(ts.points[:0], cur...)

	switch {
	case count >= 2:
		p0, p1 := cur[0], cur[1]
		dist := math.Hypot(p1.x-p0.x, p1.y-p0.y)
		if !ts.pinching {
			ts.pinching = true
			ts.candidate = nil
			ts.decided = true
			b.viewport.BeginPinch(dist)
		} else {
			cx := (p0.x + p1.x) / 2
			cy := (p0.y + p1.y) / 2
			b.viewport.UpdatePinch(cx, cy, dist)
		}

	case count == 1:
		t := cur[0]
		if ts.pinching {
			// 2 -> 1: pinch over; the remaining finger is dead weight.
			ts.pinching = false
			ts.ignoreUntilUp = true
			b.viewport.EndPinch()
			return
		}
		if ts.ignoreUntilUp {
			return
		}
		if prevCount == 0 {
			ts.start = Vec2{t.x, t.y}
			ts.decided = false
			ts.candidate = nil
			if !b.gestures.OverUI(t.x, t.y) && !b.gestures.InCooldown() {
				wx, wy := b.viewport.ScreenToWorld(t.x, t.y)
				if it := b.interactions.HitTest(b.world, wx, wy, touchHitPadding); it != nil && it.cb.IsSelected() {
					ts.candidate = it
				}
			}
			return
		}
		if !ts.decided {
			if math.Hypot(t.x-ts.start.X, t.y-ts.start.Y) > touchMoveThreshold {
				ts.decided = true
				wx, wy := b.viewport.ScreenToWorld(t.x, t.y)
				if ts.candidate != nil && b.interactions.BeginTouchDrag(ts.candidate, wx, wy) {
					// Sprite drag claimed the touch; no camera pan.
				} else {
					b.viewport.BeginPan(GesturePan, t.x, t.y)
				}
			}
			return
		}
		if b.interactions.Dragging() {
			wx, wy := b.viewport.ScreenToWorld(t.x, t.y)
			b.interactions.PointerMove(wx, wy)
		} else {
			b.viewport.PanMove(t.x, t.y)
		}

	case count == 0 && prevCount > 0:
		if ts.pinching {
			ts.pinching = false
			b.viewport.EndPinch()
		} else if !ts.decided && !ts.ignoreUntilUp && prevCount == 1 {
			// Undecided single touch that never moved: a tap. Taps get
			// click semantics at the start point.
			b.touchTap(ts.start.X, ts.start.Y)
		}
		b.interactions.PointerUp()
		b.viewport.EndPan()
		ts.decided = false
		ts.candidate = nil
		ts.ignoreUntilUp = false
	}
}

// touchTap resolves an undecided touch release: select the sprite under it
// or clear the selection on background, mirroring a left click.
func (b *Builder) touchTap(sx, sy float64) {
	if b.gestures.OverUI(sx, sy) || b.gestures.InCooldown() {
		return
	}
	wx, wy := b.viewport.ScreenToWorld(sx, sy)
	if it := b.interactions.HitTest(b.world, wx, wy, touchHitPadding); it != nil {
		b.interactions.PointerDown(it, wx, wy)
		return
	}
	if !b.gestures.Busy() && !b.interactions.Dragging() {
		b.doc.ClearSelection()
	}
}
