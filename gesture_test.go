package boardwalk

import "testing"

func TestGesturesExclusive(t *testing.T) {
	g := NewGestures()

	if !g.Begin(GestureSpriteDrag) {
		t.Fatal("first Begin should succeed")
	}
	if g.Begin(GesturePan) {
		t.Error("second gesture must not claim a busy pointer")
	}
	if g.Active() != GestureSpriteDrag {
		t.Errorf("Active = %v, want sprite drag", g.Active())
	}

	g.End(GestureSpriteDrag)
	if g.Busy() {
		t.Error("End should release ownership")
	}
	if !g.Begin(GesturePan) {
		t.Error("Begin after End should succeed")
	}
}

func TestGesturesEndWrongKindIgnored(t *testing.T) {
	g := NewGestures()
	g.Begin(GesturePan)
	g.End(GestureSpriteDrag)
	if g.Active() != GesturePan {
		t.Error("ending a non-owning kind must not release the pointer")
	}
}

func TestPinchPreemptsAndRunsInterrupts(t *testing.T) {
	g := NewGestures()
	var interrupted bool
	g.OnInterrupt(func() { interrupted = true })

	g.Begin(GestureSpriteDrag)
	if !g.Begin(GesturePinch) {
		t.Fatal("pinch must always claim")
	}
	if !interrupted {
		t.Error("interrupt callback should run on preemption")
	}
	if g.Active() != GesturePinch {
		t.Errorf("Active = %v, want pinch", g.Active())
	}
}

func TestPinchFromIdleSkipsInterrupts(t *testing.T) {
	g := NewGestures()
	var interrupted bool
	g.OnInterrupt(func() { interrupted = true })

	g.Begin(GesturePinch)
	if interrupted {
		t.Error("no interrupt should run when nothing was preempted")
	}
}

func TestPinchCooldown(t *testing.T) {
	g := NewGestures()
	g.Begin(GesturePinch)
	g.End(GesturePinch)

	if !g.InCooldown() {
		t.Fatal("cooldown should start when a pinch ends")
	}
	if g.Begin(GesturePan) {
		t.Error("pan must not start during pinch cooldown")
	}

	for i := 0; i < pinchCooldownTicks; i++ {
		g.Tick()
	}
	if g.InCooldown() {
		t.Error("cooldown should expire")
	}
	if !g.Begin(GesturePan) {
		t.Error("pan should start after cooldown")
	}
}

func TestPinchIgnoresCooldown(t *testing.T) {
	g := NewGestures()
	g.Begin(GesturePinch)
	g.End(GesturePinch)

	// A new pinch during the trailing-finger window is legitimate.
	if !g.Begin(GesturePinch) {
		t.Error("a new pinch must start even during cooldown")
	}
}

func TestOverUI(t *testing.T) {
	g := NewGestures()
	if g.OverUI(5, 5) {
		t.Error("no hit test installed: nothing is UI")
	}
	g.SetUIHitTest(func(sx, sy float64) bool { return sy < 50 })
	if !g.OverUI(10, 10) || g.OverUI(10, 100) {
		t.Error("hit test result not honored")
	}
}

func TestPaletteDragFlag(t *testing.T) {
	g := NewGestures()
	g.SetPaletteDrag(true)
	if !g.PaletteDragging() {
		t.Error("flag should be set")
	}
	g.SetPaletteDrag(false)
	if g.PaletteDragging() {
		t.Error("flag should be cleared")
	}
}
