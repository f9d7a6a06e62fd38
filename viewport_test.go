package boardwalk

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newTestViewport() *Viewport {
	doc := NewDocument(2000, 1200)
	return NewViewport(doc, NewGestures(), 800, 600)
}

func TestViewportSetupFitsWorld(t *testing.T) {
	v := newTestViewport()

	// Fit zoom is the smaller axis ratio: min(800/2000, 600/1200) = 0.4.
	if !approxEqual(v.Zoom(), 0.4, epsilon) {
		t.Errorf("Zoom = %v, want 0.4", v.Zoom())
	}
	x, y := v.Position()
	if !approxEqual(x, 1000, epsilon) || !approxEqual(y, 600, epsilon) {
		t.Errorf("Position = (%v,%v), want world center", x, y)
	}
}

// When the effective viewport exceeds the world along an axis, that axis
// centers the world rather than clamping to an edge. The view origin then
// sits at (world - effective)/2, which is what floating UI must project with.
func TestViewportCentersSmallWorldAxis(t *testing.T) {
	v := newTestViewport()

	// At fit zoom 0.4 the effective height is 600/0.4 = 1500 > 1200.
	_, oy := v.ViewOrigin()
	wantOy := (1200.0 - 1500.0) / 2
	if !approxEqual(oy, wantOy, epsilon) {
		t.Errorf("origin y = %v, want %v", oy, wantOy)
	}

	ox, _ := v.ViewOrigin()
	if !approxEqual(ox, 0, epsilon) {
		t.Errorf("origin x = %v, want 0 (width exactly fits)", ox)
	}
}

func TestViewportPositionClampedAtEdges(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.8
	v.targetZoom = 0.8

	v.SetPosition(0, 0)
	x, y := v.Position()
	// halfW = 800/(2*0.8) = 500, halfH = 600/(2*0.8) = 375.
	if !approxEqual(x, 500, epsilon) || !approxEqual(y, 375, epsilon) {
		t.Errorf("Position = (%v,%v), want (500,375)", x, y)
	}

	v.SetPosition(99999, 99999)
	x, y = v.Position()
	if !approxEqual(x, 1500, epsilon) || !approxEqual(y, 825, epsilon) {
		t.Errorf("Position = (%v,%v), want (1500,825)", x, y)
	}
}

func TestViewportProjectionRoundTrip(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.8
	v.targetZoom = 0.8
	v.SetPosition(700, 500)

	sx, sy := v.WorldToScreen(700, 500)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("center projects to (%v,%v), want viewport center", sx, sy)
	}

	wx, wy := v.ScreenToWorld(123, 456)
	bx, by := v.WorldToScreen(wx, wy)
	if !approxEqual(bx, 123, 1e-9) || !approxEqual(by, 456, 1e-9) {
		t.Errorf("round trip = (%v,%v), want (123,456)", bx, by)
	}
}

func TestViewportResizePreservesZoom(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.7
	v.targetZoom = 0.7

	v.HandleResize(400, 300)
	if !approxEqual(v.MinZoom(), 0.2, epsilon) {
		t.Errorf("MinZoom = %v, want 0.2", v.MinZoom())
	}
	if !approxEqual(v.Zoom(), 0.7, epsilon) {
		t.Errorf("Zoom = %v, want 0.7 preserved", v.Zoom())
	}
}

func TestViewportResizeRaisesZoomToNewMin(t *testing.T) {
	v := newTestViewport()
	v.HandleResize(400, 300) // minZoom 0.2
	v.currentZoom = 0.2
	v.targetZoom = 0.2

	v.HandleResize(800, 600) // minZoom back to 0.4
	if !approxEqual(v.Zoom(), 0.4, epsilon) {
		t.Errorf("Zoom = %v, want raised to new min 0.4", v.Zoom())
	}
}

func TestViewportResizeZeroDimensionIgnored(t *testing.T) {
	v := newTestViewport()
	v.HandleResize(0, 600)
	v.HandleResize(800, 0)

	w, h := v.ViewSize()
	if w != 800 || h != 600 {
		t.Errorf("ViewSize = %vx%v, want unchanged 800x600", w, h)
	}
	if !approxEqual(v.MinZoom(), 0.4, epsilon) {
		t.Errorf("MinZoom = %v, want unchanged", v.MinZoom())
	}
}

func TestCtrlWheelZoomsImmediatelyAnchored(t *testing.T) {
	v := newTestViewport()

	wx, wy := v.ScreenToWorld(600, 300)
	v.HandleWheel(600, 300, 0, 50, true)

	if !(v.Zoom() > 0.4) {
		t.Fatalf("Zoom = %v, want immediate increase", v.Zoom())
	}
	ax, ay := v.ScreenToWorld(600, 300)
	if !approxEqual(ax, wx, 1e-6) || !approxEqual(ay, wy, 1e-6) {
		t.Errorf("anchor moved: (%v,%v) -> (%v,%v)", wx, wy, ax, ay)
	}
	// Immediate path leaves no pending lerp.
	if !approxEqual(v.targetZoom, v.currentZoom, epsilon) {
		t.Error("ctrl wheel must not queue a target zoom")
	}
}

func TestWheelZoomLerpsAndKeepsAnchor(t *testing.T) {
	v := newTestViewport()

	wx, wy := v.ScreenToWorld(600, 300)
	v.HandleWheel(600, 300, 0, 4, false)

	if !approxEqual(v.targetZoom, 0.72, epsilon) {
		t.Fatalf("targetZoom = %v, want 0.72", v.targetZoom)
	}
	if !approxEqual(v.Zoom(), 0.4, epsilon) {
		t.Fatal("wheel zoom must not jump immediately")
	}

	v.Update(1.0 / 60)
	mid := v.Zoom()
	if !(mid > 0.4 && mid < 0.72) {
		t.Fatalf("Zoom after one tick = %v, want between 0.4 and 0.72", mid)
	}

	for i := 0; i < 120; i++ {
		v.Update(1.0 / 60)
	}
	if !approxEqual(v.Zoom(), 0.72, epsilon) {
		t.Errorf("Zoom = %v, want converged to 0.72", v.Zoom())
	}
	ax, ay := v.ScreenToWorld(600, 300)
	if !approxEqual(ax, wx, 1e-6) || !approxEqual(ay, wy, 1e-6) {
		t.Errorf("anchor moved: (%v,%v) -> (%v,%v)", wx, wy, ax, ay)
	}
}

func TestWheelZoomOutClampsAtFit(t *testing.T) {
	v := newTestViewport()
	v.HandleWheel(400, 300, 0, -10, false)
	if !approxEqual(v.targetZoom, v.MinZoom(), epsilon) {
		t.Errorf("targetZoom = %v, want clamped to min %v", v.targetZoom, v.MinZoom())
	}
}

func TestTrackpadTwoFingerPan(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.8
	v.targetZoom = 0.8
	v.SetPosition(1000, 600)

	v.HandleWheel(400, 300, -5, 0, false)
	x, _ := v.Position()
	// dx=-5 pans by +5*12/0.8 = +75 world units.
	if !approxEqual(x, 1075, epsilon) {
		t.Errorf("X = %v, want 1075", x)
	}
}

func TestPanMoveFollowsPointer(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.8
	v.targetZoom = 0.8
	v.SetPosition(1000, 600)

	if !v.BeginPan(GesturePan, 400, 300) {
		t.Fatal("BeginPan should claim the idle pointer")
	}
	v.PanMove(390, 310)
	x, y := v.Position()
	// Content follows the finger: pointer left 10px moves view right 12.5.
	if !approxEqual(x, 1012.5, epsilon) || !approxEqual(y, 587.5, epsilon) {
		t.Errorf("Position = (%v,%v), want (1012.5,587.5)", x, y)
	}

	v.EndPan()
	if v.gestures.Busy() {
		t.Error("EndPan should release the gesture")
	}
}

func TestBeginPanRefusedWhileBusy(t *testing.T) {
	v := newTestViewport()
	v.gestures.Begin(GestureSpriteDrag)
	if v.BeginPan(GesturePan, 0, 0) {
		t.Error("pan must not preempt a sprite drag")
	}
}

func TestKeyPanZoomCompensated(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.8
	v.targetZoom = 0.8
	v.SetPosition(1000, 600)

	v.KeyPan(1, 0)
	x, _ := v.Position()
	if !approxEqual(x, 1000+keyPanSpeed/0.8, epsilon) {
		t.Errorf("X = %v, want zoom-compensated step", x)
	}
}

func TestPinchScalesFromStartZoom(t *testing.T) {
	v := newTestViewport()

	v.BeginPinch(100)
	v.UpdatePinch(400, 300, 200)
	if !approxEqual(v.Zoom(), 0.8, epsilon) {
		t.Errorf("Zoom = %v, want 0.8 (doubled from 0.4)", v.Zoom())
	}

	// Non-monotonic pinch: scale is relative to pinch start, not the
	// previous frame.
	v.UpdatePinch(400, 300, 150)
	if !approxEqual(v.Zoom(), 0.6, epsilon) {
		t.Errorf("Zoom = %v, want 0.6", v.Zoom())
	}

	v.EndPinch()
	if !v.gestures.InCooldown() {
		t.Error("pinch end should start cooldown")
	}
}

func TestPinchClampedAtMaxZoom(t *testing.T) {
	v := newTestViewport()
	v.BeginPinch(100)
	v.UpdatePinch(400, 300, 1000)
	if !approxEqual(v.Zoom(), MaxZoom, epsilon) {
		t.Errorf("Zoom = %v, want clamped at %v", v.Zoom(), MaxZoom)
	}
}

func TestPinchPreemptsPan(t *testing.T) {
	v := newTestViewport()
	v.BeginPan(GesturePan, 100, 100)
	v.BeginPinch(80)
	if v.gestures.Active() != GesturePinch {
		t.Errorf("Active = %v, want pinch", v.gestures.Active())
	}
	// The stale pan must be inert.
	x0, y0 := v.Position()
	v.PanMove(500, 500)
	x1, y1 := v.Position()
	if x0 != x1 || y0 != y1 {
		t.Error("pan movement after pinch preemption must be ignored")
	}
}

func TestResetToFitAnimates(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.9
	v.targetZoom = 0.9
	v.SetPosition(1400, 800)

	v.ResetToFit()
	if !v.IsAnimating() {
		t.Fatal("ResetToFit should start an animation")
	}

	v.Update(1.0 / 60)
	if !v.IsAnimating() {
		t.Fatal("animation should span multiple frames")
	}

	for i := 0; i < 60; i++ {
		v.Update(1.0 / 60)
	}
	if v.IsAnimating() {
		t.Fatal("animation should be done after its duration")
	}
	if !approxEqual(v.Zoom(), v.MinZoom(), epsilon) {
		t.Errorf("Zoom = %v, want fit %v", v.Zoom(), v.MinZoom())
	}
	x, y := v.Position()
	if !approxEqual(x, 1000, epsilon) || !approxEqual(y, 600, epsilon) {
		t.Errorf("Position = (%v,%v), want world center", x, y)
	}
}

func TestCenterOnKeepsZoom(t *testing.T) {
	v := newTestViewport()
	v.currentZoom = 0.8
	v.targetZoom = 0.8
	v.SetPosition(600, 500)

	v.CenterOn(1400, 700)
	for i := 0; i < 60; i++ {
		v.Update(1.0 / 60)
	}
	x, y := v.Position()
	if !approxEqual(x, 1400, epsilon) || !approxEqual(y, 700, epsilon) {
		t.Errorf("Position = (%v,%v), want (1400,700)", x, y)
	}
	if !approxEqual(v.Zoom(), 0.8, epsilon) {
		t.Errorf("Zoom = %v, want unchanged 0.8", v.Zoom())
	}
}

func TestWheelIgnoredDuringAnimation(t *testing.T) {
	v := newTestViewport()
	v.ResetToFit()

	before := v.targetZoom
	v.HandleWheel(400, 300, 0, 10, false)
	if v.targetZoom != before {
		t.Error("wheel must be ignored while a fit animation runs")
	}
}

func TestWheelIgnoredDuringPinch(t *testing.T) {
	v := newTestViewport()
	v.BeginPinch(100)
	before := v.Zoom()
	v.HandleWheel(400, 300, 0, 10, true)
	if v.Zoom() != before {
		t.Error("wheel must be ignored while a pinch owns the pointer")
	}
}
