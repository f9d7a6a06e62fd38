package boardwalk

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom and gesture tuning. The reset animation's duration and easing are
// deliberate configuration: earlier revisions of this controller shipped
// with several defaults, and these are the ones kept.
const (
	// MaxZoom is the upper zoom limit. 1 means one world unit per pixel.
	MaxZoom = 1.0

	// zoomLerpFactor is the per-tick interpolation factor applied while
	// currentZoom converges on targetZoom (wheel zoom path).
	zoomLerpFactor = 0.15

	// zoomEpsilon ends the lerp and clears the zoom anchor once
	// |currentZoom - targetZoom| falls below it.
	zoomEpsilon = 0.0005

	// wheelZoomRate scales wheel delta into targetZoom change.
	wheelZoomRate = 0.08

	// trackpadZoomRate scales ctrl-wheel (trackpad pinch) delta into an
	// immediate zoom factor exponent.
	trackpadZoomRate = 0.01

	// trackpadPanRate scales two-finger scroll delta into screen pixels.
	trackpadPanRate = 12.0

	// dragScrollThreshold is the screen-space movement (pixels) past which
	// a left-button press commits to drag-to-scroll instead of a click.
	dragScrollThreshold = 10.0

	// keyPanSpeed is the keyboard pan speed in screen pixels per tick.
	// Divided by currentZoom so perceived speed is constant across zooms.
	keyPanSpeed = 10.0

	// resetDuration and resetEase drive the fit-to-screen / center-on
	// animation (concurrent pan+zoom).
	resetDuration = 0.45
)

var resetEase = ease.InOutQuad

// resetAnim holds the active fit/center tweens.
type resetAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	done                      bool
}

// Viewport owns the camera: zoom level, scroll position, bounds, and the
// mapping from gestures to view changes. X and Y are the world-space point
// at the viewport center.
//
// Bounds policy: when the effective viewport (screen size / zoom) exceeds
// the world along an axis, that axis is pinned to the centering value, not
// clamped to an edge. The camera therefore never shows area outside the
// world without first centering a too-small world.
type Viewport struct {
	doc      *Document
	gestures *Gestures

	viewW, viewH float64

	// X, Y is the world point at the viewport center.
	X, Y float64

	currentZoom float64
	targetZoom  float64
	minZoom     float64

	// Zoom anchor: while set, the world point anchorWorld must stay under
	// the screen point anchorScreen through every zoom step.
	anchorActive bool
	anchorWorld  Vec2
	anchorScreen Vec2

	// Pan state (right/middle drag, committed drag-scroll, touch pan).
	panActive bool
	panKind   GestureKind
	panLast   Vec2

	// Pinch state.
	pinchActive    bool
	pinchStartDist float64
	pinchStartZoom float64

	// Fit/center animation. While running, wheel, pinch, and keyboard zoom
	// inputs are ignored.
	anim *resetAnim
}

// NewViewport creates a viewport for the given document and arbitration
// context at the given initial screen size, starting fitted to the world.
func NewViewport(doc *Document, gestures *Gestures, viewW, viewH float64) *Viewport {
	v := &Viewport{
		doc:         doc,
		gestures:    gestures,
		currentZoom: MaxZoom,
		targetZoom:  MaxZoom,
		minZoom:     MaxZoom,
	}
	v.Setup(viewW, viewH)
	return v
}

// Setup sizes the viewport, computes zoom bounds, and fits the world.
func (v *Viewport) Setup(viewW, viewH float64) {
	v.viewW = viewW
	v.viewH = viewH
	v.recomputeMinZoom()
	v.currentZoom = v.minZoom
	v.targetZoom = v.minZoom
	v.X = v.doc.WorldWidth / 2
	v.Y = v.doc.WorldHeight / 2
	v.clampPosition()
}

// HandleResize recomputes zoom bounds for a new screen size. The current
// zoom is preserved unless it falls below the new minimum.
func (v *Viewport) HandleResize(viewW, viewH float64) {
	if viewW <= 0 || viewH <= 0 {
		// Mid-layout zero dimension; a recompute here would propagate
		// Inf/NaN into zoom state. Skip; a real resize follows.
		return
	}
	v.viewW = viewW
	v.viewH = viewH
	v.recomputeMinZoom()
	if v.currentZoom < v.minZoom {
		v.currentZoom = v.minZoom
	}
	if v.targetZoom < v.minZoom {
		v.targetZoom = v.minZoom
	}
	v.clampPosition()
}

// recomputeMinZoom derives the fit-to-screen zoom so the whole world is
// visible at minimum zoom.
func (v *Viewport) recomputeMinZoom() {
	if v.viewW <= 0 || v.viewH <= 0 || v.doc.WorldWidth <= 0 || v.doc.WorldHeight <= 0 {
		return
	}
	mz := math.Min(v.viewW/v.doc.WorldWidth, v.viewH/v.doc.WorldHeight)
	if mz > MaxZoom {
		mz = MaxZoom
	}
	v.minZoom = mz
}

// MinZoom returns the current fit-to-screen zoom bound.
func (v *Viewport) MinZoom() float64 {
	return v.minZoom
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 {
	return v.currentZoom
}

// Position returns the world point at the viewport center.
func (v *Viewport) Position() (x, y float64) {
	return v.X, v.Y
}

// SetPosition moves the viewport center, subject to the bounds policy.
func (v *Viewport) SetPosition(x, y float64) {
	v.X = x
	v.Y = y
	v.clampPosition()
}

// ViewSize returns the screen dimensions of the viewport.
func (v *Viewport) ViewSize() (w, h float64) {
	return v.viewW, v.viewH
}

// clampZoom restricts z to [minZoom, MaxZoom].
func (v *Viewport) clampZoom(z float64) float64 {
	if z < v.minZoom {
		return v.minZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// clampPosition applies the centering bounds policy per axis.
func (v *Viewport) clampPosition() {
	halfW := v.viewW / (2 * v.currentZoom)
	halfH := v.viewH / (2 * v.currentZoom)

	if halfW*2 >= v.doc.WorldWidth {
		v.X = v.doc.WorldWidth / 2
	} else {
		v.X = math.Max(halfW, math.Min(v.X, v.doc.WorldWidth-halfW))
	}
	if halfH*2 >= v.doc.WorldHeight {
		v.Y = v.doc.WorldHeight / 2
	} else {
		v.Y = math.Max(halfH, math.Min(v.Y, v.doc.WorldHeight-halfH))
	}
}

// --- Projection ---

// ViewOrigin returns the world coordinate visible at the viewport's
// top-left pixel. This is the projection origin floating UI must use; raw
// scroll would be wrong whenever an axis is pinned to its centering value.
func (v *Viewport) ViewOrigin() (x, y float64) {
	return v.X - v.viewW/(2*v.currentZoom), v.Y - v.viewH/(2*v.currentZoom)
}

// WorldToScreen converts a world point to viewport pixel coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	ox, oy := v.ViewOrigin()
	return (wx - ox) * v.currentZoom, (wy - oy) * v.currentZoom
}

// ScreenToWorld converts viewport pixel coordinates to a world point.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	ox, oy := v.ViewOrigin()
	return ox + sx/v.currentZoom, oy + sy/v.currentZoom
}

// VisibleWorldRect returns the world-space rectangle currently on screen.
func (v *Viewport) VisibleWorldRect() Rect {
	ox, oy := v.ViewOrigin()
	return Rect{X: ox, Y: oy, Width: v.viewW / v.currentZoom, Height: v.viewH / v.currentZoom}
}

// --- Zoom inputs ---

// applyZoomAnchored sets the zoom and recomputes the center so that the
// world point anchorW still projects to the screen point anchorS. This is
// the zoom-to-point contract: content never jumps under the cursor.
func (v *Viewport) applyZoomAnchored(zoom float64, anchorW, anchorS Vec2) {
	v.currentZoom = v.clampZoom(zoom)
	v.X = anchorW.X - anchorS.X/v.currentZoom + v.viewW/(2*v.currentZoom)
	v.Y = anchorW.Y - anchorS.Y/v.currentZoom + v.viewH/(2*v.currentZoom)
	v.clampPosition()
}

// HandleWheel processes a wheel event at screen point (sx, sy).
//
// ctrl-wheel is a trackpad pinch: zoom applies immediately, no smoothing.
// A nonzero horizontal delta is two-finger trackpad scroll: pan.
// Otherwise the wheel feeds targetZoom and the per-tick lerp converges,
// anchored so the world point under the cursor stays put.
func (v *Viewport) HandleWheel(sx, sy, dx, dy float64, ctrl bool) {
	if v.anim != nil {
		return
	}
	if v.gestures.Active() == GesturePinch {
		return
	}

	if ctrl {
		wx, wy := v.ScreenToWorld(sx, sy)
		v.applyZoomAnchored(v.currentZoom*math.Exp(dy*trackpadZoomRate), Vec2{wx, wy}, Vec2{sx, sy})
		v.targetZoom = v.currentZoom
		v.anchorActive = false
		return
	}

	if dx != 0 {
		// Two-finger scroll: pan both axes, zoom-compensated.
		v.X -= dx * trackpadPanRate / v.currentZoom
		v.Y -= dy * trackpadPanRate / v.currentZoom
		v.clampPosition()
		return
	}

	wx, wy := v.ScreenToWorld(sx, sy)
	v.targetZoom = v.clampZoom(v.targetZoom + dy*wheelZoomRate)
	v.anchorWorld = Vec2{wx, wy}
	v.anchorScreen = Vec2{sx, sy}
	v.anchorActive = true
}

// --- Pan inputs ---

// BeginPan claims the pointer for a camera pan. kind is GesturePan
// (right/middle button or touch) or GestureDragScroll (committed
// left-button drag). Returns false if another gesture owns the pointer.
func (v *Viewport) BeginPan(kind GestureKind, sx, sy float64) bool {
	if v.anim != nil {
		return false
	}
	if !v.gestures.Begin(kind) {
		return false
	}
	v.panActive = true
	v.panKind = kind
	v.panLast = Vec2{sx, sy}
	return true
}

// PanMove pans the camera by the screen-space movement since the last call.
func (v *Viewport) PanMove(sx, sy float64) {
	if !v.panActive {
		return
	}
	v.X -= (sx - v.panLast.X) / v.currentZoom
	v.Y -= (sy - v.panLast.Y) / v.currentZoom
	v.panLast = Vec2{sx, sy}
	v.clampPosition()
}

// EndPan releases the pan gesture. Safe to call when no pan is active.
func (v *Viewport) EndPan() {
	if !v.panActive {
		return
	}
	v.gestures.End(v.panKind)
	v.panActive = false
}

// KeyPan applies one tick of continuous keyboard panning. dirX and dirY are
// -1, 0, or +1 per axis. Speed is divided by zoom so the perceived pan
// speed is constant at every zoom level.
func (v *Viewport) KeyPan(dirX, dirY float64) {
	if v.anim != nil || v.gestures.Active() == GesturePinch {
		return
	}
	if dirX == 0 && dirY == 0 {
		return
	}
	v.X += dirX * keyPanSpeed / v.currentZoom
	v.Y += dirY * keyPanSpeed / v.currentZoom
	v.clampPosition()
}

// --- Pinch ---

// BeginPinch starts a two-finger pinch with the given starting finger
// distance. Pinch preempts any active gesture.
func (v *Viewport) BeginPinch(dist float64) {
	if v.anim != nil {
		v.anim = nil
	}
	v.gestures.Begin(GesturePinch)
	v.panActive = false
	v.pinchActive = true
	v.pinchStartDist = dist
	v.pinchStartZoom = v.currentZoom
	v.anchorActive = false
}

// UpdatePinch applies an in-progress pinch: zoom scales by the distance
// ratio relative to pinch start, applied immediately and anchored at the
// current finger center.
func (v *Viewport) UpdatePinch(centerSX, centerSY, dist float64) {
	if !v.pinchActive || v.pinchStartDist <= 0 {
		return
	}
	wx, wy := v.ScreenToWorld(centerSX, centerSY)
	v.applyZoomAnchored(v.pinchStartZoom*(dist/v.pinchStartDist), Vec2{wx, wy}, Vec2{centerSX, centerSY})
	v.targetZoom = v.currentZoom
}

// EndPinch releases the pinch and starts the post-pinch cooldown.
func (v *Viewport) EndPinch() {
	if !v.pinchActive {
		return
	}
	v.pinchActive = false
	v.gestures.End(GesturePinch)
}

// --- Fit / center animations ---

// ResetToFit animates zoom and position to show the entire world,
// ease-in-out over resetDuration. Manual zoom inputs are ignored until the
// animation completes.
func (v *Viewport) ResetToFit() {
	v.animateTo(v.doc.WorldWidth/2, v.doc.WorldHeight/2, v.minZoom)
}

// CenterOn animates the viewport center to the given world point at the
// current zoom.
func (v *Viewport) CenterOn(x, y float64) {
	v.animateTo(x, y, v.currentZoom)
}

// IsAnimating reports whether a fit/center animation is running.
func (v *Viewport) IsAnimating() bool {
	return v.anim != nil
}

func (v *Viewport) animateTo(x, y, zoom float64) {
	v.anchorActive = false
	v.targetZoom = v.clampZoom(zoom)
	v.anim = &resetAnim{
		tweenX:    gween.New(float32(v.X), float32(x), resetDuration, resetEase),
		tweenY:    gween.New(float32(v.Y), float32(y), resetDuration, resetEase),
		tweenZoom: gween.New(float32(v.currentZoom), float32(v.targetZoom), resetDuration, resetEase),
	}
}

// --- Per-tick update ---

// Update advances the fit animation and the wheel-zoom lerp. Runs every
// tick after input handlers, reading state they wrote synchronously.
func (v *Viewport) Update(dt float64) {
	if v.anim != nil {
		x, _ := v.anim.tweenX.Update(float32(dt))
		y, _ := v.anim.tweenY.Update(float32(dt))
		z, done := v.anim.tweenZoom.Update(float32(dt))
		v.X = float64(x)
		v.Y = float64(y)
		v.currentZoom = v.clampZoom(float64(z))
		v.clampPosition()
		if done {
			v.currentZoom = v.targetZoom
			v.anim = nil
			v.clampPosition()
		}
		return
	}

	if diff := v.targetZoom - v.currentZoom; math.Abs(diff) > zoomEpsilon {
		next := v.currentZoom + diff*zoomLerpFactor
		if v.anchorActive {
			v.applyZoomAnchored(next, v.anchorWorld, v.anchorScreen)
		} else {
			v.currentZoom = v.clampZoom(next)
			v.clampPosition()
		}
	} else if v.currentZoom != v.targetZoom {
		if v.anchorActive {
			v.applyZoomAnchored(v.targetZoom, v.anchorWorld, v.anchorScreen)
		} else {
			v.currentZoom = v.targetZoom
			v.clampPosition()
		}
		v.anchorActive = false
	} else {
		v.anchorActive = false
	}
}

// Destroy stops any running animation and releases gesture ownership.
func (v *Viewport) Destroy() {
	v.anim = nil
	v.EndPan()
	v.EndPinch()
}
