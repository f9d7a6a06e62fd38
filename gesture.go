package boardwalk

// GestureKind identifies the gesture currently owning the pointer.
// At most one gesture is active at any instant, across the whole builder.
type GestureKind uint8

const (
	GestureNone       GestureKind = iota // idle
	GestureSpriteDrag                    // an entity sprite is being dragged
	GesturePan                           // right/middle button or touch camera pan
	GestureDragScroll                    // left-button drag-to-scroll past threshold
	GesturePinch                         // two-finger pinch zoom
)

// pinchCooldownTicks is the number of ticks after a pinch ends during which
// the trailing single touch is not reinterpreted as a new pan or drag.
// ~130ms at 60 TPS, within the 50-150ms disambiguation window.
const pinchCooldownTicks = 8

// Gestures is the shared gesture arbitration context. Every controller that
// reads or claims pointer ownership holds a reference to the same instance;
// flags are set synchronously before any dependent check runs in the same
// tick, so arbitration is deterministic.
type Gestures struct {
	active GestureKind

	// cooldown counts down after a pinch ends.
	cooldown int

	// uiHitTest classifies a screen point as belonging to the UI overlay
	// layer. The presentation layer supplies it; nil means no UI.
	uiHitTest func(sx, sy float64) bool

	// paletteDrag is set by the presentation layer while the user drags an
	// asset out of the palette; it suppresses camera and sprite gestures.
	paletteDrag bool

	// interrupts run when a pinch preempts an active gesture, restoring
	// the preempted owner's invariants (clearing drag state and tint).
	interrupts []func()
}

// NewGestures creates an idle arbitration context.
func NewGestures() *Gestures {
	return &Gestures{}
}

// Active returns the gesture currently owning the pointer.
func (g *Gestures) Active() GestureKind {
	return g.active
}

// Busy reports whether any gesture is active. The presentation layer reads
// this to suppress conflicting UI gestures.
func (g *Gestures) Busy() bool {
	return g.active != GestureNone
}

// Begin claims the pointer for the given gesture. Returns false if another
// gesture already owns it or the pinch cooldown is still running. Pinch
// always succeeds: it preempts whatever is active, running the registered
// interrupt callbacks first.
func (g *Gestures) Begin(kind GestureKind) bool {
	if kind == GesturePinch {
		if g.active != GesturePinch && g.active != GestureNone {
			for _, fn := range g.interrupts {
				fn()
			}
		}
		g.active = GesturePinch
		return true
	}
	if g.active != GestureNone {
		return false
	}
	if g.cooldown > 0 {
		return false
	}
	g.active = kind
	return true
}

// End releases the pointer if kind currently owns it. Ending a pinch starts
// the post-pinch cooldown.
func (g *Gestures) End(kind GestureKind) {
	if g.active != kind {
		return
	}
	if kind == GesturePinch {
		g.cooldown = pinchCooldownTicks
	}
	g.active = GestureNone
}

// Tick advances the cooldown timer. Called once per update, after input.
func (g *Gestures) Tick() {
	if g.cooldown > 0 {
		g.cooldown--
	}
}

// InCooldown reports whether the post-pinch cooldown is still running.
func (g *Gestures) InCooldown() bool {
	return g.cooldown > 0
}

// OnInterrupt registers a callback run when a pinch preempts an active
// gesture. Callbacks must be idempotent.
func (g *Gestures) OnInterrupt(fn func()) {
	g.interrupts = append(g.interrupts, fn)
}

// SetUIHitTest installs the UI-layer classification predicate.
func (g *Gestures) SetUIHitTest(fn func(sx, sy float64) bool) {
	g.uiHitTest = fn
}

// OverUI reports whether the screen point belongs to the UI overlay.
// Selection and drag are suppressed entirely while over UI.
func (g *Gestures) OverUI(sx, sy float64) bool {
	return g.uiHitTest != nil && g.uiHitTest(sx, sy)
}

// SetPaletteDrag marks a palette drag in progress (or ended).
func (g *Gestures) SetPaletteDrag(active bool) {
	g.paletteDrag = active
}

// PaletteDragging reports whether a palette drag is in progress.
func (g *Gestures) PaletteDragging() bool {
	return g.paletteDrag
}
