package boardwalk

// syntheticEvent is a single injected input event. Screen coordinates are
// used and converted to world coordinates through the viewport, identical
// to real input.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	button  MouseButton
	wheelX  float64
	wheelY  float64
	ctrl    bool
	touches []touchPoint
}

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthWheel
	synthTouches
)

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next Update.
func (b *Builder) InjectPress(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind: synthPointer, x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectPressButton queues a pointer press with a specific button.
func (b *Builder) InjectPressButton(x, y float64, button MouseButton) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind: synthPointer, x: x, y: y, pressed: true, button: button,
	})
}

// InjectMove queues a pointer move event with the button held down. Use
// between InjectPress and InjectRelease to simulate a drag.
func (b *Builder) InjectMove(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind: synthPointer, x: x, y: y, pressed: true, button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event.
func (b *Builder) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind: synthPointer, x: x, y: y, pressed: false, button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (b *Builder) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves ending exactly at (toX, toY), and a release there. The
// sequence consumes `frames` frames; minimum is 3 (press, move, release),
// since a release on its own does not move the pointer.
func (b *Builder) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	b.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at the given screen coordinates.
// ctrl marks a trackpad pinch (immediate zoom).
func (b *Builder) InjectWheel(x, y, wheelX, wheelY float64, ctrl bool) {
	b.injectQueue = append(b.injectQueue, syntheticEvent{
		kind: synthWheel, x: x, y: y, wheelX: wheelX, wheelY: wheelY, ctrl: ctrl,
	})
}

// InjectTouches queues one frame's worth of active touch points (screen
// coordinates). An empty call releases all touches.
func (b *Builder) InjectTouches(points ...Vec2) {
	tps := make([]touchPoint, len(points))
	for i, p := range points {
		tps[i] = touchPoint{id: -1, x: p.X, y: p.Y}
	}
	b.injectQueue = append(b.injectQueue, syntheticEvent{kind: synthTouches, touches: tps})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same classification paths as real input. Returns true if a
// mouse/wheel event was consumed (real mouse input is skipped that frame).
func (b *Builder) processInjectedInput(mods KeyModifiers) bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	switch evt.kind {
	case synthWheel:
		if evt.ctrl {
			mods |= ModCtrl
		}
		if !b.gestures.OverUI(evt.x, evt.y) {
			b.viewport.HandleWheel(evt.x, evt.y, evt.wheelX, evt.wheelY, mods&ModCtrl != 0)
		}
	case synthTouches:
		b.applyTouches(evt.touches)
	default:
		b.processPointer(evt.x, evt.y, evt.pressed, evt.button, mods)
	}
	return true
}
