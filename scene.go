package boardwalk

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink is the interface for optional external integration (ECS, UI
// panels). When set on a Builder, editor events are forwarded to it.
type EventSink interface {
	EmitEvent(event BuilderEvent)
}

// BuilderEvent carries editor interaction data for event sinks and
// OnEvent handlers.
type BuilderEvent struct {
	Type EventType
	Kind EntityKind
	ID   string
	X    float64
	Y    float64
}

// Config holds editor policies that are fixed for a session.
type Config struct {
	// GridSize is the placement grid in world units. Zero disables
	// snapping.
	GridSize float64
	// GroundInset is the distance from the world's bottom edge to the
	// ground line the player rests on.
	GroundInset float64
}

// Builder is the top-level editor object. It owns the document, the scene
// tree, the viewport, and the input state, and keeps the scene reconciled
// with the document every frame.
type Builder struct {
	doc      *Document
	registry *Registry
	cfg      Config
	debug    bool

	gestures     *Gestures
	viewport     *Viewport
	interactions *Interactions
	world        *Node

	items   *itemController
	frames  *frameController
	socials *socialController
	npcs    *npcController
	player  *playerController
	selSync *selectionSync

	mode        EditMode
	textFocused bool
	fitHeld     bool
	fitPrev     struct{ x, y, zoom float64 }

	// Input state.
	mouse         pointerState
	touch         touchState
	touchIDBuf    []ebiten.TouchID
	touchPointBuf []touchPoint
	injectQueue   []syntheticEvent
	hovering      bool

	sink     EventSink
	handlers []func(BuilderEvent)

	destroyed bool
}

// NewBuilder creates an editor for the given document at the given screen
// size. The registry supplies asset and skin definitions for entity drops.
func NewBuilder(doc *Document, registry *Registry, cfg Config, viewW, viewH float64) *Builder {
	b := &Builder{
		doc:      doc,
		registry: registry,
		cfg:      cfg,
		mode:     ModeLayout,
	}
	b.gestures = NewGestures()
	b.viewport = NewViewport(doc, b.gestures, viewW, viewH)
	b.interactions = NewInteractions(b.gestures)

	b.world = NewContainer("world")
	b.world.Interactable = true

	b.items = newItemController(b)
	b.frames = newFrameController(b)
	b.socials = newSocialController(b)
	b.npcs = newNPCController(b)
	b.player = newPlayerController(b)
	b.selSync = newSelectionSync(b)

	updateWorldTransform(b.world, identityTransform, 1.0, false)
	return b
}

// Document returns the backing document.
func (b *Builder) Document() *Document { return b.doc }

// Viewport returns the camera controller.
func (b *Builder) Viewport() *Viewport { return b.viewport }

// Root returns the scene's root container node.
func (b *Builder) Root() *Node { return b.world }

// Gestures returns the gesture arbitration context, for registering a UI
// hit test or a palette drag flag.
func (b *Builder) Gestures() *Gestures { return b.gestures }

// worldRect is the document's world bounds as a rect at the origin.
func (b *Builder) worldRect() Rect {
	return Rect{Width: b.doc.WorldWidth, Height: b.doc.WorldHeight}
}

// Hovering reports whether the pointer is over an interactable sprite,
// for cursor feedback.
func (b *Builder) Hovering() bool { return b.hovering }

// Busy reports whether any gesture (drag, pan, pinch) is in progress.
func (b *Builder) Busy() bool {
	return b.gestures.Busy() || b.interactions.Dragging()
}

// Mode returns the current edit mode.
func (b *Builder) Mode() EditMode { return b.mode }

// SetMode switches the edit mode. Layout mode enables every entity type;
// dialog mode restricts interaction to NPCs and dims the rest; play mode
// disables editing entirely.
func (b *Builder) SetMode(mode EditMode) {
	if b.mode == mode {
		return
	}
	b.mode = mode
	layout := mode == ModeLayout
	b.items.setEnabled(layout)
	b.frames.setEnabled(layout)
	b.socials.setEnabled(layout)
	b.player.setEnabled(layout)
	b.npcs.setEnabled(layout || mode == ModeDialog)
}

// SetEventSink sets the external event sink. Pass nil to remove it.
func (b *Builder) SetEventSink(sink EventSink) {
	b.sink = sink
}

// OnEvent registers a handler called synchronously for every editor event.
func (b *Builder) OnEvent(fn func(BuilderEvent)) {
	b.handlers = append(b.handlers, fn)
}

func (b *Builder) emit(evt BuilderEvent) {
	for _, fn := range b.handlers {
		fn(evt)
	}
	if b.sink != nil {
		b.sink.EmitEvent(evt)
	}
}

// HandleResize adjusts the viewport for a new screen size.
func (b *Builder) HandleResize(viewW, viewH float64) {
	b.viewport.HandleResize(viewW, viewH)
}

// DropItem places a new item of the given asset at the screen position and
// selects it. Returns the new entity's id, or "" if the asset is unknown.
func (b *Builder) DropItem(asset string, canvasX, canvasY float64) string {
	return b.items.drop(asset, canvasX, canvasY)
}

// DropFrame places a new picture frame at the screen position.
func (b *Builder) DropFrame(image string, canvasX, canvasY float64) string {
	return b.frames.drop(image, canvasX, canvasY)
}

// DropSocial places a new social link badge at the screen position.
// Returns "" if the network is not registered.
func (b *Builder) DropSocial(network string, canvasX, canvasY float64) string {
	return b.socials.drop(network, canvasX, canvasY)
}

// DropNPC places a new NPC at the screen position, feet on the drop point.
// Returns "" if the skin is unknown.
func (b *Builder) DropNPC(skin string, canvasX, canvasY float64) string {
	return b.npcs.drop(skin, canvasX, canvasY)
}

// Update advances the editor by one frame: input classification, gesture
// bookkeeping, camera motion, then scene transform and selection sync.
// Call once per ebiten Update.
func (b *Builder) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	b.update(dt, pollKeyboard())
}

// update is the ebiten-free frame step, driven directly by tests.
func (b *Builder) update(dt float64, ks KeyboardState) {
	var stats debugStats
	var t0 time.Time
	if b.debug {
		t0 = time.Now()
	}

	// Nodes reconciled in since the last tick still carry a zero world
	// transform; hit testing needs them current before input runs.
	updateWorldTransform(b.world, identityTransform, 1.0, false)

	b.processInput()
	b.gestures.Tick()
	b.interactions.Tick()

	if b.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	b.applyKeyboard(ks)
	b.viewport.Update(dt)

	if b.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	updateWorldTransform(b.world, identityTransform, 1.0, false)
	b.selSync.update()

	if b.debug {
		stats.reconcileTime = time.Since(t0)
		stats.nodeCount = countNodes(b.world)
		stats.dragActive = b.interactions.Dragging()
		stats.gesture = b.gestures.Active()
		b.debugLog(stats)
	}
}

// Destroy tears down the scene tree, controllers, and listeners. The
// builder must not be used afterwards.
func (b *Builder) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.selSync.clear()
	b.items.destroyAll()
	b.frames.destroyAll()
	b.socials.destroyAll()
	b.npcs.destroyAll()
	b.player.destroyAll()
	b.viewport.Destroy()
	b.world.Dispose()
	b.handlers = nil
	b.sink = nil
}
