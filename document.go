package boardwalk

import (
	"fmt"
	"log"
)

// PlacedItem is a decorative or interactive object placed in the world.
type PlacedItem struct {
	ID    string
	Asset string
	X, Y  float64
	Scale float64
	Depth int
	FlipX bool
}

// PlacedFrame is a picture frame with a user-supplied image.
type PlacedFrame struct {
	ID            string
	Image         string
	X, Y          float64
	Width, Height float64
}

// PlacedSocial is a social network icon linking to a URL.
type PlacedSocial struct {
	ID      string
	Network string
	URL     string
	X, Y    float64
}

// PlacedNPC is a non-player character with dialog.
type PlacedNPC struct {
	ID     string
	Skin   string
	Dialog string
	X, Y   float64
	FlipX  bool
}

// PlayerSpawn is the singleton player placement.
type PlayerSpawn struct {
	Skin string
	X, Y float64
}

// Selection identifies the single currently selected entity across all kinds.
// The zero value means no selection. For KindPlayer the ID is empty.
type Selection struct {
	Kind EntityKind
	ID   string
}

// IsZero reports whether no entity is selected.
func (s Selection) IsZero() bool {
	return s.Kind == KindNone
}

// listener registration mirrors the scene handler registry: an id handle
// allows removal without invalidating other registrations.

type listHandler struct {
	id uint32
	fn func()
}

// ListenerHandle allows removing a registered document listener.
type ListenerHandle struct {
	id  uint32
	doc *Document
	set *[]listHandler
}

// Remove unregisters this listener so it no longer fires.
func (h ListenerHandle) Remove() {
	if h.set == nil {
		return
	}
	s := *h.set
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listHandler{}
			*h.set = s[:len(s)-1]
			return
		}
	}
}

// Document is the authoritative world document: per-kind entity lists, the
// player singleton, and the exclusive selection. All mutation goes through
// its methods; listeners are notified synchronously after each mutation.
//
// Listeners for a slice MUST NOT mutate that same slice from within their
// notification (re-entrant writes recurse without bound). In debug mode a
// violation panics; otherwise the write is dropped with a log line.
type Document struct {
	// WorldWidth and WorldHeight are fixed for the session. Always > 0.
	WorldWidth  float64
	WorldHeight float64

	items   []PlacedItem
	frames  []PlacedFrame
	socials []PlacedSocial
	npcs    []PlacedNPC
	player  PlayerSpawn

	selection Selection

	itemListeners      []listHandler
	frameListeners     []listHandler
	socialListeners    []listHandler
	npcListeners       []listHandler
	playerListeners    []listHandler
	selectionListeners []listHandler

	// notifying[kind] is true while that kind's listeners run. The
	// KindNone slot covers selection listeners.
	notifying [KindPlayer + 1]bool

	nextListenerID uint32
	nextEntityID   uint64
}

// NewDocument creates an empty document for a world of the given size.
// Panics if either dimension is not positive.
func NewDocument(worldW, worldH float64) *Document {
	if worldW <= 0 || worldH <= 0 {
		panic(fmt.Sprintf("boardwalk: world dimensions must be positive, got %gx%g", worldW, worldH))
	}
	return &Document{
		WorldWidth:  worldW,
		WorldHeight: worldH,
		player:      PlayerSpawn{X: worldW / 2, Y: worldH},
	}
}

// genID returns a fresh unique id for the given kind's bucket.
func (d *Document) genID(kind EntityKind) string {
	d.nextEntityID++
	return fmt.Sprintf("%s_%d", kind, d.nextEntityID)
}

// guardWrite reports whether a write to kind's slice is allowed right now.
func (d *Document) guardWrite(kind EntityKind, op string) bool {
	if !d.notifying[kind] {
		return true
	}
	if globalDebug {
		panic(fmt.Sprintf("boardwalk debug: %s during %s listener notification", op, kind))
	}
	log.Printf("boardwalk: dropped %s issued during %s listener notification", op, kind)
	return false
}

func (d *Document) notify(kind EntityKind, listeners []listHandler) {
	d.notifying[kind] = true
	for _, h := range listeners {
		h.fn()
	}
	d.notifying[kind] = false
}

func (d *Document) addListener(set *[]listHandler, fn func()) ListenerHandle {
	d.nextListenerID++
	id := d.nextListenerID
	*set = append(*set, listHandler{id: id, fn: fn})
	return ListenerHandle{id: id, doc: d, set: set}
}

// --- Items ---

// Items returns a snapshot copy of the item list.
func (d *Document) Items() []PlacedItem {
	return append([]PlacedItem(nil), d.items...)
}

// AddItem appends an item and returns its id. An empty ID is assigned a
// fresh unique id.
func (d *Document) AddItem(it PlacedItem) string {
	if !d.guardWrite(KindItem, "AddItem") {
		return ""
	}
	if it.ID == "" {
		it.ID = d.genID(KindItem)
	}
	if it.Scale == 0 {
		it.Scale = 1
	}
	d.items = append(d.items, it)
	d.notify(KindItem, d.itemListeners)
	return it.ID
}

// UpdateItem applies mutate to the item with the given id.
// Returns false if no such item exists.
func (d *Document) UpdateItem(id string, mutate func(*PlacedItem)) bool {
	if !d.guardWrite(KindItem, "UpdateItem") {
		return false
	}
	for i := range d.items {
		if d.items[i].ID == id {
			mutate(&d.items[i])
			d.items[i].ID = id // ids are immutable
			d.notify(KindItem, d.itemListeners)
			return true
		}
	}
	return false
}

// RemoveItem deletes the item with the given id.
// Returns false if no such item exists.
func (d *Document) RemoveItem(id string) bool {
	if !d.guardWrite(KindItem, "RemoveItem") {
		return false
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.notify(KindItem, d.itemListeners)
			return true
		}
	}
	return false
}

// OnItemsChanged registers a listener fired after every item list mutation.
func (d *Document) OnItemsChanged(fn func()) ListenerHandle {
	return d.addListener(&d.itemListeners, fn)
}

// --- Frames ---

// Frames returns a snapshot copy of the frame list.
func (d *Document) Frames() []PlacedFrame {
	return append([]PlacedFrame(nil), d.frames...)
}

// AddFrame appends a frame and returns its id.
func (d *Document) AddFrame(f PlacedFrame) string {
	if !d.guardWrite(KindFrame, "AddFrame") {
		return ""
	}
	if f.ID == "" {
		f.ID = d.genID(KindFrame)
	}
	d.frames = append(d.frames, f)
	d.notify(KindFrame, d.frameListeners)
	return f.ID
}

// UpdateFrame applies mutate to the frame with the given id.
func (d *Document) UpdateFrame(id string, mutate func(*PlacedFrame)) bool {
	if !d.guardWrite(KindFrame, "UpdateFrame") {
		return false
	}
	for i := range d.frames {
		if d.frames[i].ID == id {
			mutate(&d.frames[i])
			d.frames[i].ID = id
			d.notify(KindFrame, d.frameListeners)
			return true
		}
	}
	return false
}

// RemoveFrame deletes the frame with the given id.
func (d *Document) RemoveFrame(id string) bool {
	if !d.guardWrite(KindFrame, "RemoveFrame") {
		return false
	}
	for i := range d.frames {
		if d.frames[i].ID == id {
			d.frames = append(d.frames[:i], d.frames[i+1:]...)
			d.notify(KindFrame, d.frameListeners)
			return true
		}
	}
	return false
}

// OnFramesChanged registers a listener fired after every frame list mutation.
func (d *Document) OnFramesChanged(fn func()) ListenerHandle {
	return d.addListener(&d.frameListeners, fn)
}

// --- Socials ---

// Socials returns a snapshot copy of the social icon list.
func (d *Document) Socials() []PlacedSocial {
	return append([]PlacedSocial(nil), d.socials...)
}

// AddSocial appends a social icon and returns its id.
func (d *Document) AddSocial(s PlacedSocial) string {
	if !d.guardWrite(KindSocial, "AddSocial") {
		return ""
	}
	if s.ID == "" {
		s.ID = d.genID(KindSocial)
	}
	d.socials = append(d.socials, s)
	d.notify(KindSocial, d.socialListeners)
	return s.ID
}

// UpdateSocial applies mutate to the social icon with the given id.
func (d *Document) UpdateSocial(id string, mutate func(*PlacedSocial)) bool {
	if !d.guardWrite(KindSocial, "UpdateSocial") {
		return false
	}
	for i := range d.socials {
		if d.socials[i].ID == id {
			mutate(&d.socials[i])
			d.socials[i].ID = id
			d.notify(KindSocial, d.socialListeners)
			return true
		}
	}
	return false
}

// RemoveSocial deletes the social icon with the given id.
func (d *Document) RemoveSocial(id string) bool {
	if !d.guardWrite(KindSocial, "RemoveSocial") {
		return false
	}
	for i := range d.socials {
		if d.socials[i].ID == id {
			d.socials = append(d.socials[:i], d.socials[i+1:]...)
			d.notify(KindSocial, d.socialListeners)
			return true
		}
	}
	return false
}

// OnSocialsChanged registers a listener fired after every social list mutation.
func (d *Document) OnSocialsChanged(fn func()) ListenerHandle {
	return d.addListener(&d.socialListeners, fn)
}

// --- NPCs ---

// NPCs returns a snapshot copy of the NPC list.
func (d *Document) NPCs() []PlacedNPC {
	return append([]PlacedNPC(nil), d.npcs...)
}

// AddNPC appends an NPC and returns its id.
func (d *Document) AddNPC(n PlacedNPC) string {
	if !d.guardWrite(KindNPC, "AddNPC") {
		return ""
	}
	if n.ID == "" {
		n.ID = d.genID(KindNPC)
	}
	d.npcs = append(d.npcs, n)
	d.notify(KindNPC, d.npcListeners)
	return n.ID
}

// UpdateNPC applies mutate to the NPC with the given id.
func (d *Document) UpdateNPC(id string, mutate func(*PlacedNPC)) bool {
	if !d.guardWrite(KindNPC, "UpdateNPC") {
		return false
	}
	for i := range d.npcs {
		if d.npcs[i].ID == id {
			mutate(&d.npcs[i])
			d.npcs[i].ID = id
			d.notify(KindNPC, d.npcListeners)
			return true
		}
	}
	return false
}

// RemoveNPC deletes the NPC with the given id.
func (d *Document) RemoveNPC(id string) bool {
	if !d.guardWrite(KindNPC, "RemoveNPC") {
		return false
	}
	for i := range d.npcs {
		if d.npcs[i].ID == id {
			d.npcs = append(d.npcs[:i], d.npcs[i+1:]...)
			d.notify(KindNPC, d.npcListeners)
			return true
		}
	}
	return false
}

// OnNPCsChanged registers a listener fired after every NPC list mutation.
func (d *Document) OnNPCsChanged(fn func()) ListenerHandle {
	return d.addListener(&d.npcListeners, fn)
}

// --- Player ---

// Player returns the player spawn.
func (d *Document) Player() PlayerSpawn {
	return d.player
}

// SetPlayer replaces the player spawn.
func (d *Document) SetPlayer(p PlayerSpawn) {
	if !d.guardWrite(KindPlayer, "SetPlayer") {
		return
	}
	d.player = p
	d.notify(KindPlayer, d.playerListeners)
}

// OnPlayerChanged registers a listener fired after every player mutation.
func (d *Document) OnPlayerChanged(fn func()) ListenerHandle {
	return d.addListener(&d.playerListeners, fn)
}

// --- Selection ---

// CurrentSelection returns the current selection; the zero value means none.
func (d *Document) CurrentSelection() Selection {
	return d.selection
}

// Select makes the given entity the single current selection. Selecting any
// entity clears whatever was selected before, across all kinds.
// Select(KindNone, "") is equivalent to ClearSelection.
func (d *Document) Select(kind EntityKind, id string) {
	next := Selection{Kind: kind, ID: id}
	if kind == KindNone {
		next = Selection{}
	}
	if next == d.selection {
		return
	}
	if d.notifying[KindNone] {
		if globalDebug {
			panic("boardwalk debug: Select during selection listener notification")
		}
		log.Printf("boardwalk: dropped Select issued during selection listener notification")
		return
	}
	d.selection = next
	d.notify(KindNone, d.selectionListeners)
}

// ClearSelection removes the current selection, if any.
func (d *Document) ClearSelection() {
	d.Select(KindNone, "")
}

// OnSelectionChanged registers a listener fired after the selection changes.
func (d *Document) OnSelectionChanged(fn func()) ListenerHandle {
	return d.addListener(&d.selectionListeners, fn)
}
