package boardwalk

import (
	"log"
	"math"
)

// itemController owns the visual representation of every placed item,
// binds each to the interaction protocol, and reconciles document changes
// into the scene graph.
type itemController struct {
	b     *Builder
	layer *Node

	nodes   map[string]*Node
	sprites map[string]*Interactable
	cache   map[string]PlacedItem

	enabled bool
	sub     ListenerHandle
}

func newItemController(b *Builder) *itemController {
	c := &itemController{
		b:       b,
		layer:   NewContainer("items"),
		nodes:   make(map[string]*Node),
		sprites: make(map[string]*Interactable),
		cache:   make(map[string]PlacedItem),
		enabled: true,
	}
	c.layer.Depth = DepthItem
	b.world.AddChild(c.layer)
	c.sub = b.doc.OnItemsChanged(c.reconcile)
	c.reconcile()
	return c
}

// reconcile performs the three-way diff between the document snapshot and
// the scene graph: removed entries are destroyed, changed entries refreshed
// in place, new entries instantiated. Applying the same snapshot twice is a
// no-op the second time, which keeps store-driven and drag-driven mutations
// from double-applying.
func (c *itemController) reconcile() {
	items := c.b.doc.Items()

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.ID] = true
		prev, exists := c.cache[it.ID]
		if !exists {
			c.create(it)
		} else if prev != it {
			c.refresh(it)
		}
		c.cache[it.ID] = it
	}
	for id := range c.cache {
		if !seen[id] {
			c.destroy(id)
		}
	}
}

func (c *itemController) create(it PlacedItem) {
	def, ok := c.b.registry.Asset(it.Asset)
	if !ok {
		log.Printf("boardwalk: item %q references unknown asset %q", it.ID, it.Asset)
		def = AssetDef{ID: it.Asset, Width: 32, Height: 32}
	}

	n := NewSprite("item:"+it.ID, def.Image, def.Width, def.Height)
	n.Kind = KindItem
	n.EntityID = it.ID
	n.SetPosition(it.X, it.Y)
	n.SetScale(it.Scale, it.Scale)
	n.SetFlipX(it.FlipX)
	n.Depth = it.Depth
	c.layer.AddChild(n)

	id := it.ID
	c.nodes[id] = n
	c.sprites[id] = c.b.interactions.Attach(n, InteractionConfig{
		Bounds:   c.b.worldRect(),
		GridSize: c.b.cfg.GridSize,
	}, InteractionCallbacks{
		IsSelected: func() bool {
			return c.b.doc.CurrentSelection() == (Selection{Kind: KindItem, ID: id})
		},
		OnSelect: func() {
			c.b.doc.Select(KindItem, id)
			c.b.emit(BuilderEvent{Type: EventSelect, Kind: KindItem, ID: id})
		},
		OnDragStart: func() {
			c.b.emit(BuilderEvent{Type: EventDragStart, Kind: KindItem, ID: id})
		},
		OnDrag: func(x, y float64) {
			// Scene graph runs ahead of the store mid-drag for
			// responsiveness; the store write lands on drag end.
			c.b.emit(BuilderEvent{Type: EventDrag, Kind: KindItem, ID: id, X: x, Y: y})
		},
		OnDragEnd: func(x, y float64) {
			c.b.doc.UpdateItem(id, func(p *PlacedItem) {
				p.X = math.Round(x)
				p.Y = math.Round(y)
			})
			c.b.emit(BuilderEvent{Type: EventDragEnd, Kind: KindItem, ID: id, X: x, Y: y})
		},
		OnDoubleClick: func() bool {
			c.b.emit(BuilderEvent{Type: EventDoubleClick, Kind: KindItem, ID: id})
			return false
		},
	})
	c.applyEnabled(n)
}

func (c *itemController) refresh(it PlacedItem) {
	n, ok := c.nodes[it.ID]
	if !ok || n.IsDisposed() {
		return
	}
	prev := c.cache[it.ID]
	if prev.Asset != it.Asset {
		// Texture swap: simplest correct refresh is recreate.
		c.destroy(it.ID)
		c.create(it)
		return
	}
	n.SetPosition(it.X, it.Y)
	n.SetScale(it.Scale, it.Scale)
	n.SetFlipX(it.FlipX)
	n.SetDepth(it.Depth)
}

func (c *itemController) destroy(id string) {
	if sp, ok := c.sprites[id]; ok {
		sp.Detach()
		delete(c.sprites, id)
	}
	if n, ok := c.nodes[id]; ok {
		n.Dispose()
		delete(c.nodes, id)
	}
	delete(c.cache, id)
}

// drop creates a new item from a palette drop at canvas coordinates.
// Unknown assets are dropped silently (logged), never an error: throwing
// from the input path would strand gesture state machines.
func (c *itemController) drop(asset string, canvasX, canvasY float64) string {
	if !c.enabled {
		return ""
	}
	def, ok := c.b.registry.Asset(asset)
	if !ok {
		log.Printf("boardwalk: dropped item ignored: unknown asset %q", asset)
		return ""
	}
	wx, wy := c.b.viewport.ScreenToWorld(canvasX, canvasY)
	wx, wy = clampToBounds(wx-def.Width/2, wy-def.Height/2, c.b.worldRect())
	id := c.b.doc.AddItem(PlacedItem{Asset: asset, X: math.Round(wx), Y: math.Round(wy), Scale: 1})
	c.b.doc.Select(KindItem, id)
	c.b.emit(BuilderEvent{Type: EventDrop, Kind: KindItem, ID: id, X: wx, Y: wy})
	return id
}

// setEnabled toggles interactivity for an exclusive edit mode. Disabling
// dims the layer and clears any selection this controller owns.
func (c *itemController) setEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	for _, n := range c.nodes {
		c.applyEnabled(n)
	}
	if !enabled {
		if sel := c.b.doc.CurrentSelection(); sel.Kind == KindItem {
			c.b.doc.ClearSelection()
		}
	}
}

func (c *itemController) applyEnabled(n *Node) {
	n.Interactable = c.enabled
	if c.enabled {
		n.SetAlpha(1)
	} else {
		n.SetAlpha(dimAlpha)
	}
}

func (c *itemController) destroyAll() {
	c.sub.Remove()
	for id := range c.nodes {
		c.destroy(id)
	}
	c.layer.Dispose()
}
