package boardwalk

import (
	"log"
	"math"
)

// npcController manages placed NPCs. Skins carry a HitInset so the
// clickable area excludes the sprite sheet's empty padding; clicks between
// tightly spaced characters resolve to the right one.
type npcController struct {
	b     *Builder
	layer *Node

	nodes   map[string]*Node
	sprites map[string]*Interactable
	cache   map[string]PlacedNPC

	enabled bool
	sub     ListenerHandle
}

func newNPCController(b *Builder) *npcController {
	c := &npcController{
		b:       b,
		layer:   NewContainer("npcs"),
		nodes:   make(map[string]*Node),
		sprites: make(map[string]*Interactable),
		cache:   make(map[string]PlacedNPC),
		enabled: true,
	}
	c.layer.Depth = DepthNPC
	b.world.AddChild(c.layer)
	c.sub = b.doc.OnNPCsChanged(c.reconcile)
	c.reconcile()
	return c
}

func (c *npcController) reconcile() {
	npcs := c.b.doc.NPCs()

	seen := make(map[string]bool, len(npcs))
	for _, n := range npcs {
		seen[n.ID] = true
		prev, exists := c.cache[n.ID]
		if !exists {
			c.create(n)
		} else if prev != n {
			c.refresh(n)
		}
		c.cache[n.ID] = n
	}
	for id := range c.cache {
		if !seen[id] {
			c.destroy(id)
		}
	}
}

func (c *npcController) create(npc PlacedNPC) {
	def, ok := c.b.registry.Skin(npc.Skin)
	if !ok {
		log.Printf("boardwalk: npc %q references unknown skin %q", npc.ID, npc.Skin)
		def = SkinDef{ID: npc.Skin, Width: 48, Height: 96}
	}

	n := NewSprite("npc:"+npc.ID, def.Image, def.Width, def.Height)
	n.Kind = KindNPC
	n.EntityID = npc.ID
	n.SetPosition(npc.X, npc.Y)
	n.SetFlipX(npc.FlipX)
	if def.HitInset > 0 {
		n.HitShape = HitRect{
			X: def.HitInset, Y: def.HitInset,
			Width:  def.Width - 2*def.HitInset,
			Height: def.Height - 2*def.HitInset,
		}
	}
	c.layer.AddChild(n)

	id := npc.ID
	c.nodes[id] = n
	c.sprites[id] = c.b.interactions.Attach(n, InteractionConfig{
		Bounds: c.b.worldRect(),
	}, InteractionCallbacks{
		IsSelected: func() bool {
			return c.b.doc.CurrentSelection() == (Selection{Kind: KindNPC, ID: id})
		},
		OnSelect: func() {
			c.b.doc.Select(KindNPC, id)
			c.b.emit(BuilderEvent{Type: EventSelect, Kind: KindNPC, ID: id})
		},
		OnDragEnd: func(x, y float64) {
			c.b.doc.UpdateNPC(id, func(p *PlacedNPC) {
				p.X = math.Round(x)
				p.Y = math.Round(y)
			})
			c.b.emit(BuilderEvent{Type: EventDragEnd, Kind: KindNPC, ID: id, X: x, Y: y})
		},
		OnDoubleClick: func() bool {
			// Double click opens the dialog editor for this NPC.
			c.b.emit(BuilderEvent{Type: EventDoubleClick, Kind: KindNPC, ID: id})
			return true
		},
	})
	c.applyEnabled(n)
}

func (c *npcController) refresh(npc PlacedNPC) {
	n, ok := c.nodes[npc.ID]
	if !ok || n.IsDisposed() {
		return
	}
	prev := c.cache[npc.ID]
	if prev.Skin != npc.Skin {
		c.destroy(npc.ID)
		c.create(npc)
		return
	}
	n.SetPosition(npc.X, npc.Y)
	n.SetFlipX(npc.FlipX)
}

func (c *npcController) destroy(id string) {
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

// drop creates a new NPC at canvas coordinates, feet on the drop point.
func (c *npcController) drop(skin string, canvasX, canvasY float64) string {
	if !c.enabled {
		return ""
	}
	def, ok := c.b.registry.Skin(skin)
	if !ok {
		log.Printf("boardwalk: dropped npc ignored: unknown skin %q", skin)
		return ""
	}
	wx, wy := c.b.viewport.ScreenToWorld(canvasX, canvasY)
	wx, wy = clampToBounds(wx-def.Width/2, wy-def.Height, c.b.worldRect())
	id := c.b.doc.AddNPC(PlacedNPC{Skin: skin, X: math.Round(wx), Y: math.Round(wy)})
	c.b.doc.Select(KindNPC, id)
	c.b.emit(BuilderEvent{Type: EventDrop, Kind: KindNPC, ID: id, X: wx, Y: wy})
	return id
}

func (c *npcController) setEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	for _, n := range c.nodes {
		c.applyEnabled(n)
	}
	if !enabled {
		if sel := c.b.doc.CurrentSelection(); sel.Kind == KindNPC {
			c.b.doc.ClearSelection()
		}
	}
}

func (c *npcController) applyEnabled(n *Node) {
	n.Interactable = c.enabled
	if c.enabled {
		n.SetAlpha(1)
	} else {
		n.SetAlpha(dimAlpha)
	}
}

func (c *npcController) destroyAll() {
	c.sub.Remove()
	for id := range c.nodes {
		c.destroy(id)
	}
	c.layer.Dispose()
}
