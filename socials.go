package boardwalk

import (
	"log"
	"math"
)

// socialController manages social network icons. Socials never grid-snap:
// they sit on decorative surfaces at arbitrary positions.
type socialController struct {
	b     *Builder
	layer *Node

	nodes   map[string]*Node
	sprites map[string]*Interactable
	cache   map[string]PlacedSocial

	enabled bool
	sub     ListenerHandle
}

func newSocialController(b *Builder) *socialController {
	c := &socialController{
		b:       b,
		layer:   NewContainer("socials"),
		nodes:   make(map[string]*Node),
		sprites: make(map[string]*Interactable),
		cache:   make(map[string]PlacedSocial),
		enabled: true,
	}
	c.layer.Depth = DepthSocial
	b.world.AddChild(c.layer)
	c.sub = b.doc.OnSocialsChanged(c.reconcile)
	c.reconcile()
	return c
}

func (c *socialController) reconcile() {
	socials := c.b.doc.Socials()

	seen := make(map[string]bool, len(socials))
	for _, s := range socials {
		seen[s.ID] = true
		prev, exists := c.cache[s.ID]
		if !exists {
			c.create(s)
		} else if prev != s {
			c.refresh(s)
		}
		c.cache[s.ID] = s
	}
	for id := range c.cache {
		if !seen[id] {
			c.destroy(id)
		}
	}
}

func (c *socialController) create(s PlacedSocial) {
	def, ok := c.b.registry.Social(s.Network)
	if !ok {
		log.Printf("boardwalk: social %q references unknown network %q", s.ID, s.Network)
		def = SocialDef{ID: s.Network, Width: 48, Height: 48}
	}

	n := NewSprite("social:"+s.ID, def.Image, def.Width, def.Height)
	n.Kind = KindSocial
	n.EntityID = s.ID
	n.SetPosition(s.X, s.Y)
	c.layer.AddChild(n)

	id := s.ID
	c.nodes[id] = n
	c.sprites[id] = c.b.interactions.Attach(n, InteractionConfig{
		Bounds: c.b.worldRect(),
	}, InteractionCallbacks{
		IsSelected: func() bool {
			return c.b.doc.CurrentSelection() == (Selection{Kind: KindSocial, ID: id})
		},
		OnSelect: func() {
			c.b.doc.Select(KindSocial, id)
			c.b.emit(BuilderEvent{Type: EventSelect, Kind: KindSocial, ID: id})
		},
		OnDragEnd: func(x, y float64) {
			c.b.doc.UpdateSocial(id, func(p *PlacedSocial) {
				p.X = math.Round(x)
				p.Y = math.Round(y)
			})
			c.b.emit(BuilderEvent{Type: EventDragEnd, Kind: KindSocial, ID: id, X: x, Y: y})
		},
		OnDoubleClick: func() bool {
			// Double click opens the link editor in the UI.
			c.b.emit(BuilderEvent{Type: EventDoubleClick, Kind: KindSocial, ID: id})
			return true
		},
	})
	c.applyEnabled(n)
}

func (c *socialController) refresh(s PlacedSocial) {
	n, ok := c.nodes[s.ID]
	if !ok || n.IsDisposed() {
		return
	}
	prev := c.cache[s.ID]
	if prev.Network != s.Network {
		c.destroy(s.ID)
		c.create(s)
		return
	}
	n.SetPosition(s.X, s.Y)
}

func (c *socialController) destroy(id string) {
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

// drop creates a new social icon at canvas coordinates.
func (c *socialController) drop(network string, canvasX, canvasY float64) string {
	if !c.enabled {
		return ""
	}
	def, ok := c.b.registry.Social(network)
	if !ok {
		log.Printf("boardwalk: dropped social ignored: unknown network %q", network)
		return ""
	}
	wx, wy := c.b.viewport.ScreenToWorld(canvasX, canvasY)
	wx, wy = clampToBounds(wx-def.Width/2, wy-def.Height/2, c.b.worldRect())
	id := c.b.doc.AddSocial(PlacedSocial{Network: network, X: math.Round(wx), Y: math.Round(wy)})
	c.b.doc.Select(KindSocial, id)
	c.b.emit(BuilderEvent{Type: EventDrop, Kind: KindSocial, ID: id, X: wx, Y: wy})
	return id
}

func (c *socialController) setEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	for _, n := range c.nodes {
		c.applyEnabled(n)
	}
	if !enabled {
		if sel := c.b.doc.CurrentSelection(); sel.Kind == KindSocial {
			c.b.doc.ClearSelection()
		}
	}
}

func (c *socialController) applyEnabled(n *Node) {
	n.Interactable = c.enabled
	if c.enabled {
		n.SetAlpha(1)
	} else {
		n.SetAlpha(dimAlpha)
	}
}

func (c *socialController) destroyAll() {
	c.sub.Remove()
	for id := range c.nodes {
		c.destroy(id)
	}
	c.layer.Dispose()
}
