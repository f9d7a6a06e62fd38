package boardwalk

import (
	"log"
	"math"
)

// playerController manages the singleton player spawn. Besides the usual
// protocol binding it enforces the ground clamp: a drag may carry the
// player below the ground line for visual feedback, but the persisted
// position on release is snapped back up to ground level.
type playerController struct {
	b    *Builder
	node *Node
	sp   *Interactable

	cache   PlayerSpawn
	enabled bool
	sub     ListenerHandle
}

func newPlayerController(b *Builder) *playerController {
	c := &playerController{b: b, enabled: true}
	c.sub = b.doc.OnPlayerChanged(c.reconcile)
	c.reconcile()
	return c
}

// groundY returns the world-space y of the ground line.
func (c *playerController) groundY() float64 {
	return c.b.doc.WorldHeight - c.b.cfg.GroundInset
}

// clampToGround snaps a top-left y so the player's feet never rest below
// the ground line. Positions above ground are left unchanged.
func (c *playerController) clampToGround(y float64) float64 {
	maxY := c.groundY() - c.node.Height
	if y > maxY {
		return maxY
	}
	return y
}

func (c *playerController) reconcile() {
	p := c.b.doc.Player()
	if c.node != nil && !c.node.IsDisposed() && p.Skin == c.cache.Skin {
		if p != c.cache {
			c.node.SetPosition(p.X, c.clampToGround(p.Y))
			c.cache = p
		}
		return
	}

	if c.node != nil {
		c.destroyNode()
	}

	def, ok := c.b.registry.Skin(p.Skin)
	if !ok {
		if p.Skin != "" {
			log.Printf("boardwalk: player references unknown skin %q", p.Skin)
		}
		def = SkinDef{ID: p.Skin, Width: 48, Height: 96}
	}

	n := NewSprite("player", def.Image, def.Width, def.Height)
	n.Kind = KindPlayer
	n.Depth = DepthPlayer
	c.node = n
	n.SetPosition(p.X, c.clampToGround(p.Y))
	if def.HitInset > 0 {
		n.HitShape = HitRect{
			X: def.HitInset, Y: def.HitInset,
			Width:  def.Width - 2*def.HitInset,
			Height: def.Height - 2*def.HitInset,
		}
	}
	c.b.world.AddChild(n)
	c.cache = p

	c.sp = c.b.interactions.Attach(n, InteractionConfig{
		Bounds: c.b.worldRect(),
	}, InteractionCallbacks{
		IsSelected: func() bool {
			return c.b.doc.CurrentSelection().Kind == KindPlayer
		},
		OnSelect: func() {
			c.b.doc.Select(KindPlayer, "")
			c.b.emit(BuilderEvent{Type: EventSelect, Kind: KindPlayer})
		},
		OnDragEnd: func(x, y float64) {
			y = c.clampToGround(y)
			c.node.SetPosition(x, y)
			p := c.b.doc.Player()
			p.X = math.Round(x)
			p.Y = math.Round(y)
			c.b.doc.SetPlayer(p)
			c.b.emit(BuilderEvent{Type: EventDragEnd, Kind: KindPlayer, X: p.X, Y: p.Y})
		},
	})
	c.applyEnabled()
}

func (c *playerController) destroyNode() {
	if c.sp != nil {
		c.sp.Detach()
		c.sp = nil
	}
	if c.node != nil {
		c.node.Dispose()
		c.node = nil
	}
}

func (c *playerController) setEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	c.applyEnabled()
	if !enabled && c.b.doc.CurrentSelection().Kind == KindPlayer {
		c.b.doc.ClearSelection()
	}
}

func (c *playerController) applyEnabled() {
	if c.node == nil {
		return
	}
	c.node.Interactable = c.enabled
	if c.enabled {
		c.node.SetAlpha(1)
	} else {
		c.node.SetAlpha(dimAlpha)
	}
}

func (c *playerController) destroyAll() {
	c.sub.Remove()
	c.destroyNode()
}
