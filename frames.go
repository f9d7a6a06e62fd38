package boardwalk

import "math"

// frameController manages picture frames. Frames carry their own explicit
// dimensions (the user image is letterboxed into them by the renderer), so
// unlike items there is no registry lookup on create.
type frameController struct {
	b     *Builder
	layer *Node

	nodes   map[string]*Node
	sprites map[string]*Interactable
	cache   map[string]PlacedFrame

	enabled bool
	sub     ListenerHandle
}

func newFrameController(b *Builder) *frameController {
	c := &frameController{
		b:       b,
		layer:   NewContainer("frames"),
		nodes:   make(map[string]*Node),
		sprites: make(map[string]*Interactable),
		cache:   make(map[string]PlacedFrame),
		enabled: true,
	}
	c.layer.Depth = DepthFrame
	b.world.AddChild(c.layer)
	c.sub = b.doc.OnFramesChanged(c.reconcile)
	c.reconcile()
	return c
}

func (c *frameController) reconcile() {
	frames := c.b.doc.Frames()

	seen := make(map[string]bool, len(frames))
	for _, f := range frames {
		seen[f.ID] = true
		prev, exists := c.cache[f.ID]
		if !exists {
			c.create(f)
		} else if prev != f {
			c.refresh(f)
		}
		c.cache[f.ID] = f
	}
	for id := range c.cache {
		if !seen[id] {
			c.destroy(id)
		}
	}
}

func (c *frameController) create(f PlacedFrame) {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = defaultFrameSize
	}
	if h <= 0 {
		h = defaultFrameSize
	}
	n := NewSprite("frame:"+f.ID, nil, w, h)
	n.Kind = KindFrame
	n.EntityID = f.ID
	n.SetPosition(f.X, f.Y)
	c.layer.AddChild(n)

	id := f.ID
	c.nodes[id] = n
	c.sprites[id] = c.b.interactions.Attach(n, InteractionConfig{
		Bounds:   c.b.worldRect(),
		GridSize: c.b.cfg.GridSize,
	}, InteractionCallbacks{
		IsSelected: func() bool {
			return c.b.doc.CurrentSelection() == (Selection{Kind: KindFrame, ID: id})
		},
		OnSelect: func() {
			c.b.doc.Select(KindFrame, id)
			c.b.emit(BuilderEvent{Type: EventSelect, Kind: KindFrame, ID: id})
		},
		OnDragEnd: func(x, y float64) {
			c.b.doc.UpdateFrame(id, func(p *PlacedFrame) {
				p.X = math.Round(x)
				p.Y = math.Round(y)
			})
			c.b.emit(BuilderEvent{Type: EventDragEnd, Kind: KindFrame, ID: id, X: x, Y: y})
		},
		OnDoubleClick: func() bool {
			// Double click opens the frame's image editor in the UI.
			c.b.emit(BuilderEvent{Type: EventDoubleClick, Kind: KindFrame, ID: id})
			return true
		},
	})
	c.applyEnabled(n)
}

const defaultFrameSize = 96.0

func (c *frameController) refresh(f PlacedFrame) {
	n, ok := c.nodes[f.ID]
	if !ok || n.IsDisposed() {
		return
	}
	n.SetPosition(f.X, f.Y)
	if f.Width > 0 {
		n.Width = f.Width
	}
	if f.Height > 0 {
		n.Height = f.Height
	}
}

func (c *frameController) destroy(id string) {
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

// drop creates a new frame at canvas coordinates.
func (c *frameController) drop(image string, canvasX, canvasY float64) string {
	if !c.enabled {
		return ""
	}
	wx, wy := c.b.viewport.ScreenToWorld(canvasX, canvasY)
	wx, wy = clampToBounds(wx-defaultFrameSize/2, wy-defaultFrameSize/2, c.b.worldRect())
	id := c.b.doc.AddFrame(PlacedFrame{
		Image: image,
		X:     math.Round(wx), Y: math.Round(wy),
		Width: defaultFrameSize, Height: defaultFrameSize,
	})
	c.b.doc.Select(KindFrame, id)
	c.b.emit(BuilderEvent{Type: EventDrop, Kind: KindFrame, ID: id, X: wx, Y: wy})
	return id
}

func (c *frameController) setEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	for _, n := range c.nodes {
		c.applyEnabled(n)
	}
	if !enabled {
		if sel := c.b.doc.CurrentSelection(); sel.Kind == KindFrame {
			c.b.doc.ClearSelection()
		}
	}
}

func (c *frameController) applyEnabled(n *Node) {
	n.Interactable = c.enabled
	if c.enabled {
		n.SetAlpha(1)
	} else {
		n.SetAlpha(dimAlpha)
	}
}

func (c *frameController) destroyAll() {
	c.sub.Remove()
	for id := range c.nodes {
		c.destroy(id)
	}
	c.layer.Dispose()
}
