package boardwalk

// selectionSync keeps the visual selection state in step with the
// document. It runs every frame after the controllers reconcile, since
// a reconcile may have replaced the selected node.
type selectionSync struct {
	b      *Builder
	tinted *Node
}

func newSelectionSync(b *Builder) *selectionSync {
	return &selectionSync{b: b}
}

// selectedNode resolves the document selection to its scene node, or
// nil if nothing is selected or the node has not been created yet.
func (b *Builder) selectedNode() *Node {
	sel := b.doc.CurrentSelection()
	switch sel.Kind {
	case KindItem:
		return b.items.nodes[sel.ID]
	case KindFrame:
		return b.frames.nodes[sel.ID]
	case KindSocial:
		return b.socials.nodes[sel.ID]
	case KindNPC:
		return b.npcs.nodes[sel.ID]
	case KindPlayer:
		return b.player.node
	}
	return nil
}

func (s *selectionSync) update() {
	n := s.b.selectedNode()
	if n == s.tinted {
		return
	}
	if s.tinted != nil && !s.tinted.IsDisposed() {
		s.tinted.Color = ColorWhite
	}
	if n != nil {
		n.Color = SelectionTint
	}
	s.tinted = n
}

func (s *selectionSync) clear() {
	if s.tinted != nil && !s.tinted.IsDisposed() {
		s.tinted.Color = ColorWhite
	}
	s.tinted = nil
}

// SelectionScreenRect returns the selected entity's bounds projected to
// screen space, for positioning overlay UI next to the selection. The
// second return is false when nothing is selected.
func (b *Builder) SelectionScreenRect() (Rect, bool) {
	n := b.selectedNode()
	if n == nil || n.IsDisposed() {
		return Rect{}, false
	}
	wb := n.WorldBounds()
	x0, y0 := b.viewport.WorldToScreen(wb.X, wb.Y)
	x1, y1 := b.viewport.WorldToScreen(wb.X+wb.Width, wb.Y+wb.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
