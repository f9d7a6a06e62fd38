package boardwalk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders the scene tree in painter order through the viewport's
// transform. Call once per ebiten Draw.
func (b *Builder) Draw(screen *ebiten.Image) {
	ox, oy := b.viewport.ViewOrigin()
	zoom := b.viewport.Zoom()
	cull := b.viewport.VisibleWorldRect()
	b.drawNode(screen, b.world, ox, oy, zoom, cull)
}

func (b *Builder) drawNode(screen *ebiten.Image, n *Node, ox, oy, zoom float64, cull Rect) {
	if n.disposed || !n.Visible || n.worldAlpha <= 0 {
		return
	}

	if n.Image != nil {
		wb := n.WorldBounds()
		if wb.Intersects(cull) {
			b.drawSprite(screen, n, ox, oy, zoom)
		}
	}

	for _, c := range sortedOrder(n) {
		b.drawNode(screen, c, ox, oy, zoom, cull)
	}
}

func (b *Builder) drawSprite(screen *ebiten.Image, n *Node, ox, oy, zoom float64) {
	iw := n.Image.Bounds().Dx()
	ih := n.Image.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	// Image pixels -> node size, then the node's world transform, then
	// world -> screen.
	op.GeoM.Scale(n.Width/float64(iw), n.Height/float64(ih))
	t := n.worldTransform
	m := ebiten.GeoM{}
	m.SetElement(0, 0, t[0])
	m.SetElement(0, 1, t[2])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 0, t[1])
	m.SetElement(1, 1, t[3])
	m.SetElement(1, 2, t[5])
	op.GeoM.Concat(m)
	op.GeoM.Translate(-ox, -oy)
	op.GeoM.Scale(zoom, zoom)

	op.ColorScale.Scale(float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A))
	op.ColorScale.ScaleAlpha(float32(n.worldAlpha))
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(n.Image, &op)
}
