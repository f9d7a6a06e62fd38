package boardwalk

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardState is a single frame of keyboard intent, decoupled from
// ebiten polling so tests can drive applyKeyboard directly.
type KeyboardState struct {
	PanX, PanY   float64
	Delete       bool
	CenterPlayer bool
	FitToggle    bool
}

// SetTextInputFocused suppresses editor keyboard shortcuts while a UI
// text field has focus, so typing does not pan the camera or delete
// the selection.
func (b *Builder) SetTextInputFocused(focused bool) {
	b.textFocused = focused
}

func pollKeyboard() KeyboardState {
	var ks KeyboardState
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		ks.PanX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		ks.PanX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		ks.PanY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		ks.PanY += 1
	}
	ks.Delete = inpututil.IsKeyJustPressed(ebiten.KeyDelete) ||
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	ks.CenterPlayer = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	ks.FitToggle = inpututil.IsKeyJustPressed(ebiten.KeyF)
	return ks
}

func (b *Builder) applyKeyboard(ks KeyboardState) {
	if b.textFocused {
		return
	}
	if ks.PanX != 0 || ks.PanY != 0 {
		b.viewport.KeyPan(ks.PanX, ks.PanY)
		b.fitHeld = false
	}
	if ks.Delete {
		b.deleteSelection()
	}
	if ks.CenterPlayer {
		p := b.doc.Player()
		b.viewport.CenterOn(p.X, p.Y)
		b.fitHeld = false
	}
	if ks.FitToggle {
		b.toggleFit()
	}
}

// deleteSelection removes the selected entity from the document. The
// player spawn cannot be deleted, only moved.
func (b *Builder) deleteSelection() {
	if b.mode != ModeLayout {
		return
	}
	sel := b.doc.CurrentSelection()
	switch sel.Kind {
	case KindItem:
		b.doc.RemoveItem(sel.ID)
	case KindFrame:
		b.doc.RemoveFrame(sel.ID)
	case KindSocial:
		b.doc.RemoveSocial(sel.ID)
	case KindNPC:
		b.doc.RemoveNPC(sel.ID)
	default:
		return
	}
	b.doc.ClearSelection()
}

// toggleFit animates to the whole-world fit, remembering the previous
// framing. A second toggle returns to where the user was.
func (b *Builder) toggleFit() {
	if b.fitHeld {
		b.fitHeld = false
		b.viewport.animateTo(b.fitPrev.x, b.fitPrev.y, b.fitPrev.zoom)
		return
	}
	b.fitPrev.x, b.fitPrev.y = b.viewport.Position()
	b.fitPrev.zoom = b.viewport.Zoom()
	b.fitHeld = true
	b.viewport.ResetToFit()
}
