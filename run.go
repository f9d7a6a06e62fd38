package boardwalk

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// game adapts a Builder to the ebiten.Game interface.
type game struct {
	b    *Builder
	w, h int
}

func (g *game) Update() error {
	g.b.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.b.Draw(screen)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.w || outsideH != g.h {
		g.w, g.h = outsideW, outsideH
		g.b.HandleResize(float64(outsideW), float64(outsideH))
	}
	return outsideW, outsideH
}

// Run opens a window and drives the builder's update/draw loop until the
// window closes. Blocks until then.
func Run(b *Builder, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "boardwalk"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{b: b, w: cfg.Width, h: cfg.Height}
	b.HandleResize(float64(cfg.Width), float64(cfg.Height))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("boardwalk: run: %w", err)
	}
	return nil
}
