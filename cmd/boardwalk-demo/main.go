// Boardwalk-demo opens a scene builder editing an empty 2000x1200 world
// with a few placeholder assets. Drag sprites to move them (click once to
// select, press again to drag), drag the background to scroll, scroll to
// zoom, press F to fit the world, Space to center on the player.
// No external assets are required.
package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/torchlane/boardwalk"
)

const (
	windowTitle = "Boardwalk — Scene Builder Demo"
	screenW     = 1280
	screenH     = 720
	worldW      = 2000
	worldH      = 1200
)

func main() {
	doc := boardwalk.NewDocument(worldW, worldH)
	reg := boardwalk.NewRegistry()

	reg.RegisterAsset(boardwalk.AssetDef{
		ID: "crate", Image: solid(64, 64, color.RGBA{R: 200, G: 150, B: 80, A: 255}),
		Width: 64, Height: 64,
	})
	reg.RegisterAsset(boardwalk.AssetDef{
		ID: "lamp", Image: solid(24, 96, color.RGBA{R: 240, G: 220, B: 120, A: 255}),
		Width: 24, Height: 96,
	})
	reg.RegisterSkin(boardwalk.SkinDef{
		ID: "walker", Image: solid(48, 96, color.RGBA{R: 90, G: 160, B: 220, A: 255}),
		Width: 48, Height: 96, HitInset: 4,
	})
	reg.RegisterSocial(boardwalk.SocialDef{
		ID: "chirper", Image: solid(40, 40, color.RGBA{R: 120, G: 200, B: 240, A: 255}),
		Width: 40, Height: 40,
	})

	b := boardwalk.NewBuilder(doc, reg, boardwalk.Config{
		GridSize:    8,
		GroundInset: 40,
	}, screenW, screenH)

	b.OnEvent(func(e boardwalk.BuilderEvent) {
		log.Printf("event: type=%d kind=%s id=%s at (%.0f, %.0f)", e.Type, e.Kind, e.ID, e.X, e.Y)
	})

	// Seed the world with a few entities.
	b.DropItem("crate", 400, 500)
	b.DropItem("lamp", 700, 420)
	b.DropNPC("walker", 900, 560)
	b.DropSocial("chirper", 300, 200)
	doc.ClearSelection()

	if err := boardwalk.Run(b, boardwalk.RunConfig{
		Title:  windowTitle,
		Width:  screenW,
		Height: screenH,
	}); err != nil {
		log.Fatal(err)
	}
}

func solid(w, h int, c color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}
