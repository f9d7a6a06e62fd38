// Package boardwalk is the editor core for a 2D side-scrolling scene
// builder, built on [Ebitengine].
//
// It keeps a document of placed entities (items, picture frames, social
// links, NPCs, and the player spawn) reconciled with a scene tree, and
// drives the camera and the drag/select interaction protocol from mouse,
// trackpad, and touch input.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and a
// game loop for you:
//
//	doc := boardwalk.NewDocument(2000, 1200)
//	reg := boardwalk.NewRegistry()
//	// ... register assets and skins ...
//	b := boardwalk.NewBuilder(doc, reg, boardwalk.Config{GridSize: 8}, 1280, 720)
//	boardwalk.Run(b, boardwalk.RunConfig{Title: "Scene Builder"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Builder.Update] and [Builder.Draw] directly.
//
// # Document and reconciliation
//
// The [Document] is the source of truth. Entity controllers subscribe to
// its change notifications and diff the scene tree against it every
// mutation: new entities get nodes, changed entities are refreshed in
// place, removed entities are destroyed. Moving a sprite with the pointer
// writes back to the document only when the drag ends.
//
// # Interaction
//
// Sprites follow a two-step protocol: the first press on an unselected
// sprite selects it; a press on an already-selected sprite starts a drag.
// Background clicks clear the selection, and dragging the background
// scrolls the camera. Touch input adds pinch-to-zoom, which preempts any
// gesture in progress.
//
// Camera fit and center motions are tweened (via [gween]); events can be
// forwarded to an ECS (via the [Donburi] adapter in boardwalk/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package boardwalk
