package boardwalk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// AssetDef describes a placeable item asset: its texture and unscaled world
// dimensions. Image may be nil in headless contexts; Width/Height are then
// still used for hit testing and layout.
type AssetDef struct {
	ID            string
	Image         *ebiten.Image
	Width, Height float64
}

// SkinDef describes a character skin used by NPCs and the player.
type SkinDef struct {
	ID            string
	Image         *ebiten.Image
	Width, Height float64
	// HitInset shrinks the clickable area on each side, excluding the
	// sprite sheet's empty padding so clicks between tightly spaced
	// characters resolve to the right one.
	HitInset float64
}

// SocialDef describes a social network icon.
type SocialDef struct {
	ID            string
	Image         *ebiten.Image
	Width, Height float64
}

// Registry holds the static definition tables the controllers resolve
// against. A drop referencing an unknown id is silently ignored (logged);
// definitions are registered up front and never change mid-session.
type Registry struct {
	assets  map[string]AssetDef
	skins   map[string]SkinDef
	socials map[string]SocialDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		assets:  make(map[string]AssetDef),
		skins:   make(map[string]SkinDef),
		socials: make(map[string]SocialDef),
	}
}

// RegisterAsset adds or replaces an item asset definition.
func (r *Registry) RegisterAsset(def AssetDef) {
	r.assets[def.ID] = def
}

// Asset looks up an item asset definition by id.
func (r *Registry) Asset(id string) (AssetDef, bool) {
	def, ok := r.assets[id]
	return def, ok
}

// RegisterSkin adds or replaces a character skin definition.
func (r *Registry) RegisterSkin(def SkinDef) {
	r.skins[def.ID] = def
}

// Skin looks up a character skin definition by id.
func (r *Registry) Skin(id string) (SkinDef, bool) {
	def, ok := r.skins[id]
	return def, ok
}

// RegisterSocial adds or replaces a social icon definition.
func (r *Registry) RegisterSocial(def SocialDef) {
	r.socials[def.ID] = def
}

// Social looks up a social icon definition by id.
func (r *Registry) Social(id string) (SocialDef, bool) {
	def, ok := r.socials[id]
	return def, ok
}
