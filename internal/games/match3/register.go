package match3

import (
	"github.com/adforge/playable/internal/registry"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
)

func init() {
	registry.Register(registry.Template{
		ID:    "match3",
		Title: "Gem Match",
		NewGame: func(env *scenes.Env) scene.Scene {
			return NewGame(env)
		},
	})
}
