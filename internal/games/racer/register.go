package racer

import (
	"github.com/adforge/playable/internal/registry"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
)

func init() {
	registry.Register(registry.Template{
		ID:    "racer",
		Title: "Lane Racer",
		NewGame: func(env *scenes.Env) scene.Scene {
			return NewGame(env)
		},
	})
}
