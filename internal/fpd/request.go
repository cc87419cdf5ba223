// Package fpd implements first-party data capture: the request routing, the
// mid-game trigger policy, and the multi-screen form the DataCapture scene
// drives. Captured answers persist keyed by template and placement.
package fpd

import (
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/scene"
)

// Request describes one capture interstitial: where in the flow it happens,
// which screens to show, and how to resume afterwards. GameData passes
// through untouched so an interrupted game can restore its snapshot.
type Request struct {
	Placement config.Placement
	Screens   config.CaptureScreens
	NextScene scene.ID
	GameData  scene.Payload
}

// FromPayload reconstructs a request from a DataCapture scene payload.
func FromPayload(s *config.Store, p scene.Payload) Request {
	placement := config.Placement(p.Str(scene.PayloadPlacement, string(config.PlacementBeforeEnd)))
	return Request{
		Placement: placement,
		Screens:   config.FPDScreens(s, placement),
		NextScene: scene.ID(p.Str(scene.PayloadNextScene, string(scene.End))),
		GameData:  p.Sub(scene.PayloadGameData),
	}
}

// Saver persists one capture blob. Satisfied by the sqlite store.
type Saver interface {
	SaveCapture(template, placement string, fields map[string]string) error
}
