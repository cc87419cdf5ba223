// Package editor exposes the live-reconfiguration endpoint: a websocket
// server the hosting editor connects to for pushing patch messages and
// receiving scene and tracking events back.
package editor

import "github.com/adforge/playable/internal/patch"

// envelope is the wire frame in both directions: a type tag plus a free-form
// payload. Inbound envelopes with a patch kind decode into patch.Message.
type envelope struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Outbound event types.
const (
	eventHello        = "HELLO"
	eventSceneChanged = "SCENE_CHANGED"
	eventTracking     = "TRACKING_FIRED"
	eventError        = "ERROR"
)

// asPatch converts an inbound envelope into a patch message.
func (e envelope) asPatch() patch.Message {
	return patch.Message{Type: patch.Kind(e.Type), Data: e.Data}
}
