// Package patch implements the live-reconfiguration path: typed patch
// messages from the hosting editor are merged into the configuration store
// and re-applied to whichever scenes are currently active.
package patch

// Kind tags a patch message. The set is fixed; unknown kinds are logged and
// dropped.
type Kind string

const (
	KindUpdateTexts       Kind = "UPDATE_TEXTS"
	KindUpdateButtons     Kind = "UPDATE_BUTTONS"
	KindUpdateLayout      Kind = "UPDATE_LAYOUT"
	KindUpdateAssetScales Kind = "UPDATE_ASSET_SCALES"
	KindUpdateBackground  Kind = "UPDATE_BACKGROUND"
	KindUpdateFonts       Kind = "UPDATE_FONTS"
	KindUpdateAssets      Kind = "UPDATE_ASSETS"
	KindClearAssets       Kind = "CLEAR_ASSETS"
	KindJumpToScene       Kind = "JUMP_TO_SCENE"
)

// Message is one patch as it arrives from the host: a type tag plus a
// partial document.
type Message struct {
	Type Kind           `json:"type"`
	Data map[string]any `json:"data"`
}

// Reapplier is implemented by scenes that can update already-rendered
// elements in response to a patch without a full restart. The payload is the
// patch data only, not the whole configuration, so the scene can decide the
// minimal update (reposition vs. full recreate).
type Reapplier interface {
	Reapply(kind Kind, payload map[string]any)
}

// Table is a reapply-dispatch table keyed by patch kind. Scenes across all
// game variants share this mechanism and differ only in the handlers they
// install, which keeps per-scene reapply logic from being duplicated.
type Table map[Kind]func(payload map[string]any)

// Reapply dispatches to the handler for kind, if any.
func (t Table) Reapply(kind Kind, payload map[string]any) {
	if handler, ok := t[kind]; ok {
		handler(payload)
	}
}
