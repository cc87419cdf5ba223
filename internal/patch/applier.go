package patch

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
)

// Hooks are the runtime callbacks an Applier drives. ActiveScenes returns
// the scenes currently able to reapply; JumpTo services host-driven scene
// jumps; RestartFromPreload re-enters the load pathway after asset
// replacement (downstream scenes hold handles to the previous decoded
// assets, so an in-place swap is not possible).
type Hooks struct {
	ActiveScenes       func() []Reapplier
	JumpTo             func(scene string)
	RestartFromPreload func()
}

// Applier receives patch messages, merges them into the configuration store
// and dispatches reapply operations to active scenes. Applying the same
// patch twice is observably a no-op the second time (the host may resend on
// reconnect).
type Applier struct {
	store   *config.Store
	catalog *assets.Catalog
	hooks   Hooks
	logger  *log.Logger
}

// NewApplier creates an applier over the given store and asset catalog.
func NewApplier(store *config.Store, catalog *assets.Catalog, hooks Hooks, logger *log.Logger) *Applier {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "patch"})
	}
	return &Applier{
		store:   store,
		catalog: catalog,
		hooks:   hooks,
		logger:  logger,
	}
}

// sectionFor maps merging patch kinds to their configuration section.
// UPDATE_BUTTONS is absent: its payload spans several sections.
var sectionFor = map[Kind]string{
	KindUpdateTexts:       config.SectionText,
	KindUpdateLayout:      config.SectionLayout,
	KindUpdateAssetScales: config.SectionAssetScales,
	KindUpdateBackground:  config.SectionBackground,
	KindUpdateFonts:       config.SectionFonts,
}

// buttonSections are the configuration sections an UPDATE_BUTTONS payload
// may address, keyed by payload key.
var buttonSections = []string{
	config.SectionActionButton,
	config.SectionCTAButton,
	config.SectionScoreBox,
}

// Apply processes one patch message: merge first, then reapply. Messages
// are applied in receipt order; a later patch of the same kind wins per
// field. Malformed or unknown messages log and no-op.
func (a *Applier) Apply(msg Message) {
	switch msg.Type {
	case KindUpdateTexts, KindUpdateLayout, KindUpdateAssetScales,
		KindUpdateBackground, KindUpdateFonts:
		a.store.MergePatch(sectionFor[msg.Type], msg.Data)
		a.dispatch(msg.Type, msg.Data)

	case KindUpdateButtons:
		a.applyButtons(msg.Data)
		a.dispatch(msg.Type, msg.Data)

	case KindUpdateAssets:
		a.applyAssetOverrides(msg.Data)

	case KindClearAssets:
		a.catalog.ClearOverrides()
		a.logger.Info("asset overrides cleared, restarting from preload")
		if a.hooks.RestartFromPreload != nil {
			a.hooks.RestartFromPreload()
		}

	case KindJumpToScene:
		scene, _ := msg.Data["scene"].(string)
		if scene == "" {
			a.logger.Warn("jump patch without scene name ignored")
			return
		}
		if a.hooks.JumpTo != nil {
			a.hooks.JumpTo(scene)
		}

	default:
		a.logger.Warn("unknown patch kind ignored", "kind", msg.Type)
	}
}

// applyButtons merges the per-button sub-objects of an UPDATE_BUTTONS
// payload into their respective sections.
func (a *Applier) applyButtons(data map[string]any) {
	for _, section := range buttonSections {
		if sub, ok := data[section].(map[string]any); ok {
			a.store.MergePatch(section, sub)
		}
	}
}

// applyAssetOverrides installs custom asset URLs and forces the reload
// pathway. Non-string values are skipped.
func (a *Applier) applyAssetOverrides(data map[string]any) {
	changed := false
	for key, v := range data {
		url, ok := v.(string)
		if !ok {
			a.logger.Warn("asset override is not a URL string", "key", key)
			continue
		}
		a.catalog.Override(key, url)
		changed = true
	}
	if !changed {
		return
	}
	a.logger.Info("asset overrides updated, restarting from preload")
	if a.hooks.RestartFromPreload != nil {
		a.hooks.RestartFromPreload()
	}
}

// dispatch invokes the reapply handler of every active scene with the patch
// payload.
func (a *Applier) dispatch(kind Kind, payload map[string]any) {
	if a.hooks.ActiveScenes == nil {
		return
	}
	for _, scene := range a.hooks.ActiveScenes() {
		scene.Reapply(kind, payload)
	}
}
