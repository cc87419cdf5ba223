package config

import (
	_ "embed"
)

//go:embed defaults/catcher.yaml
var defaultCatcherYAML []byte

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

//go:embed defaults/slider.yaml
var defaultSliderYAML []byte

// defaultYAML returns the embedded default document for a game, or nil for
// unknown game IDs.
func defaultYAML(gameID string) []byte {
	switch gameID {
	case "catcher":
		return defaultCatcherYAML
	case "racer":
		return defaultRacerYAML
	case "match3":
		return defaultMatch3YAML
	case "slider":
		return defaultSliderYAML
	default:
		return nil
	}
}

// fallbackDocument is the last-resort configuration used when no document
// can be loaded at all. Enough to boot every scene; store fallbacks cover
// the rest.
func fallbackDocument() map[string]any {
	return map[string]any{
		SectionText: map[string]any{
			"splashTitle": "READY?",
			"howToPlay":   "Use the arrow keys",
			"endTitle":    "THANKS FOR PLAYING",
		},
		SectionActionButton: map[string]any{
			"text": "PLAY",
			"x":    0.5,
			"y":    0.8,
		},
		SectionCTAButton: map[string]any{
			"text": "INSTALL NOW",
			"x":    0.5,
			"y":    0.85,
		},
		SectionBackground: map[string]any{
			"type":  "solid",
			"color": "#101020",
		},
		SectionGameplay: map[string]any{
			"duration":    30,
			"targetScore": 100,
		},
	}
}
