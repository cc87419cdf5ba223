package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration document for a game into a fresh Store.
// Search order: customPath -> ~/.playable/configs/<game>.yaml ->
// ./configs/<game>.yaml -> embedded default -> hardcoded fallback.
func Load(gameID, customPath string) (*Store, error) {
	// Try custom path first; an explicit path failing is an error the
	// caller should see.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		doc, err := parseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return NewStore(doc), nil
	}

	// Try user config directory
	if userPath := userConfigPath(gameID + ".yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if doc, err := parseDocument(data); err == nil {
				return NewStore(doc), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", gameID+".yaml")); err == nil {
		if doc, err := parseDocument(data); err == nil {
			return NewStore(doc), nil
		}
	}

	// Use embedded default YAML
	if data := defaultYAML(gameID); data != nil {
		if doc, err := parseDocument(data); err == nil {
			return NewStore(doc), nil
		}
	}

	// Fallback to hardcoded document if embed fails
	return NewStore(fallbackDocument()), nil
}

// parseDocument unmarshals a YAML document into a string-keyed tree.
func parseDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".playable", "configs", filename)
}
