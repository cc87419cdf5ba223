package assets

import (
	"reflect"
	"testing"

	"github.com/adforge/playable/internal/config"
)

func testStore() *config.Store {
	return config.NewStore(map[string]any{
		config.SectionAssets: map[string]any{
			"logo":   "cdn.example.com/logo.png",
			"player": "//cdn.example.com/player.png",
			"empty":  "",
		},
	})
}

func TestResolvePrefersOverride(t *testing.T) {
	c := NewCatalog(testStore())

	if got := c.Resolve("logo"); got != "https://cdn.example.com/logo.png" {
		t.Errorf("Resolve(logo) = %q, expected configured default", got)
	}

	c.Override("logo", "custom.example.com/new.png")
	if got := c.Resolve("logo"); got != "https://custom.example.com/new.png" {
		t.Errorf("Resolve(logo) after override = %q, expected override", got)
	}

	c.ClearOverrides()
	if got := c.Resolve("logo"); got != "https://cdn.example.com/logo.png" {
		t.Errorf("Resolve(logo) after clear = %q, expected default again", got)
	}
}

func TestResolveUnknownKey(t *testing.T) {
	c := NewCatalog(testStore())

	if got := c.Resolve("missing"); got != "" {
		t.Errorf("Resolve(missing) = %q, expected empty", got)
	}
	if c.Exists("missing") {
		t.Error("Exists(missing) = true, expected false")
	}
	if c.Exists("empty") {
		t.Error("Exists(empty) = true for empty configured URL, expected false")
	}
	if !c.Exists("logo") {
		t.Error("Exists(logo) = false, expected true")
	}
}

func TestOverrideInvalidatesLoadState(t *testing.T) {
	c := NewCatalog(testStore())

	c.SetState("logo", StateLoaded)
	c.Override("logo", "custom.example.com/new.png")

	if got := c.State("logo"); got != StateUnloaded {
		t.Errorf("State(logo) after override = %v, expected unloaded", got)
	}
}

func TestClearOverridesInvalidatesState(t *testing.T) {
	c := NewCatalog(testStore())

	c.Override("player", "custom.example.com/p2.png")
	c.SetState("player", StateLoaded)

	c.ClearOverrides()

	if got := c.State("player"); got != StateUnloaded {
		t.Errorf("State(player) after ClearOverrides = %v, expected unloaded", got)
	}
}

func TestPendingKeys(t *testing.T) {
	c := NewCatalog(testStore())

	// Both resolvable keys start pending; the empty one is excluded
	if got := c.PendingKeys(); !reflect.DeepEqual(got, []string{"logo", "player"}) {
		t.Fatalf("PendingKeys() = %v, expected [logo player]", got)
	}

	c.SetState("logo", StateLoaded)
	if got := c.PendingKeys(); !reflect.DeepEqual(got, []string{"player"}) {
		t.Errorf("PendingKeys() after load = %v, expected [player]", got)
	}

	c.SetState("player", StateLoaded)
	if got := c.PendingKeys(); len(got) != 0 {
		t.Errorf("PendingKeys() all loaded = %v, expected empty", got)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"absolute https", "https://a.example.com/x.png", "https://a.example.com/x.png"},
		{"absolute http kept", "http://a.example.com/x.png", "http://a.example.com/x.png"},
		{"protocol relative", "//a.example.com/x.png", "https://a.example.com/x.png"},
		{"bare host", "a.example.com/x.png", "https://a.example.com/x.png"},
		{"data uri", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"empty", "", ""},
		{"whitespace", "  a.example.com  ", "https://a.example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeURL(tc.input); got != tc.expected {
				t.Errorf("NormalizeURL(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
