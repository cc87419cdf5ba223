package config

import "testing"

func TestFPDEnabled(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		want bool
	}{
		{
			name: "global toggle off",
			doc: map[string]any{
				"fpd": map[string]any{
					"enabled":   false,
					"beforeEnd": map[string]any{"email": true},
				},
			},
			want: false,
		},
		{
			name: "no screens for the placement",
			doc: map[string]any{
				"fpd": map[string]any{
					"enabled":   true,
					"beforeEnd": map[string]any{},
				},
			},
			want: false,
		},
		{
			name: "enabled with a screen",
			doc: map[string]any{
				"fpd": map[string]any{
					"enabled":   true,
					"beforeEnd": map[string]any{"email": true},
				},
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(tc.doc)
			if got := FPDEnabled(s, PlacementBeforeEnd); got != tc.want {
				t.Errorf("FPDEnabled() = %v, want %v", got, tc.want)
			}
		})
	}
}
