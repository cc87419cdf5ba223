package scenes

import (
	"strconv"
	"strings"
)

// ExpandMacros substitutes {{name}} placeholders in configured copy with
// live values. Unknown placeholders are left as-is so the tracker's macro
// check still sees them.
func ExpandMacros(s string, values map[string]string) string {
	for name, v := range values {
		s = strings.ReplaceAll(s, "{{"+name+"}}", v)
	}
	return s
}

// ScoreMacros builds the standard substitution set from live gameplay
// numbers.
func ScoreMacros(score, matches, target int) map[string]string {
	return map[string]string{
		"score":   strconv.Itoa(score),
		"matches": strconv.Itoa(matches),
		"target":  strconv.Itoa(target),
	}
}
