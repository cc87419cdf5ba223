package assets

import "strings"

// NormalizeURL rewrites protocol-relative and bare URLs to absolute https.
// Data URIs and already-absolute URLs pass through unchanged.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "data:"):
		return url
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		return url
	case strings.HasPrefix(url, "//"):
		return "https:" + url
	default:
		return "https://" + url
	}
}
