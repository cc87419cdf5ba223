// Package track fires configured tracking pixels for named gameplay events.
// Failures are logged and never propagate; a playable must not let an
// unreachable tracking endpoint disturb the game.
package track

import (
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
)

// macroPattern matches unfilled host macros such as [TIMESTAMP] or [CACHEBUSTER].
var macroPattern = regexp.MustCompile(`\[[A-Z_]+\]`)

// Recorder observes fired URLs, used by storage and the editor debug panel.
type Recorder func(eventKey, url string)

// Tracker fires the configured URL lists for named events, each event at
// most once per run by default.
type Tracker struct {
	store  *config.Store
	logger *log.Logger
	client *http.Client

	mu       sync.Mutex
	fired    map[string]bool
	recorder Recorder
}

// New creates a tracker reading URL lists from the given store.
func New(store *config.Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "track"})
	}
	return &Tracker{
		store:  store,
		logger: logger,
		client: &http.Client{Timeout: 5 * time.Second},
		fired:  make(map[string]bool),
	}
}

// SetRecorder installs an observer for fired URLs.
func (t *Tracker) SetRecorder(r Recorder) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recorder = r
}

// Fire fires all configured URLs for an event key, at most once per key.
// Repeat calls for an already-fired key are no-ops.
func (t *Tracker) Fire(eventKey string) {
	t.mu.Lock()
	if t.fired[eventKey] {
		t.mu.Unlock()
		return
	}
	t.fired[eventKey] = true
	t.mu.Unlock()

	t.fire(eventKey)
}

// ForceFire fires an event regardless of whether it fired before, for call
// sites that intentionally repeat (e.g. per-interaction engagement pings).
func (t *Tracker) ForceFire(eventKey string) {
	t.mu.Lock()
	t.fired[eventKey] = true
	t.mu.Unlock()

	t.fire(eventKey)
}

// Reset clears the fired-once bookkeeping, called on a fresh game start so a
// restarted playthrough reports its own lifecycle events.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fired = make(map[string]bool)
}

func (t *Tracker) fire(eventKey string) {
	urls := config.TrackingURLs(t.store, eventKey)
	for _, raw := range urls {
		if hasUnfilledMacro(raw) {
			t.logger.Debug("skipping tracking URL with unfilled macro", "event", eventKey, "url", raw)
			continue
		}
		url := assets.NormalizeURL(raw)
		if url == "" || strings.HasPrefix(url, "data:") {
			continue
		}

		t.mu.Lock()
		recorder := t.recorder
		t.mu.Unlock()
		if recorder != nil {
			recorder(eventKey, url)
		}

		// Fire-and-forget; nothing awaits the response.
		go func(url string) {
			resp, err := t.client.Get(url)
			if err != nil {
				t.logger.Warn("tracking request failed", "event", eventKey, "url", url, "error", err)
				return
			}
			resp.Body.Close()
		}(url)
	}
}

// hasUnfilledMacro reports whether a URL still contains template
// placeholders the host was supposed to substitute.
func hasUnfilledMacro(url string) bool {
	if strings.Contains(url, "{{") || strings.Contains(url, "${") {
		return true
	}
	return macroPattern.MatchString(url)
}
