package fpd

import (
	"time"

	"github.com/adforge/playable/internal/config"
)

// MidGameTrigger decides when a running game should pause for the midGame
// capture interstitial. Two thresholds are armed together: half the game
// duration and half the progress target; whichever is crossed first fires.
// The trigger fires at most once per run; a fresh game start builds a fresh
// trigger.
type MidGameTrigger struct {
	enabled    bool
	timeHalf   time.Duration
	targetHalf int
	fired      bool
}

// NewMidGameTrigger arms a trigger from the configured midGame screens plus
// the game's duration and progress target. A zero duration or target disarms
// the corresponding threshold.
func NewMidGameTrigger(s *config.Store, duration time.Duration, target int) *MidGameTrigger {
	t := &MidGameTrigger{
		enabled: config.FPDEnabled(s, config.PlacementMidGame),
	}
	if duration > 0 {
		t.timeHalf = duration / 2
	}
	if target > 0 {
		t.targetHalf = (target + 1) / 2
	}
	return t
}

// Check is polled once per tick with the current elapsed time and progress
// (score or match count, whichever the game tracks). It returns true exactly
// once, the first tick either threshold is met.
func (t *MidGameTrigger) Check(elapsed time.Duration, progress int) bool {
	if !t.enabled || t.fired {
		return false
	}
	timeHit := t.timeHalf > 0 && elapsed >= t.timeHalf
	progressHit := t.targetHalf > 0 && progress >= t.targetHalf
	if timeHit || progressHit {
		t.fired = true
		return true
	}
	return false
}

// Fired reports whether the trigger has already gone off this run.
func (t *MidGameTrigger) Fired() bool {
	return t.fired
}
