// Package scene provides the scene lifecycle core: the loop token guarding
// deferred callbacks against stale loops, scoped resource disposal, a
// tick-driven timer/tween scheduler, transition effects and the lifecycle
// controller that sequences scenes.
package scene

import "sync"

// Token identifies one game loop: one playthrough attempt from a scene's
// creation to its next creation. Deferred callbacks capture the token at
// schedule time and compare it at fire time.
type Token uint64

// Loop issues tokens and answers staleness queries. It is owned by the
// gameplay scene (one per restartable scene) and threaded explicitly into
// every deferred-callback closure.
type Loop struct {
	mu      sync.Mutex
	current Token
	active  bool
}

// NewLoop creates an inactive loop; Begin activates it.
func NewLoop() *Loop {
	return &Loop{}
}

// Begin increments the token, marks the loop active and returns the new
// token. Called once per fresh start or restart of the owning scene.
func (l *Loop) Begin() Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current++
	l.active = true
	return l.current
}

// End marks the loop inactive without advancing the token. Called when the
// owning scene shuts down.
func (l *Loop) End() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = false
}

// Current returns the latest issued token.
func (l *Loop) Current() Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// IsCurrent reports whether a captured token is still live: it equals the
// latest token and the owning scene is active. A deferred callback must
// silently return when this is false.
func (l *Loop) IsCurrent(t Token) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active && t == l.current
}
