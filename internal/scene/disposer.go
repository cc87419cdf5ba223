package scene

import "sync"

// DisposerBag collects cleanup functions for every resource a scene
// acquires (timers, tweens, listeners). Registration returns nothing to
// enumerate later: the shutdown hook disposes all outstanding entries
// unconditionally, which is what makes restarts leak-free.
type DisposerBag struct {
	mu        sync.Mutex
	disposers map[int]func()
	nextID    int
}

// NewDisposerBag creates an empty bag.
func NewDisposerBag() *DisposerBag {
	return &DisposerBag{disposers: make(map[int]func())}
}

// Track registers a cleanup function and returns a release function that
// removes it from the bag without running it (for resources that clean
// themselves up, e.g. one-shot timers that fired).
func (b *DisposerBag) Track(dispose func()) (release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.disposers[id] = dispose

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.disposers, id)
	}
}

// Dispose runs every outstanding cleanup function and empties the bag.
func (b *DisposerBag) Dispose() {
	b.mu.Lock()
	pending := b.disposers
	b.disposers = make(map[int]func())
	b.mu.Unlock()

	for _, dispose := range pending {
		dispose()
	}
}

// Len returns the number of outstanding disposers, used by leak tests.
func (b *DisposerBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.disposers)
}
