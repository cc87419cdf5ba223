package scene

import (
	"sync"
	"time"
)

// timer is one scheduled deferred callback.
type timer struct {
	remaining time.Duration
	interval  time.Duration // repeat interval, 0 for one-shot
	token     Token
	cancelled bool

	fire func()
	// tween fields
	duration time.Duration
	elapsed  time.Duration
	step     func(progress float64)
	done     func()
}

// Timers is a tick-driven scheduler owned by a single scene. Every callback
// captures the owning loop's token at schedule time; a fire after the loop
// was superseded is a silent no-op. Stopping the scene cancels everything
// wholesale through the disposer bag.
type Timers struct {
	loop *Loop
	bag  *DisposerBag

	mu     sync.Mutex
	timers []*timer
}

// NewTimers creates a scheduler bound to a loop and a disposer bag.
func NewTimers(loop *Loop, bag *DisposerBag) *Timers {
	return &Timers{loop: loop, bag: bag}
}

// After schedules fn to run once after d. Returns a cancel function; the
// cancel is also registered in the disposer bag.
func (t *Timers) After(d time.Duration, fn func()) (cancel func()) {
	tm := &timer{
		remaining: d,
		token:     t.loop.Current(),
		fire:      fn,
	}
	return t.add(tm)
}

// Every schedules fn to run repeatedly with period d until cancelled.
func (t *Timers) Every(d time.Duration, fn func()) (cancel func()) {
	tm := &timer{
		remaining: d,
		interval:  d,
		token:     t.loop.Current(),
		fire:      fn,
	}
	return t.add(tm)
}

// Animate runs a tween: step is called every tick with progress in [0, 1],
// then done fires once when the tween completes. Either may be nil.
func (t *Timers) Animate(d time.Duration, step func(progress float64), done func()) (cancel func()) {
	tm := &timer{
		remaining: d,
		duration:  d,
		token:     t.loop.Current(),
		step:      step,
		done:      done,
	}
	return t.add(tm)
}

func (t *Timers) add(tm *timer) (cancel func()) {
	t.mu.Lock()
	t.timers = append(t.timers, tm)
	t.mu.Unlock()

	release := t.bag.Track(func() { tm.cancelled = true })
	return func() {
		tm.cancelled = true
		release()
	}
}

// Tick advances all scheduled work by dt. Due callbacks fire in schedule
// order; each checks its captured token first and is dropped silently when
// stale. Callbacks may schedule new timers; those start ticking next frame.
func (t *Timers) Tick(dt time.Duration) {
	t.mu.Lock()
	due := make([]*timer, len(t.timers))
	copy(due, t.timers)
	t.mu.Unlock()

	for _, tm := range due {
		if tm.cancelled {
			continue
		}
		if !t.loop.IsCurrent(tm.token) {
			tm.cancelled = true
			continue
		}

		if tm.step != nil {
			t.tickTween(tm, dt)
			continue
		}

		tm.remaining -= dt
		if tm.remaining > 0 {
			continue
		}
		if tm.interval > 0 {
			tm.remaining += tm.interval
			tm.fire()
			continue
		}
		tm.cancelled = true
		tm.fire()
	}

	// Compact out finished and cancelled timers
	t.mu.Lock()
	live := t.timers[:0]
	for _, tm := range t.timers {
		if !tm.cancelled {
			live = append(live, tm)
		}
	}
	t.timers = live
	t.mu.Unlock()
}

func (t *Timers) tickTween(tm *timer, dt time.Duration) {
	tm.elapsed += dt
	// A zero or negative duration completes on the first tick.
	progress := 1.0
	if tm.duration > 0 {
		progress = float64(tm.elapsed) / float64(tm.duration)
		if progress >= 1 {
			progress = 1
		}
	}
	if tm.step != nil {
		tm.step(progress)
	}
	if progress >= 1 {
		tm.cancelled = true
		if tm.done != nil {
			tm.done()
		}
	}
}

// CancelAll cancels every scheduled timer and tween.
func (t *Timers) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tm := range t.timers {
		tm.cancelled = true
	}
	t.timers = nil
}

// Live returns the number of scheduled, uncancelled timers. Used by leak
// tests to assert cleanup completeness across restarts.
func (t *Timers) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, tm := range t.timers {
		if !tm.cancelled {
			n++
		}
	}
	return n
}
