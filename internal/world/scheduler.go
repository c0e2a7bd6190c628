package world

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Scheduler holds deferred work for the host loop: one-shot tasks that run on the
// next Tick and repeating timers. Everything it runs executes on the goroutine
// calling Tick, so callbacks never race with each other.
//
// NextTick and Timer.Kill are safe to call from any goroutine.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Time
	tasks  []func()
	timers map[uint64]*Timer
	nextID uint64
}

// Timer is a repeating callback owned by whoever scheduled it.
type Timer struct {
	id       uint64
	interval time.Duration
	next     time.Time
	fn       func()
	sched    *Scheduler
	killed   bool // guarded by sched.mu
}

// NewScheduler creates a scheduler whose clock starts at now.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{
		now:    now,
		timers: make(map[uint64]*Timer),
	}
}

// Now returns the time of the last Tick.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// NextTick queues fn to run once at the start of the next Tick.
// Tasks queued while a Tick is draining run on the following Tick.
func (s *Scheduler) NextTick(fn func()) {
	if fn == nil {
		slog.Warn("scheduler: ignoring nil task")
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, fn)
	s.mu.Unlock()
}

// Submit runs fn on the host loop and waits until it has finished.
// Safe to call from any goroutine other than the one calling Tick.
func (s *Scheduler) Submit(ctx context.Context, fn func()) error {
	if fn == nil {
		slog.Warn("scheduler: ignoring nil submit")
		return nil
	}
	done := make(chan struct{})
	s.NextTick(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Every schedules fn every interval starting one interval from the last Tick.
// The returned timer runs until Kill is called.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &Timer{
		id:       s.nextID,
		interval: interval,
		next:     s.now.Add(interval),
		fn:       fn,
		sched:    s,
	}
	s.timers[t.id] = t
	return t
}

// Kill stops the timer. Safe to call more than once and from inside its own callback.
func (t *Timer) Kill() {
	if t == nil {
		return
	}
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	t.killed = true
	delete(s.timers, t.id)
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool {
	if t == nil {
		return false
	}
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return !t.killed
}

// PendingTasks returns the number of queued one-shot tasks.
func (s *Scheduler) PendingTasks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// TimerCount returns the number of live timers.
func (s *Scheduler) TimerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Tick advances the clock, drains queued tasks, then fires due timers.
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	s.now = now
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, fn := range tasks {
		safeRun("task", fn)
	}

	s.mu.Lock()
	due := make([]*Timer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.next.After(now) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	// Map order is random; fire in creation order.
	slices.SortFunc(due, func(a, b *Timer) int { return cmp.Compare(a.id, b.id) })

	for _, t := range due {
		s.mu.Lock()
		if t.killed {
			s.mu.Unlock()
			continue
		}
		for !t.next.After(now) {
			t.next = t.next.Add(t.interval)
		}
		s.mu.Unlock()

		safeRun("timer", t.fn)
	}
}

// safeRun keeps a misbehaving callback from taking the host loop down.
func safeRun(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduler: callback panicked", "kind", kind, "panic", r)
		}
	}()
	fn()
}
