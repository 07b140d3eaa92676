package core

import "time"

// Clock supplies the current time to game logic.
type Clock interface {
	Now() time.Time
}

// Handle identifies a scheduled task. The zero Handle is never issued.
type Handle uint64

// Scheduler runs callbacks after a delay or on a fixed interval.
// Cancel on an unknown or already-finished handle is a no-op.
type Scheduler interface {
	Clock
	ScheduleRepeating(interval time.Duration, fn func()) Handle
	ScheduleOnce(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

type scheduledTask struct {
	due      time.Time
	interval time.Duration // zero for one-shot tasks
	fn       func()
}

// TickScheduler is a virtual-time Scheduler. Time only moves when Advance or
// AdvanceTo is called, and due callbacks run synchronously on the caller's
// goroutine, in due-time order (ties broken by scheduling order).
//
// Tests drive it directly; the TUI feeds it wall-clock time on every tick.
// It is not safe for concurrent use.
type TickScheduler struct {
	now   time.Time
	next  Handle
	tasks map[Handle]*scheduledTask
}

// NewTickScheduler creates a scheduler whose clock starts at start.
func NewTickScheduler(start time.Time) *TickScheduler {
	return &TickScheduler{
		now:   start,
		tasks: make(map[Handle]*scheduledTask),
	}
}

// Now returns the scheduler's current virtual time. While a callback runs,
// this is the callback's due time.
func (s *TickScheduler) Now() time.Time {
	return s.now
}

// ScheduleOnce runs fn once, delay after the current time.
func (s *TickScheduler) ScheduleOnce(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return s.add(&scheduledTask{due: s.now.Add(delay), fn: fn})
}

// ScheduleRepeating runs fn every interval until cancelled.
// A non-positive interval schedules nothing and returns the zero Handle.
func (s *TickScheduler) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		return 0
	}
	return s.add(&scheduledTask{due: s.now.Add(interval), interval: interval, fn: fn})
}

func (s *TickScheduler) add(t *scheduledTask) Handle {
	s.next++
	s.tasks[s.next] = t
	return s.next
}

// Cancel removes a scheduled task.
func (s *TickScheduler) Cancel(h Handle) {
	delete(s.tasks, h)
}

// Pending returns the number of live tasks.
func (s *TickScheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by d, firing everything that comes due.
func (s *TickScheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.now.Add(d))
}

// AdvanceTo moves the clock to t, firing everything due at or before t.
// Moving backwards is ignored.
func (s *TickScheduler) AdvanceTo(t time.Time) {
	for {
		h, task := s.earliestDue(t)
		if task == nil {
			break
		}
		s.now = task.due
		if task.interval > 0 {
			task.due = task.due.Add(task.interval)
		} else {
			delete(s.tasks, h)
		}
		task.fn()
	}
	if t.After(s.now) {
		s.now = t
	}
}

func (s *TickScheduler) earliestDue(limit time.Time) (Handle, *scheduledTask) {
	var (
		bestH Handle
		best  *scheduledTask
	)
	for h, task := range s.tasks {
		if task.due.After(limit) {
			continue
		}
		if best == nil || task.due.Before(best.due) || (task.due.Equal(best.due) && h < bestH) {
			bestH, best = h, task
		}
	}
	return bestH, best
}
