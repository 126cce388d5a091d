package sim

import (
	"container/heap"
	"time"
)

type timerKind int

const (
	timerScanClear timerKind = iota
)

// timer is a deferred state transition due at a wall-clock deadline.
type timer struct {
	at   time.Time
	kind timerKind
	seq  uint64 // Identifies the activation that scheduled it
}

// timerQueue is a min-heap of timers ordered by deadline.
type timerQueue []timer

func (q timerQueue) Len() int           { return len(q) }
func (q timerQueue) Less(i, j int) bool { return q[i].at.Before(q[j].at) }
func (q timerQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)        { *q = append(*q, x.(timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	*q = old[:n-1]
	return t
}

// scheduler holds pending deferred events. It is checked once per tick.
type scheduler struct {
	q timerQueue
}

func (s *scheduler) schedule(t timer) {
	heap.Push(&s.q, t)
}

// due pops every timer whose deadline is at or before now, in deadline order.
func (s *scheduler) due(now time.Time) []timer {
	var out []timer
	for len(s.q) > 0 && !s.q[0].at.After(now) {
		out = append(out, heap.Pop(&s.q).(timer))
	}
	return out
}

func (s *scheduler) reset() {
	s.q = s.q[:0]
}

func (s *scheduler) len() int {
	return len(s.q)
}
