// Package scheduler runs deferred and periodic work on the graph's own
// sample-locked clock rather than wall time. Callers from any goroutine
// may submit tasks through a lock-free intake queue; a single owning
// thread — the audio callback, in practice — drains that queue and
// fires due tasks by calling Update once per block.
package scheduler

import (
	"container/heap"
	"errors"
	"time"

	"github.com/hayabusa-cloud/lfq"
)

// ErrNotSupported is returned by Shutdown: a sample-locked scheduler
// has no notion of wall-clock termination, so callers that need a
// graceful stop should simply stop calling Update.
var ErrNotSupported = errors.New("scheduler: shutdown not supported on a sample-locked clock")

// intakeCapacity bounds the MPSC queue feeding Update. It is a
// deliberately generous, fixed capacity rather than a literal unbounded
// queue: a realtime scheduler draining every block has no use for
// unbounded backlog, and an unbounded Go channel would require
// allocation on every grow.
const intakeCapacity = 4096

// Task is a unit of deferred work. now is the scheduler's current
// sample-derived nanosecond clock at the moment the task fires.
type Task func(now int64)

type taskKind int

const (
	kindOnce taskKind = iota
	kindFixedRate
)

type scheduledTask struct {
	fn     Task
	at     int64
	period int64
	kind   taskKind
	index  int // heap.Interface bookkeeping
}

// Scheduler fires Tasks against a monotonically advancing nanosecond
// clock supplied by the caller (typically a Graph's sample position),
// never against wall time.
type Scheduler struct {
	intake lfq.Queue[*scheduledTask]
	due    dueHeap
}

// New returns a Scheduler ready to accept submissions.
func New() *Scheduler {
	return &Scheduler{
		intake: lfq.NewMPSC[*scheduledTask](intakeCapacity),
	}
}

// Schedule submits fn to run once, delay nanoseconds after the next
// Update call's now value.
func (s *Scheduler) Schedule(delay time.Duration, fn Task) error {
	return s.submit(&scheduledTask{fn: fn, at: int64(delay), kind: kindOnce})
}

// ScheduleAtFixedRate submits fn to run every period, starting
// initialDelay after the next Update. The next firing time is
// initialDelay/period-aligned rather than drifting with execution
// time: each firing schedules from the previous scheduled time, not
// from when fn actually ran.
func (s *Scheduler) ScheduleAtFixedRate(initialDelay, period time.Duration, fn Task) error {
	return s.submit(&scheduledTask{fn: fn, at: int64(initialDelay), period: int64(period), kind: kindFixedRate})
}

// ScheduleWithFixedDelay is an alias of ScheduleAtFixedRate: this
// scheduler gives both the same re-arm semantics, scheduling from the
// previous deadline rather than from completion time.
func (s *Scheduler) ScheduleWithFixedDelay(initialDelay, period time.Duration, fn Task) error {
	return s.ScheduleAtFixedRate(initialDelay, period, fn)
}

func (s *Scheduler) submit(t *scheduledTask) error {
	return s.intake.Enqueue(&t)
}

// Update drains every task submitted since the last call, converting
// each one's relative delay into an absolute deadline against now,
// then fires every task whose deadline has elapsed.
func (s *Scheduler) Update(now int64) {
	for {
		t, err := s.intake.Dequeue()
		if err != nil {
			break
		}
		t.at += now
		heap.Push(&s.due, t)
	}

	for s.due.Len() > 0 && s.due[0].at <= now {
		t := heap.Pop(&s.due).(*scheduledTask)
		t.fn(now)
		if t.kind == kindFixedRate {
			t.at += t.period
			heap.Push(&s.due, t)
		}
	}
}

// Attach implements the graph's Dependent interface. The scheduler has
// no use for the sample rate or block size themselves — tasks are
// already submitted and fired in nanoseconds — so this only exists to
// satisfy the interface and let a Graph register the scheduler as a
// dependent.
func (s *Scheduler) Attach(sampleRate float64, blockSize int) {}

// Detach implements Dependent. There is nothing to release.
func (s *Scheduler) Detach() {}

// Shutdown always fails: there is nothing to shut down on a clock
// driven entirely by Update calls.
func (s *Scheduler) Shutdown() error { return ErrNotSupported }

// IsShutdown reports whether Shutdown has been requested. A
// sample-locked Scheduler never accepts a shutdown request, so this is
// always false.
func (s *Scheduler) IsShutdown() bool { return false }

// IsTerminated reports whether every submitted task has finished
// running after a shutdown request. Always false, for the same reason
// as IsShutdown.
func (s *Scheduler) IsTerminated() bool { return false }

// dueHeap orders scheduledTasks by ascending deadline.
type dueHeap []*scheduledTask

func (h dueHeap) Len() int            { return len(h) }
func (h dueHeap) Less(i, j int) bool  { return h[i].at < h[j].at }
func (h dueHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *dueHeap) Push(x any) {
	t := x.(*scheduledTask)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *dueHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
