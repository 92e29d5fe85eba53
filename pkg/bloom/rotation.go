package bloom

import (
	"fmt"
	"time"
)

// Policy decides what happens to a headline after it has been dequeued.
type Policy int

const (
	// ConsumeOnce discards each headline after use; the feed runs dry.
	ConsumeOnce Policy = iota
	// Loop re-appends each headline so the set cycles forever.
	Loop
)

func (p Policy) String() string {
	switch p {
	case ConsumeOnce:
		return "consume"
	case Loop:
		return "loop"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses "consume" or "loop".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "consume", "":
		return ConsumeOnce, nil
	case "loop":
		return Loop, nil
	}
	return 0, fmt.Errorf("unknown headline policy %q", s)
}

// Queue holds pending headline text in arrival order.
type Queue struct {
	items  []string
	policy Policy
}

// NewQueue creates an empty queue with the given policy.
func NewQueue(policy Policy) *Queue {
	return &Queue{policy: policy}
}

// Push appends headlines to the tail.
func (q *Queue) Push(titles ...string) {
	q.items = append(q.items, titles...)
}

// Pop takes the head of the queue. Under Loop it is re-appended to the tail.
func (q *Queue) Pop() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	head := q.items[0]
	q.items = q.items[1:]
	if q.policy == Loop {
		q.items = append(q.items, head)
	}
	return head, true
}

// Len returns the number of pending headlines.
func (q *Queue) Len() int { return len(q.items) }

// Rotation dequeues one headline per interval.
type Rotation struct {
	queue    *Queue
	interval time.Duration
	last     time.Time
}

// NewRotation creates a rotation over q whose timer starts at start.
func NewRotation(q *Queue, interval time.Duration, start time.Time) *Rotation {
	return &Rotation{queue: q, interval: interval, last: start}
}

// Tick returns the next headline when the interval has elapsed and the
// queue is not empty. The timer restarts whenever a headline is returned,
// whatever the caller then manages to do with it.
func (r *Rotation) Tick(now time.Time) (string, bool) {
	if now.Sub(r.last) < r.interval || r.queue.Len() == 0 {
		return "", false
	}
	title, ok := r.queue.Pop()
	if ok {
		r.last = now
	}
	return title, ok
}

// Take returns the next headline immediately and restarts the timer.
func (r *Rotation) Take(now time.Time) (string, bool) {
	title, ok := r.queue.Pop()
	if ok {
		r.last = now
	}
	return title, ok
}
