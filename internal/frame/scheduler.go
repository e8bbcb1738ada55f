// Package frame runs the tick loop. Ticks and posted events run on the
// goroutine that called Run, one at a time.
package frame

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the pause between the end of one tick and the start
// of the next.
const DefaultInterval = 50 * time.Millisecond

// ErrStop can be returned by a tick to end Run without an error.
var ErrStop = errors.New("frame: stop")

// Scheduler calls a tick function at a fixed pace. The next tick is timed
// from the completion of the previous one, so an overrunning tick delays
// the schedule instead of causing catch-up ticks.
type Scheduler struct {
	interval time.Duration
	events   chan func()
}

// New returns a scheduler with the given interval; non-positive values use
// DefaultInterval. queue bounds the number of pending posted events.
func New(interval time.Duration, queue int) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		events:   make(chan func(), max(queue, 1)),
	}
}

// Interval returns the pause between ticks.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Post queues fn to run on the Run goroutine between ticks. It blocks
// while the queue is full and gives up when ctx is done.
func (s *Scheduler) Post(ctx context.Context, fn func()) bool {
	select {
	case s.events <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run ticks immediately and then once per interval until ctx is done or
// tick returns an error. ErrStop ends the loop with a nil error.
func (s *Scheduler) Run(ctx context.Context, tick func() error) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.events:
			fn()
		case <-timer.C:
			if err := tick(); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			timer.Reset(s.interval)
		}
	}
}
