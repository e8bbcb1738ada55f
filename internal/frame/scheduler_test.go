package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStopsOnErrStop(t *testing.T) {
	s := New(time.Millisecond, 1)
	ticks := 0
	err := s.Run(context.Background(), func() error {
		ticks++
		if ticks == 5 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, ticks)
}

func TestRunReturnsTickError(t *testing.T) {
	boom := errors.New("boom")
	s := New(time.Millisecond, 1)
	err := s.Run(context.Background(), func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(time.Millisecond, 1)
	err := s.Run(ctx, func() error {
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostedEventsRunBetweenTicks(t *testing.T) {
	s := New(5*time.Millisecond, 8)
	ctx := context.Background()

	var trace []string
	inTick := false
	for range 3 {
		require.True(t, s.Post(ctx, func() {
			assert.False(t, inTick)
			trace = append(trace, "event")
		}))
	}

	ticks := 0
	err := s.Run(ctx, func() error {
		inTick = true
		defer func() { inTick = false }()
		ticks++
		trace = append(trace, "tick")
		if ticks == 3 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)

	events := 0
	for _, e := range trace {
		if e == "event" {
			events++
		}
	}
	assert.Equal(t, 3, events)
}

func TestPaceIsRelativeToCompletion(t *testing.T) {
	const interval = 10 * time.Millisecond
	s := New(interval, 1)

	var starts []time.Time
	err := s.Run(context.Background(), func() error {
		starts = append(starts, time.Now())
		time.Sleep(2 * interval)
		if len(starts) == 3 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), 3*interval)
	}
}

func TestPostGivesUpWhenCancelled(t *testing.T) {
	s := New(time.Second, 1)
	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, s.Post(ctx, func() {}))
	cancel()
	assert.False(t, s.Post(ctx, func() {}))
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0, 0).Interval())
}
