package service

import (
	"context"
	"time"
)

// Latency is the artificial delay added before each operation
type Latency struct {
	List    time.Duration
	Get     time.Duration
	Create  time.Duration
	Update  time.Duration
	Delete  time.Duration
	Execute time.Duration
	Stats   time.Duration
}

// DefaultLatency mimics a slow remote backend
func DefaultLatency() Latency {
	return Latency{
		List:    500 * time.Millisecond,
		Get:     300 * time.Millisecond,
		Create:  800 * time.Millisecond,
		Update:  600 * time.Millisecond,
		Delete:  400 * time.Millisecond,
		Execute: 2000 * time.Millisecond,
		Stats:   300 * time.Millisecond,
	}
}

// NoLatency disables the artificial delay
func NoLatency() Latency {
	return Latency{}
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
