// Package scheduler drives the timed progress of pickups. Each pickup gets its own
// timeline of fixed-interval ticks; timelines never wait on each other.
package scheduler

import (
	"context"
	"errors"
)

var (
	// ErrStop is returned by a StepFunc to end the timeline early.
	ErrStop = errors.New("timeline stopped")

	ErrClosed           = errors.New("scheduler closed")
	ErrAlreadyScheduled = errors.New("timeline already scheduled")
)

// StepFunc applies tick number step (0-based) to the pickup.
type StepFunc func(ctx context.Context, pickupID string, step int) error

type Scheduler interface {
	// Handle registers the function every tick is dispatched to.
	Handle(fn StepFunc)
	// Schedule starts the timeline of pickupID and returns without waiting for a tick.
	Schedule(ctx context.Context, pickupID string) error
	// Cancel stops the remaining ticks of pickupID. Unknown ids are not an error.
	Cancel(ctx context.Context, pickupID string) error
	Close() error
}
