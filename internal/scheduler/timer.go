package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shinyyama/pickup-kiosk/internal/reqctx"
)

type timeline struct {
	cancel context.CancelFunc
}

// TimerScheduler runs one goroutine per pickup inside the current process.
type TimerScheduler struct {
	interval time.Duration
	steps    int

	mu        sync.Mutex
	fn        StepFunc
	timelines map[string]*timeline
	closed    bool

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

func NewTimerScheduler(interval time.Duration, steps int) *TimerScheduler {
	base, stop := context.WithCancel(context.Background())
	return &TimerScheduler{
		interval:  interval,
		steps:     steps,
		timelines: make(map[string]*timeline),
		base:      base,
		stop:      stop,
	}
}

func (s *TimerScheduler) Handle(fn StepFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
}

func (s *TimerScheduler) Schedule(ctx context.Context, pickupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.timelines[pickupID]; ok {
		return ErrAlreadyScheduled
	}
	tctx, cancel := context.WithCancel(s.base)
	tctx = reqctx.WithPickupID(reqctx.WithRID(tctx, reqctx.RID(ctx)), pickupID)
	tl := &timeline{cancel: cancel}
	s.timelines[pickupID] = tl
	s.wg.Add(1)
	go s.run(tctx, tl, pickupID, s.fn)
	return nil
}

func (s *TimerScheduler) run(ctx context.Context, tl *timeline, pickupID string, fn StepFunc) {
	defer s.wg.Done()
	defer s.forget(pickupID, tl)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for step := 0; step < s.steps; step++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if fn == nil {
			log.Printf("[scheduler] rid=%s pickup=%s stage=tick err=no handler registered", reqctx.RID(ctx), pickupID)
			return
		}
		if err := fn(ctx, pickupID, step); err != nil {
			if !errors.Is(err, ErrStop) {
				log.Printf("[scheduler] rid=%s pickup=%s stage=tick step=%d err=%v", reqctx.RID(ctx), pickupID, step, err)
			}
			return
		}
	}
}

func (s *TimerScheduler) forget(pickupID string, tl *timeline) {
	tl.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timelines[pickupID] == tl {
		delete(s.timelines, pickupID)
	}
}

func (s *TimerScheduler) Cancel(_ context.Context, pickupID string) error {
	s.mu.Lock()
	tl, ok := s.timelines[pickupID]
	if ok {
		delete(s.timelines, pickupID)
	}
	s.mu.Unlock()
	if ok {
		tl.cancel()
	}
	return nil
}

// Active returns the number of timelines still running.
func (s *TimerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timelines)
}

// Close stops every timeline and waits for in-flight ticks to return.
func (s *TimerScheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.stop()
	s.wg.Wait()
	return nil
}
