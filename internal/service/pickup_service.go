package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/pickup-kiosk/internal/model"
	"github.com/shinyyama/pickup-kiosk/internal/repository"
	"github.com/shinyyama/pickup-kiosk/internal/reqctx"
	"github.com/shinyyama/pickup-kiosk/internal/scheduler"
)

const (
	minEstimatedSeconds = 15
	maxEstimatedSeconds = 45
)

var (
	errUnchanged = errors.New("unchanged")
	errClosed    = errors.New("pickup closed")
)

type PickupService interface {
	StartPickup(ctx context.Context, scanID string) (*model.Pickup, error)
	GetPickupStatus(ctx context.Context, pickupID string) (*model.Pickup, error)
	// CompletePickup finishes a pickup. Unless RequireReady is set it does not wait
	// for the simulated progress to reach ready.
	CompletePickup(ctx context.Context, pickupID string) (*model.Pickup, error)
	CancelPickup(ctx context.Context, pickupID string) (*model.Pickup, error)
}

type PickupOptions struct {
	// RequireReady rejects completion of pickups that have not reached ready.
	RequireReady bool
}

type pickupService struct {
	scans   repository.ScanRepository
	pickups repository.PickupRepository
	sched   scheduler.Scheduler
	opts    PickupOptions
	now     func() time.Time
}

func NewPickupService(scans repository.ScanRepository, pickups repository.PickupRepository, sched scheduler.Scheduler, opts PickupOptions) PickupService {
	s := &pickupService{scans: scans, pickups: pickups, sched: sched, opts: opts, now: time.Now}
	sched.Handle(s.advance)
	return s
}

func (s *pickupService) StartPickup(ctx context.Context, scanID string) (*model.Pickup, error) {
	if _, err := s.scans.FindByID(ctx, scanID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScanNotFound
		}
		return nil, err
	}
	p := &model.Pickup{
		PickupID:      uuid.NewString(),
		ScanID:        scanID,
		Status:        model.PickupStatusInitiated,
		Progress:      0,
		Instructions:  model.InstructionsInitiated,
		EstimatedTime: minEstimatedSeconds + rand.Intn(maxEstimatedSeconds-minEstimatedSeconds+1),
		StartedAt:     s.now(),
	}
	if err := s.pickups.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("store pickup: %w", err)
	}
	rid := reqctx.RID(ctx)
	if err := s.sched.Schedule(ctx, p.PickupID); err != nil {
		log.Printf("[pickup] rid=%s pickup=%s stage=schedule_fail err=%v", rid, p.PickupID, err)
		return nil, fmt.Errorf("schedule progress: %w", err)
	}
	log.Printf("[pickup] rid=%s pickup=%s scan=%s stage=started eta=%ds", rid, p.PickupID, scanID, p.EstimatedTime)
	return p, nil
}

// advance applies checkpoint step. Ticks that arrive for a missing or closed pickup
// end the timeline; ticks that would not move progress forward are skipped.
func (s *pickupService) advance(ctx context.Context, pickupID string, step int) error {
	if step < 0 || step >= len(model.ProgressSteps) {
		return scheduler.ErrStop
	}
	cp := model.ProgressSteps[step]
	p, err := s.pickups.Update(ctx, pickupID, func(p *model.Pickup) error {
		if p.Status.Terminal() {
			return errClosed
		}
		if p.Progress >= cp.Progress {
			return errUnchanged
		}
		now := s.now()
		p.Progress = cp.Progress
		p.Status = cp.Status
		p.Instructions = cp.Instructions
		p.LastUpdate = &now
		return nil
	})
	rid := reqctx.RID(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, errClosed):
		log.Printf("[pickup] rid=%s pickup=%s stage=tick_stop step=%d err=%v", rid, pickupID, step, err)
		return scheduler.ErrStop
	case errors.Is(err, errUnchanged):
		return nil
	case err != nil:
		log.Printf("[pickup] rid=%s pickup=%s stage=tick_fail step=%d err=%v", rid, pickupID, step, err)
		return err
	}
	log.Printf("[pickup] rid=%s pickup=%s stage=tick step=%d progress=%d status=%s", rid, pickupID, step, p.Progress, p.Status)
	return nil
}

func (s *pickupService) GetPickupStatus(ctx context.Context, pickupID string) (*model.Pickup, error) {
	p, err := s.pickups.FindByID(ctx, pickupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *pickupService) CompletePickup(ctx context.Context, pickupID string) (*model.Pickup, error) {
	p, err := s.pickups.Update(ctx, pickupID, func(p *model.Pickup) error {
		switch {
		case p.Status == model.PickupStatusCompleted:
			return errUnchanged
		case p.Status == model.PickupStatusCancelled:
			return ErrInvalidTransition
		case s.opts.RequireReady && p.Status != model.PickupStatusReady:
			return ErrPickupNotReady
		}
		now := s.now()
		p.Status = model.PickupStatusCompleted
		p.Progress = 100
		p.Instructions = model.InstructionsCompleted
		p.CompletedAt = &now
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrPickupNotFound
	case errors.Is(err, errUnchanged):
		return p, nil
	case err != nil:
		return nil, err
	}
	s.stopTimeline(ctx, pickupID)
	log.Printf("[pickup] rid=%s pickup=%s stage=completed", reqctx.RID(ctx), pickupID)
	return p, nil
}

func (s *pickupService) CancelPickup(ctx context.Context, pickupID string) (*model.Pickup, error) {
	s.stopTimeline(ctx, pickupID)
	p, err := s.pickups.Update(ctx, pickupID, func(p *model.Pickup) error {
		switch p.Status {
		case model.PickupStatusCancelled:
			return errUnchanged
		case model.PickupStatusCompleted:
			return ErrInvalidTransition
		}
		now := s.now()
		p.Status = model.PickupStatusCancelled
		p.Instructions = model.InstructionsCancelled
		p.CancelledAt = &now
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrPickupNotFound
	case errors.Is(err, errUnchanged):
		return p, nil
	case err != nil:
		return nil, err
	}
	log.Printf("[pickup] rid=%s pickup=%s stage=cancelled progress=%d", reqctx.RID(ctx), pickupID, p.Progress)
	return p, nil
}

func (s *pickupService) stopTimeline(ctx context.Context, pickupID string) {
	if err := s.sched.Cancel(ctx, pickupID); err != nil {
		log.Printf("[pickup] rid=%s pickup=%s stage=cancel_timeline err=%v", reqctx.RID(ctx), pickupID, err)
	}
}
