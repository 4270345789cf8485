package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shinyyama/pickup-kiosk/internal/reqctx"
)

const (
	TypePickupProgress = "pickup:progress"

	progressQueue = "pickup"
)

type ProgressPayload struct {
	PickupID string `json:"pickup_id"`
	Step     int    `json:"step"`
	RID      string `json:"rid"`
}

// AsynqScheduler enqueues every tick of a timeline as a delayed task, so ticks
// survive a process restart as long as redis does.
type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	server    *asynq.Server
	interval  time.Duration
	steps     int

	mu sync.RWMutex
	fn StepFunc
}

func NewAsynqScheduler(redisOpt asynq.RedisClientOpt, interval time.Duration, steps int) *AsynqScheduler {
	return &AsynqScheduler{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				progressQueue: 1,
			},
		}),
		interval: interval,
		steps:    steps,
	}
}

// Start runs the worker side that executes due ticks.
func (s *AsynqScheduler) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePickupProgress, s.HandleProgress)
	return s.server.Start(mux)
}

func (s *AsynqScheduler) Handle(fn StepFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
}

func TaskID(pickupID string, step int) string {
	return fmt.Sprintf("pickup:%s:step:%d", pickupID, step)
}

func (s *AsynqScheduler) Schedule(ctx context.Context, pickupID string) error {
	for step := 0; step < s.steps; step++ {
		payload, err := json.Marshal(ProgressPayload{PickupID: pickupID, Step: step, RID: reqctx.RID(ctx)})
		if err != nil {
			return err
		}
		task := asynq.NewTask(TypePickupProgress, payload)
		_, err = s.client.EnqueueContext(ctx, task,
			asynq.Queue(progressQueue),
			asynq.TaskID(TaskID(pickupID, step)),
			asynq.ProcessIn(s.interval*time.Duration(step+1)),
			asynq.MaxRetry(3),
		)
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return ErrAlreadyScheduled
		}
		if err != nil {
			return fmt.Errorf("enqueue step %d: %w", step, err)
		}
	}
	return nil
}

// HandleProgress is the asynq handler for TypePickupProgress tasks.
func (s *AsynqScheduler) HandleProgress(ctx context.Context, t *asynq.Task) error {
	var payload ProgressPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode progress payload: %v: %w", err, asynq.SkipRetry)
	}
	s.mu.RLock()
	fn := s.fn
	s.mu.RUnlock()
	if fn == nil {
		return fmt.Errorf("no progress handler registered")
	}
	ctx = reqctx.WithPickupID(reqctx.WithRID(ctx, payload.RID), payload.PickupID)
	err := fn(ctx, payload.PickupID, payload.Step)
	if errors.Is(err, ErrStop) {
		if cerr := s.Cancel(ctx, payload.PickupID); cerr != nil {
			log.Printf("[scheduler] rid=%s pickup=%s stage=stop err=%v", payload.RID, payload.PickupID, cerr)
		}
		return nil
	}
	return err
}

func (s *AsynqScheduler) Cancel(_ context.Context, pickupID string) error {
	var errs []error
	for step := 0; step < s.steps; step++ {
		err := s.inspector.DeleteTask(progressQueue, TaskID(pickupID, step))
		if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			continue
		}
		errs = append(errs, fmt.Errorf("delete step %d: %w", step, err))
	}
	return errors.Join(errs...)
}

func (s *AsynqScheduler) Close() error {
	s.server.Shutdown()
	return errors.Join(s.client.Close(), s.inspector.Close())
}
