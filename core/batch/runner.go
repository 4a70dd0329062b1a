package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"card-tracker/core/checkpoint"
	"card-tracker/core/metrics"

	"go.uber.org/zap"
)

// Job describes one resumable pass over work items of type T, carrying
// state of type S across invocations.
type Job[T any, S any] interface {
	// Plan enumerates the work list of a fresh pass.
	Plan(ctx context.Context) ([]T, S, error)
	// Prepare runs at the start of every invocation, fresh or resumed.
	Prepare(ctx context.Context) error
	// Process handles a single item. A returned error skips the item.
	Process(ctx context.Context, item T, state *S) error
	// Flush writes any buffered output.
	Flush(ctx context.Context) error
	// Key identifies an item in logs.
	Key(item T) string
}

// Options tunes a Runner.
type Options struct {
	// Operation names the pass in logs and metrics.
	Operation string
	// Pause is slept after every processed item.
	Pause time.Duration
	// Metrics receives per-item counters. May be nil.
	Metrics *metrics.Metrics
}

// Result summarizes one invocation.
type Result[S any] struct {
	// Total is the size of the work list.
	Total int
	// StartIndex is where this invocation began.
	StartIndex int
	// NextIndex is the index a later invocation resumes from.
	NextIndex int
	// Processed counts items handled successfully in this invocation.
	Processed int
	// Skipped counts items that failed in this invocation.
	Skipped int
	// Suspended is true when the budget ran out before the end of the list.
	Suspended bool
	// State is the job state after this invocation.
	State S
}

// Runner drives a Job against a checkpoint store.
type Runner[T any, S any] struct {
	job    Job[T, S]
	store  *checkpoint.Store
	opts   Options
	logger *zap.Logger
}

// NewRunner creates a runner.
func NewRunner[T any, S any](job Job[T, S], store *checkpoint.Store, opts Options, logger *zap.Logger) *Runner[T, S] {
	return &Runner[T, S]{
		job:    job,
		store:  store,
		opts:   opts,
		logger: logger.With(zap.String("operation", opts.Operation)),
	}
}

// Run processes items until the list is done or the budget is exhausted.
// ctx is used for all external calls and should not carry the budget's
// cancellation, so an in-flight item always completes.
func (r *Runner[T, S]) Run(ctx context.Context, budget *Budget) (*Result[S], error) {
	// 1. Load or build the work list
	items, state, start, err := r.resume(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result[S]{Total: len(items), StartIndex: start, NextIndex: start}

	if len(items) == 0 {
		r.logger.Info("Nothing to process")
		res.State = state
		if err := r.store.Clear(ctx); err != nil {
			return nil, err
		}
		return res, nil
	}

	// 2. Per-invocation setup
	if err := r.job.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", r.opts.Operation, err)
	}

	r.logger.Info("Processing work list",
		zap.Int("total", len(items)),
		zap.Int("start_index", start),
	)

	// 3. Walk the list
	for i := start; i < len(items); i++ {
		if budget.Exhausted() {
			res.NextIndex = i
			res.Suspended = true
			res.State = state
			return res, r.suspend(ctx, items, state, i)
		}

		item := items[i]
		key := r.job.Key(item)
		if err := r.job.Process(ctx, item, &state); err != nil {
			res.Skipped++
			r.opts.Metrics.ItemSkipped(r.opts.Operation)
			r.logger.Warn("Skipping item",
				zap.Int("index", i),
				zap.String("key", key),
				zap.Error(err),
			)
		} else {
			res.Processed++
			r.opts.Metrics.ItemProcessed(r.opts.Operation)
			r.logger.Debug("Item processed", zap.Int("index", i), zap.String("key", key))
		}
		res.NextIndex = i + 1

		budget.Pause(r.opts.Pause)
	}

	// 4. Completed
	res.State = state
	if err := r.job.Flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to flush %s: %w", r.opts.Operation, err)
	}
	if err := r.store.Clear(ctx); err != nil {
		return nil, err
	}

	r.logger.Info("Work list completed",
		zap.Int("processed", res.Processed),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func (r *Runner[T, S]) resume(ctx context.Context) ([]T, S, int, error) {
	var (
		items []T
		state S
	)

	cp := r.store.Load(ctx)
	if cp.LastIndex > 0 {
		err := json.Unmarshal(cp.WorkList, &items)
		if err == nil && len(cp.State) > 0 {
			err = json.Unmarshal(cp.State, &state)
		}
		switch {
		case err != nil:
			r.logger.Warn("Checkpoint work list unreadable, starting fresh", zap.Error(err))
		case cp.LastIndex > len(items):
			r.logger.Warn("Checkpoint index beyond work list, starting fresh",
				zap.Int("last_index", cp.LastIndex),
				zap.Int("total", len(items)),
			)
		default:
			r.logger.Info("Resuming from checkpoint", zap.Int("last_index", cp.LastIndex))
			return items, state, cp.LastIndex, nil
		}
		items = nil
		state = *new(S)
	}

	items, state, err := r.job.Plan(ctx)
	if err != nil {
		return nil, state, 0, fmt.Errorf("failed to plan %s: %w", r.opts.Operation, err)
	}
	if len(items) > 0 {
		if err := r.save(ctx, items, state, 0); err != nil {
			return nil, state, 0, err
		}
	}
	return items, state, 0, nil
}

func (r *Runner[T, S]) suspend(ctx context.Context, items []T, state S, next int) error {
	r.logger.Info("Time budget exhausted, saving checkpoint", zap.Int("next_index", next))

	if err := r.job.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush %s before checkpoint: %w", r.opts.Operation, err)
	}
	return r.save(ctx, items, state, next)
}

func (r *Runner[T, S]) save(ctx context.Context, items []T, state S, next int) error {
	work, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode work list: %w", err)
	}
	st, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return r.store.Save(ctx, &checkpoint.Checkpoint{
		LastIndex: next,
		WorkList:  work,
		State:     st,
	})
}
