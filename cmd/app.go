package cmd

import (
	"context"
	"fmt"
	"html"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-tracker/core/batch"
	"card-tracker/core/checkpoint"
	"card-tracker/core/config"
	"card-tracker/core/database"
	"card-tracker/core/logger"
	"card-tracker/core/metrics"
	"card-tracker/core/notify"
	"card-tracker/core/sheets"

	"go.uber.org/zap"
)

// app holds the dependencies shared by every operation.
type app struct {
	op       string
	cfg      *config.Config
	logger   *zap.Logger
	book     *sheets.Book
	notifier notify.Notifier
	metrics  *metrics.Metrics
	started  time.Time
	closers  []func() error
}

// bootstrap loads and validates configuration, then opens the sheet store.
func bootstrap(ctx context.Context, op string) (*app, error) {
	started := time.Now()

	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(op); err != nil {
		return nil, err
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logg = logger.WithRunID(logg, logger.NewRunID())

	a := &app{
		op:       op,
		cfg:      cfg,
		logger:   logg,
		notifier: notify.New(cfg.Telegram),
		metrics:  metrics.New(),
		started:  started,
	}
	if op == config.OpCheckpoint {
		return a, nil
	}

	// 3. Connect to the sheet store
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	a.book = sheets.NewBook(db)
	if err := a.book.Migrate(ctx); err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

// checkpoints opens the checkpoint store of namespace.
func (a *app) checkpoints(ctx context.Context, namespace string) (*checkpoint.Store, error) {
	backend, closeFn, err := checkpoint.NewBackend(ctx, a.cfg.Checkpoint, a.cfg.Storage)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeFn)
	return checkpoint.NewStore(backend, namespace, a.logger), nil
}

// budget returns a budget of d counted from process start that also expires
// on SIGINT or SIGTERM.
// Only the budget observes the signal so an in-flight item completes and
// the checkpoint is written.
func (a *app) budget(ctx context.Context, d time.Duration) *batch.Budget {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	a.closers = append(a.closers, func() error { stop(); return nil })
	return batch.NewBudgetSince(sigCtx, batch.SystemClock, a.started, d)
}

// batchOptions returns the runner options of a batch operation.
func (a *app) batchOptions() batch.Options {
	return batch.Options{Operation: a.op, Pause: a.cfg.Jobs.Pause(), Metrics: a.metrics}
}

// succeed records a completed run and sends its notification. An empty
// message sends nothing.
func (a *app) succeed(ctx context.Context, outcome, message string) {
	elapsed := time.Since(a.started)
	a.logger.Info("Operation finished",
		zap.String("operation", a.op),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)
	a.metrics.RunFinished(a.op, outcome, elapsed)
	a.push(ctx)
	if message != "" {
		notify.Report(ctx, a.notifier, a.logger, message)
	}
}

// fail records a failed run, notifies, and returns err.
func (a *app) fail(ctx context.Context, err error) error {
	a.logger.Error("Operation failed", zap.String("operation", a.op), zap.Error(err))
	a.metrics.RunFinished(a.op, metrics.OutcomeFailed, time.Since(a.started))
	a.push(ctx)
	notify.Report(ctx, a.notifier, a.logger,
		fmt.Sprintf("❌ <b>%s failed</b>\n\n%s", a.op, html.EscapeString(err.Error())))
	return err
}

func (a *app) push(ctx context.Context) {
	if err := a.metrics.Push(ctx, a.cfg.Metrics, a.op); err != nil {
		a.logger.Warn("Failed to push metrics", zap.Error(err))
	}
}

// close releases connections in reverse order and flushes the logger.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Debug("Close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func (a *app) elapsed() time.Duration {
	return time.Since(a.started)
}
