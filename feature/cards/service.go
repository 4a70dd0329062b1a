package cards

import (
	"context"
	"fmt"
	"time"

	"card-tracker/core/batch"
	"card-tracker/core/checkpoint"

	"go.uber.org/zap"
)

// Service runs the card update pass.
type Service struct {
	job    *Job
	store  *checkpoint.Store
	opts   batch.Options
	logger *zap.Logger
}

// NewService creates a new card update service.
func NewService(job *Job, store *checkpoint.Store, opts batch.Options, logger *zap.Logger) *Service {
	if opts.Operation == "" {
		opts.Operation = Operation
	}
	return &Service{job: job, store: store, opts: opts, logger: logger}
}

// Run refreshes stale cards until done or until budget runs out.
func (s *Service) Run(ctx context.Context, budget *batch.Budget) (*batch.Result[State], error) {
	return batch.NewRunner[Task, State](s.job, s.store, s.opts, s.logger).Run(ctx, budget)
}

// Message renders the completion notification.
func Message(res *batch.Result[State], elapsed time.Duration) string {
	return fmt.Sprintf("✅ <b>Card Data Updated</b>\n\n⏱️ Time: %.2fs\n🔄 Updated: %d\n⚠️ Skipped: %d",
		elapsed.Seconds(), res.State.Updated, res.Skipped)
}
