package batch

import (
	"context"
	"time"
)

// Budget is a cooperative time limit.
type Budget struct {
	ctx      context.Context
	clock    Clock
	deadline time.Time
	limited  bool
}

// NewBudget returns a budget that expires after d, or when ctx is done.
// A non-positive d means no time limit.
func NewBudget(ctx context.Context, clock Clock, d time.Duration) *Budget {
	b := &Budget{ctx: ctx, clock: clock}
	if d > 0 {
		b.deadline = clock.Now().Add(d)
		b.limited = true
	}
	return b
}

// NewBudgetSince returns a budget that expires d after start, or when ctx is
// done. A non-positive d means no time limit.
func NewBudgetSince(ctx context.Context, clock Clock, start time.Time, d time.Duration) *Budget {
	b := &Budget{ctx: ctx, clock: clock}
	if d > 0 {
		b.deadline = start.Add(d)
		b.limited = true
	}
	return b
}

// Unlimited returns a budget that only expires when ctx is done.
func Unlimited(ctx context.Context) *Budget {
	return NewBudget(ctx, SystemClock, 0)
}

// Exhausted reports whether work should stop.
func (b *Budget) Exhausted() bool {
	if b.ctx.Err() != nil {
		return true
	}
	return b.limited && !b.clock.Now().Before(b.deadline)
}

// Remaining returns the time left, or -1 when the budget has no time limit.
func (b *Budget) Remaining() time.Duration {
	if !b.limited {
		return -1
	}
	left := b.deadline.Sub(b.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Done is closed when the budget's context is cancelled.
func (b *Budget) Done() <-chan struct{} {
	return b.ctx.Done()
}

// Pause waits for d or until the budget's context is cancelled.
func (b *Budget) Pause(d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-b.ctx.Done():
	}
}
