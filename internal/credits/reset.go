package credits

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ResetJobName identifies the balance reset job.
const ResetJobName = "credit-reset"

// BalanceStore is the persistence the resetter needs.
type BalanceStore interface {
	ResetCredits(ctx context.Context, balance int) (int64, error)
}

// Resetter sets every account balance back to a default.
type Resetter struct {
	store   BalanceStore
	balance int
}

// NewResetter creates a resetter that restores balances to balance.
func NewResetter(store BalanceStore, balance int) *Resetter {
	return &Resetter{store: store, balance: balance}
}

// ResetAll performs one bulk reset and returns how many accounts were updated.
func (r *Resetter) ResetAll(ctx context.Context) (int64, error) {
	n, err := r.store.ResetCredits(ctx, r.balance)
	if err != nil {
		return 0, fmt.Errorf("failed to reset credits: %w", err)
	}
	slog.Info("credits reset", "accounts", n, "balance", r.balance)
	return n, nil
}

// Schedule registers the reset with s to run every interval.
func (r *Resetter) Schedule(s Scheduler, interval time.Duration) error {
	return s.Every(interval, ResetJobName, func(ctx context.Context) {
		if _, err := r.ResetAll(ctx); err != nil {
			slog.Error("scheduled credit reset failed", "error", err)
		}
	})
}
