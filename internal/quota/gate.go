// Package quota decides which backend tier a generation may use and bills
// confirmed premium usage against the per-identity daily allowance.
package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/archilab/renderstudio/internal/models"
)

// State is a read-only snapshot of one identity's quota record.
type State struct {
	Identity      string
	DailyLimit    int
	UsedToday     int
	LastUsageDate string
	IsPrivileged  bool
}

// Decision is the outcome of a tier request against a quota snapshot.
type Decision struct {
	Requested  models.Tier
	Granted    models.Tier
	Billable   bool
	Downgraded bool
}

// EffectiveUsed applies the lazy day reset: a stale LastUsageDate means the
// counter belongs to a previous day and counts as zero. The snapshot itself
// is never written back by a read.
func EffectiveUsed(s State, now time.Time) int {
	if s.LastUsageDate != now.UTC().Format(models.DateLayout) {
		return 0
	}
	return s.UsedToday
}

// Decide derives the granted tier for a requested one. Premium is granted
// when an override credential is supplied, the identity is privileged, or
// today's effective usage is below the daily limit. A DailyLimit of zero is
// a valid "no premium" allowance, never a default. When premium was
// requested but denied, the call downgrades to standard and flags it so the
// caller can surface a notice; denial is not a failure.
func Decide(s State, requested models.Tier, hasOverride bool, now time.Time) Decision {
	d := Decision{Requested: requested, Granted: models.TierStandard}
	if requested != models.TierPremium {
		return d
	}

	switch {
	case hasOverride, s.IsPrivileged:
		d.Granted = models.TierPremium
	case EffectiveUsed(s, now) < s.DailyLimit:
		d.Granted = models.TierPremium
		d.Billable = true
	default:
		d.Downgraded = true
	}
	return d
}

// UsageStore persists the billing increment. Implementations must fold the
// day rollover and the increment into one atomic write; two concurrent
// billable generations for the same identity may not both count from the
// same base.
type UsageStore interface {
	IncrementUsage(ctx context.Context, identity string, day string) error
}

type Gate struct {
	store UsageStore
	log   *slog.Logger
}

func NewGate(store UsageStore, log *slog.Logger) *Gate {
	return &Gate{store: store, log: log}
}

// Bill records one premium use for today. It is called only after a
// confirmed successful generation at a billable grant.
func (g *Gate) Bill(ctx context.Context, identity string) error {
	day := time.Now().UTC().Format(models.DateLayout)
	if err := g.store.IncrementUsage(ctx, identity, day); err != nil {
		return fmt.Errorf("bill usage for %s: %w", identity, err)
	}
	g.log.Info("premium usage billed", "identity", identity, "day", day)
	return nil
}
