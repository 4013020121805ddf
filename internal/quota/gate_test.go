package quota

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archilab/renderstudio/internal/models"
)

var noon = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestEffectiveUsed(t *testing.T) {
	t.Run("counter from today is kept", func(t *testing.T) {
		s := State{UsedToday: 7, LastUsageDate: "2025-06-10"}
		assert.Equal(t, 7, EffectiveUsed(s, noon))
	})

	t.Run("counter from a previous day reads as zero", func(t *testing.T) {
		s := State{UsedToday: 7, LastUsageDate: "2025-06-09"}
		assert.Equal(t, 0, EffectiveUsed(s, noon))
	})

	t.Run("no usage date reads as zero", func(t *testing.T) {
		s := State{UsedToday: 3}
		assert.Equal(t, 0, EffectiveUsed(s, noon))
	})
}

func TestDecide(t *testing.T) {
	t.Run("standard request is never billable", func(t *testing.T) {
		d := Decide(State{DailyLimit: 10}, models.TierStandard, false, noon)
		assert.Equal(t, models.TierStandard, d.Granted)
		assert.False(t, d.Billable)
		assert.False(t, d.Downgraded)
	})

	t.Run("premium within allowance is granted and billable", func(t *testing.T) {
		s := State{DailyLimit: 10, UsedToday: 9, LastUsageDate: "2025-06-10"}
		d := Decide(s, models.TierPremium, false, noon)
		assert.Equal(t, models.TierPremium, d.Granted)
		assert.True(t, d.Billable)
		assert.False(t, d.Downgraded)
	})

	t.Run("exhausted allowance downgrades to standard", func(t *testing.T) {
		s := State{DailyLimit: 10, UsedToday: 10, LastUsageDate: "2025-06-10"}
		d := Decide(s, models.TierPremium, false, noon)
		assert.Equal(t, models.TierStandard, d.Granted)
		assert.False(t, d.Billable)
		assert.True(t, d.Downgraded)
	})

	t.Run("zero daily limit means no premium", func(t *testing.T) {
		d := Decide(State{DailyLimit: 0}, models.TierPremium, false, noon)
		assert.Equal(t, models.TierStandard, d.Granted)
		assert.True(t, d.Downgraded)
	})

	t.Run("override credential bypasses the allowance without billing", func(t *testing.T) {
		s := State{DailyLimit: 0}
		d := Decide(s, models.TierPremium, true, noon)
		assert.Equal(t, models.TierPremium, d.Granted)
		assert.False(t, d.Billable)
	})

	t.Run("privileged identity bypasses the allowance without billing", func(t *testing.T) {
		s := State{DailyLimit: 10, UsedToday: 10, LastUsageDate: "2025-06-10", IsPrivileged: true}
		d := Decide(s, models.TierPremium, false, noon)
		assert.Equal(t, models.TierPremium, d.Granted)
		assert.False(t, d.Billable)
		assert.False(t, d.Downgraded)
	})

	t.Run("stale counter grants premium after the day rolls over", func(t *testing.T) {
		s := State{DailyLimit: 10, UsedToday: 10, LastUsageDate: "2025-06-09"}
		d := Decide(s, models.TierPremium, false, noon)
		assert.Equal(t, models.TierPremium, d.Granted)
		assert.True(t, d.Billable)
	})

	t.Run("decide is a pure read", func(t *testing.T) {
		s := State{DailyLimit: 10, UsedToday: 4, LastUsageDate: "2025-06-10"}
		before := s
		_ = Decide(s, models.TierPremium, false, noon)
		_ = Decide(s, models.TierPremium, false, noon)
		assert.Equal(t, before, s)
	})
}

type recordingUsageStore struct {
	identity string
	day      string
	calls    int
	err      error
}

func (r *recordingUsageStore) IncrementUsage(_ context.Context, identity, day string) error {
	r.identity = identity
	r.day = day
	r.calls++
	return r.err
}

func TestGateBill(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("increments once for today", func(t *testing.T) {
		store := &recordingUsageStore{}
		gate := NewGate(store, log)

		require.NoError(t, gate.Bill(context.Background(), "alice"))
		assert.Equal(t, 1, store.calls)
		assert.Equal(t, "alice", store.identity)
		assert.Equal(t, time.Now().UTC().Format(models.DateLayout), store.day)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		store := &recordingUsageStore{err: assert.AnError}
		gate := NewGate(store, log)

		err := gate.Bill(context.Background(), "alice")
		require.ErrorIs(t, err, assert.AnError)
	})
}
