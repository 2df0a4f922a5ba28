package mutate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hacklog-frontend/internal/shared/notify"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "applying", StateApplying.String())
	assert.Equal(t, "committed", StateCommitted.String())
	assert.Equal(t, "rolled_back", StateRolledBack.String())
}

func TestDoCommit(t *testing.T) {
	notices := notify.NewCenter(time.Minute)
	m := NewMutator(notices)

	var applied, committed, reverted bool
	outcome, err := m.Do(context.Background(), Mutation{
		Key:            "article:1",
		Apply:          func() { applied = true },
		Call:           func(ctx context.Context) error { return nil },
		Revert:         func() { reverted = true },
		OnCommit:       func() { committed = true },
		SuccessMessage: "Article deleted",
	})

	require.NoError(t, err)
	assert.Equal(t, StateCommitted, outcome.State)
	assert.NoError(t, outcome.Err)
	assert.True(t, applied)
	assert.True(t, committed)
	assert.False(t, reverted)

	active := notices.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.LevelSuccess, active[0].Level)
	assert.Equal(t, "Article deleted", active[0].Message)
}

func TestDoRollback(t *testing.T) {
	notices := notify.NewCenter(time.Minute)
	m := NewMutator(notices)

	callErr := errors.New("backend down")
	var applied, committed, reverted bool
	outcome, err := m.Do(context.Background(), Mutation{
		Key:            "article:1",
		Apply:          func() { applied = true },
		Call:           func(ctx context.Context) error { return callErr },
		Revert:         func() { reverted = true },
		OnCommit:       func() { committed = true },
		FailureMessage: "Failed to delete article",
	})

	// Remote failure is an outcome, not a propagated error
	require.NoError(t, err)
	assert.Equal(t, StateRolledBack, outcome.State)
	assert.ErrorIs(t, outcome.Err, callErr)
	assert.True(t, applied)
	assert.True(t, reverted)
	// Derived-data cleanup never runs on rollback
	assert.False(t, committed)

	active := notices.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.LevelDanger, active[0].Level)
}

// Low-friction mutations (like) commit without a success toast.
func TestDoNoSuccessMessage(t *testing.T) {
	notices := notify.NewCenter(time.Minute)
	m := NewMutator(notices)

	outcome, err := m.Do(context.Background(), Mutation{
		Key:    "like:1",
		Apply:  func() {},
		Call:   func(ctx context.Context) error { return nil },
		Revert: func() {},
	})

	require.NoError(t, err)
	assert.Equal(t, StateCommitted, outcome.State)
	assert.Empty(t, notices.Active())
}

func TestDoInFlightGuard(t *testing.T) {
	m := NewMutator(nil)

	entered := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Do(context.Background(), Mutation{
			Key:   "article:7",
			Apply: func() {},
			Call: func(ctx context.Context) error {
				close(entered)
				<-release
				return nil
			},
			Revert: func() {},
		})
	}()
	<-entered

	// Same key while applying: rejected, nothing runs
	var applied bool
	outcome, err := m.Do(context.Background(), Mutation{
		Key:    "article:7",
		Apply:  func() { applied = true },
		Call:   func(ctx context.Context) error { return nil },
		Revert: func() {},
	})
	assert.ErrorIs(t, err, ErrMutationInFlight)
	assert.Equal(t, StateIdle, outcome.State)
	assert.False(t, applied)

	// Different key overlaps freely
	outcome, err = m.Do(context.Background(), Mutation{
		Key:    "article:8",
		Apply:  func() {},
		Call:   func(ctx context.Context) error { return nil },
		Revert: func() {},
	})
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, outcome.State)

	close(release)
	wg.Wait()

	// First mutation finished - key is free again
	_, err = m.Do(context.Background(), Mutation{
		Key:    "article:7",
		Apply:  func() {},
		Call:   func(ctx context.Context) error { return nil },
		Revert: func() {},
	})
	assert.NoError(t, err)
}

// Apply then Revert must leave the caller's state exactly as before.
func TestDoRollbackRestoresState(t *testing.T) {
	m := NewMutator(nil)

	rows := []string{"a", "b", "c"}
	snapshot := append([]string(nil), rows...)

	outcome, err := m.Do(context.Background(), Mutation{
		Key:   "article:2",
		Apply: func() { rows = append(rows[:1], rows[2:]...) },
		Call: func(ctx context.Context) error {
			// Optimistic state visible while the call is in flight
			assert.Equal(t, []string{"a", "c"}, rows)
			return errors.New("rejected")
		},
		Revert: func() { rows = snapshot },
	})

	require.NoError(t, err)
	assert.Equal(t, StateRolledBack, outcome.State)
	assert.Equal(t, []string{"a", "b", "c"}, rows)
}
