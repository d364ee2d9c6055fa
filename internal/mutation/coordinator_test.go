package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/api-agency/internal/notify"
	"github.com/agencydesk/api-agency/internal/validation"
)

type quickAddForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

func TestRunValidatesBeforeApply(t *testing.T) {
	recorder := &notify.Recorder{}
	coord := NewCoordinator(NewCache(), recorder, nil)

	applied := false
	err := coord.Run(context.Background(), Op{
		Entity:  "agents",
		Kind:    KindCreate,
		Label:   "agent",
		Payload: quickAddForm{FirstName: "OnlyFirst"},
		Apply: func(context.Context) error {
			applied = true
			return nil
		},
	})

	var ferr *validation.FieldErrors
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Fields, "lastName")
	assert.False(t, applied, "store must not be called for an invalid payload")

	events := recorder.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.Error, events[0].Severity)
}

func TestRunInvalidatesDependentsOnSuccess(t *testing.T) {
	recorder := &notify.Recorder{}
	cache := NewCache()
	coord := NewCoordinator(cache, recorder, nil)
	ctx := context.Background()

	prime := func(entity string) Key {
		key := Key{Entity: entity}
		_, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) { return 1, nil })
		require.NoError(t, err)
		return key
	}
	agents := prime("agents")
	stats := prime("commissions/stats")
	updates := prime("updates")

	err := coord.Run(ctx, Op{
		Entity:  "agents",
		Kind:    KindCreate,
		Label:   "agent",
		Payload: quickAddForm{FirstName: "Dana", LastName: "Reyes"},
		Apply:   func(context.Context) error { return nil },
	})
	require.NoError(t, err)

	assert.True(t, cache.IsStale(agents))
	assert.True(t, cache.IsStale(stats), "agent mutations reach derived commission views")
	assert.False(t, cache.IsStale(updates))

	events := recorder.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.Success, events[0].Severity)
	assert.Equal(t, "agent created", events[0].Title)
}

func TestSuccessTitlesUsePastTense(t *testing.T) {
	recorder := &notify.Recorder{}
	coord := NewCoordinator(NewCache(), recorder, nil)
	ctx := context.Background()

	for kind, want := range map[Kind]string{
		KindCreate: "lead created",
		KindUpdate: "lead updated",
		KindDelete: "lead deleted",
	} {
		err := coord.Run(ctx, Op{
			Entity: "leads",
			ID:     1,
			Kind:   kind,
			Label:  "lead",
			Apply:  func(context.Context) error { return nil },
		})
		require.NoError(t, err)
		events := recorder.Events()
		assert.Equal(t, want, events[len(events)-1].Title)
	}
}

func TestRunFailureLeavesCacheIntact(t *testing.T) {
	recorder := &notify.Recorder{}
	cache := NewCache()
	coord := NewCoordinator(cache, recorder, nil)
	ctx := context.Background()

	key := Key{Entity: "agents"}
	_, err := GetOrFetch(ctx, cache, key, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	storeErr := errors.New("store unreachable")
	err = coord.Run(ctx, Op{
		Entity: "agents",
		ID:     3,
		Kind:   KindUpdate,
		Label:  "agent",
		Apply:  func(context.Context) error { return storeErr },
	})
	require.ErrorIs(t, err, storeErr)
	assert.False(t, cache.IsStale(key))

	events := recorder.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.Error, events[0].Severity)

	// The failed operation returned to idle and may be resubmitted.
	err = coord.Run(ctx, Op{
		Entity: "agents",
		ID:     3,
		Kind:   KindUpdate,
		Label:  "agent",
		Apply:  func(context.Context) error { return nil },
	})
	require.NoError(t, err)
}

func TestRunRejectsDuplicateInFlight(t *testing.T) {
	coord := NewCoordinator(NewCache(), nil, nil)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	op := Op{
		Entity: "commissions",
		ID:     5,
		Kind:   KindUpdate,
		Label:  "commission",
		Apply: func(context.Context) error {
			close(started)
			<-release
			return nil
		},
	}

	go func() { done <- coord.Run(ctx, op) }()
	<-started
	assert.True(t, coord.InFlight("commissions", 5, KindUpdate))

	err := coord.Run(ctx, Op{
		Entity: "commissions",
		ID:     5,
		Kind:   KindUpdate,
		Label:  "commission",
		Apply:  func(context.Context) error { return nil },
	})
	assert.ErrorIs(t, err, ErrInFlight)

	// A different record or kind is independent and may proceed.
	err = coord.Run(ctx, Op{
		Entity: "commissions",
		ID:     6,
		Kind:   KindUpdate,
		Label:  "commission",
		Apply:  func(context.Context) error { return nil },
	})
	assert.NoError(t, err)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("first operation never finished")
	}
	assert.False(t, coord.InFlight("commissions", 5, KindUpdate))
}
