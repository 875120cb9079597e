package binding

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/searchbind/component"
	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/store"
	"github.com/c360/searchbind/testutil"
	"github.com/c360/searchbind/types"
)

func newTestStore(t *testing.T) (*component.Registry, *testutil.FakeExecutor) {
	t.Helper()
	exec := testutil.NewFakeExecutor()
	registry, err := component.NewRegistry(component.RegistryConfig{Executor: exec})
	require.NoError(t, err)
	return registry, exec
}

func TestNew_Validation(t *testing.T) {
	registry, _ := newTestStore(t)

	_, err := New(registry, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingID)
}

func TestNew_DefaultStoreNotConfigured(t *testing.T) {
	store.ResetDefault()

	_, err := New(nil, DefaultOptions("search-box", types.ComponentConfig{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotConfigured)
}

func TestNew_DefaultStoreConfigured(t *testing.T) {
	registry, _ := newTestStore(t)
	store.SetDefault(registry)
	t.Cleanup(store.ResetDefault)

	b, err := New(nil, DefaultOptions("search-box", types.ComponentConfig{}))
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))
	assert.Equal(t, 1, registry.Len())
}

func TestMount_TriggersDefaultQueryOncePerMount(t *testing.T) {
	registry, exec := newTestStore(t)

	b, err := New(registry, DefaultOptions("search-box", types.ComponentConfig{Index: "products"}))
	require.NoError(t, err)

	require.NoError(t, b.Mount(context.Background()))
	assert.Equal(t, 1, exec.QueryCallCount())

	// A re-render is not a mount; mounting twice is an error and never
	// re-triggers the query.
	err = b.Mount(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAlreadyMounted)
	assert.Equal(t, 1, exec.QueryCallCount())

	// A second view mounting against the same id triggers once for its
	// own mount event.
	b2, err := New(registry, DefaultOptions("search-box", types.ComponentConfig{Index: "products"}))
	require.NoError(t, err)
	require.NoError(t, b2.Mount(context.Background()))
	assert.Equal(t, 2, exec.QueryCallCount())
}

func TestMount_SuppressedInitialQuery(t *testing.T) {
	registry, exec := newTestStore(t)

	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))
	assert.Equal(t, 0, exec.QueryCallCount())
}

func TestMount_WithoutListening(t *testing.T) {
	registry, _ := newTestStore(t)

	var fired int
	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.ShouldListenForChanges = false
	opts.TriggerQueryOnInit = false
	opts.Hooks.OnValueChange = func(_, _ string) { fired++ }

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	require.NoError(t, b.SetValue(context.Background(), "laptop", types.SetValueOptions{}))
	assert.Equal(t, 0, fired)
	assert.Equal(t, "laptop", b.Component().State().Value)
}

func TestSetValue_HookFanOut(t *testing.T) {
	registry, exec := newTestStore(t)
	exec.QueryFunc = func(_ context.Context, comp *component.Component) (component.QueryResult, error) {
		return component.QueryResult{
			Results: []map[string]any{{"title": comp.State().Value}},
			Total:   1,
		}, nil
	}

	var valuePrev, valueNext string
	var gotResults []map[string]any
	var statuses []types.RequestStatus

	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false
	opts.Hooks.OnValueChange = func(prev, next string) { valuePrev, valueNext = prev, next }
	opts.Hooks.OnResults = func(_, next []map[string]any) { gotResults = next }
	opts.Hooks.OnRequestStatusChange = func(_, next types.RequestStatus) { statuses = append(statuses, next) }

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	require.NoError(t, b.SetValue(context.Background(), "laptop", types.SetValueOptions{TriggerDefaultQuery: true}))

	assert.Equal(t, "", valuePrev)
	assert.Equal(t, "laptop", valueNext)
	require.Len(t, gotResults, 1)
	assert.Equal(t, "laptop", gotResults[0]["title"])
	assert.Equal(t, []types.RequestStatus{types.StatusPending, types.StatusSuccess}, statuses)
}

func TestSetValue_InterestSetFiltering(t *testing.T) {
	registry, _ := newTestStore(t)

	var valueFired int
	opts := DefaultOptions("filter", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false
	opts.SubscribeTo = []types.Property{types.PropertyValue}
	opts.Hooks.OnValueChange = func(_, _ string) { valueFired++ }

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	require.NoError(t, b.SetValue(context.Background(), "laptop", types.SetValueOptions{}))
	assert.Equal(t, 1, valueFired)
}

func TestSetValue_GateTransformsValue(t *testing.T) {
	registry, _ := newTestStore(t)

	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false
	opts.Hooks.BeforeValueChange = func(_ context.Context, value string) (string, error) {
		return strings.ToLower(strings.TrimSpace(value)), nil
	}

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	require.NoError(t, b.SetValue(context.Background(), "  Laptop ", types.SetValueOptions{}))
	assert.Equal(t, "laptop", b.Component().State().Value)
}

func TestSetValue_GateRejectionLeavesStateUntouched(t *testing.T) {
	registry, _ := newTestStore(t)

	var valueChanged int
	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false
	opts.Hooks.BeforeValueChange = func(_ context.Context, _ string) (string, error) {
		return "", fmt.Errorf("profanity filter")
	}
	opts.Hooks.OnValueChange = func(_, _ string) { valueChanged++ }

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	err = b.SetValue(context.Background(), "laptop", types.SetValueOptions{TriggerDefaultQuery: true})
	require.Error(t, err)
	assert.True(t, errors.IsDiscarded(err))
	assert.ErrorIs(t, err, errors.ErrGateRejected)

	assert.Equal(t, "", b.Component().State().Value)
	assert.Equal(t, 0, valueChanged)
}

func TestSetValue_LastWriterWins(t *testing.T) {
	registry, _ := newTestStore(t)

	release := make(chan struct{})
	started := make(chan struct{})

	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false
	opts.Hooks.BeforeValueChange = func(_ context.Context, value string) (string, error) {
		if value == "slow" {
			close(started)
			<-release
		}
		return value, nil
	}

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = b.SetValue(context.Background(), "slow", types.SetValueOptions{})
	}()

	<-started
	require.NoError(t, b.SetValue(context.Background(), "fast", types.SetValueOptions{}))

	close(release)
	wg.Wait()

	require.Error(t, slowErr)
	assert.ErrorIs(t, slowErr, errors.ErrSuperseded)
	assert.Equal(t, "fast", b.Component().State().Value, "only the newest intent is applied")
}

func TestDispose_CancelsPendingGate(t *testing.T) {
	registry, _ := newTestStore(t)

	release := make(chan struct{})
	started := make(chan struct{})

	var notified int
	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.TriggerQueryOnInit = false
	opts.Hooks.BeforeValueChange = func(_ context.Context, value string) (string, error) {
		close(started)
		<-release
		return value, nil
	}
	opts.Hooks.OnValueChange = func(_, _ string) { notified++ }

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- b.SetValue(context.Background(), "laptop", types.SetValueOptions{})
	}()

	<-started
	b.Dispose()
	close(release)

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.IsDiscarded(err))
	case <-time.After(time.Second):
		t.Fatal("gate settlement never returned")
	}

	assert.Equal(t, "", b.Component().State().Value)
	assert.Equal(t, 0, notified)
}

func TestDispose_Idempotent(t *testing.T) {
	registry, _ := newTestStore(t)

	b, err := New(registry, DefaultOptions("search-box", types.ComponentConfig{}))
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	require.NotPanics(t, func() {
		b.Dispose()
		b.Dispose()
	})
}

func TestDispose_KeepsComponentByDefault(t *testing.T) {
	registry, _ := newTestStore(t)

	b, err := New(registry, DefaultOptions("search-box", types.ComponentConfig{}))
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))
	require.NoError(t, b.SetValue(context.Background(), "laptop", types.SetValueOptions{}))

	b.Dispose()

	// Accumulated state survives for a future remount.
	comp, ok := registry.Component("search-box")
	require.True(t, ok)
	assert.Equal(t, "laptop", comp.State().Value)
}

func TestDispose_DestroysWhenOwningLifecycle(t *testing.T) {
	registry, _ := newTestStore(t)

	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.DestroyOnDispose = true

	b, err := New(registry, opts)
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))

	b.Dispose()
	assert.Equal(t, 0, registry.Len())
}

func TestSetValue_AfterDispose(t *testing.T) {
	registry, _ := newTestStore(t)

	b, err := New(registry, DefaultOptions("search-box", types.ComponentConfig{}))
	require.NoError(t, err)
	require.NoError(t, b.Mount(context.Background()))
	b.Dispose()

	err = b.SetValue(context.Background(), "laptop", types.SetValueOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDisposed)
}

func TestOnErrorHook(t *testing.T) {
	registry, exec := newTestStore(t)
	queryErr := fmt.Errorf("index unreachable")
	exec.QueryFunc = func(_ context.Context, _ *component.Component) (component.QueryResult, error) {
		return component.QueryResult{}, queryErr
	}

	var seen error
	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.Hooks.OnError = func(_, next error) { seen = next }

	b, err := New(registry, opts)
	require.NoError(t, err)

	// Mount succeeds even though the initial query fails; the error
	// reaches the hook through the error state property.
	require.NoError(t, b.Mount(context.Background()))
	assert.Equal(t, queryErr, seen)
}

func TestHooks_ReadBindingDuringDelivery(t *testing.T) {
	registry, exec := newTestStore(t)
	exec.QueryFunc = func(_ context.Context, _ *component.Component) (component.QueryResult, error) {
		return component.QueryResult{
			Results: []map[string]any{{"id": "p1"}},
			Total:   1,
		}, nil
	}

	// Hooks commonly read the binding's component for the full state
	// snapshot. Both delivery paths, the mount-time initial query and a
	// value change, must leave the binding readable while hooks run.
	var b *Binding
	var statuses []types.RequestStatus
	opts := DefaultOptions("search-box", types.ComponentConfig{})
	opts.Hooks.OnResults = func(_, _ []map[string]any) {
		statuses = append(statuses, b.Component().State().RequestStatus)
	}

	b, err := New(registry, opts)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		if err := b.Mount(context.Background()); err != nil {
			done <- err
			return
		}
		done <- b.SetValue(context.Background(), "laptop", types.SetValueOptions{TriggerDefaultQuery: true})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("delivery blocked a hook reading the binding")
	}
	assert.Len(t, statuses, 2, "results delivered for initial query and value change")
}
