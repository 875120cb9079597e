package component

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/types"
)

// fakeExecutor lives here rather than in testutil to avoid the import
// cycle; the testutil package imports component.
type fakeExecutor struct {
	mu         sync.Mutex
	queryCalls int
	queryFn    func(ctx context.Context, comp *Component) (QueryResult, error)
	recentFn   func(ctx context.Context, comp *Component) ([]types.Suggestion, error)
	clickFn    func(ctx context.Context, comp *Component, clicks map[string]int, opts types.ClickOptions) error
}

func (f *fakeExecutor) ExecuteQuery(ctx context.Context, comp *Component) (QueryResult, error) {
	f.mu.Lock()
	f.queryCalls++
	fn := f.queryFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, comp)
	}
	return QueryResult{}, nil
}

func (f *fakeExecutor) RecentSearches(ctx context.Context, comp *Component) ([]types.Suggestion, error) {
	if f.recentFn != nil {
		return f.recentFn(ctx, comp)
	}
	return nil, nil
}

func (f *fakeExecutor) RecordClick(
	ctx context.Context, comp *Component, clicks map[string]int, opts types.ClickOptions,
) error {
	if f.clickFn != nil {
		return f.clickFn(ctx, comp, clicks, opts)
	}
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *fakeExecutor) {
	t.Helper()
	exec := &fakeExecutor{}
	registry, err := NewRegistry(RegistryConfig{Executor: exec})
	require.NoError(t, err)
	return registry, exec
}

func TestNewRegistry_RequiresExecutor(t *testing.T) {
	_, err := NewRegistry(RegistryConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestRegistry_RegisterIdentityStable(t *testing.T) {
	registry, _ := newTestRegistry(t)

	first, err := registry.Register("search-box", types.ComponentConfig{Index: "products"})
	require.NoError(t, err)

	second, err := registry.Register("search-box", types.ComponentConfig{Index: "products"})
	require.NoError(t, err)

	assert.Same(t, first.(*Component), second.(*Component))
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_RegisterConcurrent(t *testing.T) {
	registry, _ := newTestRegistry(t)

	const views = 16
	components := make([]*Component, views)

	var wg sync.WaitGroup
	for i := 0; i < views; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			comp, err := registry.Register("shared", types.ComponentConfig{Index: "products"})
			if assert.NoError(t, err) {
				components[i] = comp.(*Component)
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < views; i++ {
		assert.Same(t, components[0], components[i])
	}
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ReRegisterRefreshesConfigKeepsState(t *testing.T) {
	registry, _ := newTestRegistry(t)

	comp, err := registry.Register("search-box", types.ComponentConfig{Index: "products", Size: 5})
	require.NoError(t, err)

	require.NoError(t, comp.SetValue(context.Background(), "laptop", types.SetValueOptions{}))

	refreshed, err := registry.Register("search-box", types.ComponentConfig{Index: "catalog", Size: 7})
	require.NoError(t, err)

	assert.Equal(t, "catalog", refreshed.Config().Index)
	assert.Equal(t, 7, refreshed.Config().Size)
	assert.Equal(t, "laptop", refreshed.State().Value, "observable state survives re-registration")
}

func TestRegistry_ReRegisterUnsetFieldsKeepConfiguredValues(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Register("search-box", types.ComponentConfig{
		Index:       "products",
		Size:        5,
		QueryFormat: types.QueryFormatAnd,
	})
	require.NoError(t, err)

	// A second view mounting against the same component states only what
	// it cares about; defaults must not overwrite the configured values.
	refreshed, err := registry.Register("search-box", types.ComponentConfig{Index: "catalog"})
	require.NoError(t, err)

	assert.Equal(t, "catalog", refreshed.Config().Index)
	assert.Equal(t, 5, refreshed.Config().Size)
	assert.Equal(t, types.QueryFormatAnd, refreshed.Config().QueryFormat)
}

func TestRegistry_ReRegisterInvalidConfigRejected(t *testing.T) {
	registry, _ := newTestRegistry(t)

	comp, err := registry.Register("search-box", types.ComponentConfig{Size: 5})
	require.NoError(t, err)

	_, err = registry.Register("search-box", types.ComponentConfig{QueryFormat: "xor"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Equal(t, 5, comp.Config().Size, "failed refresh leaves config untouched")
}

func TestRegistry_RegisterValidation(t *testing.T) {
	registry, _ := newTestRegistry(t)

	tests := []struct {
		name string
		id   string
		cfg  types.ComponentConfig
	}{
		{name: "empty id", id: "", cfg: types.ComponentConfig{}},
		{name: "control character id", id: "search\x00box", cfg: types.ComponentConfig{}},
		{name: "negative size", id: "ok", cfg: types.ComponentConfig{Size: -1}},
		{name: "bad query format", id: "ok", cfg: types.ComponentConfig{QueryFormat: "xor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Register(tt.id, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_UnregisterAbsentIsNoOp(t *testing.T) {
	registry, _ := newTestRegistry(t)
	require.NotPanics(t, func() { registry.Unregister("ghost") })
	require.NotPanics(t, func() { registry.Unregister("") })
}

func TestRegistry_LookupAbsent(t *testing.T) {
	registry, _ := newTestRegistry(t)

	comp, ok := registry.Component("ghost")
	assert.False(t, ok)
	assert.Nil(t, comp)
}

func TestRegistry_UnregisterInvalidatesSubscriptions(t *testing.T) {
	registry, _ := newTestRegistry(t)

	comp, err := registry.Register("search-box", types.ComponentConfig{})
	require.NoError(t, err)

	fired := 0
	token := comp.Subscribe(func(_ []types.ChangeRecord) { fired++ })

	registry.Unregister("search-box")

	// Any further store-level operation on the stale handle is rejected
	// and notifies nobody.
	err = comp.SetValue(context.Background(), "laptop", types.SetValueOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Equal(t, 0, fired)

	// Unsubscribing after unregistration fails loudly, not silently.
	err = comp.Unsubscribe(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnregistered)
}

func TestRegistry_ReactiveDependents(t *testing.T) {
	registry, exec := newTestRegistry(t)

	_, err := registry.Register("category-filter", types.ComponentConfig{Index: "products"})
	require.NoError(t, err)

	results, err := registry.Register("result-list", types.ComponentConfig{
		Index: "products",
		React: types.ReactDependencies{And: []string{"category-filter"}},
	})
	require.NoError(t, err)

	filter, _ := registry.Lookup("category-filter")
	require.NoError(t, filter.SetValue(context.Background(), "electronics", types.SetValueOptions{
		TriggerCustomQuery: true,
	}))

	assert.Equal(t, 1, exec.queryCalls, "only the dependent re-queries")
	assert.Equal(t, types.StatusSuccess, results.State().RequestStatus)
}
