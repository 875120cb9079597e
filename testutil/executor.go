// Package testutil provides fakes for the binding layer's tests: a
// scriptable store-side executor and a listener recorder.
package testutil

import (
	"context"
	"sync"

	"github.com/c360/searchbind/component"
	"github.com/c360/searchbind/types"
)

// ClickRecord captures one RecordClick call for verification.
type ClickRecord struct {
	ComponentID string
	Clicks      map[string]int
	Options     types.ClickOptions
}

// FakeExecutor is a scriptable component.Executor. Zero value behaves like
// an empty store: queries succeed with no results, recent searches are
// empty, clicks are accepted.
type FakeExecutor struct {
	mu sync.Mutex

	// Override points; nil falls back to the default behavior.
	QueryFunc  func(ctx context.Context, comp *component.Component) (component.QueryResult, error)
	RecentFunc func(ctx context.Context, comp *component.Component) ([]types.Suggestion, error)
	ClickFunc  func(ctx context.Context, comp *component.Component, clicks map[string]int, opts types.ClickOptions) error

	// Call counts for verification
	QueryCalls  int
	RecentCalls int
	ClickCalls  int

	// Clicks records every RecordClick call in order.
	Clicks []ClickRecord
}

// NewFakeExecutor creates a fake executor with default empty behavior.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

// ExecuteQuery implements component.Executor.
func (f *FakeExecutor) ExecuteQuery(ctx context.Context, comp *component.Component) (component.QueryResult, error) {
	f.mu.Lock()
	f.QueryCalls++
	fn := f.QueryFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, comp)
	}
	return component.QueryResult{}, nil
}

// RecentSearches implements component.Executor.
func (f *FakeExecutor) RecentSearches(ctx context.Context, comp *component.Component) ([]types.Suggestion, error) {
	f.mu.Lock()
	f.RecentCalls++
	fn := f.RecentFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, comp)
	}
	return nil, nil
}

// RecordClick implements component.Executor.
func (f *FakeExecutor) RecordClick(
	ctx context.Context, comp *component.Component, clicks map[string]int, opts types.ClickOptions,
) error {
	f.mu.Lock()
	f.ClickCalls++
	f.Clicks = append(f.Clicks, ClickRecord{ComponentID: comp.ID(), Clicks: clicks, Options: opts})
	fn := f.ClickFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, comp, clicks, opts)
	}
	return nil
}

// QueryCallCount returns the number of ExecuteQuery calls so far.
func (f *FakeExecutor) QueryCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.QueryCalls
}
