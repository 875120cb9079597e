package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/subscription"
	"github.com/c360/searchbind/types"
)

type stubStore struct{}

func (stubStore) Register(_ string, _ types.ComponentConfig) (Component, error) { return nil, nil }
func (stubStore) Unregister(_ string)                                           {}
func (stubStore) Component(_ string) (Component, bool)                          { return nil, false }

func TestDefault_NotConfigured(t *testing.T) {
	ResetDefault()

	_, err := Default()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotConfigured)
	assert.True(t, errors.IsInvalid(err))
}

func TestDefault_SetAndReset(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	s := stubStore{}
	SetDefault(s)

	got, err := Default()
	require.NoError(t, err)
	assert.Equal(t, s, got)

	ResetDefault()
	_, err = Default()
	require.Error(t, err)
}

// Compile-time contract sanity: the interfaces stay implementable outside
// the module.
var _ Store = stubStore{}

type stubComponent struct{}

func (stubComponent) ID() string                        { return "stub" }
func (stubComponent) Config() types.ComponentConfig     { return types.ComponentConfig{} }
func (stubComponent) State() types.ComponentState       { return types.ComponentState{} }
func (stubComponent) Subscribe(_ subscription.Listener, _ ...types.Property) subscription.Token {
	return ""
}
func (stubComponent) Unsubscribe(_ subscription.Token) error { return nil }
func (stubComponent) SetValue(_ context.Context, _ string, _ types.SetValueOptions) error {
	return nil
}
func (stubComponent) TriggerDefaultQuery(_ context.Context) error { return nil }
func (stubComponent) RecentSearches(_ context.Context) ([]types.Suggestion, error) {
	return nil, nil
}
func (stubComponent) RecordClick(_ context.Context, _ map[string]int, _ types.ClickOptions) error {
	return nil
}

var _ Component = stubComponent{}
