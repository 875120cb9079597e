// Package store defines the contract the binding layer requires from the
// shared reactive search store, plus an explicitly-initialized process-wide
// accessor for the common single-store case.
//
// The store owns query building, network transport and result computation.
// The binding layer only reads component state and forwards intents; every
// observable state mutation happens behind this contract and is reported
// back through subscription notifications.
package store

import (
	"context"
	"sync"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/subscription"
	"github.com/c360/searchbind/types"
)

// Component is the handle to one live search component inside the store.
// A component is shared by reference across every subscribed view; exactly
// one live component exists per id.
type Component interface {
	// ID returns the component's unique identifier.
	ID() string
	// Config returns the component's current configuration snapshot.
	Config() types.ComponentConfig
	// State returns a copy of the component's observable state.
	State() types.ComponentState

	// Subscribe attaches a change listener. An empty interest-set means
	// notify on every change.
	Subscribe(listener subscription.Listener, interests ...types.Property) subscription.Token
	// Unsubscribe removes one listener registration. Safe to call more
	// than once; returns an error only after the component was
	// unregistered.
	Unsubscribe(token subscription.Token) error

	// SetValue updates the component's value and runs the queries the
	// options ask for. This is a store-level operation: it mutates
	// observable state and notifies subscribers.
	SetValue(ctx context.Context, value string, opts types.SetValueOptions) error
	// TriggerDefaultQuery executes the component's own query.
	TriggerDefaultQuery(ctx context.Context) error
	// RecentSearches fetches the user's recent search terms and refreshes
	// the recentSearches state property.
	RecentSearches(ctx context.Context) ([]types.Suggestion, error)
	// RecordClick reports a click-analytics event. Callers must treat
	// failures as best-effort and swallow them.
	RecordClick(ctx context.Context, clicks map[string]int, opts types.ClickOptions) error
}

// Store is the registry surface of the search store.
type Store interface {
	// Register returns the existing component for id after refreshing its
	// configuration, or creates a new one. Idempotent under repeated calls
	// with the same id from concurrently-mounting views.
	Register(id string, cfg types.ComponentConfig) (Component, error)
	// Unregister removes the component and invalidates its subscriptions.
	// No-op if the id is absent.
	Unregister(id string)
	// Component looks up a live component without creating one.
	Component(id string) (Component, bool)
}

// The process-wide default store. There is no implicit tree-position
// lookup: an application that wants ambient access calls SetDefault once
// during startup and ResetDefault during teardown (tests included).
var (
	defaultMu    sync.RWMutex
	defaultStore Store
)

// SetDefault installs the process-wide store. Call once at startup before
// any binding is created without an explicit store.
func SetDefault(s Store) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = s
}

// Default returns the process-wide store. It fails with a typed
// not-configured error when SetDefault was never called, rather than a
// generic lookup panic.
func Default() (Store, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultStore == nil {
		return nil, errors.WrapInvalid(errors.ErrNotConfigured, "Store", "Default", "default store lookup")
	}
	return defaultStore, nil
}

// ResetDefault clears the process-wide store. Intended for teardown and
// test isolation.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = nil
}
