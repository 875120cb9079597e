// Package component implements the registry and state objects at the center
// of the binding layer.
//
// # Overview
//
// A Component is one live search-widget state object identified by a unique
// string id. The Registry is the single owner of component identity and
// lifetime: register-or-reuse on mount, explicit unregister on teardown.
// Exactly one live Component exists per id; re-registration refreshes the
// configuration without discarding observable state, which is what lets
// filters and results survive cross-navigation remounts.
//
// # Mutation path
//
// Observable state changes flow in one direction:
//
//	view intent → binding → Component.SetValue / TriggerDefaultQuery
//	            → Executor (store side: query building, transport)
//	            → state applied, ChangeRecords batched
//	            → subscription.Manager.Notify → filtered listeners → view
//
// The binding layer never writes state. Every mutation is a store-level
// operation on the Component, and every mutation publishes exactly one
// notification batch so views re-render at most once per transition.
//
// # Lifetime edge cases
//
// Unregistering invalidates the component's subscriptions first: a notify
// or subscribe that races the removal is a defined no-op, and a view that
// unsubscribes afterwards gets ErrUnregistered instead of silence.
package component
