// Package binding sequences one view's attachment to a search component:
// mount, optional initial query, gated value changes, dispose.
//
// # Lifecycle
//
// A Binding moves through Unmounted → Mounted → Disposed, never backwards.
// Mount registers or reuses the component, attaches an interest-filtered
// subscription and fires the default query at most once. Re-renders call
// nothing here; only a real mount event does.
//
// # Value gating
//
// When a BeforeValueChange gate is configured, every value intent runs it
// before anything reaches the store. The gate may transform the value or
// veto it by returning an error. Intents are last-writer-wins: a gate that
// settles after a newer intent has started, or after the binding was
// disposed, is discarded without touching component state.
//
// # Dispose
//
// Dispose always detaches the subscription. The component itself is
// unregistered only when the binding was created with DestroyOnDispose;
// otherwise its accumulated value, results and filters stay alive for
// sibling widgets and future remounts.
package binding
