// Package searchbind is a UI-binding layer connecting search widgets to a
// shared reactive search-state store.
//
// # Scope
//
// The store (query building, network transport, result and aggregation
// computation) is an external collaborator behind the component.Executor
// and store.Store contracts. This module owns everything between the store
// and the view: component identity and lifetime, interest-filtered change
// subscriptions, mount/gate/dispose sequencing, and suggestion merging.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│            binding                  │  Mount → initial query →
//	│  (lifecycle, value gating)          │  gated value changes → dispose
//	└─────────────────────────────────────┘
//	           ↓ registers with
//	┌─────────────────────────────────────┐
//	│      component.Registry             │  One live Component per id,
//	│  (identity, lifetime, config)       │  idempotent re-registration
//	└─────────────────────────────────────┘
//	           ↓ state changes via
//	┌─────────────────────────────────────┐
//	│     subscription.Manager            │  Interest-filtered batches,
//	│  (notify, interest-sets)            │  once per batch per listener
//	└─────────────────────────────────────┘
//	           ↓ rendered through
//	┌─────────────────────────────────────┐
//	│      suggestion.Aggregator          │  recent | matched + popular,
//	│  (merge, truncate, select)          │  size-capped, click analytics
//	└─────────────────────────────────────┘
//
// # Threading model
//
// The binding layer is cooperative: registry mutation, notification
// delivery and lifecycle transitions happen on the UI's single logical
// goroutine, ordered by call order. The two suspension points, the
// before-value-change gate and store-side query execution, are sequenced
// explicitly: gates settle last-writer-wins, queries complete through
// subscription notifications.
//
// Packages:
//   - types: shared data model (properties, change records, suggestions, config)
//   - errors: classified error handling
//   - store: the store contract and process-wide accessor
//   - subscription: interest-filtered notification delivery
//   - component: registry and component state objects
//   - binding: view lifecycle controller
//   - suggestion: suggestion list aggregation and selection
//   - metric: Prometheus instrumentation
package searchbind
