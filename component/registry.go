package component

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/metric"
	"github.com/c360/searchbind/store"
	"github.com/c360/searchbind/types"
)

// MaxIDLength bounds component identifiers.
const MaxIDLength = 256

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Executor is the store-side query executor. Required.
	Executor Executor
	// Logger receives structured registry and component logs.
	// Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives binding-layer instrumentation. Optional.
	Metrics *metric.Metrics
}

// Registry is the single owner of component identity and lifetime: a
// process-wide map from component id to the one live Component instance.
// It implements store.Store.
//
// Registration is guarded so that concurrently-mounting views racing on the
// same id still observe exactly one instance. Everything downstream of
// registration (delivery, lifecycle, state) stays on the UI goroutine.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Component
	exec       Executor
	logger     *slog.Logger
	metrics    *metric.Metrics
}

var _ store.Store = (*Registry)(nil)

// NewRegistry creates an empty component registry.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	if cfg.Executor == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Registry", "NewRegistry", "executor validation")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Registry{
		components: make(map[string]*Component),
		exec:       cfg.Executor,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}, nil
}

// Register returns the existing component for id after refreshing its
// configuration, or constructs and stores a new one. Idempotent: repeated
// calls with the same id always return the same instance, and re-registering
// never discards accumulated observable state.
func (r *Registry) Register(id string, cfg types.ComponentConfig) (store.Component, error) {
	if err := validateID(id); err != nil {
		return nil, errors.Wrap(err, "Registry", "Register", "id validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.components[id]; ok {
		// Merge the raw config before validating so fields the caller left
		// unset keep their current values. Validating first would fill in
		// defaults that Merge cannot tell apart from explicit settings.
		merged := existing.cfg.Merge(cfg)
		if err := merged.Validate(); err != nil {
			return nil, errors.Wrap(err, "Registry", "Register", "config validation")
		}
		existing.cfg = merged
		r.metrics.RecordRegistration(id, "reused")
		r.logger.Debug("component re-registered", "component", id)
		return existing, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Registry", "Register", "config validation")
	}

	comp := newComponent(id, cfg, r)
	r.components[id] = comp
	r.metrics.RecordRegistration(id, "created")
	r.logger.Debug("component registered", "component", id, "index", cfg.Index)
	return comp, nil
}

// Unregister removes the component, first invalidating every subscription
// still attached to it. No-op if the id is absent.
func (r *Registry) Unregister(id string) {
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	comp, ok := r.components[id]
	if !ok {
		return
	}

	comp.invalidate()
	delete(r.components, id)
	r.metrics.RecordUnregistration(id)
	r.logger.Debug("component unregistered", "component", id)
}

// Component looks up a live component without creating one. Non-owning
// consumers use this and tolerate absence.
func (r *Registry) Component(id string) (store.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.components[id]
	if !ok {
		return nil, false
	}
	return comp, true
}

// Lookup is Component with a concrete return type, for store-side callers.
func (r *Registry) Lookup(id string) (*Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.components[id]
	return comp, ok
}

// Len returns the number of live components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// triggerDependents re-runs the default query of every component whose
// react graph references the changed component. Query errors surface
// through each dependent's own error state, never to the caller.
func (r *Registry) triggerDependents(ctx context.Context, id string) {
	r.mu.RLock()
	var dependents []*Component
	for _, comp := range r.components {
		if comp.id == id {
			continue
		}
		if comp.cfg.React.DependsOn(id) {
			dependents = append(dependents, comp)
		}
	}
	r.mu.RUnlock()

	for _, dep := range dependents {
		r.metrics.RecordQueryTrigger(dep.id, "custom")
		dep.publish(dep.markPending())
		if err := dep.runDefaultQuery(ctx); err != nil {
			r.logger.Warn("reactive query failed", "component", dep.id, "source", id, "error", err)
		}
	}
}

// validateID checks a component identifier: non-empty, bounded, and free of
// control characters.
func validateID(id string) error {
	if id == "" {
		return errors.WrapInvalid(errors.ErrMissingID, "Registry", "validateID", "empty id")
	}
	if len(id) > MaxIDLength {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "validateID", "id too long")
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "validateID",
				fmt.Sprintf("control character %q in id", r))
		}
	}
	return nil
}
