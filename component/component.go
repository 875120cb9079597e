package component

import (
	"context"
	"log/slog"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/metric"
	"github.com/c360/searchbind/subscription"
	"github.com/c360/searchbind/types"
)

// Component is one live search-widget state object. It holds a validated
// configuration snapshot and the observable state (value, results,
// aggregations, request status, recent searches, suggestions) shared by
// reference with every subscribed view.
//
// Observable state is mutated only by store-level operations (SetValue,
// query execution, recent-search fetch); the binding layer reads snapshots
// and forwards intents. All methods must be called from the UI's single
// logical goroutine; ordering is enforced by call order, not locks.
type Component struct {
	id       string
	cfg      types.ComponentConfig
	state    types.ComponentState
	subs     *subscription.Manager
	exec     Executor
	registry *Registry
	logger   *slog.Logger
	metrics  *metric.Metrics

	unregistered bool
}

func newComponent(id string, cfg types.ComponentConfig, r *Registry) *Component {
	return &Component{
		id:       id,
		cfg:      cfg,
		state:    types.ComponentState{RequestStatus: types.StatusInactive},
		subs:     subscription.NewManager(r.logger),
		exec:     r.exec,
		registry: r,
		logger:   r.logger.With("component", id),
		metrics:  r.metrics,
	}
}

// ID returns the component's unique identifier.
func (c *Component) ID() string {
	return c.id
}

// Config returns the component's current configuration snapshot.
func (c *Component) Config() types.ComponentConfig {
	return c.cfg
}

// State returns a copy of the observable state. The slices inside are
// immutable snapshots produced by the store and must not be modified.
func (c *Component) State() types.ComponentState {
	return c.state
}

// Subscribe attaches a change listener with an optional interest-set.
func (c *Component) Subscribe(listener subscription.Listener, interests ...types.Property) subscription.Token {
	token := c.subs.Subscribe(listener, interests...)
	c.metrics.SetSubscriptions(c.id, c.subs.Len())
	return token
}

// Unsubscribe removes one listener registration. A second call with the
// same token is a no-op; a call after the component was unregistered
// returns a wrapped ErrUnregistered.
func (c *Component) Unsubscribe(token subscription.Token) error {
	if c.subs.Closed() {
		return errors.WrapInvalid(errors.ErrUnregistered, "Component", "Unsubscribe", "subscription removal")
	}
	c.subs.Unsubscribe(token)
	c.metrics.SetSubscriptions(c.id, c.subs.Len())
	return nil
}

// SetValue updates the component's value and runs the queries the options
// ask for. A zero SetValueOptions updates the value without touching any
// query.
func (c *Component) SetValue(ctx context.Context, value string, opts types.SetValueOptions) error {
	if c.unregistered {
		return errors.WrapInvalid(errors.ErrUnregistered, "Component", "SetValue", "component lookup")
	}

	prev := c.state.Value
	c.state.Value = value

	batch := []types.ChangeRecord{{Property: types.PropertyValue, Prev: prev, Next: value}}
	if opts.TriggerDefaultQuery {
		batch = append(batch, c.markPending()...)
	}
	c.publish(batch)

	var err error
	if opts.TriggerDefaultQuery {
		c.metrics.RecordQueryTrigger(c.id, "default")
		err = c.runDefaultQuery(ctx)
	}
	if opts.TriggerCustomQuery {
		c.registry.triggerDependents(ctx, c.id)
	}
	return err
}

// TriggerDefaultQuery executes the component's own query and applies the
// outcome to observable state.
func (c *Component) TriggerDefaultQuery(ctx context.Context) error {
	if c.unregistered {
		return errors.WrapInvalid(errors.ErrUnregistered, "Component", "TriggerDefaultQuery", "component lookup")
	}

	c.metrics.RecordQueryTrigger(c.id, "default")
	c.publish(c.markPending())
	return c.runDefaultQuery(ctx)
}

// RecentSearches fetches the user's recent search terms, refreshes the
// recentSearches state property and returns the list.
func (c *Component) RecentSearches(ctx context.Context) ([]types.Suggestion, error) {
	if c.unregistered {
		return nil, errors.WrapInvalid(errors.ErrUnregistered, "Component", "RecentSearches", "component lookup")
	}

	fetched, err := c.exec.RecentSearches(ctx, c)
	if err != nil {
		return nil, errors.WrapStore(err, "Component", "RecentSearches", "recent search fetch")
	}

	recent := dedupeByValue(fetched)
	prev := c.state.RecentSearches
	c.state.RecentSearches = recent
	c.publish([]types.ChangeRecord{{Property: types.PropertyRecentSearches, Prev: prev, Next: recent}})
	return recent, nil
}

// RecordClick forwards a click-analytics event to the store. Failures are
// returned for the caller to swallow at the boundary.
func (c *Component) RecordClick(ctx context.Context, clicks map[string]int, opts types.ClickOptions) error {
	if c.unregistered {
		return errors.WrapInvalid(errors.ErrUnregistered, "Component", "RecordClick", "component lookup")
	}
	return c.exec.RecordClick(ctx, c, clicks, opts)
}

// runDefaultQuery executes the query synchronously and publishes the
// completion batch: results, aggregations, suggestions, executed query text
// and request status change together in one notification.
func (c *Component) runDefaultQuery(ctx context.Context) error {
	result, err := c.exec.ExecuteQuery(ctx, c)
	if err != nil {
		prevErr := c.state.Err
		prevStatus := c.state.RequestStatus
		c.state.Err = err
		c.state.RequestStatus = types.StatusError
		c.publish([]types.ChangeRecord{
			{Property: types.PropertyError, Prev: prevErr, Next: err},
			{Property: types.PropertyRequestStatus, Prev: prevStatus, Next: types.StatusError},
		})
		return errors.WrapStore(err, "Component", "runDefaultQuery", "query execution")
	}

	batch := make([]types.ChangeRecord, 0, 6)

	prevResults := c.state.Results
	c.state.Results = result.Results
	c.state.Total = result.Total
	batch = append(batch, types.ChangeRecord{Property: types.PropertyResults, Prev: prevResults, Next: result.Results})

	if result.AggregationData != nil {
		prevAggs := c.state.AggregationData
		c.state.AggregationData = result.AggregationData
		batch = append(batch, types.ChangeRecord{
			Property: types.PropertyAggregations, Prev: prevAggs, Next: result.AggregationData,
		})
	}

	prevSuggestions := c.state.Suggestions
	c.state.Suggestions = result.Suggestions
	batch = append(batch, types.ChangeRecord{
		Property: types.PropertySuggestions, Prev: prevSuggestions, Next: result.Suggestions,
	})

	if c.state.Query != c.state.Value {
		prevQuery := c.state.Query
		c.state.Query = c.state.Value
		batch = append(batch, types.ChangeRecord{Property: types.PropertyQuery, Prev: prevQuery, Next: c.state.Query})
	}

	if c.state.Err != nil {
		prevErr := c.state.Err
		c.state.Err = nil
		batch = append(batch, types.ChangeRecord{Property: types.PropertyError, Prev: prevErr, Next: nil})
	}

	prevStatus := c.state.RequestStatus
	c.state.RequestStatus = types.StatusSuccess
	batch = append(batch, types.ChangeRecord{
		Property: types.PropertyRequestStatus, Prev: prevStatus, Next: types.StatusSuccess,
	})

	c.publish(batch)
	return nil
}

// markPending moves the request status to PENDING and returns the change,
// or nothing when a request is already in flight.
func (c *Component) markPending() []types.ChangeRecord {
	if c.state.RequestStatus == types.StatusPending {
		return nil
	}
	prev := c.state.RequestStatus
	c.state.RequestStatus = types.StatusPending
	return []types.ChangeRecord{{Property: types.PropertyRequestStatus, Prev: prev, Next: types.StatusPending}}
}

// publish delivers one notification batch. Publishing on an unregistered
// component is a defined no-op.
func (c *Component) publish(batch []types.ChangeRecord) {
	if c.unregistered || len(batch) == 0 {
		return
	}
	c.subs.Notify(batch)
	c.metrics.RecordNotification(c.id)
}

// invalidate detaches the component from delivery. Called by the registry
// while unregistering; any notify or subscribe racing the removal becomes
// a no-op instead of a crash.
func (c *Component) invalidate() {
	c.unregistered = true
	c.subs.Close()
	c.metrics.SetSubscriptions(c.id, 0)
}

// dedupeByValue drops later entries whose value repeats an earlier one,
// preserving order. Some stores echo the current input as its own recent
// search; rendering it twice reads as a bug.
func dedupeByValue(suggestions []types.Suggestion) []types.Suggestion {
	if len(suggestions) < 2 {
		return suggestions
	}
	seen := make(map[string]struct{}, len(suggestions))
	out := suggestions[:0:0]
	for _, s := range suggestions {
		if _, dup := seen[s.Value]; dup {
			continue
		}
		seen[s.Value] = struct{}{}
		out = append(out, s)
	}
	return out
}
