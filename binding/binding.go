package binding

import (
	"context"
	"log/slog"
	"sync"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/metric"
	"github.com/c360/searchbind/store"
	"github.com/c360/searchbind/subscription"
	"github.com/c360/searchbind/types"
)

// Gate is an asynchronous hook that can veto or transform a pending value
// change before it is forwarded to the store. Returning an error discards
// the change; the returned string is the (possibly transformed) value.
type Gate func(ctx context.Context, value string) (string, error)

// Hooks are the view's per-property callbacks. Each fires exactly when the
// corresponding ChangeRecord is delivered, with (previous, next) values.
type Hooks struct {
	BeforeValueChange     Gate
	OnValueChange         func(prev, next string)
	OnQueryChange         func(prev, next string)
	OnResults             func(prev, next []map[string]any)
	OnAggregationData     func(prev, next map[string]any)
	OnError               func(prev, next error)
	OnRequestStatusChange func(prev, next types.RequestStatus)
}

// Options bundles everything a view declares when binding to a component.
type Options struct {
	// ID identifies the component. Required.
	ID string
	// Config is the component's query-shaping configuration, applied (or
	// merged into the existing component) at mount.
	Config types.ComponentConfig
	// SubscribeTo is the interest-set for this view's subscription. Empty
	// means every change.
	SubscribeTo []types.Property

	// TriggerQueryOnInit fires the component's default query once per
	// mount. Never re-fires on re-render.
	TriggerQueryOnInit bool
	// ShouldListenForChanges attaches the change subscription on mount.
	ShouldListenForChanges bool
	// DestroyOnDispose unregisters the component when this binding is
	// disposed. Leave false to keep accumulated state alive for other
	// widgets or a future remount.
	DestroyOnDispose bool

	Hooks Hooks

	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives gate-outcome instrumentation. Optional.
	Metrics *metric.Metrics
}

// DefaultOptions returns Options with the usual lifecycle flags: trigger
// the initial query, listen for changes, leave the component alive on
// dispose.
func DefaultOptions(id string, cfg types.ComponentConfig) Options {
	return Options{
		ID:                     id,
		Config:                 cfg,
		TriggerQueryOnInit:     true,
		ShouldListenForChanges: true,
	}
}

type lifecycleState int

const (
	stateUnmounted lifecycleState = iota
	stateMounted
	stateDisposed
)

// Binding sequences one view-to-component attachment through
// Unmounted → Mounted → Disposed. It registers or reuses the component,
// attaches the filtered subscription, decides when the default query runs,
// gates value intents, and detaches on dispose.
type Binding struct {
	store store.Store
	opts  Options

	comp       store.Component
	token      subscription.Token
	subscribed bool
	state      lifecycleState

	// mu guards lifecycle state and the sequence bookkeeping. It is never
	// held across store calls that deliver notifications, so hooks fired
	// during delivery can read the binding. forwardMu serializes those
	// store calls; the sequence check runs under both, so settlements
	// commit in intent order. intentSeq hands out one sequence number per
	// value intent; a gate that settles after a newer intent has started
	// is discarded.
	mu        sync.Mutex
	forwardMu sync.Mutex
	intentSeq uint64
	latestSeq uint64
}

// New creates a binding against an explicit store. Pass nil to use the
// process-wide store installed with store.SetDefault; if none is installed
// this fails with a typed not-configured error.
func New(s store.Store, opts Options) (*Binding, error) {
	if opts.ID == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingID, "Binding", "New", "id validation")
	}
	if s == nil {
		var err error
		if s, err = store.Default(); err != nil {
			return nil, errors.Wrap(err, "Binding", "New", "store lookup")
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Binding{store: s, opts: opts}, nil
}

// Mount registers or reuses the component, attaches the subscription and,
// when configured, fires the default query. Exactly once per binding:
// calling Mount on a mounted or disposed binding is an error, which keeps
// re-renders from re-subscribing or re-triggering the query.
func (b *Binding) Mount(ctx context.Context) error {
	b.mu.Lock()

	switch b.state {
	case stateMounted:
		b.mu.Unlock()
		return errors.WrapInvalid(errors.ErrAlreadyMounted, "Binding", "Mount", "state check")
	case stateDisposed:
		b.mu.Unlock()
		return errors.WrapInvalid(errors.ErrDisposed, "Binding", "Mount", "state check")
	}

	comp, err := b.store.Register(b.opts.ID, b.opts.Config)
	if err != nil {
		b.mu.Unlock()
		return errors.Wrap(err, "Binding", "Mount", "component registration")
	}
	b.comp = comp

	if b.opts.ShouldListenForChanges {
		b.token = comp.Subscribe(b.dispatch, b.opts.SubscribeTo...)
		b.subscribed = true
	}
	b.state = stateMounted
	b.mu.Unlock()

	if b.opts.TriggerQueryOnInit {
		// Delivery runs the view's hooks; mu must be free so they can
		// read the binding.
		b.forwardMu.Lock()
		err := comp.TriggerDefaultQuery(ctx)
		b.forwardMu.Unlock()
		if err != nil {
			// The failure already reached the error state property and
			// the OnError hook; the mount itself stands.
			b.opts.Logger.Warn("initial query failed", "component", b.opts.ID, "error", err)
		}
	}

	return nil
}

// Component returns the bound component, or nil before Mount.
func (b *Binding) Component() store.Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.comp
}

// SetValue runs the before-change gate, then forwards the (possibly
// transformed) value to the store with the given query-triggering flags.
//
// Supersession is last-writer-wins: each intent takes a sequence number
// before its gate runs, and a gate that settles after a newer intent has
// begun is discarded: its value never reaches the store. A gate that
// settles after Dispose is discarded the same way.
func (b *Binding) SetValue(ctx context.Context, value string, opts types.SetValueOptions) error {
	b.mu.Lock()
	if b.state != stateMounted {
		b.mu.Unlock()
		return errors.WrapInvalid(errors.ErrDisposed, "Binding", "SetValue", "state check")
	}
	comp := b.comp
	b.intentSeq++
	seq := b.intentSeq
	b.latestSeq = seq
	b.mu.Unlock()

	forwarded := value
	if gate := b.opts.Hooks.BeforeValueChange; gate != nil {
		transformed, err := gate(ctx, value)
		if err != nil {
			b.opts.Metrics.RecordGateOutcome(b.opts.ID, metric.GateRejected)
			return errors.WrapDiscarded(errors.ErrGateRejected, "Binding", "SetValue", "before-change gate")
		}
		forwarded = transformed
	}

	// forwardMu is taken before the sequence check so a stale settlement
	// cannot slip its forward in after a newer one has committed.
	b.forwardMu.Lock()
	b.mu.Lock()
	if b.state != stateMounted {
		b.mu.Unlock()
		b.forwardMu.Unlock()
		b.opts.Metrics.RecordGateOutcome(b.opts.ID, metric.GateSuperseded)
		return errors.WrapDiscarded(errors.ErrDisposed, "Binding", "SetValue", "post-gate state check")
	}
	if seq != b.latestSeq {
		b.mu.Unlock()
		b.forwardMu.Unlock()
		b.opts.Metrics.RecordGateOutcome(b.opts.ID, metric.GateSuperseded)
		return errors.WrapDiscarded(errors.ErrSuperseded, "Binding", "SetValue", "intent ordering")
	}
	b.mu.Unlock()
	b.opts.Metrics.RecordGateOutcome(b.opts.ID, metric.GateAccepted)
	// Forwarding holds only forwardMu; hooks fired during delivery can
	// read the binding but must not call SetValue from inside a
	// notification.
	err := comp.SetValue(ctx, forwarded, opts)
	b.forwardMu.Unlock()

	if err != nil {
		return errors.Wrap(err, "Binding", "SetValue", "value forwarding")
	}
	return nil
}

// Dispose unsubscribes unconditionally and, when the binding owns its
// component's lifecycle, unregisters it. Effective against an in-flight
// gate: a settlement arriving later finds the binding disposed and is
// discarded. Safe to call more than once.
func (b *Binding) Dispose() {
	b.mu.Lock()
	if b.state == stateDisposed {
		b.mu.Unlock()
		return
	}
	comp := b.comp
	token := b.token
	subscribed := b.subscribed
	destroy := b.opts.DestroyOnDispose
	b.state = stateDisposed
	b.subscribed = false
	b.mu.Unlock()

	if comp == nil {
		return
	}
	if subscribed {
		if err := comp.Unsubscribe(token); err != nil {
			b.opts.Logger.Warn("unsubscribe on dispose", "component", b.opts.ID, "error", err)
		}
	}
	if destroy {
		b.store.Unregister(b.opts.ID)
	}
}

// dispatch fans one notification batch out to the view's typed hooks.
func (b *Binding) dispatch(batch []types.ChangeRecord) {
	hooks := b.opts.Hooks
	for _, record := range batch {
		switch record.Property {
		case types.PropertyValue:
			if hooks.OnValueChange != nil {
				hooks.OnValueChange(asString(record.Prev), asString(record.Next))
			}
		case types.PropertyQuery:
			if hooks.OnQueryChange != nil {
				hooks.OnQueryChange(asString(record.Prev), asString(record.Next))
			}
		case types.PropertyResults:
			if hooks.OnResults != nil {
				hooks.OnResults(asResults(record.Prev), asResults(record.Next))
			}
		case types.PropertyAggregations:
			if hooks.OnAggregationData != nil {
				hooks.OnAggregationData(asAggregations(record.Prev), asAggregations(record.Next))
			}
		case types.PropertyError:
			if hooks.OnError != nil {
				hooks.OnError(asError(record.Prev), asError(record.Next))
			}
		case types.PropertyRequestStatus:
			if hooks.OnRequestStatusChange != nil {
				hooks.OnRequestStatusChange(asStatus(record.Prev), asStatus(record.Next))
			}
		}
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asResults(v any) []map[string]any {
	r, _ := v.([]map[string]any)
	return r
}

func asAggregations(v any) map[string]any {
	a, _ := v.(map[string]any)
	return a
}

func asError(v any) error {
	e, _ := v.(error)
	return e
}

func asStatus(v any) types.RequestStatus {
	s, _ := v.(types.RequestStatus)
	return s
}
