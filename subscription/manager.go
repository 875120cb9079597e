// Package subscription implements interest-filtered change notification for
// search components.
//
// A Manager owns the (listener, interest-set) pairs attached to one
// component. Notifications arrive as batches of ChangeRecords from the
// store-side mutation path; each attached listener whose interest-set
// intersects the batch is invoked synchronously, in subscription order,
// exactly once per batch. Delivery iterates a snapshot of the listener
// list, so a listener removed during delivery neither fires again in the
// same batch nor breaks the loop.
package subscription

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360/searchbind/types"
)

// Listener receives one notification batch. All ChangeRecords of a single
// state mutation are delivered together.
type Listener func(batch []types.ChangeRecord)

// Token identifies one listener registration.
type Token string

type entry struct {
	token     Token
	listener  Listener
	interests map[types.Property]struct{} // nil means every change
	removed   bool
}

// Manager holds the subscriptions of exactly one component. It is owned by
// that component and never escapes it. All calls happen on the UI's single
// logical goroutine; ordering is enforced by call order.
type Manager struct {
	entries []*entry
	byToken map[Token]*entry
	closed  bool
	logger  *slog.Logger
}

// NewManager creates an empty subscription manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		byToken: make(map[Token]*entry),
		logger:  logger,
	}
}

// Subscribe registers a listener. With no interests the listener fires on
// every notification; otherwise only when at least one ChangeRecord of the
// batch names an interesting property.
func (m *Manager) Subscribe(listener Listener, interests ...types.Property) Token {
	token := Token(uuid.NewString())
	e := &entry{token: token, listener: listener}
	if len(interests) > 0 {
		e.interests = make(map[types.Property]struct{}, len(interests))
		for _, p := range interests {
			e.interests[p] = struct{}{}
		}
	}

	m.entries = append(m.entries, e)
	m.byToken[token] = e
	return token
}

// Unsubscribe removes exactly one listener registration. It reports whether
// a registration was removed; a second call with the same token is a no-op.
func (m *Manager) Unsubscribe(token Token) bool {
	if m.closed {
		// A view outlived its component. Surface it in the log instead of
		// failing silently; the caller sees false.
		m.logger.Warn("unsubscribe after component unregistered", "token", string(token))
		return false
	}

	e, ok := m.byToken[token]
	if !ok {
		return false
	}

	e.removed = true
	delete(m.byToken, token)
	for i, cur := range m.entries {
		if cur == e {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	return true
}

// Notify delivers one batch to every matching listener. Listeners run
// synchronously in subscription order, once per batch regardless of how
// many properties in the batch match. Notify on a closed manager is a
// defined no-op.
func (m *Manager) Notify(batch []types.ChangeRecord) {
	if m.closed || len(batch) == 0 || len(m.entries) == 0 {
		return
	}

	// Snapshot first: listeners may subscribe or unsubscribe during delivery.
	snapshot := make([]*entry, len(m.entries))
	copy(snapshot, m.entries)

	for _, e := range snapshot {
		if e.removed {
			continue
		}
		if !matches(e.interests, batch) {
			continue
		}
		e.listener(batch)
	}
}

// Close invalidates every subscription. Called when the owning component is
// unregistered; subsequent Notify calls deliver nothing.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, e := range m.entries {
		e.removed = true
	}
	m.entries = nil
	m.byToken = make(map[Token]*entry)
}

// Closed reports whether the manager has been invalidated.
func (m *Manager) Closed() bool {
	return m.closed
}

// Len returns the number of live subscriptions.
func (m *Manager) Len() int {
	return len(m.entries)
}

func matches(interests map[types.Property]struct{}, batch []types.ChangeRecord) bool {
	if interests == nil {
		return true
	}
	for _, record := range batch {
		if _, ok := interests[record.Property]; ok {
			return true
		}
	}
	return false
}
