package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the session window applied when no TTL is configured.
const DefaultTTL = 30 * time.Second

// Manager defines a public type used by goGate APIs.
//
// Manager instances are intended to be configured during initialization and
// then treated as immutable. All methods are safe for concurrent use as long
// as callers do not share a single *State across goroutines without their
// own coordination; concurrent renewals of the same user converge
// last-write-wins.
type Manager struct {
	ttl time.Duration
	now func() time.Time
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager returns a Manager whose sessions live for ttl after their most
// recent use. A non-positive ttl falls back to [DefaultTTL].
func NewManager(ttl time.Duration) *Manager {
	return NewManagerWithClock(ttl, nil)
}

// NewManagerWithClock is NewManager with an injectable clock, for tests and
// callers that need deterministic deadlines. A nil now uses the UTC wall
// clock.
func NewManagerWithClock(ttl time.Duration, now func() time.Time) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Manager{ttl: ttl, now: now}
}

// TTL reports the configured session window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start transitions st to Active with a fresh token and a deadline one TTL
// from now, and returns the new token.
//
// Any prior token is overwritten outright: a new login invalidates the
// previous session, so a user holds at most one valid token at a time.
// Token values are version-4 UUIDs; uniqueness across users is probabilistic
// by construction and not re-checked against the store.
func (m *Manager) Start(st *State) string {
	st.Token = uuid.NewString()
	st.ExpiresAt = m.now().UTC().Add(m.ttl)
	return st.Token
}

// Renew pushes the deadline of an active session forward by one TTL without
// changing the token (sliding expiration). A continuously active client
// never logs out; an idle one expires TTL after its last renewed request.
//
// Renew on a NoSession state is a no-op.
func (m *Manager) Renew(st *State) {
	if !st.Active() {
		return
	}
	st.ExpiresAt = m.now().UTC().Add(m.ttl)
}

// End transitions st to NoSession, clearing token and deadline.
func (m *Manager) End(st *State) {
	st.Token = ""
	st.ExpiresAt = time.Time{}
}

// Live reports whether st holds a token whose deadline is still in the
// future. A session is stale from the deadline instant onward (now >=
// ExpiresAt is not live).
func (m *Manager) Live(st State) bool {
	if !st.Active() {
		return false
	}
	return m.now().UTC().Before(st.ExpiresAt)
}
