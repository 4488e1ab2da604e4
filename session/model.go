package session

import "time"

// State defines a public type used by goGate APIs.
//
// State instances are intended to be mutated only through [Manager] methods
// and treated as opaque by every other component.
//
// The zero value is the NoSession state: no token, no deadline. While a
// session is active Token holds the opaque credential presented by the
// client and ExpiresAt holds the absolute UTC instant after which the
// session no longer resolves. ExpiresAt is meaningless when Token is empty.
type State struct {
	Token     string
	ExpiresAt time.Time
}

// Active reports whether the state currently carries a session token.
// It says nothing about expiry; use [Manager.Live] for liveness.
func (s State) Active() bool {
	return s.Token != ""
}
