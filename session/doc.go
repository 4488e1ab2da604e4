// Package session implements the per-user session state machine: an opaque
// rotating token plus an absolute UTC expiry deadline with sliding renewal.
//
// # Design
//
// A session has two states. NoSession is the zero value of [State]: no token,
// no deadline. Active holds a freshly generated token and a deadline TTL in
// the future. [Manager] owns every transition — Start (NoSession|Active ->
// Active, new token), Renew (Active -> Active, same token, deadline pushed
// forward), End (Active -> NoSession) — and the liveness predicate Live.
//
// All deadlines are computed and compared in UTC so that wall-clock DST
// shifts never move a session backwards in time.
//
// # Architecture boundaries
//
// This package owns session policy only. It performs no I/O and never touches
// the credential store: resolution (token lookup, renewal persistence) is
// orchestrated by the engine, which calls into Manager for every state
// mutation.
//
// # What this package must NOT do
//
//   - Import goGate or any sibling package.
//   - Persist, log, or otherwise emit a session token.
//   - Compare deadlines in local time.
package session
