// Package redisstore provides the Redis-backed implementation of the goGate
// [goGate.UserStore] contract.
//
// # Layout
//
// Each user is a versioned binary blob at one key, with two index keys
// pointing back at the user ID:
//
//	<prefix>:user:<id>     user record blob
//	<prefix>:uname:<name>  username -> id
//	<prefix>:tok:<token>   session token -> id
//
// Save is an upsert that re-points the token index and removes the stale one
// in a single pipelined transaction, so after a new login the previous token
// no longer resolves. Session expiry is deliberately NOT mapped onto Redis
// TTLs: the gate checks expiry lazily at resolution time, and the record
// (including a stale token) stays in place until overwritten.
//
// Concurrent saves for the same user are last-write-wins; the gate requires
// no stronger isolation.
//
// # What this package must NOT do
//
//   - Make authentication decisions or inspect session liveness.
//   - Log password hashes or session tokens.
//   - Expose Redis types on its public API beyond the client handed to New.
package redisstore
