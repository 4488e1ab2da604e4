// Package goGate provides a session-based authentication gate: credential
// login with a rotating opaque session token, per-request token resolution
// with sliding renewal, same-origin redirect validation, and a strict
// role-equality authorization check.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goGate is the public surface. It exposes [Engine], [Builder], [Config],
// the [UserStore] contract, and value types (AuthenticatedUser, LoginResult,
// MetricsSnapshot, AuditEvent). Session policy, password hashing, and
// redirect validation live in the session, password, and redirect
// subpackages; HTTP integration lives in middleware and web.
//
// # What this package must NOT do
//
//   - Hold session state in process: the [UserStore] is the single source of
//     truth, and every request re-resolves its token there.
//   - Distinguish unknown-username from wrong-password in any observable
//     way, or surface why a token failed to resolve.
//   - Expose plaintext passwords or password hashes on [AuthenticatedUser].
//
// # Failure contract
//
// All authentication and authorization failures are converted to the
// sentinel errors in errors.go at the Engine boundary; nothing else
// propagates to callers except store outages, which surface as (or wrap)
// [ErrStoreUnavailable].
package goGate
