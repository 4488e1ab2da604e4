// Package middleware provides net/http middleware for goGate: Guard
// authenticates every request through the engine and injects the resulting
// [goGate.AuthenticatedUser] into the request context, and RequireRole
// layers the strict role check on top for privileged routes.
//
// The session token travels as a cookie (see [CookieName]) with an
// Authorization Bearer fallback for non-browser clients. The authenticated
// user is passed to handlers as context data — handlers read it with
// [UserFromContext] rather than resolving identity through any ambient
// state.
package middleware
