// Package redirect guards the post-login redirect against open-redirect
// attacks by constraining a client-supplied destination to the same origin
// as the request that carried it.
//
// IsSafe is a pure function: it resolves the candidate the way a browser
// would and accepts only http/https targets whose network location exactly
// matches the request's own. Everything else — absolute URLs to foreign
// hosts, scheme-relative tricks like //evil.example, javascript: and data:
// schemes — is rejected.
package redirect
