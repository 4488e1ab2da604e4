// Package web exposes the goGate engine over HTTP: a login form, the login
// transition itself, logout, and two guarded routes (a home page and an
// admin-only shutdown action).
//
// The routing layer is a thin collaborator: every handler calls the engine
// explicitly and renders one of a small set of HTML pages. All
// authentication failures (unknown user, wrong password, missing or expired
// session, role mismatch) collapse to the same 401 failure page; only an
// unsafe redirect target is distinguishable, as a 400.
package web
