package goGate

import (
	"context"

	"github.com/MrEthical07/goGate/session"
)

// Role defines a public type used by goGate APIs.
//
// Role instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// The role set is closed: only [RoleAdmin] and [RoleUser] exist. Roles are
// authorization labels, not identity, and are compared by strict equality
// only — no role implies another.
type Role string

const (
	// RoleAdmin is an exported constant or variable used by the authentication gate.
	RoleAdmin Role = "admin"
	// RoleUser is an exported constant or variable used by the authentication gate.
	RoleUser Role = "user"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserStore is the credential store contract consumed by the [Engine].
//
// Implementations hold the durable user records and are the single source
// of truth for session state: every request re-resolves its token here, and
// concurrent saves for the same user resolve last-write-wins. A lookup miss
// is reported as [ErrUserNotFound]; backend outages as (or wrapping)
// [ErrStoreUnavailable]. Save is an upsert and must provide read-your-writes
// consistency for a single caller's sequential save-then-read.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*UserRecord, error)
	FindBySessionToken(ctx context.Context, token string) (*UserRecord, error)
	Save(ctx context.Context, rec *UserRecord) error
}

// UserRecord is the full identity record held by a [UserStore]. It carries
// the credential hash, the authorization role, and the current session
// state.
//
// ID and Username are assigned at provisioning and immutable afterwards
// (there is no rename path). PasswordHash is the PHC-encoded output of
// password.Hasher — plaintext is never stored, and no API returns it.
// Session is mutated exclusively by the engine's session manager.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role

	Session session.State
}

// AuthenticatedUser is the explicit capability produced by
// [Engine.Authenticate] and passed to downstream handlers as data, never
// resolved through ambient state. It deliberately omits the password hash.
type AuthenticatedUser struct {
	ID       string
	Username string
	Role     Role
	Token    string
}

// LoginRequest defines a public type used by goGate APIs.
//
// LoginRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// RedirectTo is the client-supplied post-login destination and Origin the
// absolute URL of the serving origin (scheme://host[:port]); the gate
// validates the pair before touching credentials.
type LoginRequest struct {
	Username   string
	Password   string
	RedirectTo string
	Origin     string
}

// LoginResult defines a public type used by goGate APIs.
//
// LoginResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginResult struct {
	// Token is the opaque session credential handed to the client. It is
	// the sole value needed on subsequent requests.
	Token string
	// RedirectTo is the validated redirect target.
	RedirectTo string
	// User identifies the freshly authenticated caller.
	User AuthenticatedUser
}

func authenticatedUser(rec *UserRecord) *AuthenticatedUser {
	return &AuthenticatedUser{
		ID:       rec.ID,
		Username: rec.Username,
		Role:     rec.Role,
		Token:    rec.Session.Token,
	}
}
