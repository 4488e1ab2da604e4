package goGate

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/MrEthical07/goGate/password"
	"github.com/MrEthical07/goGate/redirect"
	"github.com/MrEthical07/goGate/session"
)

// Engine defines a public type used by goGate APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// Engine is the request-level authentication gate: it owns the credential
// check at login, per-request token resolution with sliding renewal, the
// role equality check, and logout. One logical request is one authentication
// decision — there is no in-process session cache, and every call
// re-resolves against the [UserStore].
type Engine struct {
	config       Config
	store        UserStore
	sessions     *session.Manager
	passwordHash *password.Hasher
	audit        *auditDispatcher
	metrics      *Metrics

	// dummyHash absorbs a verification for unknown usernames so the failure
	// path costs one key derivation either way.
	dummyHash string
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// SessionTTL reports the configured sliding session window.
func (e *Engine) SessionTTL() time.Duration {
	if e == nil || e.sessions == nil {
		return 0
	}
	return e.sessions.TTL()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login describes the login operation and its observable behavior.
//
// Login validates the redirect target before touching credentials, so an
// unsafe target fails with [ErrBadRedirect] without revealing whether the
// username exists. Unknown username and wrong password both fail with
// [ErrInvalidCredentials]; the two cases are indistinguishable to the
// caller. On success a fresh session replaces any prior one (the previous
// token stops resolving immediately) and the new token is returned together
// with the validated redirect target.
func (e *Engine) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if e == nil || e.store == nil || e.passwordHash == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	target := req.RedirectTo
	if target == "" {
		target = "/"
	}
	if !redirect.IsSafe(target, req.Origin) {
		e.metricInc(MetricLoginBadRedirect)
		e.emitAudit(ctx, auditEventLoginBadRedirect, false, "", req.Username, ErrBadRedirect, func() map[string]string {
			return map[string]string{
				"redirect_to": req.RedirectTo,
			}
		})
		return nil, ErrBadRedirect
	}

	if req.Password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", req.Username, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "empty_password",
			}
		})
		return nil, ErrInvalidCredentials
	}

	rec, err := e.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricStoreFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", req.Username, err, nil)
			return nil, err
		}

		// Burn a key derivation so an unknown username costs the same as a
		// wrong password.
		_, _ = e.passwordHash.Verify(req.Password, e.dummyHash)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", req.Username, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "user_not_found",
			}
		})
		return nil, ErrInvalidCredentials
	}

	ok, err := e.passwordHash.Verify(req.Password, rec.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, rec.ID, req.Username, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return nil, ErrInvalidCredentials
	}

	token := e.sessions.Start(&rec.Session)
	if err := e.store.Save(ctx, rec); err != nil {
		e.metricInc(MetricStoreFailure)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, rec.ID, req.Username, err, func() map[string]string {
			return map[string]string{
				"reason": "session_save_failed",
			}
		})
		return nil, err
	}

	e.metricInc(MetricSessionStarted)
	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, rec.ID, req.Username, nil, nil)

	return &LoginResult{
		Token:      token,
		RedirectTo: target,
		User:       *authenticatedUser(rec),
	}, nil
}

// Authenticate describes the authenticate operation and its observable behavior.
//
// Authenticate resolves a presented session token to its owner. A missing,
// unknown, or expired token yields [ErrUnauthenticated]; the sub-reason is
// never surfaced. A successful resolution renews the session as a side
// effect, pushing the deadline forward by one TTL (sliding expiration), and
// returns the explicit [AuthenticatedUser] capability for downstream
// handlers.
func (e *Engine) Authenticate(ctx context.Context, token string) (*AuthenticatedUser, error) {
	if e == nil || e.store == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { e.metrics.Observe(MetricAuthenticateLatency, time.Since(start)) }()
	}

	if token == "" {
		e.metricInc(MetricAuthFailure)
		e.emitAudit(ctx, auditEventAuthFailure, false, "", "", ErrUnauthenticated, func() map[string]string {
			return map[string]string{
				"reason": "empty_token",
			}
		})
		return nil, ErrUnauthenticated
	}

	rec, err := e.store.FindBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricAuthFailure)
			e.emitAudit(ctx, auditEventAuthFailure, false, "", "", ErrUnauthenticated, func() map[string]string {
				return map[string]string{
					"reason": "unknown_token",
				}
			})
			return nil, ErrUnauthenticated
		}
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventAuthFailure, false, "", "", err, nil)
		return nil, err
	}

	if !e.sessions.Live(rec.Session) {
		e.metricInc(MetricSessionExpired)
		if e.config.Session.ClearExpiredOnResolve {
			e.sessions.End(&rec.Session)
			// Best-effort cleanup: a stale token never resolves either way.
			if err := e.store.Save(ctx, rec); err != nil {
				log.Print("goGate: stale session cleanup failed")
			}
		}
		e.emitAudit(ctx, auditEventSessionExpired, false, rec.ID, rec.Username, ErrUnauthenticated, nil)
		return nil, ErrUnauthenticated
	}

	e.sessions.Renew(&rec.Session)
	if err := e.store.Save(ctx, rec); err != nil {
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventAuthFailure, false, rec.ID, rec.Username, err, func() map[string]string {
			return map[string]string{
				"reason": "renewal_save_failed",
			}
		})
		return nil, err
	}

	e.metricInc(MetricSessionRenewed)
	return authenticatedUser(rec), nil
}

// Authorize describes the authorize operation and its observable behavior.
//
// Authorize applies the strict role equality check used to gate privileged
// operations. There is no hierarchy: RoleAdmin does not imply RoleUser or
// the reverse. A mismatch yields [ErrForbidden] and the gated operation must
// not run.
func (e *Engine) Authorize(ctx context.Context, user *AuthenticatedUser, required Role) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if user == nil {
		return ErrUnauthenticated
	}
	if user.Role != required {
		e.metricInc(MetricRoleDenied)
		e.emitAudit(ctx, auditEventRoleDenied, false, user.ID, user.Username, ErrForbidden, func() map[string]string {
			return map[string]string{
				"required_role": string(required),
			}
		})
		return ErrForbidden
	}
	return nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout ends the caller's session and persists the cleared state. It is
// idempotent: a token that no longer resolves is treated as already logged
// out.
func (e *Engine) Logout(ctx context.Context, user *AuthenticatedUser) error {
	if e == nil || e.store == nil || e.sessions == nil {
		return ErrEngineNotReady
	}
	if user == nil {
		return ErrUnauthenticated
	}

	rec, err := e.store.FindBySessionToken(ctx, user.Token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		e.metricInc(MetricStoreFailure)
		return err
	}

	e.sessions.End(&rec.Session)
	if err := e.store.Save(ctx, rec); err != nil {
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventLogout, false, rec.ID, rec.Username, err, nil)
		return err
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, rec.ID, rec.Username, nil, nil)
	return nil
}
