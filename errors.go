package goGate

import "errors"

var (
	// ErrBadRedirect is an exported constant or variable used by the authentication gate.
	ErrBadRedirect = errors.New("unsafe redirect target")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication gate.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is an exported constant or variable used by the authentication gate.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is an exported constant or variable used by the authentication gate.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is an exported constant or variable used by the authentication gate.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable is an exported constant or variable used by the authentication gate.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the authentication gate.
	ErrEngineNotReady = errors.New("engine not initialized")
)
