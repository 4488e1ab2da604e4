package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goGate "github.com/MrEthical07/goGate"
)

// ErrUsernameTaken is an exported constant or variable used by the credential store.
var ErrUsernameTaken = errors.New("username already taken")

const defaultPrefix = "gg"

// Config defines a public type used by goGate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Prefix namespaces every key this store writes. Defaults to "gg".
	Prefix string
}

// Store defines a public type used by goGate APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis  *redis.Client
	prefix string
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(client *redis.Client, cfg Config) *Store {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) userKey(id string) string {
	return s.prefix + ":user:" + id
}

func (s *Store) usernameKey(username string) string {
	return s.prefix + ":uname:" + username
}

func (s *Store) tokenKey(token string) string {
	return s.prefix + ":tok:" + token
}

// Create provisions a new user record. An empty ID is assigned a fresh UUID.
// The username index is claimed with SETNX, so a duplicate username fails
// with [ErrUsernameTaken] and writes nothing.
func (s *Store) Create(ctx context.Context, rec *goGate.UserRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	claimed, err := s.redis.SetNX(ctx, s.usernameKey(rec.Username), rec.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", goGate.ErrStoreUnavailable, err)
	}
	if !claimed {
		return ErrUsernameTaken
	}

	data, err := encodeRecord(rec)
	if err != nil {
		// Release the claim so the username stays provisionable.
		s.redis.Del(ctx, s.usernameKey(rec.Username))
		return err
	}
	if err := s.redis.Set(ctx, s.userKey(rec.ID), data, 0).Err(); err != nil {
		s.redis.Del(ctx, s.usernameKey(rec.Username))
		return fmt.Errorf("%w: %v", goGate.ErrStoreUnavailable, err)
	}
	return nil
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
// FindByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByID(ctx context.Context, id string) (*goGate.UserRecord, error) {
	return s.loadUser(ctx, id)
}

// FindByUsername describes the findbyusername operation and its observable behavior.
//
// FindByUsername may return an error when input validation, dependency calls, or security checks fail.
// FindByUsername does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByUsername(ctx context.Context, username string) (*goGate.UserRecord, error) {
	id, err := s.redis.Get(ctx, s.usernameKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goGate.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", goGate.ErrStoreUnavailable, err)
	}
	return s.loadUser(ctx, id)
}

// FindBySessionToken describes the findbysessiontoken operation and its observable behavior.
//
// FindBySessionToken may return an error when input validation, dependency calls, or security checks fail.
// FindBySessionToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindBySessionToken(ctx context.Context, token string) (*goGate.UserRecord, error) {
	if token == "" {
		return nil, goGate.ErrUserNotFound
	}

	id, err := s.redis.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goGate.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", goGate.ErrStoreUnavailable, err)
	}

	rec, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	// The index may lag a concurrent re-login for one save window; the
	// record itself is authoritative.
	if rec.Session.Token != token {
		return nil, goGate.ErrUserNotFound
	}

	return rec, nil
}

// Save describes the save operation and its observable behavior.
//
// Save upserts the record and re-points the username and token indexes in
// one pipelined transaction. A token index left behind by a prior session is
// deleted in the same round-trip. Concurrent saves for the same user resolve
// last-write-wins.
func (s *Store) Save(ctx context.Context, rec *goGate.UserRecord) error {
	if rec.ID == "" {
		return errors.New("record has no ID")
	}

	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	var oldToken string
	if prev, err := s.loadUser(ctx, rec.ID); err == nil {
		oldToken = prev.Session.Token
	} else if !errors.Is(err, goGate.ErrUserNotFound) {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.userKey(rec.ID), data, 0)
		pipe.Set(ctx, s.usernameKey(rec.Username), rec.ID, 0)
		if oldToken != "" && oldToken != rec.Session.Token {
			pipe.Del(ctx, s.tokenKey(oldToken))
		}
		if rec.Session.Token != "" {
			pipe.Set(ctx, s.tokenKey(rec.Session.Token), rec.ID, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", goGate.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *Store) loadUser(ctx context.Context, id string) (*goGate.UserRecord, error) {
	data, err := s.redis.Get(ctx, s.userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goGate.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", goGate.ErrStoreUnavailable, err)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
