package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	minIterations         = 1000
	minSaltLength  uint32 = 8
	minKeyLength   uint32 = 16
	algorithmID           = "pbkdf2-sha256"
)

// Config defines a public type used by goGate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Iterations uint32
	SaltLength uint32
	KeyLength  uint32
}

// Hasher defines a public type used by goGate APIs.
//
// Hasher instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Hasher struct {
	config Config
}

type parsedPHC struct {
	iterations uint32
	salt       []byte
	hash       []byte
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(cfg Config) (*Hasher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &Hasher{config: cfg}, nil
}

// Hash describes the hash operation and its observable behavior.
//
// Hash may return an error when input validation, dependency calls, or security checks fail.
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (h *Hasher) Hash(plaintext string) (string, error) {
	// Password processing uses raw string bytes exactly as provided (no Unicode normalization).
	if plaintext == "" {
		return "", errors.New("password must not be empty")
	}

	salt := make([]byte, h.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key(
		[]byte(plaintext),
		salt,
		int(h.config.Iterations),
		int(h.config.KeyLength),
		sha256.New,
	)

	saltEncoded := base64.StdEncoding.EncodeToString(salt)
	keyEncoded := base64.StdEncoding.EncodeToString(key)

	return fmt.Sprintf(
		"$%s$i=%d$%s$%s",
		algorithmID,
		h.config.Iterations,
		saltEncoded,
		keyEncoded,
	), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify reports whether plaintext matches the stored encoded hash. A
// malformed or corrupted stored hash returns false with a non-nil error;
// callers must treat any error as "does not match" and never surface it to
// the client.
func (h *Hasher) Verify(plaintext string, encodedHash string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := pbkdf2.Key(
		[]byte(plaintext),
		parsed.salt,
		int(parsed.iterations),
		len(parsed.hash),
		sha256.New,
	)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1, nil
}

func parsePHC(encodedHash string) (*parsedPHC, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, errors.New("invalid PHC format")
	}

	if parts[1] != algorithmID {
		return nil, errors.New("unsupported algorithm")
	}

	iterPart := parts[2]
	if !strings.HasPrefix(iterPart, "i=") {
		return nil, errors.New("missing iteration count")
	}

	iterations, err := strconv.ParseUint(strings.TrimPrefix(iterPart, "i="), 10, 32)
	if err != nil || iterations < minIterations {
		return nil, errors.New("invalid iteration count")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, errors.New("invalid salt encoding")
	}
	if len(salt) < int(minSaltLength) {
		return nil, errors.New("invalid salt length")
	}

	hash, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, errors.New("invalid hash encoding")
	}
	if len(hash) < int(minKeyLength) {
		return nil, errors.New("invalid hash length")
	}

	return &parsedPHC{
		iterations: uint32(iterations),
		salt:       salt,
		hash:       hash,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Iterations < minIterations {
		return fmt.Errorf("iterations must be at least %d", minIterations)
	}
	if cfg.SaltLength < minSaltLength {
		return fmt.Errorf("salt length must be at least %d bytes", minSaltLength)
	}
	if cfg.KeyLength < minKeyLength {
		return fmt.Errorf("key length must be at least %d bytes", minKeyLength)
	}
	return nil
}
