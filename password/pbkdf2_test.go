package password

import (
	"strings"
	"testing"
)

func secureConfig() Config {
	return Config{
		Iterations: 29000,
		SaltLength: 16,
		KeyLength:  32,
	}
}

func TestHashAndVerify(t *testing.T) {
	hasher, err := New(secureConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	hash, err := hasher.Hash("P@ssw0rd-Ascii")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strings.HasPrefix(hash, "$pbkdf2-sha256$i=29000$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}

	ok, err := hasher.Verify("P@ssw0rd-Ascii", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected password verification to succeed")
	}
}

func TestHashSaltsPerCall(t *testing.T) {
	hasher, err := New(secureConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct stored hashes for the same plaintext")
	}

	for _, h := range []string{first, second} {
		ok, err := hasher.Verify("same-password", h)
		if err != nil || !ok {
			t.Fatalf("expected both salted hashes to verify, ok=%v err=%v", ok, err)
		}
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	hasher, err := New(secureConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	hash, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := hasher.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password verification to fail")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher, err := New(secureConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	cases := []string{
		"",
		"not-a-phc-string",
		"$pbkdf2-sha256$i=29000$bad!salt$aGFzaA==",
		"$pbkdf2-sha256$missing-iterations$c2FsdHNhbHQ=$aGFzaGhhc2hoYXNoaGFzaA==",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA==$aGFzaA==",
		"$pbkdf2-sha256$i=29000$c2FsdHNhbHQ=$",
	}

	for _, malformed := range cases {
		ok, err := hasher.Verify("anything", malformed)
		if ok {
			t.Fatalf("malformed hash %q must not verify", malformed)
		}
		if err == nil {
			t.Fatalf("malformed hash %q should report a parse error", malformed)
		}
	}
}

func TestNewRejectsWeakConfig(t *testing.T) {
	weak := []Config{
		{Iterations: 10, SaltLength: 16, KeyLength: 32},
		{Iterations: 29000, SaltLength: 4, KeyLength: 32},
		{Iterations: 29000, SaltLength: 16, KeyLength: 8},
	}

	for _, cfg := range weak {
		if _, err := New(cfg); err == nil {
			t.Fatalf("expected config %+v to be rejected", cfg)
		}
	}
}
