package session

import (
	"testing"
	"time"
)

func newClockedManager(t *testing.T, ttl time.Duration) (*Manager, *time.Time) {
	t.Helper()

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManagerWithClock(ttl, func() time.Time { return current })
	return m, &current
}

func TestStartIssuesTokenAndFutureDeadline(t *testing.T) {
	m, now := newClockedManager(t, 30*time.Second)

	var st State
	token := m.Start(&st)
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if st.Token != token {
		t.Fatalf("state token %q does not match returned token %q", st.Token, token)
	}
	if want := now.Add(30 * time.Second); !st.ExpiresAt.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, st.ExpiresAt)
	}
	if !m.Live(st) {
		t.Fatal("freshly started session must be live")
	}
}

func TestStartReplacesPriorToken(t *testing.T) {
	m, _ := newClockedManager(t, 30*time.Second)

	var st State
	first := m.Start(&st)
	second := m.Start(&st)
	if first == second {
		t.Fatal("second Start must rotate the token")
	}
	if st.Token != second {
		t.Fatalf("expected state to hold second token, got %q", st.Token)
	}
}

func TestRenewSlidesDeadlineWithoutRotating(t *testing.T) {
	m, now := newClockedManager(t, 30*time.Second)

	var st State
	token := m.Start(&st)

	*now = now.Add(20 * time.Second)
	m.Renew(&st)

	if st.Token != token {
		t.Fatalf("Renew must not change the token, got %q", st.Token)
	}
	if want := now.Add(30 * time.Second); !st.ExpiresAt.Equal(want) {
		t.Fatalf("expected deadline %v after renew, got %v", want, st.ExpiresAt)
	}
}

func TestRenewOnNoSessionIsNoOp(t *testing.T) {
	m, _ := newClockedManager(t, 30*time.Second)

	var st State
	m.Renew(&st)
	if st.Active() || !st.ExpiresAt.IsZero() {
		t.Fatalf("Renew on NoSession must not activate state: %+v", st)
	}
}

func TestLiveAtAndAfterDeadline(t *testing.T) {
	m, now := newClockedManager(t, 30*time.Second)

	var st State
	m.Start(&st)

	*now = now.Add(29 * time.Second)
	if !m.Live(st) {
		t.Fatal("session must be live strictly before the deadline")
	}

	*now = now.Add(time.Second)
	if m.Live(st) {
		t.Fatal("session must be stale exactly at the deadline")
	}

	*now = now.Add(time.Minute)
	if m.Live(st) {
		t.Fatal("session must stay stale after the deadline")
	}
}

func TestEndClearsState(t *testing.T) {
	m, _ := newClockedManager(t, 30*time.Second)

	var st State
	m.Start(&st)
	m.End(&st)

	if st.Active() {
		t.Fatal("End must clear the token")
	}
	if !st.ExpiresAt.IsZero() {
		t.Fatalf("End must clear the deadline, got %v", st.ExpiresAt)
	}
	if m.Live(st) {
		t.Fatal("ended session must not be live")
	}
}

func TestNonPositiveTTLFallsBack(t *testing.T) {
	m := NewManager(0)
	if m.TTL() != DefaultTTL {
		t.Fatalf("expected DefaultTTL fallback, got %v", m.TTL())
	}
}
