package redirect

import "testing"

func TestIsSafe(t *testing.T) {
	const origin = "http://app.local"

	cases := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"relative path", "/dashboard", true},
		{"relative path with query", "/search?q=x", true},
		{"same origin absolute", "http://app.local/home", true},
		{"empty resolves to origin", "", true},
		{"foreign host", "http://attacker.example/x", false},
		{"scheme relative", "//attacker.example", false},
		{"scheme relative with path", "//attacker.example/login", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"data scheme", "data:text/html,hi", false},
		{"https foreign host", "https://attacker.example", false},
		{"same host different port", "http://app.local:8443/home", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSafe(tc.candidate, origin); got != tc.want {
				t.Fatalf("IsSafe(%q, %q) = %v, want %v", tc.candidate, origin, got, tc.want)
			}
		})
	}
}

func TestIsSafeSameOriginWithPort(t *testing.T) {
	const origin = "http://app.local:8080"

	if !IsSafe("http://app.local:8080/home", origin) {
		t.Fatal("expected exact host:port match to be safe")
	}
	if IsSafe("http://app.local/home", origin) {
		t.Fatal("expected missing port to mismatch the origin's network location")
	}
}

func TestIsSafeRejectsUnusableOrigin(t *testing.T) {
	if IsSafe("/dashboard", "") {
		t.Fatal("empty origin must reject every candidate")
	}
	if IsSafe("/dashboard", "not-an-absolute-url") {
		t.Fatal("origin without a host must reject every candidate")
	}
}
