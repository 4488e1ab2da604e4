package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/middleware"
	"github.com/MrEthical07/goGate/password"
	"github.com/MrEthical07/goGate/redisstore"
)

type webFixture struct {
	router         http.Handler
	store          *redisstore.Store
	clock          *time.Time
	shutdownCalled bool
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redisstore.New(client, redisstore.Config{Prefix: "gg"})

	cfg := goGate.DefaultConfig()
	cfg.Password.Iterations = 1000

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fx := &webFixture{store: store, clock: &current}

	engine, err := goGate.New().
		WithConfig(cfg).
		WithStore(store).
		WithClock(func() time.Time { return current }).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	hasher, err := password.New(password.Config{Iterations: 1000, SaltLength: 16, KeyLength: 32})
	if err != nil {
		t.Fatalf("password.New failed: %v", err)
	}
	seed := func(username, plaintext string, role goGate.Role) {
		hash, err := hasher.Hash(plaintext)
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		rec := &goGate.UserRecord{Username: username, PasswordHash: hash, Role: role}
		if err := store.Create(context.Background(), rec); err != nil {
			t.Fatalf("Create(%s) failed: %v", username, err)
		}
	}
	seed("alice", "s3cret", goGate.RoleUser)
	seed("root", "changeme", goGate.RoleAdmin)

	handler := NewHandler(engine, func() { fx.shutdownCalled = true })
	fx.router = handler.Router()
	return fx
}

func (fx *webFixture) postLogin(t *testing.T, path, username, plaintext string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"username": {username}, "password": {plaintext}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)
	return rr
}

func (fx *webFixture) login(t *testing.T, username, plaintext string) *http.Cookie {
	t.Helper()

	rr := fx.postLogin(t, "/login", username, plaintext)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302 from login, got %d", rr.Code)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	fx := newWebFixture(t)

	rr := fx.postLogin(t, "/login?next=/reports", "alice", "s3cret")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/reports" {
		t.Fatalf("expected redirect to /reports, got %q", loc)
	}

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected a session cookie on successful login")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if cookie.MaxAge != 0 {
		t.Fatalf("expected a browser-session cookie without Max-Age, got %d", cookie.MaxAge)
	}
}

func TestLoginDefaultsRedirectToRoot(t *testing.T) {
	fx := newWebFixture(t)

	rr := fx.postLogin(t, "/login", "alice", "s3cret")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestLoginRejectsForeignRedirect(t *testing.T) {
	fx := newWebFixture(t)

	rr := fx.postLogin(t, "/login?next=http://evil.test/", "alice", "s3cret")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for cross-host redirect, got %d", rr.Code)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CookieName {
			t.Fatal("rejected login must not set a session cookie")
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	fx := newWebFixture(t)

	rr := fx.postLogin(t, "/login", "alice", "wrong")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	fx := newWebFixture(t)

	rr := fx.postLogin(t, "/login", "mallory", "s3cret")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestHomeRequiresSession(t *testing.T) {
	fx := newWebFixture(t)

	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rr.Code)
	}
}

func TestHomeGreetsAuthenticatedUser(t *testing.T) {
	fx := newWebFixture(t)
	cookie := fx.login(t, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "alice") {
		t.Fatal("home page should greet the signed-in user")
	}
}

func TestLogoutEndsSession(t *testing.T) {
	fx := newWebFixture(t)
	cookie := fx.login(t, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)

	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", rr.Code)
	}
	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout must clear the session cookie")
	}

	// The old token must stop resolving.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	rr = httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rr.Code)
	}
}

func TestShutdownDeniedForNonAdmin(t *testing.T) {
	fx := newWebFixture(t)
	cookie := fx.login(t, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/shutdown", nil)
	req.AddCookie(cookie)

	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin, got %d", rr.Code)
	}
	if fx.shutdownCalled {
		t.Fatal("shutdown callback must not fire for a non-admin")
	}
}

func TestCookieOutlivesOriginalWindowWhileActive(t *testing.T) {
	fx := newWebFixture(t)
	cookie := fx.login(t, "alice", "s3cret")

	// Active every 20s: each request renews the session server-side, and
	// the browser-session cookie keeps presenting the token past the
	// original 30s deadline.
	for i := 0; i < 2; i++ {
		*fx.clock = fx.clock.Add(20 * time.Second)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)

		rr := httptest.NewRecorder()
		fx.router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("request %d after login: expected 200, got %d", i+1, rr.Code)
		}
	}
}

// outageStore fails every token resolution the way an unreachable backend
// would.
type outageStore struct{}

func (outageStore) FindByUsername(context.Context, string) (*goGate.UserRecord, error) {
	return nil, goGate.ErrStoreUnavailable
}

func (outageStore) FindBySessionToken(context.Context, string) (*goGate.UserRecord, error) {
	return nil, goGate.ErrStoreUnavailable
}

func (outageStore) Save(context.Context, *goGate.UserRecord) error {
	return goGate.ErrStoreUnavailable
}

func TestGuardedRouteReportsStoreOutageAsInternal(t *testing.T) {
	cfg := goGate.DefaultConfig()
	cfg.Password.Iterations = 1000

	engine, err := goGate.New().WithConfig(cfg).WithStore(outageStore{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	router := NewHandler(engine, nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "tok-any"})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("store outage must surface as 500, got %d", rr.Code)
	}
}

func TestShutdownRunsForAdmin(t *testing.T) {
	fx := newWebFixture(t)
	cookie := fx.login(t, "root", "changeme")

	req := httptest.NewRequest(http.MethodGet, "/shutdown", nil)
	req.AddCookie(cookie)

	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Shutting down.") {
		t.Fatalf("unexpected shutdown body: %q", rr.Body.String())
	}
	if !fx.shutdownCalled {
		t.Fatal("shutdown callback should have fired")
	}
}
