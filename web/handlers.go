package web

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/middleware"
)

// Handler defines a public type used by goGate APIs.
//
// Handler instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Handler struct {
	engine   *goGate.Engine
	shutdown func()
}

// NewHandler describes the newhandler operation and its observable behavior.
//
// The shutdown callback backs the admin-only /shutdown route; a nil
// callback makes that route answer 500.
func NewHandler(engine *goGate.Engine, shutdown func()) *Handler {
	return &Handler{engine: engine, shutdown: shutdown}
}

// Router describes the router operation and its observable behavior.
//
// Router may return an error when input validation, dependency calls, or security checks fail.
// Router does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Guard(h.engine, h.authFailure))
		r.Get("/", h.home)
		r.Get("/logout", h.logout)
		r.With(middleware.RequireRole(h.engine, goGate.RoleAdmin, h.authFailure)).
			Get("/shutdown", h.shutdownRoute)
	})

	return r
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, loginPage, nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	result, err := h.engine.Login(requestContext(r), goGate.LoginRequest{
		Username:   r.PostFormValue("username"),
		Password:   r.PostFormValue("password"),
		RedirectTo: r.URL.Query().Get("next"),
		Origin:     requestOrigin(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, goGate.ErrBadRedirect):
			h.render(w, http.StatusBadRequest, failPage, nil)
		case errors.Is(err, goGate.ErrInvalidCredentials):
			h.render(w, http.StatusUnauthorized, failPage, nil)
		default:
			log.Print("goGate: login failed against the credential store")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	// Browser-session cookie: no Max-Age, so the client keeps presenting
	// the token while the server decides liveness. A fixed client-side
	// lifetime would cap the sliding window at one TTL.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, result.RedirectTo, http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.engine.Logout(requestContext(r), user); err != nil {
		log.Print("goGate: logout failed against the credential store")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	h.render(w, http.StatusOK, logoutPage, nil)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	h.render(w, http.StatusOK, homePage, user)
}

func (h *Handler) shutdownRoute(w http.ResponseWriter, r *http.Request) {
	if h.shutdown == nil {
		http.Error(w, "shutdown unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Shutting down."))
	h.shutdown()
}

func (h *Handler) authFailure(w http.ResponseWriter, r *http.Request, err error) {
	// A store outage is an internal failure, not an authentication verdict.
	if errors.Is(err, goGate.ErrStoreUnavailable) {
		log.Print("goGate: token resolution failed against the credential store")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	// Every authentication sub-reason renders the same page: the client
	// learns only that it is not authorized.
	h.render(w, http.StatusUnauthorized, failPage, nil)
}

func (h *Handler) render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Print("goGate: page render failed")
	}
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func requestContext(r *http.Request) context.Context {
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return goGate.WithClientIP(r.Context(), host)
}
