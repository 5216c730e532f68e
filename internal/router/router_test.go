// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the routing configuration without live
// backends: middleware ordering, auth gating, and route precedence.
package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"linkhub/internal/handlers"
	"linkhub/internal/render"
	"linkhub/internal/session"
)

// newBareRouter builds a router with nil stores. Only routes that never
// touch a backend can be exercised against it.
func newBareRouter(t *testing.T) http.Handler {
	t.Helper()

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	limiters := NewLimiters()
	t.Cleanup(limiters.Stop)

	sessions := session.NewStore(nil, false)
	auth := handlers.NewAuth(renderer, sessions, nil, nil)
	dashboard := handlers.NewDashboard(renderer, sessions, nil, nil, nil, nil, nil, nil, "http://localhost:8080")
	api := handlers.NewAPI(sessions, nil, nil, nil, nil, nil, nil, nil)
	public := handlers.NewPublic(renderer, nil, nil, nil, nil)

	return New(sessions, limiters, auth, dashboard, api, public)
}

func TestHealthRoute(t *testing.T) {
	r := newBareRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q, want application/json", ct)
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	r := newBareRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want /login", loc)
	}
}

func TestAPIRequiresAuthJSON(t *testing.T) {
	r := newBareRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me/profile", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q, want application/json", ct)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := newBareRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q, want nosniff", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("expected a Content-Security-Policy header")
	}
}

func TestFixedRoutesWinOverUsername(t *testing.T) {
	// /login must be handled by the auth pages, not the profile
	// wildcard — the username validator reserves these words so no
	// profile can shadow them either.
	r := newBareRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body == "" {
		t.Error("expected the login page body")
	}
}

func TestLandingRedirectsAnonymousToSignup(t *testing.T) {
	r := newBareRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/signup" {
		t.Errorf("Location: got %q, want /signup", loc)
	}
}

func TestAuthRateLimiterKicksIn(t *testing.T) {
	r := newBareRouter(t)

	var last int
	for i := 0; i < 15; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.99:1234"
		r.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after burst: got %d, want 429", last)
	}
}
