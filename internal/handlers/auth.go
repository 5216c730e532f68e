// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"

	"linkhub/internal/middleware"
	"linkhub/internal/render"
	"linkhub/internal/session"
	"linkhub/internal/store"
	"linkhub/internal/username"
)

// Auth groups the HTML authentication handlers: login, signup, logout,
// and the per-login TOTP verification step.
type Auth struct {
	renderer     *render.Renderer
	sessions     *session.Store
	userStore    *store.UserStore
	profileStore *store.ProfileStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore, profileStore *store.ProfileStore) *Auth {
	return &Auth{
		renderer:     renderer,
		sessions:     sessions,
		userStore:    userStore,
		profileStore: profileStore,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in"})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in", Flash: "An unexpected error occurred.", FlashType: "error"})
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in", Flash: "Invalid email or password.", FlashType: "error"})
		return
	}

	profile, err := a.profileStore.FindByUserID(user.ID)
	if err != nil || profile == nil {
		slog.Error("profile lookup on login failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Accounts without TOTP skip the verification step.
	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Email:     user.Email,
		Username:  profile.Username,
		TwoFADone: !user.TOTPEnabled,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPEnabled {
		http.Redirect(w, r, "/2fa/verify", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// SignupPage renders the account creation form.
func (a *Auth) SignupPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "signup", &render.PageData{Title: "Sign up"})
}

// SignupSubmit creates a user plus their profile and logs them in.
func (a *Auth) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	uname := username.Normalize(r.FormValue("username"))

	if msg := validateSignup(email, password); msg != "" {
		a.renderer.Page(w, r, "signup", &render.PageData{Title: "Sign up", Flash: msg, FlashType: "error"})
		return
	}
	if err := username.Validate(uname); err != nil {
		a.renderer.Page(w, r, "signup", &render.PageData{Title: "Sign up", Flash: err.Error(), FlashType: "error"})
		return
	}

	existing, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("signup lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		a.renderer.Page(w, r, "signup", &render.PageData{Title: "Sign up", Flash: "An account with this email already exists.", FlashType: "error"})
		return
	}

	user, err := a.userStore.Create(email, password)
	if err != nil {
		slog.Error("user create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	profile, err := a.profileStore.CreateForUser(user.ID, uname)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			a.renderer.Page(w, r, "signup", &render.PageData{Title: "Sign up", Flash: "This username is taken. Try another.", FlashType: "error"})
			return
		}
		slog.Error("profile create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Email:     user.Email,
		Username:  profile.Username,
		TwoFADone: true,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// TwoFAVerifyPage renders the per-login TOTP entry form.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if sess.TwoFADone {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "2fa_verify", &render.PageData{Title: "Verify"})
}

// TwoFAVerifySubmit validates the TOTP code and completes the login.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.TOTPSecret == nil {
		// Enrolment was reset since login.
		sess.TwoFADone = true
		a.sessions.Update(r.Context(), r, sess)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{Title: "Verify", Flash: "Invalid code. Please try again.", FlashType: "error"})
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
