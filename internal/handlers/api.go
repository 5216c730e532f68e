// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linkhub/internal/cache"
	"linkhub/internal/imaging"
	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/session"
	"linkhub/internal/storage"
	"linkhub/internal/store"
	"linkhub/internal/telemetry"
	"linkhub/internal/theme"
	"linkhub/internal/username"
)

// API groups the JSON handlers under /api. Responses use the camelCase
// field names the web client was built against.
type API struct {
	sessions       *session.Store
	userStore      *store.UserStore
	profileStore   *store.ProfileStore
	linkStore      *store.LinkStore
	analyticsStore *store.AnalyticsStore
	storageClient  *storage.Client // nil when S3 is not configured
	recorder       *telemetry.Recorder
	pageCache      *cache.PageCache
}

// NewAPI creates a new API handler group.
func NewAPI(sessions *session.Store, userStore *store.UserStore, profileStore *store.ProfileStore, linkStore *store.LinkStore, analyticsStore *store.AnalyticsStore, storageClient *storage.Client, recorder *telemetry.Recorder, pageCache *cache.PageCache) *API {
	return &API{
		sessions:       sessions,
		userStore:      userStore,
		profileStore:   profileStore,
		linkStore:      linkStore,
		analyticsStore: analyticsStore,
		storageClient:  storageClient,
		recorder:       recorder,
		pageCache:      pageCache,
	}
}

// ---- wire types ----

type profileJSON struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio"`
	AvatarURL   *string   `json:"avatarUrl"`
	Theme       string    `json:"theme"`
	Onboarded   bool      `json:"onboarded"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type linkJSON struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profileId"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Platform   string    `json:"platform"`
	SortOrder  int       `json:"sortOrder"`
	IsActive   bool      `json:"isActive"`
	ClickCount int       `json:"clickCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toProfileJSON(p *models.Profile) profileJSON {
	return profileJSON{
		ID: p.ID, UserID: p.UserID, Username: p.Username,
		DisplayName: p.DisplayName, Bio: p.Bio, AvatarURL: p.AvatarURL,
		Theme: p.ThemeSettings, Onboarded: p.Onboarded,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toLinkJSON(l models.Link) linkJSON {
	return linkJSON{
		ID: l.ID, ProfileID: l.ProfileID, Title: l.Title, URL: l.URL,
		Platform: l.Platform, SortOrder: l.SortOrder, IsActive: l.IsActive,
		ClickCount: l.ClickCount, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt,
	}
}

func toLinksJSON(links []models.Link) []linkJSON {
	out := make([]linkJSON, 0, len(links))
	for _, l := range links {
		out = append(out, toLinkJSON(l))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// apiProfile loads the profile for the authenticated session, writing
// the error response itself on failure.
func (a *API) apiProfile(w http.ResponseWriter, r *http.Request) *models.Profile {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}
	profile, err := a.profileStore.FindByUserID(sess.UserID)
	if err != nil || profile == nil {
		slog.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil
	}
	return profile
}

// ---- /api/auth ----

// Signup creates an account plus its profile and opens a session.
func (a *API) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateSignup(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	uname := username.Normalize(req.Username)
	if uname == "" {
		// Derive a candidate from the email local part.
		local, _, _ := strings.Cut(req.Email, "@")
		uname = username.FromDisplayName(local)
	}
	if err := username.Validate(uname); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if existing, err := a.userStore.FindByEmail(req.Email); err != nil {
		slog.Error("signup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	} else if existing != nil {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	user, err := a.userStore.Create(req.Email, req.Password)
	if err != nil {
		slog.Error("user create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	profile, err := a.profileStore.CreateForUser(user.ID, uname)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username is already taken")
			return
		}
		slog.Error("profile create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID, ProfileID: profile.ID,
		Email: user.Email, Username: profile.Username, TwoFADone: true,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id": user.ID, "email": user.Email, "token": token, "onboarded": profile.Onboarded,
	})
}

// Login authenticates and opens a session.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.TOTPEnabled {
		// TOTP accounts must use the HTML login flow.
		writeError(w, http.StatusForbidden, "This account requires two-factor login")
		return
	}

	profile, err := a.profileStore.FindByUserID(user.ID)
	if err != nil || profile == nil {
		slog.Error("profile lookup on login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID, ProfileID: profile.ID,
		Email: user.Email, Username: profile.Username, TwoFADone: true,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id": user.ID, "email": user.Email, "token": token, "onboarded": profile.Onboarded,
	})
}

// Logout destroys the session.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ---- /api/me ----

// MeProfile returns the authenticated user's profile.
func (a *API) MeProfile(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	writeJSON(w, http.StatusOK, toProfileJSON(profile))
}

// MeProfileUpdate applies a partial profile edit. The theme field
// accepts either a JSON object or a pre-encoded string.
func (a *API) MeProfileUpdate(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}

	var req struct {
		Username    *string         `json:"username"`
		DisplayName *string         `json:"displayName"`
		Bio         *string         `json:"bio"`
		AvatarURL   *string         `json:"avatarUrl"`
		Theme       json.RawMessage `json:"theme"`
		Onboarded   *bool           `json:"onboarded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := models.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Onboarded:   req.Onboarded,
	}
	if req.DisplayName != nil || req.Bio != nil {
		dn, bio := profile.DisplayName, profile.Bio
		if req.DisplayName != nil {
			dn = *req.DisplayName
		}
		if req.Bio != nil {
			bio = *req.Bio
		}
		if msg := validateProfile(dn, bio); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Username != nil {
		uname := username.Normalize(*req.Username)
		if err := username.Validate(uname); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Username = &uname
	}
	if len(req.Theme) > 0 {
		// Normalize whatever shape the client sent through the theme
		// parser, then persist canonical JSON.
		t := theme.Parse([]byte(req.Theme))
		encoded, err := json.Marshal(t)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid theme")
			return
		}
		raw := string(encoded)
		upd.Theme = &raw
	}

	oldUsername := profile.Username
	updated, err := a.profileStore.Update(profile.UserID, upd)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username is already taken")
			return
		}
		slog.Error("profile update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.pageCache.Invalidate(r.Context(), oldUsername)
	a.pageCache.Invalidate(r.Context(), updated.Username)

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.Username != updated.Username {
		sess.Username = updated.Username
		a.sessions.Update(r.Context(), r, sess)
	}

	writeJSON(w, http.StatusOK, toProfileJSON(updated))
}

// CheckUsername reports whether a username is free, with suggestions
// when it isn't.
func (a *API) CheckUsername(w http.ResponseWriter, r *http.Request) {
	uname := username.Normalize(r.URL.Query().Get("username"))
	if uname == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}
	if err := username.Validate(uname); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}
	taken, err := a.profileStore.UsernameTaken(uname)
	if err != nil {
		slog.Error("check username failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	resp := map[string]any{"available": !taken}
	if taken {
		resp["suggestions"] = username.Suggest(uname, 3)
	}
	writeJSON(w, http.StatusOK, resp)
}

// MeAvatar accepts a multipart avatar upload, processes it, and stores
// it in object storage.
func (a *API) MeAvatar(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Avatar uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read upload")
		return
	}
	avatar, err := imaging.ProcessAvatar(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Unsupported image format")
		return
	}

	url, err := a.storageClient.UploadAvatar(r.Context(), profile.ID.String(), avatar)
	if err != nil {
		slog.Error("avatar upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	old := profile.AvatarURL
	updated, err := a.profileStore.Update(profile.UserID, models.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		slog.Error("avatar url save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if old != nil {
		if err := a.storageClient.DeleteAvatar(r.Context(), *old); err != nil {
			slog.Warn("old avatar delete failed", "error", err)
		}
	}

	a.pageCache.Invalidate(r.Context(), updated.Username)
	writeJSON(w, http.StatusOK, map[string]string{"avatarUrl": url})
}

// ---- /api/me/links ----

// MeLinks lists all of the user's links, active or not.
func (a *API) MeLinks(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	links, err := a.linkStore.ListByProfile(profile.ID, false)
	if err != nil {
		slog.Error("list links failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toLinksJSON(links))
}

// MeLinkCreate adds a link at the end of the list.
func (a *API) MeLinkCreate(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	var req struct {
		Title    string `json:"title"`
		URL      string `json:"url"`
		Platform string `json:"platform"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateLink(req.Title, req.URL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	link, err := a.linkStore.Create(profile.ID, req.Title, req.URL, req.Platform)
	if err != nil {
		slog.Error("link create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	a.pageCache.Invalidate(r.Context(), profile.Username)
	writeJSON(w, http.StatusCreated, toLinkJSON(*link))
}

// MeLinkUpdate applies a partial link edit.
func (a *API) MeLinkUpdate(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid link ID")
		return
	}
	var req struct {
		Title    *string `json:"title"`
		URL      *string `json:"url"`
		Platform *string `json:"platform"`
		IsActive *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title != nil || req.URL != nil {
		current, err := a.linkStore.FindByID(id)
		if err != nil || current == nil || current.ProfileID != profile.ID {
			writeError(w, http.StatusNotFound, "Link not found")
			return
		}
		title, rawURL := current.Title, current.URL
		if req.Title != nil {
			title = *req.Title
		}
		if req.URL != nil {
			rawURL = *req.URL
		}
		if msg := validateLink(title, rawURL); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	link, err := a.linkStore.Update(profile.ID, id, models.LinkUpdate{
		Title: req.Title, URL: req.URL, Platform: req.Platform, IsActive: req.IsActive,
	})
	if err != nil {
		slog.Error("link update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if link == nil {
		writeError(w, http.StatusNotFound, "Link not found")
		return
	}
	a.pageCache.Invalidate(r.Context(), profile.Username)
	writeJSON(w, http.StatusOK, toLinkJSON(*link))
}

// MeLinkDelete removes a link.
func (a *API) MeLinkDelete(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid link ID")
		return
	}
	if err := a.linkStore.Delete(profile.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Link not found")
		return
	}
	a.pageCache.Invalidate(r.Context(), profile.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Link deleted"})
}

// MeLinksOrder rewrites the display order from the given ID list.
func (a *API) MeLinksOrder(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	var req struct {
		LinkIDs []uuid.UUID `json:"linkIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.LinkIDs) == 0 {
		writeError(w, http.StatusBadRequest, "linkIds is required")
		return
	}
	if err := a.linkStore.Reorder(profile.ID, req.LinkIDs); err != nil {
		slog.Error("link reorder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	a.pageCache.Invalidate(r.Context(), profile.Username)

	links, err := a.linkStore.ListByProfile(profile.ID, false)
	if err != nil {
		slog.Error("list links failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toLinksJSON(links))
}

// ---- /api/me/analytics ----

// AnalyticsOverview returns the today/7d/30d aggregate.
func (a *API) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	overview, err := a.analyticsStore.Overview(profile.ID)
	if err != nil {
		slog.Error("analytics overview failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// AnalyticsDaily returns the 30-day view time series.
func (a *API) AnalyticsDaily(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	daily, err := a.analyticsStore.DailySeries(profile.ID, 30)
	if err != nil {
		slog.Error("analytics daily series failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, daily)
}

// AnalyticsTopLinks returns the most-clicked links.
func (a *API) AnalyticsTopLinks(w http.ResponseWriter, r *http.Request) {
	profile := a.apiProfile(w, r)
	if profile == nil {
		return
	}
	top, err := a.analyticsStore.TopLinks(profile.ID, 10)
	if err != nil {
		slog.Error("top links failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// ---- /api/p (public) ----

// PublicProfile returns a profile by username.
func (a *API) PublicProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := a.publicLookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toProfileJSON(profile))
}

// PublicLinks returns a profile's active links.
func (a *API) PublicLinks(w http.ResponseWriter, r *http.Request) {
	profile, ok := a.publicLookup(w, r)
	if !ok {
		return
	}
	links, err := a.linkStore.ListByProfile(profile.ID, true)
	if err != nil {
		slog.Error("list links failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toLinksJSON(links))
}

// PublicView records a page view, fire-and-forget.
func (a *API) PublicView(w http.ResponseWriter, r *http.Request) {
	profile, ok := a.publicLookup(w, r)
	if !ok {
		return
	}
	a.recorder.RecordView(profile.ID)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Recorded"})
}

// LinkClick records a click on a link, fire-and-forget.
func (a *API) LinkClick(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid link ID")
		return
	}
	a.recorder.RecordClick(id)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Recorded"})
}

func (a *API) publicLookup(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	uname := username.Normalize(chi.URLParam(r, "username"))
	profile, err := a.profileStore.FindByUsername(uname)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "username", uname)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return nil, false
	}
	return profile, true
}
