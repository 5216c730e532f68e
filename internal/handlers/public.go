// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkhub/internal/cache"
	"linkhub/internal/middleware"
	"linkhub/internal/render"
	"linkhub/internal/store"
	"linkhub/internal/telemetry"
	"linkhub/internal/theme"
	"linkhub/internal/username"
)

// Public serves the visitor-facing profile pages. It checks the Valkey
// page cache before building a RenderModel, and stores rendered pages
// on miss. Page views are recorded fire-and-forget.
type Public struct {
	renderer     *render.Renderer
	profileStore *store.ProfileStore
	linkStore    *store.LinkStore
	recorder     *telemetry.Recorder
	pageCache    *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, profileStore *store.ProfileStore, linkStore *store.LinkStore, recorder *telemetry.Recorder, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:     renderer,
		profileStore: profileStore,
		linkStore:    linkStore,
		recorder:     recorder,
		pageCache:    pageCache,
	}
}

// ProfilePage renders a public profile by username. Unknown usernames
// get the not-found page; the render pipeline is never invoked for them.
func (p *Public) ProfilePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uname := username.Normalize(chi.URLParam(r, "username"))

	if cached, ok := p.pageCache.Get(ctx, uname); ok {
		p.recordView(uname)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	profile, err := p.profileStore.FindByUsername(uname)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "username", uname)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		p.renderer.NotFound(w)
		return
	}

	links, err := p.linkStore.ListByProfile(profile.ID, true)
	if err != nil {
		slog.Error("list links failed", "error", err, "username", uname)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	model := theme.BuildRenderModel(*profile, links, theme.Parse(profile.ThemeSettings))
	html, err := p.renderer.ProfileHTML(&render.ProfilePageData{
		Model:   model,
		BioHTML: bioHTML(model.Bio),
	})
	if err != nil {
		slog.Error("profile render failed", "error", err, "username", uname)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, uname, html)
	p.recorder.RecordView(profile.ID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// recordView resolves the profile ID for a cache hit and records the
// view. The extra lookup only happens on hits, where no render work
// was done.
func (p *Public) recordView(uname string) {
	profile, err := p.profileStore.FindByUsername(uname)
	if err != nil || profile == nil {
		return
	}
	p.recorder.RecordView(profile.ID)
}

// Landing sends visitors at the bare domain somewhere useful: the
// dashboard when logged in, the signup page otherwise.
func Landing(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/signup", http.StatusSeeOther)
}

// Health returns a simple JSON health check response.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
