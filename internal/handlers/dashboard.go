// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linkhub/internal/cache"
	"linkhub/internal/markdown"
	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/render"
	"linkhub/internal/session"
	"linkhub/internal/storage"
	"linkhub/internal/store"
	"linkhub/internal/theme"
	"linkhub/internal/username"
)

// Dashboard groups the HTML dashboard handlers: links, appearance,
// analytics, and settings tabs plus the live preview partial.
type Dashboard struct {
	renderer       *render.Renderer
	sessions       *session.Store
	userStore      *store.UserStore
	profileStore   *store.ProfileStore
	linkStore      *store.LinkStore
	analyticsStore *store.AnalyticsStore
	storageClient  *storage.Client // nil when S3 is not configured
	pageCache      *cache.PageCache
	baseURL        string
}

// NewDashboard creates a new Dashboard handler group. storageClient may
// be nil; avatar uploads are then rejected with an explanation.
func NewDashboard(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore, profileStore *store.ProfileStore, linkStore *store.LinkStore, analyticsStore *store.AnalyticsStore, storageClient *storage.Client, pageCache *cache.PageCache, baseURL string) *Dashboard {
	return &Dashboard{
		renderer:       renderer,
		sessions:       sessions,
		userStore:      userStore,
		profileStore:   profileStore,
		linkStore:      linkStore,
		analyticsStore: analyticsStore,
		storageClient:  storageClient,
		pageCache:      pageCache,
		baseURL:        baseURL,
	}
}

// currentProfile loads the profile for the session in the request
// context. A nil return means the response was already written.
func (d *Dashboard) currentProfile(w http.ResponseWriter, r *http.Request) *models.Profile {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil
	}
	profile, err := d.profileStore.FindByUserID(sess.UserID)
	if err != nil || profile == nil {
		slog.Error("profile lookup failed", "error", err, "user_id", sess.UserID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return profile
}

// invalidate drops the cached public page after any mutation.
func (d *Dashboard) invalidate(r *http.Request, profileUsername string) {
	d.pageCache.Invalidate(r.Context(), profileUsername)
}

// ---- Links tab ----

// LinksTab renders the link manager.
func (d *Dashboard) LinksTab(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	links, err := d.linkStore.ListByProfile(profile.ID, false)
	if err != nil {
		slog.Error("list links failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.renderer.Page(w, r, "links", &render.PageData{
		Title: "Links",
		Tab:   "links",
		Data:  map[string]any{"Links": links},
	})
}

// LinkCreate adds a link and re-renders the links tab.
func (d *Dashboard) LinkCreate(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	title := r.FormValue("title")
	rawURL := r.FormValue("url")
	if msg := validateLink(title, rawURL); msg != "" {
		d.renderLinksWithFlash(w, r, profile, msg, "error")
		return
	}
	if _, err := d.linkStore.Create(profile.ID, title, rawURL, r.FormValue("platform")); err != nil {
		slog.Error("link create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.invalidate(r, profile.Username)
	d.renderLinksWithFlash(w, r, profile, "Link added.", "success")
}

// LinkToggle flips a link's active flag.
func (d *Dashboard) LinkToggle(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	link, err := d.linkStore.FindByID(id)
	if err != nil || link == nil || link.ProfileID != profile.ID {
		http.NotFound(w, r)
		return
	}
	active := !link.IsActive
	if _, err := d.linkStore.Update(profile.ID, id, models.LinkUpdate{IsActive: &active}); err != nil {
		slog.Error("link toggle failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.invalidate(r, profile.Username)
	d.renderLinksWithFlash(w, r, profile, "", "")
}

// LinkDelete removes a link.
func (d *Dashboard) LinkDelete(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := d.linkStore.Delete(profile.ID, id); err != nil {
		slog.Error("link delete failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.invalidate(r, profile.Username)
	d.renderLinksWithFlash(w, r, profile, "Link deleted.", "success")
}

func (d *Dashboard) renderLinksWithFlash(w http.ResponseWriter, r *http.Request, profile *models.Profile, flash, flashType string) {
	links, err := d.linkStore.ListByProfile(profile.ID, false)
	if err != nil {
		slog.Error("list links failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.renderer.Page(w, r, "links", &render.PageData{
		Title:     "Links",
		Tab:       "links",
		Flash:     flash,
		FlashType: flashType,
		Data:      map[string]any{"Links": links},
	})
}

// ---- Appearance tab ----

// presetView is what the preset picker template consumes.
type presetView struct {
	Name        string
	Description string
	Swatch      string // background CSS for the preview chip
	Selected    bool
}

// AppearanceTab renders the theme editor.
func (d *Dashboard) AppearanceTab(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	d.renderAppearance(w, r, profile, "", "")
}

func (d *Dashboard) renderAppearance(w http.ResponseWriter, r *http.Request, profile *models.Profile, flash, flashType string) {
	t := theme.Resolve(theme.Parse(profile.ThemeSettings))

	var views []presetView
	for _, p := range theme.Presets() {
		swatch := theme.BackgroundCSS(theme.Resolve(p.Theme))
		views = append(views, presetView{
			Name:        p.Name,
			Description: p.Description,
			Swatch:      swatch,
			Selected:    theme.IsSelected(t, p),
		})
	}

	data := map[string]any{
		"Presets":         views,
		"Theme":           t,
		"GradientEnabled": false,
		"GradientType":    "linear",
		"GradientAngle":   90,
		"GradientFrom":    t.PrimaryColor,
		"GradientTo":      t.SecondaryColor,
	}
	if g := t.BackgroundGradient; g != nil {
		data["GradientEnabled"] = g.Enabled
		data["GradientType"] = string(g.Type)
		data["GradientAngle"] = g.Angle
		if len(g.ColorStops) > 0 {
			data["GradientFrom"] = g.ColorStops[0].Color
			data["GradientTo"] = g.ColorStops[len(g.ColorStops)-1].Color
		}
	}

	d.renderer.Page(w, r, "appearance", &render.PageData{
		Title:     "Appearance",
		Tab:       "appearance",
		Flash:     flash,
		FlashType: flashType,
		Data:      data,
	})
}

// ApplyPreset replaces the whole theme with a preset's settings.
func (d *Dashboard) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	preset := theme.FindPreset(r.FormValue("preset"))
	if preset == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := d.saveTheme(profile, preset.Theme); err != nil {
		slog.Error("preset apply failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.invalidate(r, profile.Username)

	profile.ThemeSettings = mustThemeJSON(preset.Theme)
	d.renderAppearance(w, r, profile, fmt.Sprintf("Applied the %s preset.", preset.Name), "success")
}

// ThemeSave persists the customize form.
func (d *Dashboard) ThemeSave(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}

	t := theme.ThemeSettings{
		Layout:          theme.Layout(r.FormValue("layout")),
		PrimaryColor:    r.FormValue("primaryColor"),
		SecondaryColor:  r.FormValue("secondaryColor"),
		BackgroundColor: r.FormValue("backgroundColor"),
		TextColor:       r.FormValue("textColor"),
		FontFamily:      theme.FontFamily(r.FormValue("fontFamily")),
		ButtonStyle: theme.ButtonStyle{
			Shape:  theme.ButtonShape(r.FormValue("buttonShape")),
			Fill:   theme.ButtonFill(r.FormValue("buttonFill")),
			Shadow: theme.ButtonShadow(r.FormValue("buttonShadow")),
		},
	}

	if r.FormValue("gradientEnabled") == "1" {
		angle, _ := strconv.Atoi(r.FormValue("gradientAngle"))
		t.BackgroundGradient = &theme.BackgroundGradient{
			Enabled: true,
			Type:    theme.GradientType(r.FormValue("gradientType")),
			Angle:   angle,
			ColorStops: []theme.GradientStop{
				{Color: r.FormValue("gradientFrom"), Position: 0},
				{Color: r.FormValue("gradientTo"), Position: 100},
			},
		}
	}

	if err := d.saveTheme(profile, t); err != nil {
		slog.Error("theme save failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.invalidate(r, profile.Username)

	profile.ThemeSettings = mustThemeJSON(t)
	d.renderAppearance(w, r, profile, "Theme saved.", "success")
}

func (d *Dashboard) saveTheme(profile *models.Profile, t theme.ThemeSettings) error {
	raw := mustThemeJSON(t)
	_, err := d.profileStore.Update(profile.UserID, models.ProfileUpdate{Theme: &raw})
	return err
}

func mustThemeJSON(t theme.ThemeSettings) string {
	b, _ := json.Marshal(t)
	return string(b)
}

// Preview renders the phone-frame live preview from the same
// RenderModel the public page uses.
func (d *Dashboard) Preview(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	links, err := d.linkStore.ListByProfile(profile.ID, true)
	if err != nil {
		slog.Error("list links failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	model := theme.BuildRenderModel(*profile, links, theme.Parse(profile.ThemeSettings))
	d.renderer.Preview(w, &render.ProfilePageData{
		Model:   model,
		BioHTML: bioHTML(model.Bio),
	})
}

// ---- Analytics tab ----

// AnalyticsTab renders the analytics overview.
func (d *Dashboard) AnalyticsTab(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	overview, err := d.analyticsStore.Overview(profile.ID)
	if err != nil {
		slog.Error("analytics overview failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	daily, err := d.analyticsStore.DailySeries(profile.ID, 30)
	if err != nil {
		slog.Error("analytics daily series failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	d.renderer.Page(w, r, "analytics", &render.PageData{
		Title: "Analytics",
		Tab:   "analytics",
		Data:  map[string]any{"Overview": overview, "Daily": daily},
	})
}

// ---- Settings tab ----

// ProfileSave persists the settings form.
func (d *Dashboard) ProfileSave(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}

	displayName := r.FormValue("displayName")
	bio := r.FormValue("bio")
	if msg := validateProfile(displayName, bio); msg != "" {
		d.renderSettings(w, r, profile, msg, "error")
		return
	}

	oldUsername := profile.Username
	uname := username.Normalize(r.FormValue("username"))
	if err := username.Validate(uname); err != nil {
		d.renderSettings(w, r, profile, err.Error(), "error")
		return
	}

	updated, err := d.profileStore.Update(profile.UserID, models.ProfileUpdate{
		Username:    &uname,
		DisplayName: &displayName,
		Bio:         &bio,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			d.renderSettings(w, r, profile, "This username is taken. Try another.", "error")
			return
		}
		slog.Error("profile save failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Both old and new public pages are stale now.
	d.invalidate(r, oldUsername)
	d.invalidate(r, updated.Username)

	// Keep the session's username current for the nav link.
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.Username != updated.Username {
		sess.Username = updated.Username
		d.sessions.Update(r.Context(), r, sess)
	}

	d.renderSettings(w, r, updated, "Profile saved.", "success")
}

func bioHTML(bio string) template.HTML {
	if bio == "" {
		return ""
	}
	html, err := markdown.ToHTML(bio)
	if err != nil {
		slog.Warn("bio markdown failed", "error", err)
		return ""
	}
	return template.HTML(html)
}
