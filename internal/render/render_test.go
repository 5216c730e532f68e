package render

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/session"
	"linkhub/internal/theme"
)

// helperSession returns session data suitable for dashboard templates.
func helperSession() *session.Data {
	return &session.Data{
		UserID:    uuid.New(),
		ProfileID: uuid.New(),
		Email:     "test@linkhub.local",
		Username:  "testuser",
		TwoFADone: true,
	}
}

// helperRequest builds a request whose context carries a session, the
// way the middleware chain would.
func helperRequest(method, target string, sess *session.Data) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if sess != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, sess))
	}
	return req
}

func helperModel() theme.RenderModel {
	profile := models.Profile{Username: "testuser", DisplayName: "Test User", Bio: "hello"}
	links := []models.Link{
		{ID: uuid.New(), Title: "My Site", URL: "https://example.com", IsActive: true},
		{ID: uuid.New(), Title: "Hidden", URL: "https://example.com/x", IsActive: false},
	}
	return theme.BuildRenderModel(profile, links, theme.Default())
}

func TestNew(t *testing.T) {
	for _, devMode := range []bool{true, false} {
		rn, err := New(devMode)
		if err != nil {
			t.Fatalf("New(devMode=%v): %v", devMode, err)
		}

		for _, name := range []string{"links", "appearance", "analytics", "settings", "login", "signup", "2fa_setup", "2fa_verify", "preview"} {
			if _, ok := rn.dashboard[name]; !ok {
				t.Errorf("dashboard template %q not parsed", name)
			}
		}
		for _, name := range []string{"profile", "notfound"} {
			if _, ok := rn.public[name]; !ok {
				t.Errorf("public template %q not parsed", name)
			}
		}
		if _, ok := rn.dashboard["base"]; ok {
			t.Error("base.html should not be registered as a page template")
		}
	}
}

func TestPageFullRender(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := helperRequest(http.MethodGet, "/dashboard", helperSession())
	rr := httptest.NewRecorder()
	rn.Page(rr, req, "links", &PageData{
		Title: "Links",
		Tab:   "links",
		Data:  map[string]any{"Links": []models.Link{}},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("full render should include the base layout")
	}
	if !strings.Contains(body, "testuser") {
		t.Error("layout should show the session username")
	}
}

func TestPageHTMXPartial(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := helperRequest(http.MethodGet, "/dashboard", helperSession())
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	rn.Page(rr, req, "links", &PageData{
		Tab:  "links",
		Data: map[string]any{"Links": []models.Link{}},
	})

	body := rr.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX partial should not include the base layout")
	}
	if !strings.Contains(body, "Add a link") {
		t.Error("partial should contain the tab content")
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := helperRequest(http.MethodGet, "/dashboard", helperSession())
	rr := httptest.NewRecorder()
	rn.Page(rr, req, "nope", &PageData{})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", rr.Code)
	}
}

func TestProfileHTML(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := rn.ProfileHTML(&ProfilePageData{
		Model:   helperModel(),
		BioHTML: template.HTML("<p>hello</p>"),
	})
	if err != nil {
		t.Fatalf("ProfileHTML: %v", err)
	}

	body := string(html)
	if !strings.Contains(body, "Test User") {
		t.Error("profile page should show the display name")
	}
	if !strings.Contains(body, "My Site") {
		t.Error("profile page should show active links")
	}
	if strings.Contains(body, "Hidden") {
		t.Error("profile page should not show inactive links")
	}
	if !strings.Contains(body, "background: #ffffff") {
		t.Errorf("profile page should carry the resolved background, body: %.200s", body)
	}
	if strings.Contains(body, "ZgotmplZ") {
		t.Error("a computed style value was rejected by html/template")
	}
}

func TestPreviewSharesModel(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rr := httptest.NewRecorder()
	rn.Preview(rr, &ProfilePageData{Model: helperModel()})

	body := rr.Body.String()
	if !strings.Contains(body, "Test User") || !strings.Contains(body, "My Site") {
		t.Error("preview should render the same model fields as the public page")
	}
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("preview is a partial, not a full page")
	}
	if strings.Contains(body, "ZgotmplZ") {
		t.Error("a computed style value was rejected by html/template")
	}
}

func TestNotFound(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rr := httptest.NewRecorder()
	rn.NotFound(rr)

	if rr.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "doesn't exist") {
		t.Error("not-found page content missing")
	}
}
