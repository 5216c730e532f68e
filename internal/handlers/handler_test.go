// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"linkhub/internal/cache"
	"linkhub/internal/database"
	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/render"
	"linkhub/internal/session"
	"linkhub/internal/store"
	"linkhub/internal/telemetry"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "linkhub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "linkhub")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB             *sql.DB
	Valkey         *redis.Client
	Renderer       *render.Renderer
	Sessions       *session.Store
	UserStore      *store.UserStore
	ProfileStore   *store.ProfileStore
	LinkStore      *store.LinkStore
	AnalyticsStore *store.AnalyticsStore
	Recorder       *telemetry.Recorder
	PageCache      *cache.PageCache
	Auth           *Auth
	Dashboard      *Dashboard
	Public         *Public
	API            *API
}

// newTestEnv creates a complete test environment with all handler dependencies.
// Object storage is left unconfigured; avatar paths are exercised for their
// disabled behavior only.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	profileStore := store.NewProfileStore(db)
	linkStore := store.NewLinkStore(db)
	analyticsStore := store.NewAnalyticsStore(db)
	recorder := telemetry.NewRecorder(analyticsStore)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	auth := NewAuth(renderer, sessions, userStore, profileStore)
	dashboard := NewDashboard(renderer, sessions, userStore, profileStore, linkStore,
		analyticsStore, nil, pageCache, "http://localhost:8080")
	public := NewPublic(renderer, profileStore, linkStore, recorder, pageCache)
	api := NewAPI(sessions, userStore, profileStore, linkStore, analyticsStore, nil, recorder, pageCache)

	t.Cleanup(recorder.Flush)

	return &testEnv{
		DB:             db,
		Valkey:         vk,
		Renderer:       renderer,
		Sessions:       sessions,
		UserStore:      userStore,
		ProfileStore:   profileStore,
		LinkStore:      linkStore,
		AnalyticsStore: analyticsStore,
		Recorder:       recorder,
		PageCache:      pageCache,
		Auth:           auth,
		Dashboard:      dashboard,
		Public:         public,
		API:            api,
	}
}

// newTestAccount creates a throwaway user plus profile and registers
// cleanup. The username is randomized to keep parallel runs apart.
func newTestAccount(t *testing.T, env *testEnv) (*models.User, *models.Profile) {
	t.Helper()

	suffix := uuid.New().String()[:8]
	email := fmt.Sprintf("test-%s@example.com", suffix)
	uname := "tester-" + suffix

	user, err := env.UserStore.Create(email, "correct-horse")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	profile, err := env.ProfileStore.CreateForUser(user.ID, uname)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM users WHERE id = $1", user.ID)
		env.PageCache.Invalidate(context.Background(), uname)
	})

	return user, profile
}

// sessionFor builds session data for an account without touching Valkey.
func sessionFor(user *models.User, profile *models.Profile) *session.Data {
	return &session.Data{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Email:     user.Email,
		Username:  profile.Username,
		TwoFADone: true,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both chi URL param and session to a request.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}
