package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// demoTheme is the theme seeded onto the demo profile — the "Purple
// Dream" preset with a gradient background, so a fresh checkout shows
// the renderer doing something non-trivial.
const demoTheme = `{"layout":"grid","primaryColor":"#a78bfa","secondaryColor":"#c084fc","backgroundColor":"#2d1b4e","textColor":"#f3e8ff","fontFamily":"modern",` +
	`"backgroundGradient":{"enabled":true,"type":"linear","angle":135,"colorStops":[{"color":"#2d1b4e","position":0},{"color":"#1e1b4b","position":100}]},` +
	`"buttonStyle":{"shape":"pill","fill":"gradient","shadow":"subtle"}}`

// Seed populates the database with initial development data: one demo
// user with an onboarded profile and a few links. No-op if any users
// already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, "demo@linkhub.local", string(hash)).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	var profileID string
	err = db.QueryRow(`
		INSERT INTO profiles (user_id, username, display_name, bio, theme_settings, onboarded)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`, userID, "demo", "Demo Creator", "Welcome to my corner of the internet. _All_ my links live here.", demoTheme).Scan(&profileID)
	if err != nil {
		return fmt.Errorf("seed insert profile: %w", err)
	}

	links := []struct {
		title, url, platform string
		active               bool
	}{
		{"My YouTube Channel", "https://youtube.com/@demo", "youtube", true},
		{"Latest Mix on SoundCloud", "https://soundcloud.com/demo", "soundcloud", true},
		{"Instagram", "https://instagram.com/demo", "instagram", true},
		{"Old Portfolio", "https://demo.example.com", "website", false},
	}
	for i, l := range links {
		_, err := db.Exec(`
			INSERT INTO links (profile_id, title, url, platform, sort_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, profileID, l.title, l.url, l.platform, i, l.active)
		if err != nil {
			return fmt.Errorf("seed insert link %q: %w", l.title, err)
		}
	}

	slog.Info("database seeded with demo profile",
		"email", "demo@linkhub.local",
		"password", "demo1234",
		"username", "demo",
	)

	return nil
}
