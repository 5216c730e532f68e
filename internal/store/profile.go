// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"linkhub/internal/models"
)

// ErrUsernameTaken is returned when a profile update or creation collides
// with an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// ProfileStore handles all profile database operations.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileColumns = `id, user_id, username, display_name, bio, avatar_url, theme_settings, onboarded, plan, created_at, updated_at`

// scanProfile scans a profile row from the result set.
func scanProfile(scanner interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	err := scanner.Scan(
		&p.ID, &p.UserID, &p.Username, &p.DisplayName, &p.Bio,
		&p.AvatarURL, &p.ThemeSettings, &p.Onboarded, &p.Plan,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateForUser inserts an empty profile owned by the given user.
// Returns ErrUsernameTaken if the username is already in use.
func (s *ProfileStore) CreateForUser(userID uuid.UUID, username string) (*models.Profile, error) {
	row := s.db.QueryRow(`
		INSERT INTO profiles (user_id, username)
		VALUES ($1, $2)
		RETURNING `+profileColumns,
		userID, username,
	)
	p, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// FindByUserID retrieves the profile owned by a user. Returns nil if not found.
func (s *ProfileStore) FindByUserID(userID uuid.UUID) (*models.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by user id: %w", err)
	}
	return p, nil
}

// FindByUsername retrieves a profile by its public username. Returns nil
// if not found — callers render a not-found view instead of a profile.
func (s *ProfileStore) FindByUsername(username string) (*models.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by username: %w", err)
	}
	return p, nil
}

// UsernameTaken reports whether a username is already claimed.
func (s *ProfileStore) UsernameTaken(username string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM profiles WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// Update applies a partial profile edit; nil fields stay untouched.
// Returns ErrUsernameTaken when a username change collides.
func (s *ProfileStore) Update(userID uuid.UUID, upd models.ProfileUpdate) (*models.Profile, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Username != nil {
		sets = append(sets, "username = "+arg(*upd.Username))
	}
	if upd.DisplayName != nil {
		sets = append(sets, "display_name = "+arg(*upd.DisplayName))
	}
	if upd.Bio != nil {
		sets = append(sets, "bio = "+arg(*upd.Bio))
	}
	if upd.AvatarURL != nil {
		sets = append(sets, "avatar_url = "+arg(*upd.AvatarURL))
	}
	if upd.Theme != nil {
		sets = append(sets, "theme_settings = "+arg(*upd.Theme))
	}
	if upd.Onboarded != nil {
		sets = append(sets, "onboarded = "+arg(*upd.Onboarded))
	}

	query := `UPDATE profiles SET ` + strings.Join(sets, ", ") +
		` WHERE user_id = ` + arg(userID) + ` RETURNING ` + profileColumns

	p, err := scanProfile(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
