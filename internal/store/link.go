// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"linkhub/internal/models"
)

// LinkStore handles all link database operations. Display order is
// (sort_order, created_at): creation order by default, explicit order
// once Reorder has been applied.
type LinkStore struct {
	db *sql.DB
}

// NewLinkStore creates a new LinkStore.
func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

const linkColumns = `id, profile_id, title, url, platform, sort_order, is_active, click_count, created_at, updated_at`

// scanLink scans a link row from the result set.
func scanLink(scanner interface{ Scan(...any) error }) (*models.Link, error) {
	var l models.Link
	err := scanner.Scan(
		&l.ID, &l.ProfileID, &l.Title, &l.URL, &l.Platform,
		&l.SortOrder, &l.IsActive, &l.ClickCount, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByProfile returns a profile's links in display order. With
// onlyActive set, soft-hidden links are excluded (the public page and
// API use this; the dashboard lists everything).
func (s *LinkStore) ListByProfile(profileID uuid.UUID, onlyActive bool) ([]models.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE profile_id = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := s.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

// FindByID retrieves a link by its UUID. Returns nil if not found.
func (s *LinkStore) FindByID(id uuid.UUID) (*models.Link, error) {
	row := s.db.QueryRow(`SELECT `+linkColumns+` FROM links WHERE id = $1`, id)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find link by id: %w", err)
	}
	return l, nil
}

// Create inserts a new link at the end of the profile's display order.
// New links are active by default.
func (s *LinkStore) Create(profileID uuid.UUID, title, url, platform string) (*models.Link, error) {
	row := s.db.QueryRow(`
		INSERT INTO links (profile_id, title, url, platform, sort_order)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM links WHERE profile_id = $1))
		RETURNING `+linkColumns,
		profileID, title, url, platform,
	)
	l, err := scanLink(row)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return l, nil
}

// Update applies a partial link edit; nil fields stay untouched. The
// link must belong to the given profile. Returns nil if not found.
func (s *LinkStore) Update(profileID, id uuid.UUID, upd models.LinkUpdate) (*models.Link, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Title != nil {
		sets = append(sets, "title = "+arg(*upd.Title))
	}
	if upd.URL != nil {
		sets = append(sets, "url = "+arg(*upd.URL))
	}
	if upd.Platform != nil {
		sets = append(sets, "platform = "+arg(*upd.Platform))
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active = "+arg(*upd.IsActive))
	}

	query := `UPDATE links SET ` + strings.Join(sets, ", ") +
		` WHERE id = ` + arg(id) + ` AND profile_id = ` + arg(profileID) +
		` RETURNING ` + linkColumns

	l, err := scanLink(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}
	return l, nil
}

// Delete removes a link owned by the given profile.
func (s *LinkStore) Delete(profileID, id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM links WHERE id = $1 AND profile_id = $2`, id, profileID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("link not found")
	}
	return nil
}

// Reorder rewrites sort_order to match the given ID sequence. IDs not in
// the sequence keep their old sort_order and sink below reordered ones
// only by their existing values. Uses a transaction so a partial reorder
// is never visible.
func (s *LinkStore) Reorder(profileID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, id := range orderedIDs {
		_, err := tx.Exec(`
			UPDATE links SET sort_order = $1, updated_at = NOW()
			WHERE id = $2 AND profile_id = $3
		`, i, id, profileID)
		if err != nil {
			return fmt.Errorf("reorder link %s: %w", id, err)
		}
	}

	return tx.Commit()
}
