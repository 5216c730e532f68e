// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"linkhub/internal/models"
)

// AnalyticsStore records and aggregates click and view telemetry.
// Writes are best-effort from the recorder's point of view; the queries
// here still return errors and let the caller decide to swallow them.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// InsertClick records one click event and bumps the link's denormalized
// click_count in the same transaction.
func (s *AnalyticsStore) InsertClick(linkID uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO link_click_events (link_id) VALUES ($1)`, linkID); err != nil {
		return fmt.Errorf("insert click event: %w", err)
	}
	if _, err := tx.Exec(`UPDATE links SET click_count = click_count + 1 WHERE id = $1`, linkID); err != nil {
		return fmt.Errorf("bump click count: %w", err)
	}

	return tx.Commit()
}

// InsertView records a page view for today. At most one row per profile
// per day; a repeat view the same day is a silent no-op.
func (s *AnalyticsStore) InsertView(profileID uuid.UUID) error {
	_, err := s.db.Exec(`
		INSERT INTO page_views (profile_id, view_date)
		VALUES ($1, CURRENT_DATE)
		ON CONFLICT ON CONSTRAINT uq_page_views_profile_day DO NOTHING
	`, profileID)
	if err != nil {
		return fmt.Errorf("insert page view: %w", err)
	}
	return nil
}

// Overview aggregates today / last-7-days / last-30-days stats plus the
// top five most-clicked links for the dashboard analytics tab.
func (s *AnalyticsStore) Overview(profileID uuid.UUID) (*models.AnalyticsOverview, error) {
	o := &models.AnalyticsOverview{}

	periods := []struct {
		stats *models.PeriodStats
		days  int
	}{
		{&o.Today, 0},
		{&o.Last7Days, 7},
		{&o.Last30Days, 30},
	}
	for _, p := range periods {
		stats, err := s.periodStats(profileID, p.days)
		if err != nil {
			return nil, err
		}
		*p.stats = stats
	}

	top, err := s.TopLinks(profileID, 5)
	if err != nil {
		return nil, err
	}
	o.TopLinks = top

	return o, nil
}

// periodStats counts views and clicks over the last `days` days
// (0 = today only) and derives the click-through rate.
func (s *AnalyticsStore) periodStats(profileID uuid.UUID, days int) (models.PeriodStats, error) {
	var st models.PeriodStats

	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM page_views
		WHERE profile_id = $1 AND view_date >= CURRENT_DATE - $2::int
	`, profileID, days).Scan(&st.Views)
	if err != nil {
		return st, fmt.Errorf("count views: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM link_click_events e
		JOIN links l ON l.id = e.link_id
		WHERE l.profile_id = $1 AND e.occurred_at >= CURRENT_DATE - $2::int
	`, profileID, days).Scan(&st.Clicks)
	if err != nil {
		return st, fmt.Errorf("count clicks: %w", err)
	}

	if st.Views > 0 {
		st.CTR = float64(st.Clicks) / float64(st.Views) * 100
	}
	return st, nil
}

// TopLinks returns the profile's most-clicked links, highest first.
func (s *AnalyticsStore) TopLinks(profileID uuid.UUID, limit int) ([]models.TopLink, error) {
	rows, err := s.db.Query(`
		SELECT id, title, platform, click_count
		FROM links
		WHERE profile_id = $1 AND click_count > 0
		ORDER BY click_count DESC, created_at ASC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("top links: %w", err)
	}
	defer rows.Close()

	var top []models.TopLink
	for rows.Next() {
		var t models.TopLink
		if err := rows.Scan(&t.ID, &t.Title, &t.Platform, &t.Clicks); err != nil {
			return nil, fmt.Errorf("scan top link: %w", err)
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

// DailySeries returns per-day view counts over the last `days` days,
// oldest first. Days with no views are absent from the result.
func (s *AnalyticsStore) DailySeries(profileID uuid.UUID, days int) ([]models.DailyCount, error) {
	rows, err := s.db.Query(`
		SELECT view_date, COUNT(*)
		FROM page_views
		WHERE profile_id = $1 AND view_date >= CURRENT_DATE - $2::int
		GROUP BY view_date
		ORDER BY view_date ASC
	`, profileID, days)
	if err != nil {
		return nil, fmt.Errorf("daily series: %w", err)
	}
	defer rows.Close()

	var series []models.DailyCount
	for rows.Next() {
		var d models.DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		series = append(series, d)
	}
	return series, rows.Err()
}
