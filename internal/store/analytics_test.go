// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "testing"

func TestAnalyticsStore_ClickBumpsCount(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	analytics := NewAnalyticsStore(db)

	_, p := testAccount(t, db, "clicks@test.local", "clicks-user")
	l := mustCreateLink(t, links, p.ID, "clicked")

	for i := 0; i < 3; i++ {
		if err := analytics.InsertClick(l.ID); err != nil {
			t.Fatalf("InsertClick: %v", err)
		}
	}

	loaded, err := links.FindByID(l.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if loaded.ClickCount != 3 {
		t.Errorf("ClickCount = %d, want 3", loaded.ClickCount)
	}
}

func TestAnalyticsStore_ViewDedupPerDay(t *testing.T) {
	db := testDB(t)
	analytics := NewAnalyticsStore(db)

	_, p := testAccount(t, db, "views@test.local", "views-user")

	// Repeat views the same day collapse to one row, without error.
	for i := 0; i < 5; i++ {
		if err := analytics.InsertView(p.ID); err != nil {
			t.Fatalf("InsertView #%d: %v", i, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM page_views WHERE profile_id = $1", p.ID).Scan(&count); err != nil {
		t.Fatalf("count views: %v", err)
	}
	if count != 1 {
		t.Errorf("page_views rows = %d, want 1", count)
	}
}

func TestAnalyticsStore_Overview(t *testing.T) {
	db := testDB(t)
	links := NewLinkStore(db)
	analytics := NewAnalyticsStore(db)

	_, p := testAccount(t, db, "overview@test.local", "overview-user")
	popular := mustCreateLink(t, links, p.ID, "popular")
	quiet := mustCreateLink(t, links, p.ID, "quiet")

	if err := analytics.InsertView(p.ID); err != nil {
		t.Fatalf("InsertView: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := analytics.InsertClick(popular.ID); err != nil {
			t.Fatalf("InsertClick: %v", err)
		}
	}
	if err := analytics.InsertClick(quiet.ID); err != nil {
		t.Fatalf("InsertClick: %v", err)
	}

	o, err := analytics.Overview(p.ID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if o.Today.Views != 1 || o.Today.Clicks != 3 {
		t.Errorf("today = %+v", o.Today)
	}
	if o.Today.CTR != 300 {
		t.Errorf("CTR = %v, want 300", o.Today.CTR)
	}
	if o.Last7Days.Views != 1 || o.Last30Days.Clicks != 3 {
		t.Errorf("windows = %+v / %+v", o.Last7Days, o.Last30Days)
	}

	if len(o.TopLinks) != 2 {
		t.Fatalf("TopLinks = %+v", o.TopLinks)
	}
	if o.TopLinks[0].Title != "popular" || o.TopLinks[0].Clicks != 2 {
		t.Errorf("top link = %+v", o.TopLinks[0])
	}
}

func TestAnalyticsStore_DailySeries(t *testing.T) {
	db := testDB(t)
	analytics := NewAnalyticsStore(db)

	_, p := testAccount(t, db, "series@test.local", "series-user")

	if err := analytics.InsertView(p.ID); err != nil {
		t.Fatalf("InsertView: %v", err)
	}

	series, err := analytics.DailySeries(p.ID, 7)
	if err != nil {
		t.Fatalf("DailySeries: %v", err)
	}
	if len(series) != 1 || series[0].Count != 1 {
		t.Errorf("series = %+v", series)
	}
}
