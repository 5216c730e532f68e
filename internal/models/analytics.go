// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PeriodStats aggregates views and clicks over a date window. CTR is
// clicks/views as a percentage, 0 when there are no views.
type PeriodStats struct {
	Views  int     `json:"views"`
	Clicks int     `json:"clicks"`
	CTR    float64 `json:"ctr"`
}

// TopLink is one row of the most-clicked links table.
type TopLink struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Platform string    `json:"platform"`
	Clicks   int       `json:"clicks"`
}

// AnalyticsOverview is the dashboard analytics summary.
type AnalyticsOverview struct {
	Today      PeriodStats `json:"today"`
	Last7Days  PeriodStats `json:"last7Days"`
	Last30Days PeriodStats `json:"last30Days"`
	TopLinks   []TopLink   `json:"topLinks"`
}

// DailyCount is one day of the views-or-clicks time series.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
