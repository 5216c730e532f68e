// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is one outbound button on a profile page. SortOrder defines
// display order; inactive links are soft-hidden from the public page but
// kept in the dashboard. ClickCount is maintained by the telemetry
// recorder and is never read by the rendering core.
type Link struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profile_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Platform   string    `json:"platform"`
	SortOrder  int       `json:"sort_order"`
	IsActive   bool      `json:"isActive"`
	ClickCount int       `json:"click_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LinkUpdate carries a partial link edit. Nil fields are left untouched.
type LinkUpdate struct {
	Title    *string
	URL      *string
	Platform *string
	IsActive *bool
}
