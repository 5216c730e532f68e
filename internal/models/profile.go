// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a profile's subscription tier. Carried as data only — nothing
// in the server enforces plan limits yet.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

// Profile is the public link-in-bio page configuration, one per user.
// ThemeSettings holds the persisted theme as opaque JSON text; it is
// decoded by theme.Parse at render time, never here. Older rows may
// contain malformed or empty text — that is absorbed by the parser, which
// falls back to the default theme.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	ThemeSettings string    `json:"theme"`
	Onboarded     bool      `json:"onboarded"`
	Plan          Plan      `json:"plan"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileUpdate carries a partial profile edit. Nil fields are left
// untouched by ProfileStore.Update.
type ProfileUpdate struct {
	Username    *string
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	Theme       *string // JSON-encoded ThemeSettings
	Onboarded   *bool
}
