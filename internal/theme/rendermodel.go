// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "linkhub/internal/models"

// RenderButton pairs one active link with its resolved decoration.
type RenderButton struct {
	Link   models.Link
	Visual ButtonVisual
}

// RenderModel is the fully-resolved bundle describing exactly how to draw
// a profile and its active links. It is the only structure the two render
// targets (dashboard live preview, public profile page) may depend on:
// both render strictly from these fields and never re-derive colors,
// shapes, or ordering on their own, so they cannot diverge.
type RenderModel struct {
	DisplayName   string
	Bio           string
	AvatarURL     string
	BackgroundCSS string
	TextColor     string
	PrimaryColor  string // avatar ring color
	FontFamily    string // resolved CSS font stack
	LayoutClass   string // link container classes
	Buttons       []RenderButton
}

// BuildRenderModel packages a profile, its links, and a theme into a
// RenderModel. The theme is resolved first, so callers may pass a partial
// or even zero-valued ThemeSettings. Links are filtered to isActive only,
// preserving input order — display order is the store's responsibility.
// For identical inputs the output is identical regardless of call site.
func BuildRenderModel(profile models.Profile, links []models.Link, t ThemeSettings) RenderModel {
	t = Resolve(t)

	background := BackgroundCSS(t)
	if background == "" {
		// Unknown gradient type — fall back to the solid color.
		background = t.BackgroundColor
	}

	// One visual per theme; every button shares it.
	visual := ButtonVisualFor(t)

	var buttons []RenderButton
	for _, link := range links {
		if !link.IsActive {
			continue
		}
		buttons = append(buttons, RenderButton{Link: link, Visual: visual})
	}

	m := RenderModel{
		DisplayName:   profile.DisplayName,
		Bio:           profile.Bio,
		BackgroundCSS: background,
		TextColor:     t.TextColor,
		PrimaryColor:  t.PrimaryColor,
		FontFamily:    FontStack(t.FontFamily),
		LayoutClass:   LayoutClass(t.Layout),
		Buttons:       buttons,
	}
	if profile.AvatarURL != nil {
		m.AvatarURL = *profile.AvatarURL
	}
	if m.DisplayName == "" {
		m.DisplayName = profile.Username
	}
	return m
}
