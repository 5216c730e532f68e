// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"fmt"
	"strings"
)

// GradientCSS turns a gradient definition into a CSS gradient value. It returns
// "" when the gradient is absent, disabled, or of an unknown type, in
// which case callers fall back to the solid background color. Stops are
// emitted in input order with no validation — an empty stop list yields a
// degenerate but non-crashing gradient call, and out-of-range positions
// pass through unclamped, preserving how existing persisted themes render.
func GradientCSS(g *BackgroundGradient) string {
	if g == nil || !g.Enabled {
		return ""
	}

	parts := make([]string, 0, len(g.ColorStops))
	for _, stop := range g.ColorStops {
		parts = append(parts, fmt.Sprintf("%s %d%%", stop.Color, stop.Position))
	}
	stops := strings.Join(parts, ", ")

	switch g.Type {
	case GradientLinear:
		return fmt.Sprintf("linear-gradient(%ddeg, %s)", g.Angle, stops)
	case GradientRadial:
		return fmt.Sprintf("radial-gradient(circle, %s)", stops)
	case GradientConic:
		return fmt.Sprintf("conic-gradient(from 0deg, %s)", stops)
	default:
		return ""
	}
}

// BackgroundCSS resolves the effective background value for a theme: the
// solid background color when no gradient applies, the gradient CSS when
// one is enabled, and "" when the gradient is enabled but of an unknown
// type (the render pipeline then falls back to the solid color).
func BackgroundCSS(t ThemeSettings) string {
	if t.BackgroundGradient == nil || !t.BackgroundGradient.Enabled {
		return t.BackgroundColor
	}
	return GradientCSS(t.BackgroundGradient)
}
