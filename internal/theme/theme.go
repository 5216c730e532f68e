// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme implements the theme resolution and rendering-contract
// engine. A profile's persisted ThemeSettings (possibly a raw JSON string,
// possibly incomplete) is resolved against the default theme, turned into
// CSS values by the gradient and style resolvers, and packaged into a
// RenderModel that both the dashboard live preview and the public profile
// page render from. Everything in this package is a pure data transform:
// no I/O, no shared state, total over any well-typed input.
package theme

import "encoding/json"

// Layout controls how link buttons are arranged on a profile page.
type Layout string

const (
	LayoutStacked Layout = "stacked" // vertical single column
	LayoutGrid    Layout = "grid"    // two-column grid
	LayoutMinimal Layout = "minimal" // narrow single column, max-width constrained
)

// FontFamily selects one of the built-in font stacks.
type FontFamily string

const (
	FontSans   FontFamily = "sans"
	FontSerif  FontFamily = "serif"
	FontModern FontFamily = "modern"
)

// ButtonShape controls the corner radius of link buttons.
type ButtonShape string

const (
	ShapeRounded ButtonShape = "rounded"
	ShapeSquare  ButtonShape = "square"
	ShapePill    ButtonShape = "pill"
)

// ButtonFill controls how link buttons are colored.
type ButtonFill string

const (
	FillSolid    ButtonFill = "solid"
	FillOutline  ButtonFill = "outline"
	FillGradient ButtonFill = "gradient"
)

// ButtonShadow controls the elevation of link buttons.
type ButtonShadow string

const (
	ShadowNone      ButtonShadow = "none"
	ShadowSubtle    ButtonShadow = "subtle"
	ShadowProminent ButtonShadow = "prominent"
)

// GradientType selects the CSS gradient function.
type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
	GradientConic  GradientType = "conic"
)

// GradientStop is one (color, position) pair along a gradient's color
// ramp. Position is nominally 0-100 but is passed through unclamped.
type GradientStop struct {
	Color    string `json:"color"`
	Position int    `json:"position"`
}

// BackgroundGradient describes an optional gradient background. When
// Enabled is false the rest of the fields are ignored entirely.
type BackgroundGradient struct {
	Enabled    bool           `json:"enabled"`
	Type       GradientType   `json:"type"`
	Angle      int            `json:"angle"` // degrees, linear gradients only
	ColorStops []GradientStop `json:"colorStops"`
}

// ButtonStyle bundles the three button decoration choices. Persisted
// themes replace it as a whole object, never field by field.
type ButtonStyle struct {
	Shape  ButtonShape  `json:"shape"`
	Fill   ButtonFill   `json:"fill"`
	Shadow ButtonShadow `json:"shadow"`
}

// ThemeSettings is the full visual configuration of a public profile.
// Color fields are hex strings passed through without validation.
// Values are immutable once resolved; the resolvers never mutate them.
type ThemeSettings struct {
	Layout             Layout              `json:"layout"`
	PrimaryColor       string              `json:"primaryColor"`
	SecondaryColor     string              `json:"secondaryColor"`
	BackgroundColor    string              `json:"backgroundColor"`
	BackgroundGradient *BackgroundGradient `json:"backgroundGradient,omitempty"`
	TextColor          string              `json:"textColor"`
	FontFamily         FontFamily          `json:"fontFamily"`
	ButtonStyle        ButtonStyle         `json:"buttonStyle"`
}

// Default returns the canonical fallback theme. Every profile without a
// usable persisted theme renders with exactly these values.
func Default() ThemeSettings {
	return ThemeSettings{
		Layout:          LayoutStacked,
		PrimaryColor:    "#6366f1",
		SecondaryColor:  "#ec4899",
		BackgroundColor: "#ffffff",
		TextColor:       "#0f172a",
		FontFamily:      FontSans,
		ButtonStyle: ButtonStyle{
			Shape:  ShapeRounded,
			Fill:   FillSolid,
			Shadow: ShadowSubtle,
		},
	}
}

// Resolve overlays a possibly-incomplete theme onto the default, field by
// field at the top level. ButtonStyle and BackgroundGradient are replaced
// as whole sub-objects: a persisted ButtonStyle wins wholesale, the default
// one is used only when the persisted theme carries none at all. Unknown
// enum values are kept as-is; the style tables degrade them to empty
// classes rather than erroring. Resolve is idempotent.
func Resolve(t ThemeSettings) ThemeSettings {
	def := Default()

	if t.Layout == "" {
		t.Layout = def.Layout
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = def.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = def.SecondaryColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = def.BackgroundColor
	}
	if t.TextColor == "" {
		t.TextColor = def.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = def.FontFamily
	}
	if t.ButtonStyle == (ButtonStyle{}) {
		t.ButtonStyle = def.ButtonStyle
	}
	// BackgroundGradient: nil means "no gradient", which is the default.
	return t
}

// Parse is the single entry point that absorbs the storage-boundary
// ambiguity: the persisted theme may arrive as a JSON string, raw bytes,
// an already-structured ThemeSettings, or nothing at all. It fails soft —
// malformed input yields the default theme, never an error.
func Parse(raw any) ThemeSettings {
	switch v := raw.(type) {
	case nil:
		return Default()
	case ThemeSettings:
		return Resolve(v)
	case *ThemeSettings:
		if v == nil {
			return Default()
		}
		return Resolve(*v)
	case string:
		return parseJSON([]byte(v))
	case []byte:
		return parseJSON(v)
	case json.RawMessage:
		return parseJSON(v)
	default:
		return Default()
	}
}

// parseJSON decodes a serialized theme, falling back to the default on
// any decode failure. A JSON "null" decodes to the zero value, which
// Resolve fills in completely. Clients historically sent the theme as a
// JSON string containing JSON, so one level of double encoding is
// unwrapped.
func parseJSON(data []byte) ThemeSettings {
	var t ThemeSettings
	if err := json.Unmarshal(data, &t); err != nil {
		var inner string
		if err := json.Unmarshal(data, &inner); err == nil && inner != "" {
			return parseJSON([]byte(inner))
		}
		return Default()
	}
	return Resolve(t)
}
