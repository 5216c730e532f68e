// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// style.go holds the closed enum-to-attribute mappings shared by every
// render target. All lookups are pure; unknown values resolve to the
// empty string so rendering stays total.
package theme

import "fmt"

// fontStacks maps each FontFamily to a concrete CSS font stack.
var fontStacks = map[FontFamily]string{
	FontSans:   "ui-sans-serif, system-ui, sans-serif",
	FontSerif:  "ui-serif, Georgia, serif",
	FontModern: "ui-monospace, Menlo, monospace",
}

// layoutClasses maps each Layout to the utility classes of the link list
// container.
var layoutClasses = map[Layout]string{
	LayoutStacked: "flex flex-col gap-3",
	LayoutGrid:    "grid grid-cols-2 gap-3",
	LayoutMinimal: "flex flex-col gap-2 max-w-sm",
}

// shapeClasses maps each ButtonShape to a corner radius class.
var shapeClasses = map[ButtonShape]string{
	ShapeRounded: "rounded-lg",
	ShapeSquare:  "rounded-none",
	ShapePill:    "rounded-full",
}

// shadowClasses maps each ButtonShadow to an elevation class.
var shadowClasses = map[ButtonShadow]string{
	ShadowNone:      "",
	ShadowSubtle:    "shadow-md",
	ShadowProminent: "shadow-xl",
}

// FontStack returns the CSS font stack for a font family.
func FontStack(f FontFamily) string { return fontStacks[f] }

// LayoutClass returns the container classes for a layout.
func LayoutClass(l Layout) string { return layoutClasses[l] }

// FillColors holds the resolved colors of one button fill mode.
type FillColors struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// ButtonVisual is the fully-resolved decoration of a single link button:
// its corner class, fill colors, and shadow class.
type ButtonVisual struct {
	ShapeClass  string     `json:"shapeClass"`
	Fill        FillColors `json:"fill"`
	ShadowClass string     `json:"shadowClass"`
}

// ButtonVisualFor resolves the button decoration for a theme. Every link
// on a profile gets the identical visual — buttons depend only on the
// theme, never on link content — so this is computed once per render.
// Two calls with the same theme value produce byte-identical results.
func ButtonVisualFor(t ThemeSettings) ButtonVisual {
	v := ButtonVisual{
		ShapeClass:  shapeClasses[t.ButtonStyle.Shape],
		ShadowClass: shadowClasses[t.ButtonStyle.Shadow],
	}

	switch t.ButtonStyle.Fill {
	case FillSolid:
		v.Fill = FillColors{
			Background: t.PrimaryColor,
			Border:     "transparent",
			Text:       "white",
		}
	case FillOutline:
		v.Fill = FillColors{
			Background: "transparent",
			Border:     t.PrimaryColor,
			Text:       t.PrimaryColor,
		}
	default:
		// Anything else, including unknown values, renders as the
		// primary-to-secondary sweep. Matches the legacy fill fallthrough.
		v.Fill = FillColors{
			Background: fmt.Sprintf("linear-gradient(to right, %s, %s)", t.PrimaryColor, t.SecondaryColor),
			Border:     "transparent",
			Text:       "white",
		}
	}

	return v
}
