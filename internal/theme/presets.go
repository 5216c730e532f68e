// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

// Preset is a named, fixed starting-point theme offered in the
// appearance picker. The catalog is compiled-in configuration data:
// loaded once, never mutated, no create/update/delete.
type Preset struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Theme       ThemeSettings `json:"theme"`
}

// presets is the catalog in picker order. Access it through Presets().
var presets = []Preset{
	{
		Name:        "Classic Light",
		Description: "Clean and professional",
		Theme: ThemeSettings{
			Layout: LayoutStacked, PrimaryColor: "#6366f1", SecondaryColor: "#ec4899",
			BackgroundColor: "#ffffff", TextColor: "#0f172a", FontFamily: FontSans,
			ButtonStyle: ButtonStyle{Shape: ShapeRounded, Fill: FillSolid, Shadow: ShadowSubtle},
		},
	},
	{
		Name:        "Dark Mode",
		Description: "Easy on the eyes",
		Theme: ThemeSettings{
			Layout: LayoutStacked, PrimaryColor: "#818cf8", SecondaryColor: "#f472b6",
			BackgroundColor: "#1e293b", TextColor: "#f1f5f9", FontFamily: FontSans,
			ButtonStyle: ButtonStyle{Shape: ShapeRounded, Fill: FillSolid, Shadow: ShadowSubtle},
		},
	},
	{
		Name:        "Neon Vibes",
		Description: "Bold and modern",
		Theme: ThemeSettings{
			Layout: LayoutGrid, PrimaryColor: "#00ff00", SecondaryColor: "#ff00ff",
			BackgroundColor: "#0a0e27", TextColor: "#ffffff", FontFamily: FontModern,
			ButtonStyle: ButtonStyle{Shape: ShapePill, Fill: FillSolid, Shadow: ShadowProminent},
		},
	},
	{
		Name:        "Ocean Blue",
		Description: "Calm and serene",
		Theme: ThemeSettings{
			Layout: LayoutStacked, PrimaryColor: "#0ea5e9", SecondaryColor: "#06b6d4",
			BackgroundColor: "#f0f9ff", TextColor: "#0c4a6e", FontFamily: FontSans,
			ButtonStyle: ButtonStyle{Shape: ShapeRounded, Fill: FillOutline, Shadow: ShadowSubtle},
		},
	},
	{
		Name:        "Sunset",
		Description: "Warm and inviting",
		Theme: ThemeSettings{
			Layout: LayoutGrid, PrimaryColor: "#f97316", SecondaryColor: "#ef4444",
			BackgroundColor: "#fef3c7", TextColor: "#78350f", FontFamily: FontSerif,
			ButtonStyle: ButtonStyle{Shape: ShapeRounded, Fill: FillSolid, Shadow: ShadowSubtle},
		},
	},
	{
		Name:        "Minimal",
		Description: "Simple and elegant",
		Theme: ThemeSettings{
			Layout: LayoutMinimal, PrimaryColor: "#000000", SecondaryColor: "#808080",
			BackgroundColor: "#ffffff", TextColor: "#1f2937", FontFamily: FontSans,
			ButtonStyle: ButtonStyle{Shape: ShapeSquare, Fill: FillOutline, Shadow: ShadowNone},
		},
	},
	{
		Name:        "Purple Dream",
		Description: "Creative and bold",
		Theme: ThemeSettings{
			Layout: LayoutGrid, PrimaryColor: "#a78bfa", SecondaryColor: "#c084fc",
			BackgroundColor: "#2d1b4e", TextColor: "#f3e8ff", FontFamily: FontModern,
			ButtonStyle: ButtonStyle{Shape: ShapePill, Fill: FillGradient, Shadow: ShadowSubtle},
		},
	},
	{
		Name:        "Fresh Green",
		Description: "Natural and organic",
		Theme: ThemeSettings{
			Layout: LayoutStacked, PrimaryColor: "#10b981", SecondaryColor: "#34d399",
			BackgroundColor: "#ecfdf5", TextColor: "#064e3b", FontFamily: FontSans,
			ButtonStyle: ButtonStyle{Shape: ShapeRounded, Fill: FillSolid, Shadow: ShadowSubtle},
		},
	},
}

// Presets returns the catalog in stable picker order. The returned slice
// is a copy so callers cannot mutate the catalog.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// FindPreset returns the preset with the given name, or nil.
func FindPreset(name string) *Preset {
	for i := range presets {
		if presets[i].Name == name {
			p := presets[i]
			return &p
		}
	}
	return nil
}

// IsSelected reports whether a theme should highlight a preset in the
// picker. The match is deliberately partial — primary color and layout
// only, other fields are ignored. Two presets sharing both fields would
// all highlight at once; the current catalog has no such pair, and the
// match is kept as-is so existing picker behavior is unchanged.
func IsSelected(t ThemeSettings, p Preset) bool {
	return t.PrimaryColor == p.Theme.PrimaryColor && t.Layout == p.Theme.Layout
}
