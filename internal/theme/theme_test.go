// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"reflect"
	"testing"
)

// TestDefault_Completeness pins the documented default theme exactly.
func TestDefault_Completeness(t *testing.T) {
	def := Default()

	if def.Layout != LayoutStacked {
		t.Errorf("Layout = %q, want stacked", def.Layout)
	}
	if def.PrimaryColor != "#6366f1" {
		t.Errorf("PrimaryColor = %q, want #6366f1", def.PrimaryColor)
	}
	if def.SecondaryColor != "#ec4899" {
		t.Errorf("SecondaryColor = %q, want #ec4899", def.SecondaryColor)
	}
	if def.BackgroundColor != "#ffffff" {
		t.Errorf("BackgroundColor = %q, want #ffffff", def.BackgroundColor)
	}
	if def.TextColor != "#0f172a" {
		t.Errorf("TextColor = %q, want #0f172a", def.TextColor)
	}
	if def.FontFamily != FontSans {
		t.Errorf("FontFamily = %q, want sans", def.FontFamily)
	}
	want := ButtonStyle{Shape: ShapeRounded, Fill: FillSolid, Shadow: ShadowSubtle}
	if def.ButtonStyle != want {
		t.Errorf("ButtonStyle = %+v, want %+v", def.ButtonStyle, want)
	}
	if def.BackgroundGradient != nil {
		t.Errorf("BackgroundGradient = %+v, want nil", def.BackgroundGradient)
	}
}

func TestResolve_ZeroValueYieldsDefault(t *testing.T) {
	if got := Resolve(ThemeSettings{}); !reflect.DeepEqual(got, Default()) {
		t.Errorf("Resolve(zero) = %+v, want default", got)
	}
}

func TestResolve_PartialOverlay(t *testing.T) {
	got := Resolve(ThemeSettings{
		PrimaryColor: "#123456",
		Layout:       LayoutGrid,
	})

	if got.PrimaryColor != "#123456" {
		t.Errorf("PrimaryColor = %q, want #123456", got.PrimaryColor)
	}
	if got.Layout != LayoutGrid {
		t.Errorf("Layout = %q, want grid", got.Layout)
	}
	// Everything untouched comes from the default.
	if got.SecondaryColor != "#ec4899" || got.TextColor != "#0f172a" {
		t.Errorf("defaults not filled in: %+v", got)
	}
	if got.ButtonStyle != Default().ButtonStyle {
		t.Errorf("ButtonStyle = %+v, want default", got.ButtonStyle)
	}
}

// TestResolve_ButtonStyleWholeObject verifies that a persisted button
// style replaces the default wholesale rather than being deep-merged.
func TestResolve_ButtonStyleWholeObject(t *testing.T) {
	got := Resolve(ThemeSettings{
		ButtonStyle: ButtonStyle{Shape: ShapePill},
	})

	if got.ButtonStyle.Shape != ShapePill {
		t.Errorf("Shape = %q, want pill", got.ButtonStyle.Shape)
	}
	// Fill and Shadow stay as persisted (empty), not default values.
	if got.ButtonStyle.Fill != "" || got.ButtonStyle.Shadow != "" {
		t.Errorf("ButtonStyle deep-merged: %+v", got.ButtonStyle)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	inputs := []ThemeSettings{
		{},
		Default(),
		{PrimaryColor: "#000000"},
		{Layout: "bogus", FontFamily: "comic-sans"},
		{BackgroundGradient: &BackgroundGradient{Enabled: true, Type: GradientLinear}},
	}
	for _, in := range inputs {
		once := Resolve(in)
		twice := Resolve(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Resolve not idempotent for %+v: %+v != %+v", in, once, twice)
		}
	}
}

// TestResolve_UnknownEnumsPassThrough: semantically odd values are kept,
// never corrected, so legacy rows keep rendering the same way.
func TestResolve_UnknownEnumsPassThrough(t *testing.T) {
	got := Resolve(ThemeSettings{Layout: "sideways", FontFamily: "wingdings"})
	if got.Layout != "sideways" {
		t.Errorf("Layout = %q, want sideways", got.Layout)
	}
	if got.FontFamily != "wingdings" {
		t.Errorf("FontFamily = %q, want wingdings", got.FontFamily)
	}
}

func TestParse_SoftFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"malformed json", "{not json"},
		{"json null", "null"},
		{"wrong shape", `[1,2,3]`},
		{"unexpected type", 42},
		{"nil pointer", (*ThemeSettings)(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.raw); !reflect.DeepEqual(got, Default()) {
				t.Errorf("Parse(%v) = %+v, want default", tc.raw, got)
			}
		})
	}
}

func TestParse_SerializedString(t *testing.T) {
	raw := `{"layout":"grid","primaryColor":"#00ff00","buttonStyle":{"shape":"pill","fill":"gradient","shadow":"prominent"}}`

	got := Parse(raw)
	if got.Layout != LayoutGrid {
		t.Errorf("Layout = %q, want grid", got.Layout)
	}
	if got.PrimaryColor != "#00ff00" {
		t.Errorf("PrimaryColor = %q, want #00ff00", got.PrimaryColor)
	}
	if got.ButtonStyle.Fill != FillGradient {
		t.Errorf("Fill = %q, want gradient", got.ButtonStyle.Fill)
	}
	// Missing fields resolved from default.
	if got.BackgroundColor != "#ffffff" {
		t.Errorf("BackgroundColor = %q, want #ffffff", got.BackgroundColor)
	}
}

func TestParse_DoubleEncodedString(t *testing.T) {
	// Some clients send the theme as a JSON string containing JSON.
	raw := `"{\"primaryColor\":\"#123456\"}"`

	got := Parse(raw)
	if got.PrimaryColor != "#123456" {
		t.Errorf("PrimaryColor = %q, want #123456", got.PrimaryColor)
	}
	if got.BackgroundColor != "#ffffff" {
		t.Errorf("BackgroundColor = %q, want #ffffff", got.BackgroundColor)
	}
}

func TestParse_StructuredInput(t *testing.T) {
	in := ThemeSettings{PrimaryColor: "#abcdef"}

	got := Parse(in)
	if got.PrimaryColor != "#abcdef" {
		t.Errorf("PrimaryColor = %q, want #abcdef", got.PrimaryColor)
	}
	if got.Layout != LayoutStacked {
		t.Errorf("Layout = %q, want stacked default", got.Layout)
	}

	// Pointer form behaves identically.
	if byPtr := Parse(&in); !reflect.DeepEqual(byPtr, got) {
		t.Errorf("Parse(ptr) = %+v, want %+v", byPtr, got)
	}
}

func TestParse_GradientSurvivesRoundTrip(t *testing.T) {
	raw := `{"backgroundGradient":{"enabled":true,"type":"linear","angle":45,"colorStops":[{"color":"#000","position":0},{"color":"#fff","position":100}]}}`

	got := Parse(raw)
	g := got.BackgroundGradient
	if g == nil || !g.Enabled {
		t.Fatalf("gradient not parsed: %+v", g)
	}
	if g.Type != GradientLinear || g.Angle != 45 {
		t.Errorf("gradient = %+v, want linear/45", g)
	}
	if len(g.ColorStops) != 2 || g.ColorStops[0].Color != "#000" || g.ColorStops[1].Position != 100 {
		t.Errorf("stops = %+v", g.ColorStops)
	}
}
