package config

import (
	"github.com/adforge/playable/internal/core"
)

// Well-known top-level sections of the configuration document. Patch kinds
// map onto these; see the patch package.
const (
	SectionText         = "text"
	SectionActionButton = "actionButton"
	SectionCTAButton    = "ctaButton"
	SectionScoreBox     = "scoreBox"
	SectionLayout       = "layout"
	SectionAssetScales  = "assetScales"
	SectionBackground   = "background"
	SectionFonts        = "fonts"
	SectionAssets       = "assets"
	SectionGameplay     = "gameplay"
	SectionTracking     = "tracking"
	SectionFPD          = "fpd"
)

// ButtonSpec is the resolved description of a composite button element
// (background fill + label + hit region). The box size derives from the label
// at creation time, which is why text and size changes force a full recreate.
type ButtonSpec struct {
	Text      string
	TextColor core.Color
	FillColor core.Color
	Pos       core.FracPoint
	WidthFrac float64 // 0 means size to label
	FontKey   string
	Visible   bool
}

// Button resolves a button section (actionButton, ctaButton, scoreBox) into
// a spec, filling defaults for every missing field.
func Button(s *Store, section string) ButtonSpec {
	return ButtonSpec{
		Text:      s.Str("PLAY", section, "text"),
		TextColor: core.ColorOr(s.Str("", section, "textColor"), core.RGB(255, 255, 255)),
		FillColor: core.ColorOr(s.Str("", section, "color"), core.RGB(0x33, 0x66, 0xcc)),
		Pos: core.FracPoint{
			X: s.Frac(0.5, section, "x"),
			Y: s.Frac(0.8, section, "y"),
		},
		WidthFrac: s.Frac(0, section, "width"),
		FontKey:   s.Str("primary", section, "font"),
		Visible:   s.Bool(true, section, "visible"),
	}
}

// BackgroundKind enumerates supported background fills.
type BackgroundKind int

const (
	BackgroundSolid BackgroundKind = iota
	BackgroundGradient
	BackgroundImage
)

// BackgroundSpec is the resolved background description for a scene.
type BackgroundSpec struct {
	Kind     BackgroundKind
	Color    core.Color
	ColorTop core.Color
	ColorBot core.Color
	AssetKey string
}

// Background resolves the background section, filling missing fields.
// An image background with no resolvable asset degrades to solid.
func Background(s *Store) BackgroundSpec {
	spec := BackgroundSpec{
		Color:    core.ColorOr(s.Str("", SectionBackground, "color"), core.RGB(0x10, 0x10, 0x20)),
		ColorTop: core.ColorOr(s.Str("", SectionBackground, "colorTop"), core.RGB(0x10, 0x10, 0x20)),
		ColorBot: core.ColorOr(s.Str("", SectionBackground, "colorBottom"), core.RGB(0x30, 0x30, 0x50)),
		AssetKey: s.Str("", SectionBackground, "image"),
	}
	switch s.Str("solid", SectionBackground, "type") {
	case "gradient":
		spec.Kind = BackgroundGradient
	case "image":
		spec.Kind = BackgroundImage
	default:
		spec.Kind = BackgroundSolid
	}
	return spec
}

// FontSpec describes a configured font. The terminal renderer maps families
// to style variants; the async-load contract still applies.
type FontSpec struct {
	Family string
	Bold   bool
}

// Font resolves a named font slot from the fonts section.
func Font(s *Store, key string) FontSpec {
	return FontSpec{
		Family: s.Str("default", SectionFonts, key, "family"),
		Bold:   s.Bool(false, SectionFonts, key, "bold"),
	}
}

// Placement identifies where in the flow a first-party-data capture happens.
type Placement string

const (
	PlacementAfterSplash Placement = "afterSplash"
	PlacementMidGame     Placement = "midGame"
	PlacementBeforeEnd   Placement = "beforeEnd"
)

// CaptureScreens is the set of screens requested for one placement.
type CaptureScreens struct {
	Age    bool
	Gender bool
	Email  bool
}

// Any reports whether at least one screen is enabled.
func (c CaptureScreens) Any() bool {
	return c.Age || c.Gender || c.Email
}

// FPDScreens reads the screen toggles configured for a placement.
func FPDScreens(s *Store, p Placement) CaptureScreens {
	return CaptureScreens{
		Age:    s.Bool(false, SectionFPD, string(p), "age"),
		Gender: s.Bool(false, SectionFPD, string(p), "gender"),
		Email:  s.Bool(false, SectionFPD, string(p), "email"),
	}
}

// FPDEnabled reports whether capture is configured and enabled for a
// placement: the global toggle is on and at least one screen is requested.
func FPDEnabled(s *Store, p Placement) bool {
	if !s.Bool(false, SectionFPD, "enabled") {
		return false
	}
	return FPDScreens(s, p).Any()
}

// TrackingURLs returns the configured URL lists (internal then agency) for a
// named tracking event.
func TrackingURLs(s *Store, eventKey string) []string {
	urls := s.Strs(SectionTracking, eventKey, "internal")
	return append(urls, s.Strs(SectionTracking, eventKey, "agency")...)
}

// AssetScale returns the editor-tuned scale multiplier for an asset key.
// Applied on top of each sprite's stored normalize scale.
func AssetScale(s *Store, key string) float64 {
	scale := s.Num(1.0, SectionAssetScales, key)
	if scale <= 0 {
		return 1.0
	}
	return scale
}
