package types

import (
	"fmt"
	"strings"
)

// Theme selects the visual presentation of the profile page.
type Theme string

const (
	ThemeMinimal  Theme = "minimal"
	ThemeGradient Theme = "gradient"
	ThemeGlass    Theme = "glass"
	ThemeDark     Theme = "dark"
	ThemePassion  Theme = "passion"
)

var themes = []Theme{ThemeMinimal, ThemeGradient, ThemeGlass, ThemeDark, ThemePassion}

// Themes lists the supported themes in selector order.
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// Valid reports whether the theme is one of the enumerated values.
func (t Theme) Valid() bool {
	for _, candidate := range themes {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseTheme rejects unknown themes. Matching ignores case and surrounding
// whitespace, so "DARK" and " dark " both yield ThemeDark.
func ParseTheme(raw string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !theme.Valid() {
		return "", NewValidationError("theme", fmt.Sprintf("unknown theme %q", raw), raw).
			WithTextCode(TextCodeInvalidTheme)
	}
	return theme, nil
}

// Platform identifies a social network. Each platform appears at most once
// in Profile.Socials.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformEmail     Platform = "email"
)

var platforms = []Platform{
	PlatformInstagram,
	PlatformTikTok,
	PlatformTwitter,
	PlatformYouTube,
	PlatformLinkedIn,
	PlatformEmail,
}

// Platforms lists the supported social platforms.
func Platforms() []Platform {
	return append([]Platform(nil), platforms...)
}

// Valid reports whether the platform is supported.
func (p Platform) Valid() bool {
	for _, candidate := range platforms {
		if p == candidate {
			return true
		}
	}
	return false
}

// ParsePlatform normalizes raw input and rejects unknown platforms.
func ParsePlatform(raw string) (Platform, error) {
	platform := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if !platform.Valid() {
		return "", NewValidationError("platform", fmt.Sprintf("unknown platform %q", raw), raw)
	}
	return platform, nil
}

// ValidateProfile checks the record invariants every repository enforces
// before committing a change.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "name is required", p.Name)
	}
	if !p.Theme.Valid() {
		return NewValidationError("theme", fmt.Sprintf("unknown theme %q", p.Theme), string(p.Theme)).
			WithTextCode(TextCodeInvalidTheme)
	}
	seenLinks := make(map[string]struct{}, len(p.Links))
	for _, link := range p.Links {
		if link.ID == "" {
			return NewValidationError("links", "link id required", link.Title)
		}
		if _, ok := seenLinks[link.ID]; ok {
			return NewValidationError("links", fmt.Sprintf("duplicate link id %q", link.ID), link.ID)
		}
		seenLinks[link.ID] = struct{}{}
	}
	seenPlatforms := make(map[Platform]struct{}, len(p.Socials))
	for _, social := range p.Socials {
		if !social.Platform.Valid() {
			return NewValidationError("socials", fmt.Sprintf("unknown platform %q", social.Platform), string(social.Platform))
		}
		if _, ok := seenPlatforms[social.Platform]; ok {
			return NewValidationError("socials", fmt.Sprintf("duplicate platform %q", social.Platform), string(social.Platform))
		}
		seenPlatforms[social.Platform] = struct{}{}
	}
	return nil
}
