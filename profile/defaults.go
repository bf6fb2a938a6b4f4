package profile

import (
	"github.com/google/uuid"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// DefaultProfile returns the record every session starts from.
func DefaultProfile() types.Profile {
	return types.Profile{
		ID:        uuid.MustParse("6c1f6a3e-2f4b-4c7a-9d52-1f0b8c7e4a11"),
		Name:      "Ruby Hart",
		Bio:       "Creating with love, sharing with heart ❤️ Welcome to my little corner of the internet 💖",
		AvatarURL: "https://picsum.photos/seed/heartfelt/400/400",
		Links: []types.LinkItem{
			{ID: "1", Title: "My Latest Collection ❤️", URL: "https://example.com/collection"},
			{ID: "2", Title: "Watch My Vlog ✨", URL: "https://youtube.com"},
			{ID: "3", Title: "Love Letters Newsletter 💌", URL: "https://example.com/newsletter"},
			{ID: "4", Title: "Book a Session 💖", URL: "https://example.com/book"},
		},
		Socials: []types.SocialLink{
			{Platform: types.PlatformInstagram, URL: "https://instagram.com"},
			{Platform: types.PlatformTikTok, URL: "https://tiktok.com"},
			{Platform: types.PlatformYouTube, URL: "https://youtube.com"},
			{Platform: types.PlatformEmail, URL: "mailto:hello@example.com"},
		},
		TipHandle: "rubyhart",
		Theme:     types.ThemePassion,
	}
}
