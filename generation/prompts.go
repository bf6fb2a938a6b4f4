package generation

import "fmt"

const (
	// MaxBioRunes bounds generated bios.
	MaxBioRunes = 150
	// TitleCount is the size of every suggested title batch.
	TitleCount = 4

	// FallbackBio is returned when the service answers with no usable text.
	FallbackBio = "Spreading love & style! ❤️"
)

// FallbackTitles is returned whenever the structured response cannot be
// decoded into TitleCount titles.
func FallbackTitles() []string {
	return []string{"My Favorites ❤️", "Latest Work ✨", "Let's Connect 💖", "Monthly Letter 💌"}
}

func bioPrompt(description string) string {
	return fmt.Sprintf(
		"Write a short, heartfelt, engaging and professional social media \"link-in-bio\" summary "+
			"(max %d characters) based on this description: %s. Use a warm tone, include red heart "+
			"emojis ❤️ or 💖, and make it feel inviting and high-end.",
		MaxBioRunes, description)
}

func titlesPrompt(niche string) string {
	return fmt.Sprintf(
		"Suggest %d attractive link titles for a creator in the %s niche. Make them feel personal "+
			"and use a few emojis like ❤️, ✨ or 💖. Return a JSON array of strings.",
		TitleCount, niche)
}
