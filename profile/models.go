package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the linkbio_profiles row.
type Record struct {
	bun.BaseModel `bun:"table:linkbio_profiles"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name"`
	Bio       string    `bun:"bio"`
	AvatarURL string    `bun:"avatar_url"`
	TipHandle string    `bun:"tip_handle"`
	Theme     string    `bun:"theme"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// LinkRecord models a linkbio_links row. Position keeps display order.
type LinkRecord struct {
	bun.BaseModel `bun:"table:linkbio_links"`

	ID        string    `bun:"id,pk"`
	ProfileID uuid.UUID `bun:"profile_id,type:uuid"`
	Position  int       `bun:"position"`
	Title     string    `bun:"title"`
	URL       string    `bun:"url"`
}

// SocialRecord models a linkbio_socials row, keyed by profile and platform.
type SocialRecord struct {
	bun.BaseModel `bun:"table:linkbio_socials"`

	ProfileID uuid.UUID `bun:"profile_id,pk,type:uuid"`
	Platform  string    `bun:"platform,pk"`
	Position  int       `bun:"position"`
	URL       string    `bun:"url"`
}
