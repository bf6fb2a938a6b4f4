package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlaceholderURL marks links whose destination has not been chosen yet.
// Generated links start here until the owner repoints them.
const PlaceholderURL = "#"

// LinkItem is a single outbound link rendered on the profile page. Slice
// order is display order.
type LinkItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SocialLink points at the owner's account on a social platform.
type SocialLink struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

// Profile is the single managed link-in-bio record.
type Profile struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Bio       string       `json:"bio"`
	AvatarURL string       `json:"avatar_url"`
	Links     []LinkItem   `json:"links"`
	Socials   []SocialLink `json:"socials"`
	TipHandle string       `json:"tip_handle,omitempty"`
	Theme     Theme        `json:"theme"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (p Profile) Clone() Profile {
	clone := p
	if p.Links != nil {
		clone.Links = append([]LinkItem(nil), p.Links...)
	}
	if p.Socials != nil {
		clone.Socials = append([]SocialLink(nil), p.Socials...)
	}
	return clone
}

// Link returns the link with the supplied id.
func (p Profile) Link(id string) (LinkItem, bool) {
	for _, link := range p.Links {
		if link.ID == id {
			return link, true
		}
	}
	return LinkItem{}, false
}

// Social returns the entry registered for the platform.
func (p Profile) Social(platform Platform) (SocialLink, bool) {
	for _, social := range p.Socials {
		if social.Platform == platform {
			return social, true
		}
	}
	return SocialLink{}, false
}

// ProfilePatch represents partial updates to the profile details.
type ProfilePatch struct {
	AvatarURL *string
	TipHandle *string
}

// ProfileRepository stores the single profile record. UpdateProfile applies
// fn to a private copy and commits it only when fn succeeds and the result
// passes ValidateProfile, so a failed update leaves the record untouched.
type ProfileRepository interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, fn func(*Profile) error) (*Profile, error)
}

// ProfileEvent signals that a profile mutation occurred.
type ProfileEvent struct {
	Action     string
	OccurredAt time.Time
	Profile    Profile
}

// GenerationEvent describes the outcome of an AI editing cycle.
type GenerationEvent struct {
	Seq        uint64
	Prompt     string
	Outcome    string
	Err        error
	OccurredAt time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterProfileChange func(context.Context, ProfileEvent)
	AfterGeneration    func(context.Context, GenerationEvent)
	AfterActivity      func(context.Context, ActivityRecord)
}

// ActivityRecord describes a single entry of the session activity trail.
type ActivityRecord struct {
	ID         uuid.UUID      `json:"id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type"`
	ObjectID   string         `json:"object_id"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// ActivitySink is the write side of the activity trail.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// ActivityFilter narrows activity feed queries.
type ActivityFilter struct {
	Verbs []string
	Limit int
}

// Type implements gocommand.Message for query inputs.
func (ActivityFilter) Type() string {
	return "query.activity.feed"
}

// Validate implements gocommand.Message.
func (filter ActivityFilter) Validate() error {
	if filter.Limit < 0 {
		return NewValidationError("limit", "must not be negative", filter.Limit)
	}
	return nil
}

// ActivityStats summarizes the trail grouped by verb.
type ActivityStats struct {
	Total  int            `json:"total"`
	ByVerb map[string]int `json:"by_verb"`
}

// ActivityRepository exposes read-side access to the activity trail.
// ListActivity returns the newest records first.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) ([]ActivityRecord, error)
	ActivityStats(ctx context.Context) (ActivityStats, error)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// LinkIDGenerator issues link identifiers. index is the position of the link
// inside the batch being created.
type LinkIDGenerator interface {
	LinkID(createdAt time.Time, index int) (string, error)
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}
