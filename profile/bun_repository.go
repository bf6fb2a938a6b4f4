package profile

import (
	"context"
	"errors"
	"sync"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// RepositoryConfig wires the Bun-backed profile repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileRepository using Bun. Links and socials
// are rewritten inside a single transaction on every update.
type Repository struct {
	profileStore
	db        *bun.DB
	clock     types.Clock
	mu        sync.RWMutex
	profileID uuid.UUID
}

// NewRepository constructs the Bun profile repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("profile: db required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}

	return &Repository{
		profileStore: repo,
		db:           cfg.DB,
		clock:        clock,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileRepository        = (*Repository)(nil)
)

// EnsureSchema creates the profile tables when they are missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Record)(nil),
		(*LinkRecord)(nil),
		(*SocialRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Seed stores the initial profile unless one already exists under the same id.
func (r *Repository) Seed(ctx context.Context, seed types.Profile) error {
	if seed.ID == uuid.Nil {
		return types.NewValidationError("id", "profile id required", seed.ID)
	}
	if err := types.ValidateProfile(seed); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.Get(ctx, selectProfileID(seed.ID))
	switch {
	case err == nil:
		r.profileID = seed.ID
		return nil
	case !repository.IsRecordNotFound(err):
		return err
	}

	if seed.UpdatedAt.IsZero() {
		seed.UpdatedAt = r.clock.Now()
	}
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := r.CreateTx(ctx, tx, fromDomain(seed)); err != nil {
			return err
		}
		return writeChildren(ctx, tx, seed)
	})
	if err != nil {
		return err
	}
	r.profileID = seed.ID
	return nil
}

// GetProfile returns the seeded profile with its links and socials.
func (r *Repository) GetProfile(ctx context.Context) (*types.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profileID == uuid.Nil {
		return nil, types.ErrProfileNotFound
	}
	return r.load(ctx, r.profileID)
}

// UpdateProfile applies fn to the current profile and writes the result in
// one transaction. Any failing statement rolls the whole update back.
func (r *Repository) UpdateProfile(ctx context.Context, fn func(*types.Profile) error) (*types.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profileID == uuid.Nil {
		return nil, types.ErrProfileNotFound
	}
	current, err := r.load(ctx, r.profileID)
	if err != nil {
		return nil, err
	}
	draft := current.Clone()
	if err := fn(&draft); err != nil {
		return nil, err
	}
	draft.ID = current.ID
	if err := types.ValidateProfile(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = r.clock.Now()

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(fromDomain(draft)).WherePK().Exec(ctx); err != nil {
			return err
		}
		return writeChildren(ctx, tx, draft)
	})
	if err != nil {
		return nil, err
	}
	snapshot := draft.Clone()
	return &snapshot, nil
}

func (r *Repository) load(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	rec, err := r.Get(ctx, selectProfileID(id))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, err
	}

	var links []LinkRecord
	if err := r.db.NewSelect().
		Model(&links).
		Where("profile_id = ?", id).
		Order("position ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	var socials []SocialRecord
	if err := r.db.NewSelect().
		Model(&socials).
		Where("profile_id = ?", id).
		Order("position ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return toDomain(rec, links, socials), nil
}

func writeChildren(ctx context.Context, tx bun.Tx, profile types.Profile) error {
	if _, err := tx.NewDelete().
		Model((*LinkRecord)(nil)).
		Where("profile_id = ?", profile.ID).
		Exec(ctx); err != nil {
		return err
	}
	for i, link := range profile.Links {
		rec := &LinkRecord{
			ID:        link.ID,
			ProfileID: profile.ID,
			Position:  i,
			Title:     link.Title,
			URL:       link.URL,
		}
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return err
		}
	}

	if _, err := tx.NewDelete().
		Model((*SocialRecord)(nil)).
		Where("profile_id = ?", profile.ID).
		Exec(ctx); err != nil {
		return err
	}
	for i, social := range profile.Socials {
		rec := &SocialRecord{
			ProfileID: profile.ID,
			Platform:  string(social.Platform),
			Position:  i,
			URL:       social.URL,
		}
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func selectProfileID(id uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("id", "=", id.String())
}

func fromDomain(profile types.Profile) *Record {
	return &Record{
		ID:        profile.ID,
		Name:      profile.Name,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		TipHandle: profile.TipHandle,
		Theme:     string(profile.Theme),
		UpdatedAt: profile.UpdatedAt,
	}
}

func toDomain(rec *Record, links []LinkRecord, socials []SocialRecord) *types.Profile {
	if rec == nil {
		return nil
	}
	profile := &types.Profile{
		ID:        rec.ID,
		Name:      rec.Name,
		Bio:       rec.Bio,
		AvatarURL: rec.AvatarURL,
		TipHandle: rec.TipHandle,
		Theme:     types.Theme(rec.Theme),
		UpdatedAt: rec.UpdatedAt,
	}
	if len(links) > 0 {
		profile.Links = make([]types.LinkItem, 0, len(links))
		for _, link := range links {
			profile.Links = append(profile.Links, types.LinkItem{
				ID:    link.ID,
				Title: link.Title,
				URL:   link.URL,
			})
		}
	}
	if len(socials) > 0 {
		profile.Socials = make([]types.SocialLink, 0, len(socials))
		for _, social := range socials {
			profile.Socials = append(profile.Socials, types.SocialLink{
				Platform: types.Platform(social.Platform),
				URL:      social.URL,
			})
		}
	}
	return profile
}
