package query

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/tipping"
)

// TipLinkInput carries the raw amount typed or picked by the visitor. An
// empty amount selects tipping.DefaultAmount.
type TipLinkInput struct {
	Amount string
}

// Type implements gocommand.Message.
func (TipLinkInput) Type() string {
	return "query.profile.tip_link"
}

// Validate implements gocommand.Message.
func (input TipLinkInput) Validate() error {
	if strings.TrimSpace(input.Amount) == "" {
		return nil
	}
	_, err := tipping.ParseAmount(input.Amount)
	return err
}

// TipLink is the resolved deep link.
type TipLink struct {
	URL    string `json:"url"`
	Handle string `json:"handle"`
	Amount string `json:"amount"`
}

// TipLinkQuery builds a tip link from the stored handle.
type TipLinkQuery struct {
	repo types.ProfileRepository
}

// NewTipLinkQuery constructs the tip link helper.
func NewTipLinkQuery(repo types.ProfileRepository) *TipLinkQuery {
	return &TipLinkQuery{repo: repo}
}

var _ gocommand.Querier[TipLinkInput, TipLink] = (*TipLinkQuery)(nil)

// Query validates the amount and returns the link. Profiles without a tip
// handle yield types.ErrTipHandleMissing.
func (q *TipLinkQuery) Query(ctx context.Context, input TipLinkInput) (TipLink, error) {
	if q.repo == nil {
		return TipLink{}, types.ErrMissingProfileRepository
	}
	amount := tipping.DefaultAmount
	if strings.TrimSpace(input.Amount) != "" {
		parsed, err := tipping.ParseAmount(input.Amount)
		if err != nil {
			return TipLink{}, err
		}
		amount = parsed
	}
	profile, err := q.repo.GetProfile(ctx)
	if err != nil {
		return TipLink{}, err
	}
	if strings.TrimSpace(profile.TipHandle) == "" {
		return TipLink{}, types.ErrTipHandleMissing
	}
	link, err := tipping.BuildLink(profile.TipHandle, amount)
	if err != nil {
		return TipLink{}, err
	}
	return TipLink{
		URL:    link,
		Handle: profile.TipHandle,
		Amount: amount.String(),
	}, nil
}
