package command

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// MaxLinkTitleLength caps link titles.
const MaxLinkTitleLength = 60

// LinkUpdateInput retitles or repoints a single link.
type LinkUpdateInput struct {
	ID     string
	Title  *string
	URL    *string
	Result *types.Profile
}

// Type implements gocommand.Message.
func (LinkUpdateInput) Type() string {
	return "command.profile.link.update"
}

// Validate implements gocommand.Message.
func (input LinkUpdateInput) Validate() error {
	if strings.TrimSpace(input.ID) == "" {
		return ErrLinkIDRequired
	}
	if input.Title == nil && input.URL == nil {
		return ErrEmptyPatch
	}
	errs := validation.Errors{}
	if input.Title != nil {
		errs["title"] = validation.Validate(strings.TrimSpace(*input.Title),
			validation.Required, validation.RuneLength(1, MaxLinkTitleLength))
	}
	if input.URL != nil {
		url := strings.TrimSpace(*input.URL)
		errs["url"] = validation.Validate(url,
			validation.Required,
			validation.When(url != types.PlaceholderURL, is.URL))
	}
	return validationError(errs.Filter())
}

// LinkUpdateCommand edits a link in place, keeping its id and position.
// Repointing a generated placeholder goes through here.
type LinkUpdateCommand struct {
	mutation
}

// NewLinkUpdateCommand constructs the link handler.
func NewLinkUpdateCommand(cfg ProfileCommandConfig) *LinkUpdateCommand {
	return &LinkUpdateCommand{mutation: newMutation(cfg)}
}

var _ gocommand.Commander[LinkUpdateInput] = (*LinkUpdateCommand)(nil)

// Execute applies the link edit.
func (c *LinkUpdateCommand) Execute(ctx context.Context, input LinkUpdateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	id := strings.TrimSpace(input.ID)
	data := map[string]any{"link_id": id}
	return c.apply(ctx, VerbLinkUpdated, data, func(p *types.Profile) error {
		for idx := range p.Links {
			if p.Links[idx].ID != id {
				continue
			}
			if input.Title != nil {
				p.Links[idx].Title = strings.TrimSpace(*input.Title)
				data["title"] = p.Links[idx].Title
			}
			if input.URL != nil {
				p.Links[idx].URL = strings.TrimSpace(*input.URL)
				data["url"] = p.Links[idx].URL
			}
			return nil
		}
		return ErrLinkNotFound
	}, input.Result)
}
